package postgres

import (
	"context"
	"fmt"

	"publicator/app/models"
	"publicator/app/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PublicationRepo struct {
	pool *pgxpool.Pool
}

func NewPublicationRepo(pool *pgxpool.Pool) *PublicationRepo {
	return &PublicationRepo{pool: pool}
}

const publicationColumns = `id, media_id, post_id, date, created_at, updated_at`

func scanPublication(row pgx.Row) (*models.Publication, error) {
	var p models.Publication
	if err := row.Scan(&p.ID, &p.MediaID, &p.PostID, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PublicationRepo) Create(ctx context.Context, pub *models.Publication) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO publication (media_id, post_id, date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, pub.MediaID, pub.PostID, pub.Date, pub.CreatedAt, pub.UpdatedAt).Scan(&pub.ID)
	if err != nil {
		return fmt.Errorf("insert publication: %w", translateWriteError(err, pub.MediaID, pub.PostID))
	}
	return nil
}

func (r *PublicationRepo) GetByID(ctx context.Context, id int) (*models.Publication, error) {
	pub, err := scanPublication(r.pool.QueryRow(ctx, `SELECT `+publicationColumns+` FROM publication WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get publication %d: %w", id, notFound(err))
	}
	return pub, nil
}

func (r *PublicationRepo) List(ctx context.Context) ([]*models.Publication, error) {
	return r.query(ctx, `SELECT `+publicationColumns+` FROM publication ORDER BY id ASC`)
}

func (r *PublicationRepo) ListByMedia(ctx context.Context, mediaID int) ([]*models.Publication, error) {
	return r.query(ctx, `SELECT `+publicationColumns+` FROM publication WHERE media_id = $1 ORDER BY id ASC`, mediaID)
}

func (r *PublicationRepo) ListByPost(ctx context.Context, postID int) ([]*models.Publication, error) {
	return r.query(ctx, `SELECT `+publicationColumns+` FROM publication WHERE post_id = $1 ORDER BY id ASC`, postID)
}

func (r *PublicationRepo) query(ctx context.Context, sql string, args ...any) ([]*models.Publication, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()

	pubs := make([]*models.Publication, 0)
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		pubs = append(pubs, pub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate publications: %w", err)
	}
	return pubs, nil
}

func (r *PublicationRepo) Update(ctx context.Context, pub *models.Publication) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE publication
SET media_id = $2, post_id = $3, date = $4, updated_at = $5
WHERE id = $1
`, pub.ID, pub.MediaID, pub.PostID, pub.Date, pub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update publication %d: %w", pub.ID, translateWriteError(err, pub.MediaID, pub.PostID))
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PublicationRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM publication WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete publication %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

var (
	_ repositories.MediaRepository       = (*MediaRepo)(nil)
	_ repositories.PostRepository        = (*PostRepo)(nil)
	_ repositories.PublicationRepository = (*PublicationRepo)(nil)
)
