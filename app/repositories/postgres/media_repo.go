package postgres

import (
	"context"
	"fmt"

	"publicator/app/models"
	"publicator/app/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MediaRepo struct {
	pool *pgxpool.Pool
}

func NewMediaRepo(pool *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{pool: pool}
}

const mediaColumns = `id, title, username, created_at, updated_at`

func scanMedia(row pgx.Row) (*models.Media, error) {
	var m models.Media
	if err := row.Scan(&m.ID, &m.Title, &m.Username, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepo) Create(ctx context.Context, media *models.Media) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO media (title, username, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`, media.Title, media.Username, media.CreatedAt, media.UpdatedAt).Scan(&media.ID)
	if err != nil {
		return fmt.Errorf("insert media: %w", translateWriteError(err, 0, 0))
	}
	return nil
}

func (r *MediaRepo) GetByID(ctx context.Context, id int) (*models.Media, error) {
	media, err := scanMedia(r.pool.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get media %d: %w", id, notFound(err))
	}
	return media, nil
}

func (r *MediaRepo) FindByIdentity(ctx context.Context, title, username string) (*models.Media, error) {
	media, err := scanMedia(r.pool.QueryRow(ctx, `
SELECT `+mediaColumns+`
FROM media
WHERE title = $1 AND username = $2
`, title, username))
	if err != nil {
		return nil, fmt.Errorf("find media by identity: %w", notFound(err))
	}
	return media, nil
}

func (r *MediaRepo) List(ctx context.Context) ([]*models.Media, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+mediaColumns+` FROM media ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	medias := make([]*models.Media, 0)
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		medias = append(medias, media)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media: %w", err)
	}
	return medias, nil
}

func (r *MediaRepo) Update(ctx context.Context, media *models.Media) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE media
SET title = $2, username = $3, updated_at = $4
WHERE id = $1
`, media.ID, media.Title, media.Username, media.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update media %d: %w", media.ID, translateWriteError(err, 0, 0))
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *MediaRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media %d: %w", id, translateDeleteError(err))
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
