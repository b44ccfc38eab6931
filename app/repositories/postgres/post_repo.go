package postgres

import (
	"context"
	"fmt"

	"publicator/app/models"
	"publicator/app/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

const postColumns = `id, title, text, image, created_at, updated_at`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Text, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) Create(ctx context.Context, post *models.Post) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO post (title, text, image, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, post.Title, post.Text, post.Image, post.CreatedAt, post.UpdatedAt).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int) (*models.Post, error) {
	post, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM post WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, notFound(err))
	}
	return post, nil
}

func (r *PostRepo) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM post ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE post
SET title = $2, text = $3, image = $4, updated_at = $5
WHERE id = $1
`, post.ID, post.Title, post.Text, post.Image, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM post WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, translateDeleteError(err))
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
