package postgres

import (
	"context"
	"errors"
	"fmt"

	"publicator/app/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"

	mediaForeignKey = "publication_media_id_fkey"
	postForeignKey  = "publication_post_id_fkey"
)

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	cfg.MinConns = 0
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS media (
	id         SERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	username   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT media_title_username_key UNIQUE (title, username)
)`,
	`CREATE TABLE IF NOT EXISTS post (
	id         SERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	text       TEXT NOT NULL,
	image      TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS publication (
	id         SERIAL PRIMARY KEY,
	media_id   INTEGER NOT NULL,
	post_id    INTEGER NOT NULL,
	date       TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT publication_media_id_fkey FOREIGN KEY (media_id) REFERENCES media (id) ON DELETE RESTRICT,
	CONSTRAINT publication_post_id_fkey FOREIGN KEY (post_id) REFERENCES post (id) ON DELETE RESTRICT
)`,
	`CREATE INDEX IF NOT EXISTS publication_media_id_idx ON publication (media_id)`,
	`CREATE INDEX IF NOT EXISTS publication_post_id_idx ON publication (post_id)`,
}

// Migrate creates the schema when it does not exist yet
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return WithTx(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}
		}
		return nil
	})
}

func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(context.Context, pgx.Tx) error) error {
	if pool == nil {
		return errors.New("postgres pool is nil")
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// translateWriteError maps constraint violations of an insert or update
func translateWriteError(err error, mediaID, postID int) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return repositories.ErrDuplicate
	case codeForeignKeyViolation:
		switch pgErr.ConstraintName {
		case mediaForeignKey:
			return &repositories.MissingReferenceError{Entity: "media", ID: mediaID}
		case postForeignKey:
			return &repositories.MissingReferenceError{Entity: "post", ID: postID}
		}
		return repositories.ErrMissingReference
	}
	return err
}

// translateDeleteError maps a restricted delete to ErrReferenced
func translateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return repositories.ErrReferenced
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrNotFound
	}
	return err
}
