package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"publicator/app/models"
	"publicator/app/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		entity string
	}{
		{"unique", &pgconn.PgError{Code: codeUniqueViolation}, repositories.ErrDuplicate, ""},
		{"media fk", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: mediaForeignKey}, repositories.ErrMissingReference, "media"},
		{"post fk", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: postForeignKey}, repositories.ErrMissingReference, "post"},
		{"unknown fk", &pgconn.PgError{Code: codeForeignKeyViolation}, repositories.ErrMissingReference, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateWriteError(fmt.Errorf("wrapped: %w", tt.err), 4, 5)
			assert.ErrorIs(t, err, tt.target)

			var missing *repositories.MissingReferenceError
			if tt.entity != "" {
				require.True(t, errors.As(err, &missing))
				assert.Equal(t, tt.entity, missing.Entity)
			}
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, translateWriteError(other, 0, 0))
}

func TestTranslateDeleteError(t *testing.T) {
	assert.ErrorIs(t, translateDeleteError(&pgconn.PgError{Code: codeForeignKeyViolation}), repositories.ErrReferenced)

	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), translateDeleteError(other))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(pgx.ErrNoRows), repositories.ErrNotFound)
	assert.NoError(t, notFound(nil))
}

func TestNewPoolRequiresDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "")
	assert.Error(t, err)
}

// testPool connects to POSTGRES_TEST_DSN and skips when it is not set.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE publication, post, media RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestPostgresRepositories(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	medias := NewMediaRepo(pool)
	posts := NewPostRepo(pool)
	pubs := NewPublicationRepo(pool)

	media := &models.Media{Title: "Instagram", Username: "driven", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, medias.Create(ctx, media))
	assert.ErrorIs(t, medias.Create(ctx, &models.Media{Title: "Instagram", Username: "driven", CreatedAt: now, UpdatedAt: now}), repositories.ErrDuplicate)

	found, err := medias.FindByIdentity(ctx, "Instagram", "driven")
	require.NoError(t, err)
	assert.Equal(t, media.ID, found.ID)

	post := &models.Post{Title: "Launch", Text: "We are live", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, posts.Create(ctx, post))
	gotPost, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, gotPost.Image)

	err = pubs.Create(ctx, &models.Publication{MediaID: 999, PostID: post.ID, Date: now, CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, repositories.ErrMissingReference)

	pub := &models.Publication{MediaID: media.ID, PostID: post.ID, Date: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, pubs.Create(ctx, pub))

	assert.ErrorIs(t, medias.Delete(ctx, media.ID), repositories.ErrReferenced)
	assert.ErrorIs(t, posts.Delete(ctx, post.ID), repositories.ErrReferenced)

	byMedia, err := pubs.ListByMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.Len(t, byMedia, 1)

	require.NoError(t, pubs.Delete(ctx, pub.ID))
	assert.ErrorIs(t, pubs.Delete(ctx, pub.ID), repositories.ErrNotFound)
	require.NoError(t, medias.Delete(ctx, media.ID))

	_, err = medias.GetByID(ctx, media.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
