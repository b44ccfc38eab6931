package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"publicator/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerPostRepository(openTestDB(t))

	t.Run("create and get post", func(t *testing.T) {
		post := &models.Post{Title: "Launch", Text: "We are live"}

		err := repo.Create(ctx, post)
		require.NoError(t, err)
		assert.Greater(t, post.ID, 0)
		assert.False(t, post.CreatedAt.IsZero())

		retrieved, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, retrieved.Title)
		assert.Equal(t, post.Text, retrieved.Text)
		assert.Nil(t, retrieved.Image)
	})

	t.Run("create invalid post", func(t *testing.T) {
		err := repo.Create(ctx, &models.Post{Title: "No text"})
		assert.Error(t, err)
	})

	t.Run("update post", func(t *testing.T) {
		post := &models.Post{Title: "Original", Text: "Original content"}
		require.NoError(t, repo.Create(ctx, post))

		image := "https://cdn.example.com/p.png"
		post.Title = "Updated"
		post.Image = &image
		post.BeforeUpdate(time.Now())
		require.NoError(t, repo.Update(ctx, post))

		retrieved, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", retrieved.Title)
		require.NotNil(t, retrieved.Image)
		assert.Equal(t, image, *retrieved.Image)
	})

	t.Run("update missing post", func(t *testing.T) {
		err := repo.Update(ctx, &models.Post{ID: 9999, Title: "x", Text: "y", CreatedAt: time.Now()})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete post", func(t *testing.T) {
		post := &models.Post{Title: "Doomed", Text: "Soon gone"}
		require.NoError(t, repo.Create(ctx, post))

		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err := repo.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, post.ID), ErrNotFound)
	})

	t.Run("list posts in id order", func(t *testing.T) {
		fresh := NewBadgerPostRepository(openTestDB(t))
		for i := 1; i <= 12; i++ {
			require.NoError(t, fresh.Create(ctx, &models.Post{
				Title: fmt.Sprintf("Post %d", i),
				Text:  "body",
			}))
		}

		posts, err := fresh.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 12)
		for i, p := range posts {
			assert.Equal(t, i+1, p.ID)
		}
	})

	t.Run("list empty", func(t *testing.T) {
		posts, err := NewBadgerPostRepository(openTestDB(t)).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.GetByID(cctx, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
