package services

import (
	"context"
	"testing"
	"time"

	"publicator/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostServiceCRUD(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("create", func(t *testing.T) {
		p := env.post(t, "Launch")
		assert.Equal(t, 1, p.ID)
		assert.Equal(t, fixedNow, p.CreatedAt)
		assert.Nil(t, p.Image)
	})

	t.Run("find", func(t *testing.T) {
		p, err := env.posts.FindOne(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Launch", p.Title)

		_, err = env.posts.FindOne(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, MsgPostNotFound, err.Error())

		all, err := env.posts.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("update merges image", func(t *testing.T) {
		updated, err := env.posts.Update(ctx, 1, models.PostPatch{
			Text:  strPtr("new text"),
			Image: strPtr("https://cdn.example.com/a.png"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Launch", updated.Title)
		assert.Equal(t, "new text", updated.Text)
		require.NotNil(t, updated.Image)
		assert.Equal(t, "https://cdn.example.com/a.png", *updated.Image)

		stored, err := env.posts.FindOne(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, stored.Image)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := env.posts.Update(ctx, 42, models.PostPatch{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostServiceRemove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	m := env.media(t, "Instagram", "driven")
	p := env.post(t, "Launch")
	pub := env.publication(t, m.ID, p.ID, fixedNow.Add(time.Hour))

	err := env.posts.Remove(ctx, p.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, MsgPostInUse, err.Error())

	require.NoError(t, env.publications.Remove(ctx, pub.ID))
	require.NoError(t, env.posts.Remove(ctx, p.ID))
	assert.ErrorIs(t, env.posts.Remove(ctx, p.ID), ErrNotFound)
}
