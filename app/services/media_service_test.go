package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"publicator/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaServiceCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("assigns id and timestamps", func(t *testing.T) {
		m := env.media(t, "Instagram", "driven")
		assert.Equal(t, 1, m.ID)
		assert.Equal(t, fixedNow, m.CreatedAt)
		assert.Equal(t, fixedNow, m.UpdatedAt)
	})

	t.Run("duplicate pair is a conflict", func(t *testing.T) {
		err := env.medias.Create(ctx, &models.Media{Title: "Instagram", Username: "driven"})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, MsgDuplicateMedia, err.Error())

		all, err := env.medias.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("identity is case sensitive", func(t *testing.T) {
		require.NoError(t, env.medias.Create(ctx, &models.Media{Title: "instagram", Username: "driven"}))
		require.NoError(t, env.medias.Create(ctx, &models.Media{Title: "Instagram", Username: "Driven"}))
	})
}

func TestMediaServiceFind(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	all, err := env.medias.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	m := env.media(t, "Instagram", "driven")
	got, err := env.medias.FindOne(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "driven", got.Username)

	_, err = env.medias.FindOne(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, MsgMediaNotFound, err.Error())
}

func TestMediaServiceUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.media(t, "Instagram", "a")
	env.media(t, "Instagram", "b")
	later := fixedNow.Add(time.Hour)
	env.medias.SetClock(func() time.Time { return later })

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := env.medias.Update(ctx, a.ID, models.MediaPatch{Username: strPtr("a2")})
		require.NoError(t, err)
		assert.Equal(t, "Instagram", updated.Title)
		assert.Equal(t, "a2", updated.Username)
		assert.Equal(t, fixedNow, updated.CreatedAt)
		assert.Equal(t, later, updated.UpdatedAt)
	})

	t.Run("no-op update of own pair is allowed", func(t *testing.T) {
		_, err := env.medias.Update(ctx, a.ID, models.MediaPatch{Title: strPtr("Instagram"), Username: strPtr("a2")})
		assert.NoError(t, err)
	})

	t.Run("empty patch is allowed", func(t *testing.T) {
		_, err := env.medias.Update(ctx, a.ID, models.MediaPatch{})
		assert.NoError(t, err)
	})

	t.Run("colliding with another media is a conflict", func(t *testing.T) {
		_, err := env.medias.Update(ctx, a.ID, models.MediaPatch{Username: strPtr("b")})
		assert.ErrorIs(t, err, ErrConflict)

		got, err := env.medias.FindOne(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "a2", got.Username)
	})

	t.Run("missing media is not found before anything else", func(t *testing.T) {
		_, err := env.medias.Update(ctx, 9999, models.MediaPatch{Username: strPtr("b")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMediaServiceRemove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	m := env.media(t, "Instagram", "driven")
	p := env.post(t, "Launch")

	t.Run("missing media", func(t *testing.T) {
		assert.ErrorIs(t, env.medias.Remove(ctx, 9999), ErrNotFound)
	})

	t.Run("referenced media is forbidden", func(t *testing.T) {
		pub := env.publication(t, m.ID, p.ID, fixedNow.Add(24*time.Hour))

		err := env.medias.Remove(ctx, m.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, MsgMediaInUse, err.Error())

		_, err = env.medias.FindOne(ctx, m.ID)
		require.NoError(t, err)

		require.NoError(t, env.publications.Remove(ctx, pub.ID))
	})

	t.Run("published reference is forbidden too", func(t *testing.T) {
		pub := env.publication(t, m.ID, p.ID, fixedNow.Add(-24*time.Hour))
		assert.ErrorIs(t, env.medias.Remove(ctx, m.ID), ErrForbidden)
		require.NoError(t, env.publications.Remove(ctx, pub.ID))
	})

	t.Run("unreferenced media is removed", func(t *testing.T) {
		require.NoError(t, env.medias.Remove(ctx, m.ID))
		_, err := env.medias.FindOne(ctx, m.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMediaServiceStoreGuardWithoutLookup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	m := env.media(t, "Instagram", "driven")
	p := env.post(t, "Launch")
	env.publication(t, m.ID, p.ID, fixedNow.Add(time.Hour))

	// Without the lookup the store constraint still refuses the delete
	bare := NewMediaService(env.store.Medias(), nil)
	err := bare.Remove(ctx, m.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMediaServiceStoreFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	boom := errors.New("disk on fire")
	env.store.FailWith(boom)

	_, err := env.medias.FindAll(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Kind(0), KindOf(err))
}
