package services

import (
	"context"
	"testing"
	"time"

	"publicator/app/models"
	"publicator/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store        *mock.Store
	medias       *MediaService
	posts        *PostService
	publications *PublicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := mock.NewStore()

	medias := NewMediaService(store.Medias(), nil)
	posts := NewPostService(store.Posts(), nil)
	pubs := NewPublicationService(store.Publications(), medias, posts, nil)
	medias.AttachPublications(pubs)
	posts.AttachPublications(pubs)

	clock := func() time.Time { return fixedNow }
	medias.SetClock(clock)
	posts.SetClock(clock)
	pubs.SetClock(clock)

	return &testEnv{store: store, medias: medias, posts: posts, publications: pubs}
}

func (e *testEnv) media(t *testing.T, title, username string) *models.Media {
	t.Helper()
	m := &models.Media{Title: title, Username: username}
	require.NoError(t, e.medias.Create(context.Background(), m))
	return m
}

func (e *testEnv) post(t *testing.T, title string) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Text: "text of " + title}
	require.NoError(t, e.posts.Create(context.Background(), p))
	return p
}

func (e *testEnv) publication(t *testing.T, mediaID, postID int, date time.Time) *models.Publication {
	t.Helper()
	p := &models.Publication{MediaID: mediaID, PostID: postID, Date: date}
	require.NoError(t, e.publications.Create(context.Background(), p))
	return p
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
