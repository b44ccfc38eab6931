package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"publicator/app/repositories/mock"
	"publicator/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	store  *mock.Store
	router *mux.Router
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	store := mock.NewStore()

	mediaService := services.NewMediaService(store.Medias(), nil)
	postService := services.NewPostService(store.Posts(), nil)
	pubService := services.NewPublicationService(store.Publications(), mediaService, postService, nil)
	mediaService.AttachPublications(pubService)
	postService.AttachPublications(pubService)

	clock := func() time.Time { return fixedNow }
	mediaService.SetClock(clock)
	postService.SetClock(clock)
	pubService.SetClock(clock)

	router := mux.NewRouter()
	register := func(path string, c interface {
		Index(http.ResponseWriter, *http.Request)
		Show(http.ResponseWriter, *http.Request)
		Create(http.ResponseWriter, *http.Request)
		Edit(http.ResponseWriter, *http.Request)
		Delete(http.ResponseWriter, *http.Request)
	}) {
		router.HandleFunc(path, c.Create).Methods(http.MethodPost)
		router.HandleFunc(path, c.Index).Methods(http.MethodGet)
		router.HandleFunc(path+"/{id}", c.Show).Methods(http.MethodGet)
		router.HandleFunc(path+"/{id}", c.Edit).Methods(http.MethodPut, http.MethodPatch)
		router.HandleFunc(path+"/{id}", c.Delete).Methods(http.MethodDelete)
	}
	register("/medias", NewMediaController(mediaService, nil))
	register("/posts", NewPostController(postService, nil))
	register("/publications", NewPublicationController(pubService, nil))

	return &testServer{store: store, router: router}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
