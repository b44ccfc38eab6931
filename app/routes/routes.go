package routes

import (
	"net/http"

	"publicator/app/controllers"
	"publicator/app/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controllers groups the handlers mounted by SetupRoutes
type Controllers struct {
	Media        *controllers.MediaController
	Posts        *controllers.PostController
	Publications *controllers.PublicationController
}

// Options tunes the middleware stack
type Options struct {
	// TokenHash is the bcrypt hash of the API token; empty leaves writes open
	TokenHash string
}

// resource is the handler set every collection exposes
type resource interface {
	Index(http.ResponseWriter, *http.Request)
	Show(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Edit(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// SetupRoutes builds the API router
func SetupRoutes(c Controllers, log *zap.Logger, opts Options) *mux.Router {
	if log == nil {
		log = zap.NewNop()
	}
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.RequireToken(opts.TokenHash, log))

	router.NotFoundHandler = middleware.ContentTypeJSON(http.HandlerFunc(controllers.NotFound))
	router.MethodNotAllowedHandler = middleware.ContentTypeJSON(http.HandlerFunc(controllers.MethodNotAllowed))

	router.HandleFunc("/health", controllers.Health).Methods(http.MethodGet)

	mount(router, "/medias", c.Media)
	mount(router, "/posts", c.Posts)
	mount(router, "/publications", c.Publications)

	return router
}

func mount(router *mux.Router, prefix string, c resource) {
	sub := router.PathPrefix(prefix).Subrouter()
	// Collections answer with and without the trailing slash
	for _, root := range []string{"", "/"} {
		sub.HandleFunc(root, c.Index).Methods(http.MethodGet)
		sub.HandleFunc(root, c.Create).Methods(http.MethodPost)
	}
	sub.HandleFunc("/{id}", c.Show).Methods(http.MethodGet)
	sub.HandleFunc("/{id}", c.Edit).Methods(http.MethodPut, http.MethodPatch)
	sub.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}
