package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"publicator/app/config"
	"publicator/app/controllers"
	"publicator/app/middleware"
	"publicator/app/repositories"
	"publicator/app/repositories/mock"
	"publicator/app/repositories/postgres"
	"publicator/app/routes"
	"publicator/app/services"

	"go.uber.org/zap"
)

// App owns the storage handles, the services built on them and the HTTP server
type App struct {
	cfg    config.Config
	log    *zap.Logger
	server *http.Server

	Medias       *services.MediaService
	Posts        *services.PostService
	Publications *services.PublicationService

	closers []func() error
}

type gateways struct {
	medias       repositories.MediaRepository
	posts        repositories.PostRepository
	publications repositories.PublicationRepository
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{cfg: cfg, log: log}

	gw, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	a.Medias = services.NewMediaService(gw.medias, log)
	a.Posts = services.NewPostService(gw.posts, log)
	a.Publications = services.NewPublicationService(gw.publications, a.Medias, a.Posts, log)
	a.Medias.AttachPublications(a.Publications)
	a.Posts.AttachPublications(a.Publications)

	router := routes.SetupRoutes(routes.Controllers{
		Media:        controllers.NewMediaController(a.Medias, log),
		Posts:        controllers.NewPostController(a.Posts, log),
		Publications: controllers.NewPublicationController(a.Publications, log),
	}, log, routes.Options{TokenHash: cfg.Auth.TokenHash})

	// CORS wraps the router so preflight requests never reach route matching
	var handler http.Handler = router
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORS.AllowedOrigins)(router)
	}

	a.server = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (gateways, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverBadger:
		repo, err := repositories.NewRepository(a.cfg.Storage.BadgerPath)
		if err != nil {
			return gateways{}, fmt.Errorf("open badger store: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		a.log.Info("storage opened", zap.String("driver", config.DriverBadger), zap.String("path", repo.Path()))
		return gateways{repo.Medias(), repo.Posts(), repo.Publications()}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, a.cfg.Postgres.DSN)
		if err != nil {
			return gateways{}, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return gateways{}, err
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		a.log.Info("storage opened", zap.String("driver", config.DriverPostgres))
		return gateways{
			postgres.NewMediaRepo(pool),
			postgres.NewPostRepo(pool),
			postgres.NewPublicationRepo(pool),
		}, nil

	case config.DriverMemory:
		store := mock.NewStore()
		a.log.Warn("storage opened", zap.String("driver", config.DriverMemory))
		return gateways{store.Medias(), store.Posts(), store.Publications()}, nil
	}

	return gateways{}, fmt.Errorf("unknown storage driver %q", a.cfg.Storage.Driver)
}

// Handler exposes the fully wrapped HTTP handler
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until Shutdown is called
func (a *App) Run() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	return a.Serve(ln)
}

func (a *App) Serve(ln net.Listener) error {
	a.log.Info("http server started", zap.String("addr", ln.Addr().String()))
	if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests, then releases storage
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	return errors.Join(err, a.Close())
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
