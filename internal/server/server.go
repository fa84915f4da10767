package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/copyforge/apiserver/config"
	"github.com/copyforge/apiserver/internal/auth"
	"github.com/copyforge/apiserver/internal/db"
	"github.com/copyforge/apiserver/internal/events"
	"github.com/copyforge/apiserver/internal/generator"
	"github.com/copyforge/apiserver/internal/handlers"
	"github.com/copyforge/apiserver/internal/services"
	"github.com/copyforge/apiserver/internal/storage"
	"github.com/copyforge/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  *events.Publisher
}

// New constructs a Server with all backends selected from config.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	creds := auth.NewCredentials(jwtSecret, cfg.BcryptCost, time.Duration(cfg.TokenTTLHours)*time.Hour)

	accountRepo, contentRepo, subscriptionRepo, dbConn, err := buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := buildGenerator(cfg.Generator)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	publisher, err := buildPublisher(ctx, cfg.Events)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	accountService := services.NewAccountService(accountRepo, creds, publisher)
	contentService := services.NewContentService(contentRepo, accountRepo, gen, publisher)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, accountRepo, publisher)
	statsService := services.NewStatsService(accountRepo, contentRepo, subscriptionRepo)

	backupService, err := buildBackupService(ctx, cfg.Storage, accountRepo, contentRepo, subscriptionRepo)
	if err != nil {
		closeDB(dbConn)
		_ = publisher.Close()
		return nil, err
	}

	authMiddleware := handlers.RequireAuth(creds)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, accountService, creds)
	})
	router.Route("/content", func(r chi.Router) {
		handlers.ContentRouter(r, contentService, authMiddleware)
	})
	router.Route("/subscriptions", func(r chi.Router) {
		handlers.SubscriptionRouter(r, subscriptionService, authMiddleware)
	})
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, statsService, backupService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		publisher:  publisher,
	}, nil
}

// Router exposes the chi router for route registration and tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	closeDB(s.db)
	_ = s.publisher.Close()
	return s.httpServer.Close()
}

func buildRepositories(ctx context.Context, cfg config.Config) (services.AccountRepository, services.ContentRepository, services.SubscriptionRepository, *sql.DB, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		dbConn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return store.NewPGAccountRepository(dbConn),
			store.NewPGContentRepository(dbConn),
			store.NewPGSubscriptionRepository(dbConn),
			dbConn, nil
	case config.StoreBackendFile, "":
		accountRepo, err := store.NewFileAccountRepository(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		contentRepo, err := store.NewFileContentRepository(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		subscriptionRepo, err := store.NewFileSubscriptionRepository(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return accountRepo, contentRepo, subscriptionRepo, nil, nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func buildGenerator(cfg config.GeneratorConfig) (generator.Generator, error) {
	switch cfg.Backend {
	case config.GeneratorBackendOpenAI:
		return generator.NewOpenAIGenerator(cfg.APIKey)
	case config.GeneratorBackendTemplate, "":
		return generator.NewTemplateGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown generator backend %q", cfg.Backend)
	}
}

func buildPublisher(ctx context.Context, cfg config.EventsConfig) (*events.Publisher, error) {
	switch cfg.Backend {
	case config.EventsBackendRabbitMQ:
		backend, err := events.NewRabbitMQBackend(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend), nil
	case config.EventsBackendPubSub:
		backend, err := events.NewPubSubBackend(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend), nil
	case config.EventsBackendNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

func buildBackupService(
	ctx context.Context,
	cfg config.StorageConfig,
	accounts services.AccountRepository,
	content services.ContentRepository,
	subscriptions services.SubscriptionRepository,
) (*services.BackupService, error) {
	var backend storage.ObjectStorage
	switch cfg.Backend {
	case config.StorageBackendMinio:
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		backend = client
	case config.StorageBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		backend = client
	case config.StorageBackendNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	return services.NewBackupService(storage.NewStorage(backend), accounts, content, subscriptions), nil
}

func closeDB(dbConn *sql.DB) {
	if dbConn != nil {
		_ = dbConn.Close()
	}
}
