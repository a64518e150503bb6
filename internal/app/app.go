package app

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openmysteries/backend/internal/cache"
	"github.com/openmysteries/backend/internal/catalog"
	"github.com/openmysteries/backend/internal/http/handlers"
	"github.com/openmysteries/backend/internal/llm"
	"github.com/openmysteries/backend/internal/mysteries"
	"github.com/openmysteries/backend/internal/pkg/logger"
)

type App struct {
	Log     *logger.Logger
	Cfg     Config
	Catalog *catalog.Catalog
	Store   cache.Store
	Service mysteries.Service
	Router  *gin.Engine
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	cat, err := catalog.Load()
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load topic catalog: %w", err)
	}
	log.Info("topic catalog loaded", "topics", cat.Len())

	store, err := cache.NewRedisStore(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init redis store: %w", err)
	}

	backend, err := llm.NewOpenAIBackend(log, llm.SettingsFromEnv())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init llm backend: %w", err)
	}

	svc := mysteries.NewService(log, cat, store, backend, mysteries.Options{
		CacheVersion: cfg.CacheVersion,
		LockTTL:      cfg.LockTTL,
		PollInterval: cfg.PollInterval,
		PollAttempts: cfg.PollAttempts,
	})

	router := wireRouter(log, cat, svc)

	return &App{
		Log:     log,
		Cfg:     cfg,
		Catalog: cat,
		Store:   store,
		Service: svc,
		Router:  router,
	}, nil
}

func wireRouter(log *logger.Logger, cat *catalog.Catalog, svc mysteries.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	health := handlers.NewHealthHandler()
	mystery := handlers.NewMysteryHandler(log, cat, svc)

	router.GET("/healthz", health.Check)
	api := router.Group("/api")
	{
		api.GET("/mysteries", mystery.ListTopics)
		api.GET("/mysteries/:id", mystery.GetArticle)
		api.GET("/mysteries/:id/quality", mystery.GetQuality)
	}
	return router
}
