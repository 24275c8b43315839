package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dadmind/internal/adapter"
	"dadmind/internal/adapter/document"
	"dadmind/internal/adapter/llm"
	"dadmind/internal/cache"
	"dadmind/internal/config"
	"dadmind/internal/domain"
	"dadmind/internal/handler"
	"dadmind/internal/logger"
	"dadmind/internal/middleware"
	"dadmind/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

// openStore connects the configured key-value backend.
func openStore(cfg *config.Config) (domain.Cache, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return adapter.NewRedisCacheAdapter(client), func() { _ = client.Close() }, nil
	case config.StoreSQLite:
		db, err := cache.NewSQLiteDB(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return adapter.NewSQLiteCacheAdapter(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		appLogger.Fatal("Failed to open session store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()
	appLogger.Info("Session store ready", zap.String("backend", cfg.Store.Backend))

	// A missing credential disables chat and advice; the assessment engine keeps working.
	var provider domain.CompletionProvider
	if p, err := llm.NewProviderFromConfig(context.Background(), cfg.LLM); err != nil {
		appLogger.Warn("AI features disabled", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	} else {
		provider = p
		appLogger.Info("Completion provider initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))
	}

	kb := domain.NewKnowledgeBase(cfg.Knowledge.Descriptors())
	loader := service.NewKnowledgeLoader(document.NewFetcher(cfg.Knowledge.LoadTimeout), document.NewPDFDecoder())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Knowledge.LoadTimeout)
		defer cancel()
		loader.LoadInto(ctx, kb)
	}()

	var retriever service.ContextRetriever
	if provider != nil {
		retriever = service.NewContextRetriever(provider, cfg.Knowledge.MaxCharsPerDoc, cfg.Knowledge.MaxContextChars)
	}
	registry := service.NewConversationRegistry(service.ConversationDeps{
		Provider:  provider,
		Retriever: retriever,
		Knowledge: kb,
		Store:     service.NewSessionStore(store),
	}, service.WithMaxConversations(cfg.Chat.MaxConversations))
	assessmentService := service.NewAssessmentService(
		domain.DefaultEngine(),
		service.NewResultCacheService(store, cfg.Assessment.ResultTTL),
		service.NewAdviceService(provider),
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.WriteTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.ClientIDHeader,
		MaxAge:       300,
	}))

	handler.RegisterRoutes(app, handler.Handlers{
		Assessment: handler.NewAssessmentHandler(assessmentService),
		Chat:       handler.NewChatHandler(registry),
		System:     handler.NewSystemHandler(kb, store, provider != nil),
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
