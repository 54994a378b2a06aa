package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/handlers"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/repository"
	"newsletter-go/internal/service"
)

type Config struct {
	ServiceName     string
	Address         string
	Logger          *logging.ContextLogger
	TracerProvider  trace.TracerProvider
	GinMode         string
	Repository      repository.SubscriptionRepository // defaults to in-memory storage
	EmailClient     service.EmailSender               // optional
	SendOnSubscribe bool
}

type Application struct {
	server *http.Server
	config *Config
	router *gin.Engine
	repo   repository.SubscriptionRepository
}

func Build(config *Config) *Application {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	repo := config.Repository
	if repo == nil {
		repo = repository.NewInMemorySubscriptionRepository()
	}

	subscriptionService := service.NewSubscriptionService(repo, config.EmailClient, config.SendOnSubscribe, config.Logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, config.Logger)

	router := gin.New()
	router.Use(gin.Recovery())

	var otelOpts []otelgin.Option
	if config.TracerProvider != nil {
		otelOpts = append(otelOpts, otelgin.WithTracerProvider(config.TracerProvider))
	}
	router.Use(otelgin.Middleware(config.ServiceName, otelOpts...))
	router.Use(requestLogger(config.Logger))

	router.GET("/health_check", handlers.HealthCheck)
	router.POST("/subscriptions", subscriptionHandler.Subscribe)

	server := &http.Server{
		Addr:              config.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Application{
		server: server,
		config: config,
		router: router,
		repo:   repo,
	}
}

func requestLogger(logger *logging.ContextLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.WithTracing(c.Request.Context()).WithFields(map[string]interface{}{
			"method":     method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}).Info("HTTP request completed")
	}
}

func (app *Application) Run() error {
	app.config.Logger.Info("Starting server on " + app.config.Address)
	if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (app *Application) Shutdown(ctx context.Context) error {
	app.config.Logger.Info("Shutting down server...")
	return app.server.Shutdown(ctx)
}

func (app *Application) Router() *gin.Engine {
	return app.router
}

func (app *Application) Repository() repository.SubscriptionRepository {
	return app.repo
}
