package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"securebook/internal/booking/handler"
	"securebook/internal/booking/repository"
	"securebook/internal/booking/service"
	"securebook/internal/booking/validator"
	"securebook/pkg/config"
	"securebook/pkg/contracts"
	"securebook/pkg/kafka"
	kafka_config "securebook/pkg/kafka/config"
	kafka_middleware "securebook/pkg/kafka/middleware"
	"securebook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg    *config.Config
	server *http.Server

	repo     repository.DraftRepository
	sessions *handler.Sessions

	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.SessionRateLimiter
	stoppers         []func()

	kafkaCfg     *kafka_config.Config
	metrics      *kafka_middleware.Metrics
	producer     *kafka.Producer
	consumer     *kafka.Consumer
	stopConsumer context.CancelFunc
	consumerDone chan struct{}

	healthHandler  http.Handler
	appHttpHandler http.Handler
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp builds every component. Any failure is fatal.
func (a *Application) SetApp() {
	if err := a.build(); err != nil {
		a.cfg.Log.Fatal("Failed to initialize application", "error", err)
	}
}

func (a *Application) build() error {
	if err := a.setDraftStore(); err != nil {
		return err
	}

	sub, err := a.setSubmitter()
	if err != nil {
		return err
	}

	svc := service.NewFormService(a.repo, sub, validator.NewFormValidator(a.cfg.Log), a.cfg)
	if err := a.setResultsConsumer(svc); err != nil {
		return err
	}

	pages, err := handler.NewPages(a.cfg.AuthURL)
	if err != nil {
		return err
	}
	a.sessions = handler.NewSessions(a.cfg.SessionCookieName, a.cfg.DraftTTL)
	bookingHandler := handler.NewBookingHandler(svc, a.sessions, pages, a.cfg.Log.WithComponent("handler"))

	a.setHealthHandler()
	a.setAppHandler(bookingHandler)
	a.setAppServer()
	return nil
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	healthHandler := handler.NewHealthHandler(a.repo, a.cfg.DraftStore, a.metrics, a.cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(appHandler contracts.Handler) {
	appRouter := httprouter.New()
	appHandler.RegisterRoutes(appRouter)

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewSessionRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		a.sessions.Peek,
		a.cfg.Log,
	)
	a.stoppers = append(a.stoppers, a.idempotencyStore.Stop, a.rateLimiter.Stop)

	// Recovery → Logging → MaxSize → ContentType → RateLimit → Timeout → Idempotency → Router
	var appHttpHandler http.Handler = appRouter
	appHttpHandler = middleware.Idempotency(a.idempotencyStore, middleware.IdempotencyHeader, a.sessions.Peek)(appHttpHandler)
	appHttpHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.SessionRateLimit(a.rateLimiter, handler.IsSubmission)(appHttpHandler)
	appHttpHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHttpHandler)
	appHttpHandler = middleware.RequestLogging(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.Recovery(a.cfg.Log)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHttpHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	a.startResultsConsumer()

	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.stopKafka()
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}
	a.cfg.Log.Info("Server stopped gracefully")

	a.cfg.Log.Info("Stopping background workers...")
	a.stopKafka()
	for _, stop := range a.stoppers {
		stop()
	}
	a.cfg.Log.Info("Background workers stopped")
}
