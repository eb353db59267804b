package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"tickx/config"
	_ "tickx/docs"
	"tickx/internal/adapters/auth"
	"tickx/internal/adapters/email"
	"tickx/internal/adapters/secrets"
	"tickx/internal/adapters/ticketmaster"
	httpdelivery "tickx/internal/delivery/http"
	"tickx/internal/delivery/http/controllers"
	"tickx/internal/delivery/http/middleware"
	"tickx/internal/domain"
	"tickx/internal/repository/dynamo"
	"tickx/internal/services"
)

const catalogTimeout = 10 * time.Second

// @title TickX Catalog API
// @version 1.0
// @description Event and venue catalog backed by Ticketmaster discovery data.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	awsCfg, err := config.NewAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	db := dynamodb.NewFromConfig(awsCfg)

	eventRepo := dynamo.NewEventRepository(db, cfg.EventsTable, logger)
	venueRepo := dynamo.NewVenueRepository(db, cfg.VenuesTable, logger)
	catalog := services.NewCatalogService(eventRepo, venueRepo, logger, catalogTimeout)

	var keys domain.APIKeyProvider
	if cfg.TMAPIKeyParam != "" {
		keys = secrets.NewSSMProvider(ssm.NewFromConfig(awsCfg), cfg.TMAPIKeyParam)
	} else {
		keys = secrets.NewStaticProvider(cfg.TMAPIKey)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailerFrom,
		FromName:    "TickX Sync",
	}, awsCfg)
	if err != nil {
		log.Fatalf("init mailer: %v", err)
	}

	fetcher := ticketmaster.NewClient(
		&http.Client{},
		ticketmaster.NewRateLimiter(ticketmaster.DefaultMinInterval),
		logger,
	)
	sync := services.NewSyncService(
		fetcher,
		ticketmaster.NewTransformer(logger),
		eventRepo,
		venueRepo,
		keys,
		mailer,
		cfg.SyncReportTo,
		partitions(cfg.Cities),
		logger,
	)

	verifier := auth.NewJWTVerifier(cfg.SyncTokenSecret)
	mux := httpdelivery.NewRouter(
		controllers.NewEventController(logger, catalog),
		controllers.NewVenueController(logger, catalog),
		controllers.NewSyncController(logger, sync),
		verifier,
	)

	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute, // sync runs synchronously
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "err", err)
		}
	}()

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("server stopped")
}

func partitions(cities []config.City) []domain.Partition {
	out := make([]domain.Partition, 0, len(cities))
	for _, c := range cities {
		out = append(out, domain.Partition{City: c.Name, StateCode: c.StateCode})
	}
	return out
}
