package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"tickx/config"
	"tickx/internal/adapters/email"
	"tickx/internal/adapters/secrets"
	"tickx/internal/adapters/ticketmaster"
	"tickx/internal/domain"
	"tickx/internal/repository/dynamo"
	"tickx/internal/services"
)

// One-shot ingestion run, for cron or manual invocation. The HTTP API exposes
// the same pipeline behind POST /sync.
func main() {
	timeout := flag.Duration("timeout", 15*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, *timeout)
	defer timeoutCancel()

	awsCfg, err := config.NewAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	db := dynamodb.NewFromConfig(awsCfg)

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

	sync := services.NewSyncService(
		ticketmaster.NewClient(
			&http.Client{},
			ticketmaster.NewRateLimiter(ticketmaster.DefaultMinInterval),
			logger,
		),
		ticketmaster.NewTransformer(logger),
		dynamo.NewEventRepository(db, cfg.EventsTable, logger),
		dynamo.NewVenueRepository(db, cfg.VenuesTable, logger),
		keys,
		mailer,
		cfg.SyncReportTo,
		partitions(cfg.Cities),
		logger,
	)

	result := sync.Run(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}
	if !result.Success {
		os.Exit(1)
	}
}

func partitions(cities []config.City) []domain.Partition {
	out := make([]domain.Partition, 0, len(cities))
	for _, c := range cities {
		out = append(out, domain.Partition{City: c.Name, StateCode: c.StateCode})
	}
	return out
}
