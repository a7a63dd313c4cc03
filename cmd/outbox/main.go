package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tumbleweedd/frame_store/payment_service/internal/config"
	outBoxRepository "github.com/tumbleweedd/frame_store/payment_service/internal/repository/outBox"
	"github.com/tumbleweedd/frame_store/payment_service/internal/services/outBox/send"
	producer "github.com/tumbleweedd/frame_store/payment_service/pkg/brokers/kafka/outbox_producer"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/databases/postgres"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

// outbox relays pending order events to Kafka once and exits; schedule it with
// cron or a Kubernetes CronJob.
func main() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	sent, err := run(ctx, log, &cfg)
	if err != nil {
		log.Error("produce messages error", logger.String("error", err.Error()), logger.Int("sent", sent))
		stop()
		os.Exit(1)
	}

	log.Info("messages were successfully sent to their topics", logger.Int("sent", sent))
}

func run(ctx context.Context, log logger.Logger, cfg *config.Config) (int, error) {
	db, err := postgres.NewPostgresDB(ctx, log, cfg.Postgres.DSN(), postgres.PoolOptions{MaxOpenConns: 2})
	if err != nil {
		return 0, fmt.Errorf("failed connect to db: %w", err)
	}
	defer db.Close()

	syncProducer, err := producer.NewProducer(cfg.Kafka.BrokerList)
	if err != nil {
		return 0, err
	}
	defer syncProducer.Close()

	repo := outBoxRepository.New(log, db.GetDB())

	return send.New(log, cfg.Kafka.OrderEventTopic, syncProducer, repo, repo).Drain(ctx)
}
