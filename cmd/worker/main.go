package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airservice/config"
	"github.com/Domenick1991/airservice/internal/cache"
	"github.com/Domenick1991/airservice/internal/email"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/Domenick1991/airservice/internal/logger"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/service/notification"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.ReferenceTTL())
	defer redisCache.Close()
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	reminders := notification.NewReminderService(
		repository.NewTicketRepository(pool),
		repository.NewTransactor(pool),
		producer,
		cfg.Kafka.NotificationsTopic,
		time.Duration(cfg.Worker.ReminderWindowMinutes)*time.Minute,
		notification.WithLocker(redisCache, time.Duration(cfg.Worker.LockTTLSeconds)*time.Second),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()
	emailSender := email.NewSender()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := consumer.Consume(gctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.NotificationEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Error().Err(err).Int64("offset", msg.Offset).Msg("decode notification")
				return nil
			}
			if err := emailSender.Send(ctx, event); err != nil {
				log.Error().Err(err).Int64("ticket_id", event.TicketID).Msg("send notification")
			}
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(cfg.Worker.SweepIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for {
			if _, err := reminders.SendReminders(gctx); err != nil {
				log.Error().Err(err).Msg("reminder sweep failed")
			}
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	log.Info().Msg("worker started")
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("worker stopped")
		return
	}
	log.Info().Msg("worker stopped")
}
