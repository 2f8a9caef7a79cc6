package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"

	"homework-notifier/internal/config"
	"homework-notifier/internal/kafka"
	"homework-notifier/internal/logging"
	"homework-notifier/internal/notification"
	"homework-notifier/internal/practicum"
	"homework-notifier/internal/providers"
	"homework-notifier/internal/services"
	"homework-notifier/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run wires the service and blocks until ctx is done. It returns the process
// exit code so that deferred cleanup always happens before exit.
func run(ctx context.Context) int {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Printf("Failed to init logger: %v", err)
		return 1
	}
	defer func() {
		if err := logger.Close(); err != nil {
			log.Printf("Failed to close logger: %v", err)
		}
	}()

	// Missing secrets are the only fatal condition once the logger is up
	if err := cfg.CheckTokens(); err != nil {
		logger.Logf(logrus.FatalLevel, "Required environment variables are missing: %v", err)
		return 1
	}
	logger.Debug("Tokens check passed")

	// getMe is skipped so that a Telegram outage at start-up does not stop the poller
	b, err := bot.New(cfg.Telegram.Token, bot.WithSkipGetMe())
	if err != nil {
		logger.Logf(logrus.FatalLevel, "Failed to init Telegram bot: %v", err)
		return 1
	}

	primary := providers.NewTelegram(b, cfg.Telegram.ChatID, cfg.RateLimit.TelegramRateLimiter)
	var secondary []notification.Provider
	if cfg.Kafka.Broker != "" {
		producer := kafka.NewProducer(kafka.Config{Broker: cfg.Kafka.Broker, Topic: cfg.Kafka.Topic}, cfg.Telegram.ChatID)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Errorf("Kafka producer close failed: %v", err)
			}
		}()
		err := utils.Retry(ctx, logger, "kafka ping", 3, 5*time.Second, producer.Ping)
		if err != nil {
			logger.Warnf("Kafka is unavailable, notifications go to Telegram only: %v", err)
		} else {
			secondary = append(secondary, producer)
			logger.Infof("Kafka producer initialized with topic: %s", cfg.Kafka.Topic)
		}
	}
	notifier := notification.New(logger, primary, secondary...)

	client := practicum.NewClient(cfg.Practicum.Endpoint, cfg.Practicum.Token, cfg.Poll.RequestTimeout, logger)
	svc := services.New(client, notifier, logger, cfg.Poll.RetryPeriod, time.Now())

	var wg sync.WaitGroup
	svc.Start(&wg)

	<-ctx.Done()
	logger.Info("Shutting down...")
	svc.Stop()
	wg.Wait()
	logger.Info("Service stopped")
	return 0
}
