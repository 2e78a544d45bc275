package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndolgov/stepline/internal/mq"
	"github.com/ndolgov/stepline/internal/repo"
	"github.com/ndolgov/stepline/internal/telemetry"
	"github.com/ndolgov/stepline/internal/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// validatorLockKey — ключ pg advisory lock для выбора лидера:
// проходы выполняет только один экземпляр валидатора.
const validatorLockKey int64 = 565656

func main() {
	logger := telemetry.SetupLogger()
	logger.Info("starting stepline-validator")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	schedule := os.Getenv("VALIDATE_CRON")
	if schedule == "" {
		schedule = validator.DefaultSchedule
	}
	if err := validator.ValidateSchedule(schedule); err != nil {
		logger.Error("invalid VALIDATE_CRON", "error", err)
		os.Exit(1)
	}

	v := validator.New(validator.Config{
		WorkflowRepo: repo.NewWorkflowRepo(pool),
		StepRepo:     repo.NewStepRepo(pool),
		DepRepo:      repo.NewDependencyRepo(pool),
		Logger:       logger,
	})

	// Consumer событий workflow.changed (опционально).
	if url := mq.URLFromEnv(); url != "" {
		conn, err := mq.NewConnection(url, logger)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		if err := mq.SetupTopology(ctx, conn); err != nil {
			logger.Error("failed to setup topology", "error", err)
			os.Exit(1)
		}

		consumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
			Queue:   mq.QueueWorkflowsChanged,
			Handler: v.HandleChanged,
		})
		go func() {
			if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("consumer stopped", "error", err)
			}
		}()
	} else {
		logger.Warn("MQ_URL is not set, running on schedule only")
	}

	// Цикл проходов по cron-расписанию.
	go func() {
		tk := time.NewTicker(time.Second)
		defer tk.Stop()

		var hasLock bool
		defer func() {
			if hasLock {
				_, _ = pool.Exec(context.Background(), "select pg_advisory_unlock($1)", validatorLockKey)
			}
		}()

		next, _ := validator.NextSweep(schedule, time.Now())
		logger.Info("sweep scheduled", "cron", schedule, "next", next)

		for {
			select {
			case now := <-tk.C:
				if now.Before(next) {
					continue
				}

				// Лидером становится экземпляр, удерживающий advisory lock
				if !hasLock {
					var ok bool
					if err := pool.QueryRow(ctx, "select pg_try_advisory_lock($1)", validatorLockKey).Scan(&ok); err != nil {
						logger.Error("advisory lock failed", "error", err)
						continue
					}
					hasLock = ok
				}

				next, _ = validator.NextSweep(schedule, now)

				if !hasLock {
					// Не лидер — пропускаем проход
					continue
				}

				if err := v.Sweep(ctx); err != nil {
					logger.Error("sweep failed", "error", err)
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":8081"
	if p := os.Getenv("VALIDATOR_PORT"); p != "" {
		addr = ":" + p
	}

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
