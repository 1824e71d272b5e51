package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/config"
	"github.com/execsgroup/zowehlife-sub005/internal/events"
	httpapi "github.com/execsgroup/zowehlife-sub005/internal/http"
	"github.com/execsgroup/zowehlife-sub005/internal/repository"
	"github.com/execsgroup/zowehlife-sub005/internal/service"
	"github.com/execsgroup/zowehlife-sub005/internal/store"
	"github.com/execsgroup/zowehlife-sub005/pkg/database"
	"github.com/execsgroup/zowehlife-sub005/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "zoweh-data")
	if err != nil {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	// Repos: Postgres when available, memory fallback for local dev so
	// the app still serves pages with plain `go run`.
	var db *sql.DB
	var ministriesRepo repository.MinistriesRepo
	var peopleRepo repository.PeopleRepo
	var usersRepo repository.UsersRepo

	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for zoweh-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repos", zap.Error(err))
		}
	}
	if db != nil {
		ministriesRepo = repository.NewPostgresMinistriesRepo(db)
		peopleRepo = repository.NewPostgresPeopleRepo(db)
		usersRepo = repository.NewPostgresUsersRepo(db)
	} else {
		ministriesRepo = repository.NewMemoryMinistriesRepo()
		peopleRepo = repository.NewMemoryPeopleRepo()
		usersRepo = repository.NewMemoryUsersRepo()
	}

	messenger := service.NewMessengerClient(cfg.Messenger.BaseURL, cfg.Messenger.APIKey, cfg.Messenger.Timeout, log)

	// Status-change listeners: dashboard cache invalidation + stream
	// publication for downstream consumers.
	dashboard := service.NewDashboardService(peopleRepo, kv, log)
	fanout := events.NewFanout(log)
	fanout.Register(dashboard)
	fanout.Register(events.NewStreamPublisher(redisClient, log))

	scheduler := service.NewReminderScheduler(redisClient, messenger, cfg.Reminder.LeadTime, log)
	persons := service.NewPersonService(peopleRepo, ministriesRepo, fanout, scheduler, log)
	export := service.NewExportService(peopleRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterHealthRoute()
	router.RegisterMinistryRoutes(httpapi.NewMinistriesHandler(ministriesRepo, log))
	router.RegisterPeopleRoutes(httpapi.NewPersonHandler(peopleRepo, persons, export, log))
	router.RegisterUserRoutes(httpapi.NewUsersHandler(usersRepo, log))
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(dashboard, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	if cfg.Reminder.Enabled {
		worker := service.NewReminderWorker(redisClient, messenger, usersRepo, cfg.Reminder.Interval, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	wg.Wait()
	_ = redisClient.Close()
	if db != nil {
		_ = db.Close()
	}
}
