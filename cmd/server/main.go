package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/recipe-blog-api/internal/config"
	"github.com/iliyamo/recipe-blog-api/internal/database"
	"github.com/iliyamo/recipe-blog-api/internal/logger"
	"github.com/iliyamo/recipe-blog-api/internal/queue"
	"github.com/iliyamo/recipe-blog-api/internal/repository"
	"github.com/iliyamo/recipe-blog-api/internal/repository/memstore"
	"github.com/iliyamo/recipe-blog-api/internal/router"
	"github.com/iliyamo/recipe-blog-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStore := openStores(ctx, cfg, log)
	defer closeStore()

	rdb := config.NewRedisClient(cfg.Redis) // nil when Redis is down
	if rdb == nil {
		log.WithField("addr", cfg.Redis.Addr).Warn("redis unavailable; rate limiting and caching disabled")
	} else {
		defer rdb.Close()
	}

	linker := &service.RecipeLinker{Users: stores.Users, Log: log}
	if cfg.RabbitURL != "" {
		linker.Publisher = &service.AMQPPublisher{URL: cfg.RabbitURL, Log: log}
		go func() {
			if err := queue.StartRecipeLinkConsumer(ctx, cfg.RabbitURL, linker.Apply, log); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("recipe link consumer stopped")
			}
		}()
	}

	if cfg.ReconcileInterval > 0 {
		rec := &service.Reconciler{Users: stores.Users, Recipes: stores.Recipes, Interval: cfg.ReconcileInterval, Log: log}
		go rec.Run(ctx)
	}

	e := router.New(router.Deps{Cfg: cfg, Stores: stores, Links: linker, Redis: rdb, Log: log})

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "storage": cfg.StorageDriver}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}

// openStores picks the storage backend named by STORAGE_DRIVER.  The
// returned func releases it.
func openStores(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.Stores, func()) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory storage; data is lost on exit")
		return memstore.New(), func() {}
	}

	m := database.New(cfg.MongoURI, cfg.MongoDB)
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := m.Connect(connectCtx); err != nil {
		log.WithError(err).Fatal("connect mongodb")
	}
	db, err := m.DB()
	if err != nil {
		log.WithError(err).Fatal("mongodb handle")
	}
	if err := repository.EnsureIndexes(connectCtx, db); err != nil {
		log.WithError(err).Fatal("ensure indexes")
	}
	log.WithField("db", cfg.MongoDB).Info("mongodb connected")

	return repository.NewMongoStores(db), func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Close(closeCtx); err != nil {
			log.WithError(err).Warn("close mongodb")
		}
	}
}
