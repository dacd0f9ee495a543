package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeRez0/shoptrack/internal/adapter/auth"
	"github.com/MikeRez0/shoptrack/internal/adapter/config"
	"github.com/MikeRez0/shoptrack/internal/adapter/handler/http"
	"github.com/MikeRez0/shoptrack/internal/adapter/imagestore"
	"github.com/MikeRez0/shoptrack/internal/adapter/logger"
	"github.com/MikeRez0/shoptrack/internal/adapter/notify"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage/memory"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage/repository"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/MikeRez0/shoptrack/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newRepository(ctx, conf.Database, log)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	defer closeRepo()

	tokenService, err := auth.New(conf.Auth)
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	notifier, err := newNotifier(ctx, conf.Mail, log.Named("Notify"))
	if err != nil {
		log.Error("notifier creating error", zap.Error(err))
		return
	}

	var images port.ImageStore
	if conf.Storage.Bucket != "" {
		images, err = imagestore.NewS3Store(ctx, conf.Storage, log.Named("Images"))
		if err != nil {
			log.Error("image store creating error", zap.Error(err))
			return
		}
	} else {
		log.Info("S3_BUCKET is not set, evidence images are disabled")
	}

	svc, err := service.NewService(repo, tokenService, notifier, images, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	handlers, err := newHandlers(svc, log)
	if err != nil {
		log.Error("handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(tokenService, handlers)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		closeRepo()
		os.Exit(0)
	}()

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}

// newRepository picks Postgres when a DSN is configured and the in-memory store otherwise.
func newRepository(ctx context.Context, conf *config.Database, log *zap.Logger) (port.Repository, func(), error) {
	if conf.DSN == "" {
		log.Info("DATABASE_URI is not set, using in-memory storage")
		return memory.NewRepository(), func() {}, nil
	}

	db, err := storage.NewDBStorage(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database migration error: %w", err)
	}
	repo, err := repository.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db.Close, nil
}

func newNotifier(ctx context.Context, conf *config.Mail, log *zap.Logger) (port.Notifier, error) {
	var next port.Notifier
	if conf.Host == "" {
		log.Info("SMTP_HOST is not set, emails go to the log")
		next = notify.NewLogNotifier(conf.SiteURL, log)
	} else {
		smtp, err := notify.NewSMTPNotifier(conf, log)
		if err != nil {
			return nil, err
		}
		next = smtp
	}

	queue := notify.NewQueue(next, 64, log)
	queue.Start(ctx, conf.Workers)
	return queue, nil
}

func newHandlers(svc port.Service, log *zap.Logger) (http.Handlers, error) {
	var h http.Handlers
	var err error

	if h.User, err = http.NewUserHandler(svc, log.Named("User handler")); err != nil {
		return h, err
	}
	if h.Catalog, err = http.NewCatalogHandler(svc, log.Named("Catalog handler")); err != nil {
		return h, err
	}
	if h.Order, err = http.NewOrderHandler(svc, log.Named("Order handler")); err != nil {
		return h, err
	}
	if h.Product, err = http.NewProductHandler(svc, log.Named("Product handler")); err != nil {
		return h, err
	}
	if h.Lifecycle, err = http.NewLifecycleHandler(svc, log.Named("Lifecycle handler")); err != nil {
		return h, err
	}
	if h.Image, err = http.NewImageHandler(svc, log.Named("Image handler")); err != nil {
		return h, err
	}
	return h, nil
}
