package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "user_galleries/internal/app/http"
	"user_galleries/internal/config"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/repository"
	"user_galleries/internal/services/access"
	gallery "user_galleries/internal/services/gallery_service"
	filestorage "user_galleries/internal/storage/filestorage"
	"user_galleries/internal/storage/objectstorage"
	redisapp "user_galleries/internal/storage/redis"
	"user_galleries/internal/storage/resolver"
	httprouters "user_galleries/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	repo       *repository.Repository
	redis      *redisapp.Client
	log        *slog.Logger
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := redisClient.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo, err := repository.NewRepository(ctx, cfg.DSN, redisClient)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	public, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var private resolver.PrivateStorage
	if cfg.ObjectStorage.Endpoint != "" {
		minioStorage, err := objectstorage.New(ctx, objectstorage.Options{
			Endpoint:  cfg.ObjectStorage.Endpoint,
			AccessKey: cfg.ObjectStorage.AccessKey,
			SecretKey: cfg.ObjectStorage.SecretKey,
			Bucket:    cfg.ObjectStorage.Bucket,
			UseSSL:    cfg.ObjectStorage.UseSSL,
			URLExpiry: cfg.ObjectStorage.URLExpiry,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		private = minioStorage
	} else {
		log.Warn("object storage is not configured, private files will not be displayed")
	}

	policy := access.New(repo.Block)

	galleryService := gallery.NewGalleryService(
		log,
		repo.Gallery,
		repo.File,
		repo.User,
		policy,
		resolver.New(public, private),
	)

	routers := httprouters.NewRouter(log, galleryService, policy, cfg.Session.Name)

	server := httpapp.New(log, httpapp.Options{
		Host:          cfg.HTTP.Host,
		Port:          cfg.HTTP.Port,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		AllowOrigins:  cfg.HTTP.AllowOrigins,
		JWTSecret:     cfg.JWT.Secret,
		SessionSecret: cfg.Session.Secret,
		UploadsDir:    public.GetBaseDir(),
	}, routers, repo.User)

	return &App{
		HTTPServer: server,
		repo:       repo,
		redis:      redisClient,
		log:        log,
	}, nil
}

// Stop останавливает сервер и закрывает соединения
func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	a.repo.Close()

	if err := a.redis.Close(); err != nil {
		a.log.Error("failed to close redis", sl.Err(err))
	}
}
