package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "fourcut/internal/app/http"
	"fourcut/internal/config"
	"fourcut/internal/repository"
	alarmservice "fourcut/internal/services/alarm_service"
	artworkservice "fourcut/internal/services/artwork_service"
	"fourcut/internal/services/auth"
	commentservice "fourcut/internal/services/comment_service"
	galleryservice "fourcut/internal/services/gallery_service"
	likeservice "fourcut/internal/services/like_service"
	filestorage "fourcut/internal/storage/filestorage"
	"fourcut/internal/storage/postgresql"
	redisapp "fourcut/internal/storage/redis"
	httprouters "fourcut/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	ctx := context.Background()

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		panic(err)
	}

	if cfg.Storage.AutoMigrate {
		if err := storage.Migrate(ctx); err != nil {
			panic(err)
		}
		log.Info("migrations applied")
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// кэш и лимитер деградируют мягко, поэтому без redis сервис все равно стартует
		log.Warn("redis is unavailable", slog.Any("err", err))
	}

	files, err := newFileStorage(cfg.FileStorage)
	if err != nil {
		panic(err)
	}

	repo := repository.New(storage.Pool())
	alarmCache := repository.NewRedisAlarmCacheRepo(redisClient, cfg.Redis.UnreadTTL)

	authService := auth.New(log, repo.Member, cfg.MemberCache)
	alarmService := alarmservice.NewAlarmService(log, repo.Alarm, alarmCache)
	galleryService := galleryservice.NewGalleryService(log, repo.Tx, repo.Gallery)
	artworkService := artworkservice.NewArtworkService(log, repo.Tx, repo.Gallery, repo.Artwork, repo.Like, files, alarmService)
	likeService := likeservice.NewLikeService(log, repo.Tx, repo.Gallery, repo.Artwork, repo.Like, alarmService)
	commentService := commentservice.NewCommentService(log, repo.Tx, repo.Gallery, repo.Artwork, repo.Comment, alarmService)

	routers := httprouters.NewRouter(
		log,
		files.BaseURL(),
		galleryService,
		artworkService,
		likeService,
		commentService,
		alarmService,
	)

	opts := httpapp.Options{
		Host:        cfg.HTTP.Host,
		Port:        cfg.HTTP.Port,
		ReadTimeout: cfg.HTTP.Timeout,
		IdleTimeout: cfg.HTTP.IdleTimeout,
		JWTSecret:   cfg.JWT.Secret,
		RateLimit: httpapp.RateLimitOptions{
			Enabled: cfg.RateLimit.Enabled,
			Limit:   cfg.RateLimit.Limit,
			Window:  cfg.RateLimit.Window,
		},
	}
	if cfg.FileStorage.Driver == config.DriverLocal {
		opts.UploadsDir = cfg.FileStorage.BaseDir
		opts.UploadsRoute = cfg.FileStorage.UploadsRoute
	}

	server := httpapp.New(log, opts, routers, authService, redisClient)

	return &App{
		log:        log,
		HTTPServer: server,
		storage:    storage,
		redis:      redisClient,
	}
}

// Stop останавливает http-сервер и закрывает соединения с хранилищами.
func (a *App) Stop() {
	const op = "app.Stop"

	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", slog.String("op", op), slog.Any("err", err))
	}

	if err := a.redis.Close(); err != nil {
		a.log.Error("failed to close redis", slog.String("op", op), slog.Any("err", err))
	}

	a.storage.Stop()
}

func newFileStorage(cfg config.FileStorageConfig) (filestorage.FileStorage, error) {
	switch cfg.Driver {
	case config.DriverLocal:
		local, err := filestorage.NewLocalFileStorage(cfg.BaseDir, cfg.BaseURL, cfg.MaxSize)
		if err != nil {
			return nil, err
		}
		return local, nil
	case config.DriverMinio:
		remote, err := filestorage.NewMinioFileStorage(filestorage.MinioOptions{
			Endpoint:  cfg.Minio.Endpoint,
			PublicURL: cfg.Minio.PublicURL,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			MaxSize:   cfg.MaxSize,
		})
		if err != nil {
			return nil, err
		}
		return remote, nil
	default:
		return nil, fmt.Errorf("unknown file storage driver %q", cfg.Driver)
	}
}
