package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-backend/internal/infrastructure/photos"
	"github.com/DRSN-tech/catalog-backend/internal/repository/fs"
	s3Repo "github.com/DRSN-tech/catalog-backend/internal/repository/minio"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/catalog-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/clients"
	"github.com/DRSN-tech/catalog-backend/pkg/closer"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/DRSN-tech/catalog-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

func Run() {
	logger := logger.NewZapLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}

	graceful := closer.New()
	graceful.Add(func(_ context.Context) error {
		db.Close()
		return nil
	})

	catConv := pgdbConv.NewCategoryConverter()
	prConv := pgdbConv.NewProductConverter()
	infoConv := redisConv.NewProductInfoConverter()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	graceful.Add(func(_ context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, logger)

	photoRepo, err := initPhotoRepo(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize photo storage")
		os.Exit(1)
	}

	// Контекст живёт до конца graceful shutdown: фоновые задачи очистки
	// фото должны успеть завершиться до выхода из процесса.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	photoStore := photos.NewPhotoStore(photoRepo, cfg.Photos, logger, appCtx)
	graceful.Add(func(ctx context.Context) error {
		return photoStore.WaitForCleanup(ctx)
	})

	productUC := usecase.NewProductUC(
		productRepo,
		categoryRepo,
		db.Pool,
		photoStore,
		cacheRepo,
		logger,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(productUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	graceful.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := graceful.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		logger.Infof("Application shutdown complete")
	}

	if appErr != nil {
		os.Exit(1)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// initPhotoRepo выбирает бэкенд хранения фото по конфигурации:
// локальная директория по умолчанию, MinIO при PHOTO_STORAGE=minio.
func initPhotoRepo(logger logger.Logger, cfg *config.Config) (usecase.PhotoRepository, error) {
	if cfg.Photos.Storage == config.PhotoStorageMinio {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer minioCancel()
		if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		logger.Infof("photo storage: minio bucket %s", cfg.Minio.BucketName)
		return s3Repo.NewPhotoRepo(minioClient, cfg.Minio), nil
	}

	logger.Infof("photo storage: local dir %s", cfg.Photos.UploadDir)
	return fs.NewPhotoRepo(cfg.Photos.UploadDir), nil
}
