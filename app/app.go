package app

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"skorpik-value/app/controller"
	"skorpik-value/app/router"
	"skorpik-value/catalog"
	"skorpik-value/config"
	"skorpik-value/db"
	"skorpik-value/models"
	"skorpik-value/repository"
	"skorpik-value/service"
	"skorpik-value/session"
)

// imageFetchTimeout bounds a single export slot image download
const imageFetchTimeout = 10 * time.Second

// App holds the wired components of a running instance
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Catalog  *catalog.Store
	Session  *session.Controller
	Export   *service.ExportService
	Images   *service.ItemImageService
	Download *service.DownloadService // nil when Drive is not configured
	Router   *gin.Engine

	closers []func() error
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	var conn *sql.DB
	if needsDatabase(cfg) {
		var err error
		conn, err = db.Open(ctx, cfg.DB, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		if err := db.EnsureSchema(ctx, conn); err != nil {
			a.Close()
			return nil, err
		}
	}

	var driveService service.DriveServiceInterface
	if cfg.Drive.Enabled() {
		ds, err := service.NewDriveService(ctx, cfg.Drive.Credentials, cfg.Drive.CredentialsJSON, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		driveService = ds
	}

	store, err := a.loadCatalog(ctx, conn, driveService)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Catalog = store

	stateStore, err := a.openStateStore(conn)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Session = session.New(ctx, store,
		session.WithStateStore(stateStore),
		session.WithLogger(logger),
		session.WithStoreTimeout(cfg.State.Timeout),
	)

	cache := service.NewThumbCache(cfg.Export.CacheDir)
	fetcher := service.NewRoutingFetcher(driveService, service.NewHTTPImageFetcher(imageFetchTimeout))
	queue := service.NewImageQueue(fetcher, cache, cfg.Export.ThumbSize, logger)
	a.Images = service.NewItemImageService(fetcher, cache, logger)
	a.Export, err = service.NewExportService(cfg.Export, queue, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	if driveService != nil {
		a.Download = service.NewDownloadService(driveService, cache, cfg.Export.ThumbSize, logger)
	}

	a.Router = router.SetupRoutes(&router.Controllers{
		Health:  &controller.HealthController{},
		Catalog: controller.NewCatalogController(a.Session, a.Images, logger),
		View:    controller.NewViewController(a.Session, logger),
		Trade:   controller.NewTradeController(a.Session, logger),
		Export:  controller.NewExportController(a.Session, a.Export, logger),
	}, cfg.App.Env, logger)

	logger.Info("✅ Initialize: application ready",
		zap.String("catalog", cfg.Catalog.Source),
		zap.Int("items", store.Len()),
		zap.String("state", cfg.State.Store),
		zap.Bool("drive", driveService != nil),
	)
	return a, nil
}

func needsDatabase(cfg config.Config) bool {
	return strings.EqualFold(cfg.Catalog.Source, "postgres") || strings.EqualFold(cfg.State.Store, "postgres")
}

// loadCatalog reads the items, fills missing images from Drive when configured
// and freezes the result into a store.
func (a *App) loadCatalog(ctx context.Context, conn *sql.DB, driveService service.DriveServiceInterface) (*catalog.Store, error) {
	var (
		items []models.Item
		repo  repository.CatalogRepositoryInterface
	)

	switch strings.ToLower(a.Config.Catalog.Source) {
	case "postgres":
		catalogRepo := repository.NewCatalogRepository(conn, a.Logger)
		loaded, err := catalogRepo.LoadItems(ctx)
		if err != nil {
			return nil, err
		}
		items, repo = loaded, catalogRepo
	case "", "file":
		f, err := os.Open(a.Config.Catalog.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open catalog %s", a.Config.Catalog.Path)
		}
		defer f.Close()
		fileStore, err := catalog.LoadJSON(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load catalog %s", a.Config.Catalog.Path)
		}
		items = fileStore.Items()
	default:
		return nil, errors.Errorf("unknown catalog source %q", a.Config.Catalog.Source)
	}

	if driveService != nil {
		synced, _, err := service.NewSyncService(driveService, repo, a.Logger).SyncItemImages(ctx, a.Config.Drive.FolderID, items)
		if err != nil {
			a.Logger.Warn("⚠️  LoadCatalog: image sync failed, keeping catalog images", zap.Error(err))
		} else {
			items = synced
		}
	}

	return catalog.NewStore(items)
}

func (a *App) openStateStore(conn *sql.DB) (repository.StateStoreInterface, error) {
	switch strings.ToLower(a.Config.State.Store) {
	case "", "memory":
		return repository.NewMemoryStateStore(), nil
	case "postgres":
		return repository.NewPostgresStateStore(conn), nil
	case "redis":
		rs := repository.NewRedisStateStore(&redis.Options{
			Addr:     a.Config.Redis.Addr,
			Password: a.Config.Redis.Password,
			DB:       a.Config.Redis.DB,
		}, a.Config.Redis.Prefix)
		a.closers = append(a.closers, rs.Close)
		return rs, nil
	}
	return nil, errors.Errorf("unknown state store %q", a.Config.State.Store)
}

// Close releases database and cache connections in reverse order of opening
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("Close: failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}
