package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
	"github.com/yanqian/outfit-advisor/internal/infra/analysiscache"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	"github.com/yanqian/outfit-advisor/internal/infra/imagedecode"
	"github.com/yanqian/outfit-advisor/internal/infra/imagestore"
	"github.com/yanqian/outfit-advisor/internal/infra/pagefetch"
	"github.com/yanqian/outfit-advisor/internal/infra/prefstore"
	"github.com/yanqian/outfit-advisor/internal/infra/wardroberepo"
	httpiface "github.com/yanqian/outfit-advisor/internal/interface/http"
)

// photoBackend stores analysed photos and serves them back.
type photoBackend interface {
	analyzer.ImageStorage
	httpiface.PhotoReader
	wardrobe.PhotoStore
}

// preferenceBackend keeps style preferences and question sessions together.
type preferenceBackend interface {
	wardrobe.PreferenceRepository
	outfit.SessionStore
}

func provideAnalyzerConfig(cfg *config.Config) analyzer.Config {
	return analyzer.Config{
		StorePhotos:    cfg.Analyzer.StorePhotos,
		PhotoKeyPrefix: cfg.Storage.ObjectStorage.KeyPrefix,
	}
}

func provideOutfitConfig(cfg *config.Config) outfit.Config {
	return outfit.Config{
		MaxItems:   cfg.Outfit.MaxItems,
		SessionTTL: cfg.Outfit.SessionTTL,
	}
}

func providePageFetcher(cfg *config.Config) analyzer.PageFetcher {
	return pagefetch.NewClient(pagefetch.Options{
		Timeout:      cfg.Analyzer.FetchTimeout,
		MaxRedirects: cfg.Analyzer.MaxRedirects,
		UserAgent:    cfg.Analyzer.UserAgent,
		MaxBytes:     cfg.Analyzer.MaxPageBytes,
	})
}

func provideDocumentReader() analyzer.DocumentReader {
	return pagefetch.NewReader()
}

func provideImageDecoder(cfg *config.Config) analyzer.ImageDecoder {
	return imagedecode.NewDecoder(cfg.Analyzer.MaxImageBytes)
}

func provideAnalysisCache(cfg *config.Config, logger *slog.Logger) (analyzer.Cache, func()) {
	if !cfg.Analyzer.Cache.Enabled {
		logger.Info("product analysis cache disabled")
		return nil, func() {}
	}
	cache, err := analysiscache.New(cfg.Analyzer.Cache.MaxItems, cfg.Analyzer.Cache.TTL, logger)
	if err != nil {
		logger.Error("failed to create analysis cache, continuing without", "error", err)
		return nil, func() {}
	}
	return cache, cache.Close
}

func providePhotoBackend(cfg *config.Config, logger *slog.Logger) photoBackend {
	fallback := imagestore.NewMemoryStorage("/api/photos")
	objCfg := cfg.Storage.ObjectStorage
	if !objCfg.Enabled {
		return fallback
	}
	store, err := imagestore.NewS3Storage(imagestore.S3Options{
		Endpoint:      objCfg.Endpoint,
		AccessKey:     objCfg.AccessKey,
		SecretKey:     objCfg.SecretKey,
		Bucket:        objCfg.Bucket,
		Region:        objCfg.Region,
		UseSSL:        objCfg.UseSSL,
		PublicBaseURL: objCfg.PublicBaseURL,
		PresignTTL:    objCfg.PresignTTL,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize object storage, using memory storage", "error", err)
		return fallback
	}
	logger.Info("object storage enabled", "endpoint", objCfg.Endpoint, "bucket", objCfg.Bucket)
	return store
}

func provideImageStorage(cfg *config.Config, backend photoBackend) analyzer.ImageStorage {
	if !cfg.Analyzer.StorePhotos {
		return nil
	}
	return backend
}

func providePhotoStore(cfg *config.Config, backend photoBackend) wardrobe.PhotoStore {
	if !cfg.Analyzer.StorePhotos {
		return nil
	}
	return backend
}

func providePhotoReader(backend photoBackend) httpiface.PhotoReader {
	return backend
}

func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Storage.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, wardrobe will not use postgres")
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn", "error", err)
		return nil, noop
	}
	if cfg.Storage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.Postgres.MaxConns
	}
	if cfg.Storage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed", "error", err)
		pool.Close()
		return nil, noop
	}
	return pool, pool.Close
}

func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	noop := func() {}
	if !cfg.Storage.Valkey.Enabled {
		return nil, noop
	}
	opt, err := buildValkeyOptions(cfg.Storage.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration", "error", err)
		return nil, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed", "error", err)
		client.Close()
		return nil, noop
	}
	logger.Info("valkey enabled", "addr", cfg.Storage.Valkey.Addr)
	return client, client.Close
}

// provideWardrobeRepository prefers postgres, then valkey, then memory.
func provideWardrobeRepository(cfg *config.Config, pool *pgxpool.Pool, client valkey.Client, logger *slog.Logger) wardrobe.Repository {
	if pool != nil {
		repo := wardroberepo.NewPostgresRepository(pool)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure wardrobe schema, falling back", "error", err)
		} else {
			logger.Info("wardrobe postgres repository enabled")
			return repo
		}
	}
	if client != nil {
		logger.Info("wardrobe valkey repository enabled")
		return wardroberepo.NewValkeyRepository(client, cfg.Storage.KeyPrefix)
	}
	logger.Info("wardrobe memory repository enabled")
	return wardroberepo.NewMemoryRepository()
}

func providePreferenceBackend(cfg *config.Config, client valkey.Client) preferenceBackend {
	if client != nil {
		return prefstore.NewValkeyStore(client, cfg.Storage.KeyPrefix)
	}
	return prefstore.NewMemoryStore()
}

func providePreferenceRepository(backend preferenceBackend) wardrobe.PreferenceRepository {
	return backend
}

func provideSessionStore(backend preferenceBackend) outfit.SessionStore {
	return backend
}

func provideItemAnalyzer(svc analyzer.Service) wardrobe.ItemAnalyzer {
	return svc
}

func provideWardrobeReader(svc wardrobe.Service) outfit.WardrobeReader {
	return svc
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
