package cmd

import (
	"context"
	"net/http"
	"os"

	"github.com/Nackophilz/fankai-jellyfin/config"
	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	mhttp "github.com/Nackophilz/fankai-jellyfin/pkg/http"
	"github.com/Nackophilz/fankai-jellyfin/pkg/library"
	"github.com/Nackophilz/fankai-jellyfin/pkg/manager"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// mustConfig reads and validates the configuration or exits
func mustConfig(log *zap.SugaredLogger) config.Config {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		log.Fatalw("failed to read configurations", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", zap.Error(err))
	}

	return cfg
}

// newCatalog builds the catalog from --catalog-file when set, otherwise the
// retrying and cached api client
func newCatalog(cfg config.Catalog) (catalog.Catalog, error) {
	if catalogFile != "" {
		f, err := os.Open(catalogFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		snapshot, err := catalog.LoadSnapshot(f)
		if err != nil {
			return nil, err
		}
		return snapshot, nil
	}

	retryClient := mhttp.NewRetryClient(
		mhttp.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		mhttp.WithMaxRetries(cfg.MaxRetries),
		mhttp.WithBaseBackoff(cfg.BaseBackoff),
	)

	client, err := catalog.New(cfg.URI, catalog.WithHTTPClient(retryClient), catalog.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}

	if cfg.CacheTTL <= 0 {
		return client, nil
	}

	return catalog.NewCached(client, cfg.CacheTTL), nil
}

// mustManager wires the catalog, the tv library and the binding store into a manager or exits
func mustManager(ctx context.Context, log *zap.SugaredLogger, cfg config.Config) manager.MediaManager {
	c, err := newCatalog(cfg.Catalog)
	if err != nil {
		log.Fatalw("failed to create catalog", zap.Error(err))
	}

	store, err := sqlite.New(ctx, cfg.Storage.FilePath)
	if err != nil {
		log.Fatalw("failed to create storage connection", zap.Error(err))
	}

	if err := store.RunMigrations(ctx); err != nil {
		log.Fatalw("failed to migrate database", zap.Error(err))
	}

	var lib library.Library
	if cfg.Library.TVDir != "" {
		lib = library.New(os.DirFS(cfg.Library.TVDir))
	}

	return manager.New(c, lib, store, cfg.Matching, cfg.Manager)
}
