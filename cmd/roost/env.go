package main

import (
	"fmt"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/config"
	"github.com/pders01/roost/internal/debuglog"
	"github.com/pders01/roost/internal/favourites"
	"github.com/pders01/roost/internal/search"
	"github.com/pders01/roost/internal/storage"
	"github.com/pders01/roost/internal/validation"
)

// env is everything a command needs: config, catalog and the favourites
// store backed by the bbolt database.
type env struct {
	cfg        *config.Config
	catalog    *catalog.Catalog
	store      *storage.Store
	favourites *favourites.Store
	restored   favourites.RestoreOutcome
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}
	if opts.catalogPath != "" {
		cfg.Catalog.Path = opts.catalogPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path, err := validation.NewPermissivePathHandler().GetCatalogPath(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func openEnv(opts *rootOptions) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if err := debuglog.SetupWithOptions(level, debuglog.Options{JSON: cfg.Log.JSON}, cfg.Log.File); err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		_ = debuglog.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	dbPath, err := validation.NewSecurePathHandler().GetSecureDBPath(cfg.Database.Path)
	if err != nil {
		_ = debuglog.Close()
		return nil, fmt.Errorf("database path: %w", err)
	}
	store, err := storage.Open(dbPath, cfg.Database.Timeout)
	if err != nil {
		_ = debuglog.Close()
		return nil, err
	}

	favs, outcome := favourites.Open(store.Record(favourites.RecordName))
	debuglog.WithFields(map[string]interface{}{
		"catalog":    cat.Len(),
		"favourites": favs.Len(),
		"restore":    outcome.String(),
		"db":         dbPath,
	}).Infof("environment ready")

	return &env{cfg: cfg, catalog: cat, store: store, favourites: favs, restored: outcome}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		debuglog.Warnf("closing database: %v", err)
	}
	_ = debuglog.Close()
}

func (e *env) formDefaults() search.FormDefaults {
	return search.FormDefaults{
		PriceMin:    e.cfg.Search.PriceMin,
		PriceMax:    e.cfg.Search.PriceMax,
		BedroomsMin: e.cfg.Search.BedroomsMin,
		BedroomsMax: e.cfg.Search.BedroomsMax,
	}
}

func (e *env) resolve(id string) (catalog.Listing, bool) {
	return e.catalog.Get(id)
}
