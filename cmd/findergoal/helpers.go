package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/findergoal/internal/api"
	"github.com/Veraticus/findergoal/internal/common"
	"github.com/Veraticus/findergoal/internal/config"
	"github.com/Veraticus/findergoal/internal/geo"
	"github.com/Veraticus/findergoal/internal/llm"
	"github.com/Veraticus/findergoal/internal/roster"
	"github.com/Veraticus/findergoal/internal/store"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, common.NewUserError("invalid configuration", err)
	}
	return cfg, nil
}

// newPipeline wires the configured LLM provider into the roster pipeline.
func newPipeline(cfg config.Config) (*roster.Pipeline, error) {
	if cfg.LLM.APIKey == "" {
		return nil, common.NewUserError(
			"no LLM API key: set llm.api_key or GEMINI_API_KEY",
			fmt.Errorf("%w: llm.api_key", common.ErrMissingConfig))
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor := roster.NewExtractor(client, cfg.Roster, slog.Default())
	return roster.NewPipeline(extractor), nil
}

// newGeoService uses Redis for the search cache when geo.redis_url is set.
// The returned function releases the cache.
func newGeoService(ctx context.Context, cfg config.Config) (*geo.Service, func(), error) {
	var (
		cache   geo.Cache = geo.NewMemoryCache(cfg.Geo.CacheTTL)
		release           = func() {}
	)

	if cfg.Geo.RedisURL != "" {
		redisCache, err := geo.NewRedisCache(ctx, cfg.Geo.RedisURL, cfg.Geo.CacheTTL)
		if err != nil {
			return nil, nil, err
		}
		cache = redisCache
		release = func() {
			if err := redisCache.Close(); err != nil {
				slog.Warn("Failed to close redis cache", "error", err)
			}
		}
	}

	svc := geo.NewService(geo.Options{
		NominatimURL: cfg.Geo.NominatimURL,
		OverpassURL:  cfg.Geo.OverpassURL,
		UserAgent:    cfg.Geo.UserAgent,
		Radius:       cfg.Geo.Radius,
		Cache:        cache,
		Logger:       slog.Default(),
	})
	return svc, release, nil
}

// localState is the client store loaded from disk.
type localState struct {
	state *store.State
	db    *store.SQLiteStore
}

func openState(ctx context.Context, cfg config.Config) (*localState, error) {
	db, err := store.OpenSQLite(ctx, cfg.Store.Path, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	state := store.New()
	if err := state.Load(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &localState{state: state, db: db}, nil
}

func (l *localState) save(ctx context.Context) error {
	return l.state.Save(ctx, l.db)
}

func (l *localState) Close() {
	if err := l.db.Close(); err != nil {
		slog.Warn("Failed to close store", "error", err)
	}
}

// newAPIClient prefers the stored session token over api.token.
func newAPIClient(cfg config.Config, state *store.State) (*api.Client, error) {
	token := cfg.API.Token
	if state != nil {
		if session, ok := state.Session(); ok {
			token = session.Token
		}
	}

	client, err := api.NewClient(cfg.API.BaseURL, token, cfg.API.Timeout)
	if err != nil {
		return nil, common.NewUserError("set api.base_url to reach the FinderGoal API", err)
	}
	return client, nil
}
