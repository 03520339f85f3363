package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/findergoal/internal/common"
	"github.com/Veraticus/findergoal/internal/llm"
	"github.com/Veraticus/findergoal/internal/roster"
)

// Config is the full application configuration.
type Config struct {
	LLM    llm.Config
	Geo    Geo
	API    API
	Store  Store
	Server Server
	Roster roster.Config
}

// Geo configures place and pitch lookups.
type Geo struct {
	NominatimURL string
	OverpassURL  string
	UserAgent    string
	RedisURL     string
	CacheTTL     time.Duration
	Radius       int
}

// API configures the FinderGoal REST API client.
type API struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Store configures local persistence of the client store.
type Store struct {
	Path string
}

// Server configures the HTTP service.
type Server struct {
	AllowedOrigins []string
	Port           int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("roster.target_year", roster.DefaultTargetYear)
	v.SetDefault("roster.year_fix_from", roster.DefaultYearFixFrom)
	v.SetDefault("roster.year_fix_to", roster.DefaultYearFixTo)
	v.SetDefault("geo.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geo.overpass_url", "https://overpass-api.de")
	v.SetDefault("geo.user_agent", "findergoal/1.0 (+https://findergoal.app)")
	v.SetDefault("geo.radius", 3000)
	v.SetDefault("geo.cache_ttl", time.Hour)
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("store.path", "~/.config/findergoal/findergoal.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
}

// BindEnv makes every key overridable with FINDERGOAL_<SECTION>_<KEY>.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("FINDERGOAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads typed configuration from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LLM: llm.Config{
			Provider:    v.GetString("llm.provider"),
			APIKey:      v.GetString("llm.api_key"),
			Model:       v.GetString("llm.model"),
			BaseURL:     v.GetString("llm.base_url"),
			Timeout:     v.GetDuration("llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			RateLimit:   v.GetInt("llm.rate_limit"),
		},
		Roster: roster.Config{
			TargetYear: v.GetInt("roster.target_year"),
			Rules: roster.Rules{
				YearFixFrom: v.GetInt("roster.year_fix_from"),
				YearFixTo:   v.GetInt("roster.year_fix_to"),
			},
		},
		Geo: Geo{
			NominatimURL: v.GetString("geo.nominatim_url"),
			OverpassURL:  v.GetString("geo.overpass_url"),
			UserAgent:    v.GetString("geo.user_agent"),
			RedisURL:     v.GetString("geo.redis_url"),
			CacheTTL:     v.GetDuration("geo.cache_ttl"),
			Radius:       v.GetInt("geo.radius"),
		},
		API: API{
			BaseURL: v.GetString("api.base_url"),
			Token:   v.GetString("api.token"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Store: Store{
			Path: ExpandPath(v.GetString("store.path")),
		},
		Server: Server{
			Port:           v.GetInt("server.port"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerKeyFromEnv(cfg.LLM.Provider)
	}

	if cfg.Roster.Rules.YearFixFrom != 0 && cfg.Roster.Rules.YearFixTo == 0 {
		return Config{}, fmt.Errorf("%w: roster.year_fix_to is required when roster.year_fix_from is set", common.ErrInvalidConfig)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("%w: server.port %d", common.ErrInvalidConfig, cfg.Server.Port)
	}

	return cfg, nil
}

// providerKeyFromEnv falls back to the provider's conventional variable.
func providerKeyFromEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}
