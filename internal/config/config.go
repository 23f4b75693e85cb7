package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"riotcli/internal/domain"
)

var validate = validator.New()

type Config struct {
	RiotAPIKey       string        `env:"RIOT_API_KEY"`
	RiotHostTemplate string        `env:"RIOT_HOST_TEMPLATE" envDefault:"https://%s.api.riotgames.com" validate:"required,contains=%s"`
	DDragonBaseURL   string        `env:"DDRAGON_BASE_URL" envDefault:"https://ddragon.leagueoflegends.com" validate:"required,url"`
	ChampionLocale   string        `env:"CHAMPION_LOCALE" envDefault:"ja_JP" validate:"required"`
	IndexLocale      string        `env:"INDEX_LOCALE" envDefault:"en_US" validate:"required"`
	MasteryCount     int           `env:"MASTERY_COUNT" envDefault:"3" validate:"min=0"`
	MatchCount       int           `env:"MATCH_COUNT" envDefault:"10" validate:"min=0,max=100"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"warn"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("ddragon", cfg.DDragonBaseURL).
		Str("champion_locale", cfg.ChampionLocale).
		Str("index_locale", cfg.IndexLocale).
		Int("mastery_count", cfg.MasteryCount).
		Int("match_count", cfg.MatchCount).
		Dur("request_timeout", cfg.RequestTimeout).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

// Validate reports a missing token as ErrConfigurationMissing.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RiotAPIKey) == "" {
		return errors.Mark(errors.New("RIOT_API_KEY is required"), domain.ErrConfigurationMissing)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

var Module = fx.Provide(Load)
