package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"dota-analysis/internal/analysis"
	"dota-analysis/internal/recommend"
)

type Config struct {
	DBPath     string
	ServerPort string
	LogLevel   string
	ConfigPath string

	Players  []PlayerEntry
	Analysis AnalysisDefaults
}

// PlayerEntry is one tracked player from the roster file.
type PlayerEntry struct {
	AccountID string `toml:"account_id"`
	Label     string `toml:"label"`
	Note      string `toml:"note"`
}

// AnalysisDefaults are the engine parameters used when a request does not
// override them.
type AnalysisDefaults struct {
	TopN          int     `toml:"top_n"`
	MinGames      int     `toml:"min_games"`
	GameLimit     int     `toml:"game_limit"`
	Threshold     float64 `toml:"threshold"`
	GoodThreshold float64 `toml:"good_threshold"`
	BadThreshold  float64 `toml:"bad_threshold"`
}

type fileConfig struct {
	Players  []PlayerEntry    `toml:"players"`
	Analysis AnalysisDefaults `toml:"analysis"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:     getEnv("DB_PATH", "dota-analysis.db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		ConfigPath: getEnv("CONFIG_PATH", "config.toml"),
		Analysis: AnalysisDefaults{
			TopN:          analysis.DefaultTopN,
			MinGames:      analysis.DefaultMinGames,
			GameLimit:     recommend.DefaultGameLimit,
			Threshold:     recommend.DefaultThreshold,
			GoodThreshold: recommend.DefaultGoodThreshold,
			BadThreshold:  recommend.DefaultBadThreshold,
		},
	}

	if err := cfg.loadFile(logger); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("players", len(cfg.Players)).
		Msg("configuration loaded")

	return cfg, nil
}

func (cfg *Config) loadFile(logger zerolog.Logger) error {
	data, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", cfg.ConfigPath).Msg("config file not found, using defaults")
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", cfg.ConfigPath, err)
	}

	cfg.Players = fc.Players
	if fc.Analysis.TopN > 0 {
		cfg.Analysis.TopN = fc.Analysis.TopN
	}
	if fc.Analysis.MinGames > 0 {
		cfg.Analysis.MinGames = fc.Analysis.MinGames
	}
	if fc.Analysis.GameLimit > 0 {
		cfg.Analysis.GameLimit = fc.Analysis.GameLimit
	}
	if fc.Analysis.Threshold > 0 {
		cfg.Analysis.Threshold = fc.Analysis.Threshold
	}
	if fc.Analysis.GoodThreshold > 0 {
		cfg.Analysis.GoodThreshold = fc.Analysis.GoodThreshold
	}
	if fc.Analysis.BadThreshold > 0 {
		cfg.Analysis.BadThreshold = fc.Analysis.BadThreshold
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
