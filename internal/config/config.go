package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath      string
	ServerPort  int
	LogLevel    slog.Level
	CORSOrigins []string

	GameFormat bracket.GameFormat
	Schedule   bracket.ScheduleConfig
}

// Load reads the configuration from the environment, picking up a .env
// file first when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBPath:      stringOr(getenv("DB_PATH"), "courtbracket.db"),
		CORSOrigins: []string{"*"},
		GameFormat:  bracket.DefaultGameFormat(),
		Schedule:    bracket.DefaultScheduleConfig(0),
	}

	var err error
	if cfg.ServerPort, err = intOr(getenv, "SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if level := getenv("LOG_LEVEL"); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	if origins := getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"POINTS_TO_WIN", &cfg.GameFormat.PointsToWin},
		{"WIN_BY", &cfg.GameFormat.WinBy},
		{"GAMES_PER_MATCH", &cfg.GameFormat.GamesPerMatch},
		{"MATCH_DURATION_MIN", &cfg.Schedule.MatchDurationMin},
		{"WARMUP_MIN", &cfg.Schedule.WarmupMin},
		{"MIN_REST_MIN", &cfg.Schedule.MinRestMin},
	}
	for _, v := range ints {
		if *v.dst, err = intOr(getenv, v.key, *v.dst); err != nil {
			return nil, err
		}
	}
	if err := cfg.GameFormat.Validate(); err != nil {
		return nil, err
	}

	cfg.Schedule.DayStart = stringOr(getenv("DAY_START"), cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = stringOr(getenv("DAY_END"), cfg.Schedule.DayEnd)

	// court count comes from each bracket; check the rest with a placeholder
	check := cfg.Schedule
	check.Courts = 1
	if _, _, err := check.Window(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
