package config

import (
	"log/slog"
	"testing"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := fromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "courtbracket.db", cfg.DBPath)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, bracket.DefaultGameFormat(), cfg.GameFormat)
	assert.Equal(t, bracket.DefaultScheduleConfig(0), cfg.Schedule)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := fromEnv(envMap(map[string]string{
		"DB_PATH":            "/tmp/cb.db",
		"SERVER_PORT":        "9090",
		"LOG_LEVEL":          "debug",
		"CORS_ORIGINS":       "http://localhost:3000, https://club.example",
		"POINTS_TO_WIN":      "15",
		"GAMES_PER_MATCH":    "1",
		"MATCH_DURATION_MIN": "30",
		"DAY_START":          "07:30",
		"DAY_END":            "22:00",
		"MIN_REST_MIN":       "15",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cb.db", cfg.DBPath)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "https://club.example"}, cfg.CORSOrigins)
	assert.Equal(t, bracket.GameFormat{PointsToWin: 15, WinBy: 2, GamesPerMatch: 1}, cfg.GameFormat)
	assert.Equal(t, 30, cfg.Schedule.MatchDurationMin)
	assert.Equal(t, "07:30", cfg.Schedule.DayStart)
	assert.Equal(t, 15, cfg.Schedule.MinRestMin)
}

func TestFromEnvErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "port not a number", env: map[string]string{"SERVER_PORT": "http"}},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "zero win by", env: map[string]string{"WIN_BY": "0"}},
		{name: "bad day start", env: map[string]string{"DAY_START": "noon"}},
		{name: "day ends before it starts", env: map[string]string{"DAY_START": "18:00", "DAY_END": "09:00"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fromEnv(envMap(tc.env))
			assert.Error(t, err)
		})
	}
}
