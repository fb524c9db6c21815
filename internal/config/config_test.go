package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "slots"
user = "app"
password = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5, cfg.Server.RequestTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 60, cfg.Engine.MinGapMinutes)
	assert.Equal(t, "08:00", cfg.Engine.DayStart)
	assert.Equal(t, "18:00", cfg.Engine.DayEnd)
	assert.Equal(t, 15, cfg.Engine.StepMinutes)
	assert.Equal(t, slotengine.RuleBoundary, cfg.Engine.Rule)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=slots sslmode=disable", cfg.Database.DSN())
}

func TestLoad_RepositoryExample(t *testing.T) {
	cfg, err := Load("../../config.toml")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.False(t, cfg.MatchingOptimizer.Enabled)

	engine, err := cfg.Engine.NewEngine()
	require.NoError(t, err)
	assert.NotNil(t, engine)
	assert.Equal(t, 60, cfg.Engine.Params().MinGapMinutes)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing database",
			content: `[server]` + "\nhttp_port = 8080\n",
		},
		{
			name: "inverted day window",
			content: `
[database]
host = "db"
dbname = "slots"
[engine]
day_start = "18:00"
day_end = "08:00"
`,
		},
		{
			name: "malformed day start",
			content: `
[database]
host = "db"
dbname = "slots"
[engine]
day_start = "8am"
`,
		},
		{
			name: "unknown rule",
			content: `
[database]
host = "db"
dbname = "slots"
[engine]
rule = "magic"
`,
		},
		{
			name: "optimizer without url",
			content: `
[database]
host = "db"
dbname = "slots"
[matching_optimizer]
enabled = true
url = ""
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
