package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
seed: 42
dt: 0.5
steps: 20
founders: 100
workers: 4
tie_policy: division_wins
timers:
  - type: lognormal
    action: death
    mu: 1.5
    sigma: 0.5
  - type: lognormal
    action: divide
    mu: 1.2
    sigma: 0.4
  - type: pulse
    kind: mute
    fire_at: 2
  - type: deadline
    action: death
    fire_at: 8
    silenced_by: mute
output:
  sqlite_path: run.db
`

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 0.5, cfg.Dt)
	assert.Equal(t, 20, cfg.Steps)
	assert.Equal(t, 100, cfg.Founders)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, TieDivisionWins, cfg.TiePolicy)
	assert.Equal(t, "run.db", cfg.Output.SQLitePath)

	require.Len(t, cfg.Timers, 4)
	assert.Equal(t, TimerLogNormal, cfg.Timers[0].Type)
	assert.Equal(t, "mute", cfg.Timers[2].Kind)
	assert.Equal(t, "mute", cfg.Timers[3].SilencedBy)
}

func TestParse_MissingFieldsFallBackToDefaults(t *testing.T) {
	cfg, err := Parse([]byte("founders: 7"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 7, cfg.Founders)
	assert.Equal(t, def.Seed, cfg.Seed)
	assert.Equal(t, def.Dt, cfg.Dt)
	assert.Equal(t, def.Steps, cfg.Steps)
	assert.Equal(t, def.Workers, cfg.Workers)
	assert.Equal(t, TieDeathWins, cfg.TiePolicy)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "dt: [oops"},
		{"zero dt", "dt: 0"},
		{"negative steps", "steps: -1"},
		{"negative founders", "founders: -2"},
		{"zero workers", "workers: 0"},
		{"unknown tie policy", "tie_policy: coin_flip"},
		{"unknown timer type", "timers: [{type: quartz}]"},
		{"unknown timer action", "timers: [{type: deadline, action: nap}]"},
		{"custom deadline without kind", "timers: [{type: deadline, action: custom}]"},
		{"lognormal custom action", "timers: [{type: lognormal, action: custom}]"},
		{"negative sigma", "timers: [{type: lognormal, action: death, sigma: -1}]"},
		{"pulse without kind", "timers: [{type: pulse, fire_at: 2}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Founders)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
