package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
stations:
  - name: S+U Zoologischer Garten
    min_reach_seconds: 300
  - name: Hardenbergplatz
    min_reach_seconds: 120
max_wait_seconds: 1800
vehicles: [s, u, BUS]
limit: 12
compact: true
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "bvg.yml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, cfg.Stations, 2)
	assert.Equal(t, "S+U Zoologischer Garten", cfg.Stations[0].Name)
	assert.Equal(t, 5*time.Minute, cfg.Stations[0].MinReach())
	assert.Equal(t, 30*time.Minute, cfg.MaxWait())
	assert.Equal(t, []string{"S", "U", "BUS"}, cfg.Vehicles)
	assert.Equal(t, 12, cfg.Limit)
	assert.True(t, cfg.Compact)
	assert.Equal(t, []string{"S+U Zoologischer Garten", "Hardenbergplatz"}, cfg.StationNames())

	// untouched values keep their defaults
	assert.Equal(t, time.Minute, cfg.UpdateInterval())
	assert.Equal(t, 5*time.Second, cfg.RedrawInterval())
	assert.Equal(t, 15*time.Second, cfg.Timeout())
}

func TestParse_VehicleAliases(t *testing.T) {
	cfg, err := Parse([]byte("vehicles: [sbahn, ICE, ship, u-bahn]"))
	require.NoError(t, err)
	assert.Equal(t, []string{"SBAHN", "ICE", "SHIP", "U-BAHN"}, cfg.Vehicles)

	_, err = Parse([]byte("vehicles: [sbahn, ZEPPELIN]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown vehicle "ZEPPELIN"`)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "stations: [name"},
		{"unknown vehicle", "vehicles: [ZEPPELIN]"},
		{"empty vehicle", `vehicles: [""]`},
		{"missing station name", "stations:\n  - min_reach_seconds: 10"},
		{"negative reach", "stations:\n  - name: Zoo\n    min_reach_seconds: -1"},
		{"zero limit", "limit: 0"},
		{"bad url", "actual_url: not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Explicit(t *testing.T) {
	p := writeConfig(t, t.TempDir(), sample)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, cfg.Path)
	assert.Len(t, cfg.Stations, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err, "an explicitly named file must exist")
}

func TestLoad_Env(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "limit: 3")
	t.Setenv(EnvPath, p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Limit)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "max_wait_seconds: 60")
	t.Chdir(dir)
	t.Setenv(EnvPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.MaxWait())
	assert.Equal(t, "bvg.yml", cfg.Path)
}
