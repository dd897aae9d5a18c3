package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bvggrabber/bvg-cli/internal/api"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that points at a configuration file.
const EnvPath = "BVG_CONFIG"

// Paths returns the candidate configuration files in lookup order. An explicit path
// wins over the environment, which wins over the default locations.
func Paths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	if env := os.Getenv(EnvPath); env != "" {
		return []string{env}
	}

	paths := []string{"bvg.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bvg", "bvg.yml"))
	}
	return paths
}

// Load reads the first configuration file found. No file at all yields the defaults; an
// explicitly named file must exist.
func Load(explicit string) (Config, error) {
	for _, p := range Paths(explicit) {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) && explicit == "" {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}

		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", p, err)
		}
		cfg.Path = p
		log.Debug().Str("path", p).Int("stations", len(cfg.Stations)).Msg("Loaded config")
		return cfg, nil
	}

	log.Debug().Msg("No config file found, using defaults")
	return Default(), nil
}

// Parse decodes and validates YAML on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing yaml: %w", err)
	}

	for i, v := range cfg.Vehicles {
		cfg.Vehicles[i] = strings.ToUpper(strings.TrimSpace(v))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validating: %w", err)
	}
	// vehicles accept the same names and aliases as --vehicle
	if _, err := api.ParseVehicles(cfg.Vehicles); err != nil {
		return Config{}, fmt.Errorf("validating: %w", err)
	}
	return cfg, nil
}
