package config

import "time"

// Station is a stop shown on the board and the time it takes to walk there.
type Station struct {
	Name            string `yaml:"name" validate:"required"`
	MinReachSeconds int    `yaml:"min_reach_seconds" validate:"gte=0"`
}

// MinReach is the time needed to reach the station.
func (s Station) MinReach() time.Duration {
	return time.Duration(s.MinReachSeconds) * time.Second
}

// Config is the root configuration structure
type Config struct {
	Stations              []Station `yaml:"stations" validate:"dive"`
	MaxWaitSeconds        int       `yaml:"max_wait_seconds" validate:"gte=0"`
	Vehicles              []string  `yaml:"vehicles" validate:"dive,required"`
	Limit                 int       `yaml:"limit" validate:"gt=0,lte=100"`
	UpdateIntervalSeconds int       `yaml:"update_interval_seconds" validate:"gt=0"`
	RedrawIntervalSeconds int       `yaml:"redraw_interval_seconds" validate:"gt=0"`
	TimeoutSeconds        int       `yaml:"timeout_seconds" validate:"gt=0"`
	ActualURL             string    `yaml:"actual_url" validate:"omitempty,url"`
	ScheduledURL          string    `yaml:"scheduled_url" validate:"omitempty,url"`
	Compact               bool      `yaml:"compact"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		MaxWaitSeconds:        3600,
		Vehicles:              []string{"BUS"},
		Limit:                 9,
		UpdateIntervalSeconds: 60,
		RedrawIntervalSeconds: 5,
		TimeoutSeconds:        15,
	}
}

func (c Config) MaxWait() time.Duration {
	return time.Duration(c.MaxWaitSeconds) * time.Second
}

func (c Config) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateIntervalSeconds) * time.Second
}

func (c Config) RedrawInterval() time.Duration {
	return time.Duration(c.RedrawIntervalSeconds) * time.Second
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StationNames lists the configured station names in order.
func (c Config) StationNames() []string {
	names := make([]string, 0, len(c.Stations))
	for _, s := range c.Stations {
		names = append(names, s.Name)
	}
	return names
}
