package board

import (
	"time"

	"github.com/bvggrabber/bvg-cli/internal/config"
	"github.com/bvggrabber/bvg-cli/internal/model"
)

// Policy decides which departures are worth showing given how long it takes to get to
// each station.
type Policy struct {
	MinReach map[string]time.Duration
	MaxWait  time.Duration
}

// NewPolicy takes the reach times and wait limit from the configuration.
func NewPolicy(cfg config.Config) Policy {
	p := Policy{MinReach: make(map[string]time.Duration, len(cfg.Stations)), MaxWait: cfg.MaxWait()}
	for _, s := range cfg.Stations {
		p.MinReach[s.Name] = s.MinReach()
	}
	return p
}

func (p Policy) minReach(station string) int64 {
	return int64(p.MinReach[station] / time.Second)
}

// TooSoon reports whether the departure leaves before the station can be reached.
func (p Policy) TooSoon(d model.Departure, now time.Time) bool {
	return d.RemainingAt(now) < p.minReach(d.Start())
}

// TooLate reports whether waiting for the departure would exceed the wait limit.
func (p Policy) TooLate(d model.Departure, now time.Time) bool {
	return d.RemainingAt(now) > p.minReach(d.Start())+int64(p.MaxWait/time.Second)
}
