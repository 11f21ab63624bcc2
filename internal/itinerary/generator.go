// Package itinerary builds day-by-day activity plans from an ordered list of
// interests and a fixed activity catalogue.
//
// The generator is small and dependency-free:
//
//   - Morning slots come from the pool of the first interest.
//   - Afternoon slots come from the pool of the second interest, or the
//     first when only one interest is given.
//   - Evening slots are a fixed string.
//   - Interests without a catalogue entry fall back to a generic activity.
//
// Randomness is injected through WithRand so tests can make it repeatable;
// the default source is seeded from the clock.
package itinerary

import (
	"math/rand"
	"sync"
	"time"
)

// Day is one generated itinerary day.
type Day struct {
	Day       int    `json:"day"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Defaults for slots that the catalogue cannot fill.
const (
	DefaultActivity = "Explore local attractions"
	DefaultEvening  = "Relax and enjoy local cuisine"
	MaxDays         = 60
)

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	catalog  Catalog
	fallback string
	evening  string
	rnd      *rand.Rand
}

func defaultConfig() config {
	return config{
		catalog:  DefaultCatalog,
		fallback: DefaultActivity,
		evening:  DefaultEvening,
	}
}

// WithCatalog replaces the built-in activity catalogue.
func WithCatalog(c Catalog) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.catalog = c
		}
	}
}

// WithRand sets the random source used to pick activities.
func WithRand(r *rand.Rand) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.rnd = r
		}
	}
}

// WithEvening overrides the fixed evening activity.
func WithEvening(s string) Option {
	return func(cfg *config) {
		if s != "" {
			cfg.evening = s
		}
	}
}

// WithFallback overrides the activity used when an interest has no pool.
func WithFallback(s string) Option {
	return func(cfg *config) {
		if s != "" {
			cfg.fallback = s
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

// Generator produces itineraries. It is safe for concurrent use.
type Generator struct {
	cfg config
	mu  sync.Mutex // guards cfg.rnd; *rand.Rand is not goroutine-safe
}

// New returns a Generator configured by opts.
func New(opts ...Option) *Generator {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.rnd == nil {
		cfg.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg}
}

// Generate returns one Day per day for the ordered interests. days <= 0
// yields an empty itinerary; days above MaxDays is clamped.
func (g *Generator) Generate(days int, interests []string) []Day {
	if days <= 0 {
		return []Day{}
	}
	if days > MaxDays {
		days = MaxDays
	}

	var first, second string
	if len(interests) > 0 {
		first = interests[0]
		second = first
	}
	if len(interests) > 1 {
		second = interests[1]
	}
	morningPool := g.cfg.catalog.Pool(first)
	afternoonPool := g.cfg.catalog.Pool(second)

	out := make([]Day, days)
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range out {
		out[i] = Day{
			Day:       i + 1,
			Morning:   g.pick(morningPool),
			Afternoon: g.pick(afternoonPool),
			Evening:   g.cfg.evening,
		}
	}
	return out
}

func (g *Generator) pick(pool []string) string {
	if len(pool) == 0 {
		return g.cfg.fallback
	}
	return pool[g.cfg.rnd.Intn(len(pool))]
}
