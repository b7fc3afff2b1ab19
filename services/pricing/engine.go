package pricing

import (
	"math"
	"time"
)

// Config carries the season and weekend pricing policy. The defaults encode
// the existing rate card; deployments that override them must keep pricing
// parity with previously quoted stays in mind.
type Config struct {
	HighSeasonMultiplier     float64 // June through August
	ShoulderSeasonMultiplier float64 // April, May, September, October
	WeekendMultiplier        float64 // Friday and Saturday nights
	HighSeasonMinStay        int
	WeekendMinStay           int
	DefaultMinStay           int
}

// DefaultConfig returns the standard rate policy.
func DefaultConfig() Config {
	return Config{
		HighSeasonMultiplier:     1.30,
		ShoulderSeasonMultiplier: 1.15,
		WeekendMultiplier:        1.10,
		HighSeasonMinStay:        5,
		WeekendMinStay:           2,
		DefaultMinStay:           1,
	}
}

// Engine computes nightly prices and minimum-stay requirements from the
// calendar date alone; it holds no external state.
type Engine struct {
	cfg Config
}

// NewEngine constructs an Engine. A zero Config falls back to the defaults.
func NewEngine(cfg Config) *Engine {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Price returns the nightly rate for the given date, rounded to the nearest
// whole currency unit.
func (e *Engine) Price(date time.Time, basePrice float64) float64 {
	price := basePrice * e.seasonMultiplier(date.Month())
	if isWeekend(date) {
		price *= e.cfg.WeekendMultiplier
	}
	return math.Round(price)
}

// MinimumStay returns the minimum number of nights a stay starting on the
// given date must cover. The high-season rule takes priority over the
// weekend rule.
func (e *Engine) MinimumStay(date time.Time) int {
	if isHighSeason(date.Month()) {
		return e.cfg.HighSeasonMinStay
	}
	if isWeekend(date) {
		return e.cfg.WeekendMinStay
	}
	return e.cfg.DefaultMinStay
}

func (e *Engine) seasonMultiplier(m time.Month) float64 {
	switch {
	case isHighSeason(m):
		return e.cfg.HighSeasonMultiplier
	case m == time.April || m == time.May || m == time.September || m == time.October:
		return e.cfg.ShoulderSeasonMultiplier
	default:
		return 1.0
	}
}

func isHighSeason(m time.Month) bool {
	return m >= time.June && m <= time.August
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Friday || wd == time.Saturday
}
