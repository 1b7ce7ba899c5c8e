// Package forcing holds the read-only, time-indexed data that drives a BAM
// run: rainfall, evaporation, upland runoff stage, tidal and seasonal mean
// sea level, boundary-condition tables, and gauge salinity. Everything here
// is built once before the simulation loop starts and never mutated again
// (spec §5: "forcing stores are immutable after load and safely read-only
// during simulation"). The sim package applies these values to basin state;
// this package only stores and interpolates them.
package forcing

import "fmt"

// DateKey indexes the daily forcing series (rain, ET, runoff stage, gauge
// salinity), mirroring the Python model's (year, month, day) tuple key.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

// RainStore maps a day to per-station rainfall in cm/day.
type RainStore map[DateKey]map[string]float64

// ETStore maps a day to basin-wide evapotranspiration in mm/day. BAM's
// source network carries a single ET series for the whole domain.
type ETStore map[DateKey]float64

// RunoffStageStore maps a day to per-EDEN-station upland stage in meters,
// used to drive runoff boundary basins directly.
type RunoffStageStore map[DateKey]map[string]float64

// Reading is a gauge sample that may be absent for a given day (spec §6:
// "daily salinity gauges ... may carry NA").
type Reading struct {
	Value float64
	Valid bool
}

// SalinityStore maps a day to per-station gauge salinity in g/kg.
type SalinityStore map[DateKey]map[string]Reading

// Store bundles the shared (non basin-specific) forcing series. Per-basin
// bindings (tide interpolator, fixed/dynamic boundary conditions, runoff
// EDEN station) live on sim.Basin/sim.Context instead, since each binds to
// exactly one basin.
type Store struct {
	Rain        RainStore
	ET          ETStore
	RunoffStage RunoffStageStore
	Salinity    SalinityStore
}

// NewStore returns an empty, ready-to-populate Store.
func NewStore() *Store {
	return &Store{
		Rain:        RainStore{},
		ET:          ETStore{},
		RunoffStage: RunoffStageStore{},
		Salinity:    SalinityStore{},
	}
}
