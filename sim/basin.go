package sim

import (
	"fmt"
	"sort"
)

// BasinID identifies a basin by its source basin number. Code should pass
// BasinID rather than *Basin across the basin/shoal relationship so neither
// type owns a reference cycle through the other (spec §9, "Cyclic
// references").
type BasinID int32

// ShoalID identifies a shoal by its source shoal number.
type ShoalID int32

// numStrata is the number of depth bins carried per basin/shoal, one per
// integer foot 0-9 (spec §6: "Depth bins are integer feet, 0-9 inclusive").
const numStrata = 10

// RainStationBinding attaches one rain-gauge station to a basin with a
// scale factor, since a basin's rainfall is the scaled sum of one or more
// stations (spec §6: "rain-station list, rain-scale list (parallel)").
type RainStationBinding struct {
	StationID string
	Scale     float64
}

// Basin is a lumped water body with uniform stage and salinity. Interior
// basins carry real geometry; boundary basins carry none and have their
// water_level driven exogenously each step (tide+MSL, fixed/dynamic BC, or
// runoff stage).
type Basin struct {
	ID   BasinID
	Name string

	// Geometry, zero for boundary basins (spec §3: "boundary basins carry
	// no geometry (area = 0)").
	TotalArea float64
	LandArea  float64
	WetArea   [numStrata]float64 // area (m2) wet at or above each depth bin

	// State.
	WaterLevel      float64 // m, anomaly from shoal-0 datum
	WaterVolume     float64 // m3
	PreviousVolume  float64 // m3
	SaltMass        float64 // g
	Salinity        float64 // g/kg
	Area            float64 // m2, current wet surface area

	// Per-step flux accumulators, all m3 for the step just completed.
	ShoalTransport float64
	Rainfall       float64
	Evaporation    float64
	RunoffEVER     float64
	RunoffBC       float64

	// Adjacency: shoals incident on this basin, in load order.
	Shoals []ShoalID

	// Classification.
	IsBoundary        bool
	HasTideFunction   bool // true if this boundary basin is tide-driven
	RunoffStationID   string // non-empty if this boundary basin is runoff-stage driven
	RainStations      []RainStationBinding
	SalinityStationID string
	SalinityFromData  bool // true: salinity is set from gauge data, never simulated
}

// NewBasin constructs an interior basin from its geometry tables. Boundary
// basins are constructed with NewBoundaryBasin instead.
func NewBasin(id BasinID, name string, totalArea, landArea float64, wetArea [numStrata]float64) (*Basin, error) {
	if totalArea <= 0 {
		return nil, &ValidationError{Field: "total_area", Msg: fmt.Sprintf("basin %d (%s) must have total_area > 0", id, name)}
	}
	return &Basin{
		ID:        id,
		Name:      name,
		TotalArea: totalArea,
		LandArea:  landArea,
		WetArea:   wetArea,
	}, nil
}

// NewBoundaryBasin constructs a boundary basin, which carries no geometry.
func NewBoundaryBasin(id BasinID, name string) *Basin {
	return &Basin{
		ID:         id,
		Name:       name,
		IsBoundary: true,
	}
}

// InitState sets the basin's initial water level and salinity, then derives
// its starting area and volume from the area-vs-depth table. This mirrors
// the original model's initialization order: area before volume, since
// volume at t=0 is defined as area integrated up to the starting depth
// rather than a separately supplied quantity.
func (b *Basin) InitState(waterLevel, salinity float64) {
	b.WaterLevel = waterLevel
	b.Salinity = salinity
	b.RecomputeArea()
	b.WaterVolume = b.Area * waterLevel
	if b.WaterVolume < 0 {
		b.WaterVolume = 0
	}
	b.PreviousVolume = b.WaterVolume
	b.SaltMass = salinity * b.WaterVolume * 997
}

// RecomputeArea sums wet_area over every stratum whose top is at or below
// the current water level, per spec §4.3 step 1. Boundary basins (area ==
// 0 by construction) are left untouched.
func (b *Basin) RecomputeArea() {
	if b.IsBoundary {
		return
	}
	var area float64
	for depthFt := 0; depthFt < numStrata; depthFt++ {
		d := float64(depthFt) * 0.3048
		if b.WaterLevel+d >= 0 {
			area += b.WetArea[depthFt]
		}
	}
	b.Area = area
}

// AddShoal records a shoal as incident on this basin.
func (b *Basin) AddShoal(id ShoalID) {
	b.Shoals = append(b.Shoals, id)
}

// String renders a one-line debug summary of the basin's current state,
// in the spirit of the original model's basin Print() routine.
func (b *Basin) String() string {
	kind := "interior"
	if b.IsBoundary {
		kind = "boundary"
	}
	return fmt.Sprintf("Basin %d %q (%s): level=%.3fm volume=%.1fm3 salinity=%.2fg/kg shoals=%d",
		b.ID, b.Name, kind, b.WaterLevel, b.WaterVolume, b.Salinity, len(b.Shoals))
}

// sortedBasinIDs is a small helper used by Context.Basins to iterate basins
// in a deterministic order.
func sortedBasinIDs(basins map[BasinID]*Basin) []BasinID {
	ids := make([]BasinID, 0, len(basins))
	for id := range basins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
