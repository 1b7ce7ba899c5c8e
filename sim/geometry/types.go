// Package geometry turns the in-memory basin/shoal/forcing tables a
// collaborator has already decoded from CSV or shapefile (spec §1: "we
// describe only the in-memory data model the core consumes") into a
// validated sim.Context. All CSV/shapefile decoding itself is explicitly
// out of scope (spec §1 Non-goals).
package geometry

import (
	"github.com/floridabay/bam/sim"
	"github.com/floridabay/bam/sim/forcing"
)

// tidalBoundaryStart/End and runoffBoundaryStart/End are the hard-coded
// boundary-basin number ranges from the source network (spec §6: "Hard-coded
// boundary basin numbers 59-68 (tidal) and 69-82 (upland runoff)").
const (
	tidalBoundaryStart = 59
	tidalBoundaryEnd   = 68
	runoffBoundaryStart = 69
	runoffBoundaryEnd   = 82
)

// BasinSpec is the in-memory description of one basin, as a collaborator
// would hand it to Build after decoding geometry and parameter tables
// (spec §6, "Inputs consumed").
type BasinSpec struct {
	Number int32
	Name   string

	// Interior geometry. Zero for boundary basins.
	TotalArea float64
	LandArea  float64
	WetArea   [10]float64

	IsBoundary        bool
	HasTide           bool
	RunoffStationID   string
	RainStations      []sim.RainStationBinding
	SalinityStationID string
	SalinityFromData  bool

	InitialWaterLevel float64
	InitialSalinity   float64
}

// ShoalSpec is the in-memory description of one shoal (spec §6, "Shoal
// geometry").
type ShoalSpec struct {
	Number             int32
	BasinA             int32
	BasinB             int32
	Width              float64
	ManningCoefficient float64
	WetLength          [10]float64
}

// ForcingSpec is the in-memory description of every forcing series and
// boundary-condition table a run needs (spec §6, "Forcing time series").
type ForcingSpec struct {
	Rain        forcing.RainStore
	ET          forcing.ETStore
	RunoffStage forcing.RunoffStageStore
	Salinity    forcing.SalinityStore

	// TidePoints and SeasonalMSLPoints are raw (unix_seconds, value) pairs;
	// Build fits the interpolators (spec §9: "must be constructible from
	// CSVs before the hot loop").
	TidePoints       map[int32][]forcing.Point
	SeasonalMSLPoints []forcing.Point

	FixedBC       map[int32]forcing.FixedBC
	DynamicFlowBC map[int32]forcing.DynamicSeries
	DynamicHeadBC map[int32]forcing.DynamicSeries
}
