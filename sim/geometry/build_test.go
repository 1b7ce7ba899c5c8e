package geometry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floridabay/bam/sim"
	"github.com/floridabay/bam/sim/forcing"
)

func baseConfig() sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	cfg.Start = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.End = cfg.Start.Add(time.Hour)
	cfg.DisableTide = true
	return cfg
}

func twoBasinGeometry() ([]BasinSpec, []ShoalSpec) {
	var wetArea [10]float64
	for i := range wetArea {
		wetArea[i] = 1000
	}
	var wetLength [10]float64
	for i := range wetLength {
		wetLength[i] = 100
	}
	basins := []BasinSpec{
		{Number: 1, Name: "A", TotalArea: 10000, WetArea: wetArea, InitialWaterLevel: 1, InitialSalinity: 20},
		{Number: 2, Name: "B", TotalArea: 10000, WetArea: wetArea, InitialWaterLevel: 0.5, InitialSalinity: 20},
	}
	shoals := []ShoalSpec{
		{Number: 1, BasinA: 1, BasinB: 2, Width: 50, ManningCoefficient: 0.03, WetLength: wetLength},
	}
	return basins, shoals
}

func TestBuild_ValidGeometrySucceeds(t *testing.T) {
	// Given a valid two-basin, one-shoal network,
	basins, shoals := twoBasinGeometry()

	// When Build runs,
	ctx, err := Build(baseConfig(), basins, shoals, ForcingSpec{})

	// Then it succeeds and both basins are reachable.
	require.NoError(t, err)
	assert.Len(t, ctx.Basins(), 2)
}

func TestBuild_DuplicateBasinNumberFails(t *testing.T) {
	// Given two basins sharing a number,
	basins, shoals := twoBasinGeometry()
	basins[1].Number = basins[0].Number

	// When Build runs,
	_, err := Build(baseConfig(), basins, shoals, ForcingSpec{})

	// Then it fails fast (spec §7).
	require.Error(t, err)
}

func TestBuild_ShoalWithBothBasinsZeroIsDiscarded(t *testing.T) {
	// Given a shoal referencing basin 0 on both ends (spec §6),
	basins, shoals := twoBasinGeometry()
	shoals = append(shoals, ShoalSpec{Number: 2, BasinA: 0, BasinB: 0, Width: 10})

	// When Build runs,
	ctx, err := Build(baseConfig(), basins, shoals, ForcingSpec{})

	// Then it succeeds and the degenerate shoal was dropped silently.
	require.NoError(t, err)
	assert.Len(t, ctx.Shoals(), 1)
}

func TestBuild_FixedBCReferencingUnknownBasinFails(t *testing.T) {
	// Given a fixed BC table that cites a basin not present in geometry,
	basins, shoals := twoBasinGeometry()
	fs := ForcingSpec{FixedBC: map[int32]forcing.FixedBC{99: {Kind: forcing.BCFlow, Value: 10}}}

	// When Build runs,
	_, err := Build(baseConfig(), basins, shoals, fs)

	// Then it fails fast (spec §7).
	require.Error(t, err)
}

func TestBuild_RunoffStageBasinMustBeBEndpoint(t *testing.T) {
	// Given a runoff-stage basin that is the A endpoint of its shoal
	// instead of B (spec §9 open question (c)),
	var wetArea [10]float64
	for i := range wetArea {
		wetArea[i] = 1000
	}
	var wetLength [10]float64
	for i := range wetLength {
		wetLength[i] = 100
	}
	basins := []BasinSpec{
		{Number: 69, Name: "Runoff In", IsBoundary: true, RunoffStationID: "EDEN1"},
		{Number: 1, Name: "Interior", TotalArea: 10000, WetArea: wetArea, InitialWaterLevel: 1},
	}
	shoals := []ShoalSpec{
		{Number: 1, BasinA: 69, BasinB: 1, Width: 20, ManningCoefficient: 0.03, WetLength: wetLength},
	}

	// When Build runs,
	_, err := Build(baseConfig(), basins, shoals, ForcingSpec{})

	// Then it is rejected.
	require.Error(t, err)
}

func TestBuild_RunoffStageBasinAsBEndpointSucceeds(t *testing.T) {
	// Given the same setup with the runoff basin correctly as the B
	// endpoint,
	var wetArea [10]float64
	for i := range wetArea {
		wetArea[i] = 1000
	}
	var wetLength [10]float64
	for i := range wetLength {
		wetLength[i] = 100
	}
	basins := []BasinSpec{
		{Number: 69, Name: "Runoff In", IsBoundary: true, RunoffStationID: "EDEN1"},
		{Number: 1, Name: "Interior", TotalArea: 10000, WetArea: wetArea, InitialWaterLevel: 1},
	}
	shoals := []ShoalSpec{
		{Number: 1, BasinA: 1, BasinB: 69, Width: 20, ManningCoefficient: 0.03, WetLength: wetLength},
	}

	// When Build runs,
	ctx, err := Build(baseConfig(), basins, shoals, ForcingSpec{})

	// Then it succeeds.
	require.NoError(t, err)
	assert.NotNil(t, ctx)
}

func TestBuild_BoundaryBasinOutsideRangeRejected(t *testing.T) {
	// Given a basin marked boundary outside both hard-coded ranges
	// (spec §6),
	basins := []BasinSpec{
		{Number: 5, Name: "Odd", IsBoundary: true},
	}

	// When Build runs,
	_, err := Build(baseConfig(), basins, nil, ForcingSpec{})

	// Then it is rejected.
	require.Error(t, err)
}
