package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floridabay/bam/sim/forcing"
)

// blueBankScenario builds a toy stand-in for the mass-balance check
// documented in original_source/Notes.py: a single interior basin "Blue
// Bank" against a boundary "Ocean", all forcing off except a fixed inflow
// into Blue Bank, every shoal Manning coefficient at 0.1, starting
// 2010-01-01 08:00 and run for 8 hours. The real check runs this scenario
// over the full ~54-basin/~410-shoal network with the production basin/
// shoal geometry tables, neither of which is available in this exercise
// (spec §1 excludes CSV/shapefile geometry ingestion). That geometry is
// what the documented equilibrium constants (stage 0.01 m, salinity
// 17.76/17.77 g/kg, volume 0.0425 km3, flux 1004.91/1000.0 m3/s) depend on,
// so this scenario can't reproduce them bit-exact; it reuses the
// documented inflow (1000 m3/s), Manning coefficient (0.1), and run window
// to exercise the same solver code path and check the property the
// constants illustrate: the once-per-step friction lag (spec §4.1 step 3)
// makes the shoal's equilibrium flux overshoot the imposed inflow at a
// coarse timestep and converge toward it as the timestep shrinks.
func blueBankScenario(t *testing.T, timestep time.Duration, duration time.Duration) (*Basin, *Shoal) {
	t.Helper()
	cfg := DefaultRunConfig()
	cfg.Start = time.Date(2010, 1, 1, 8, 0, 0, 0, time.UTC)
	cfg.End = cfg.Start.Add(duration)
	cfg.Timestep = timestep
	cfg.EnableFixedBC = true
	cfg.DisableRain = true
	cfg.DisableET = true
	cfg.DisableTide = true
	cfg.DisableMSL = true
	cfg.DisableRunoff = true
	cfg.DisableDynamicBC = true

	clock, err := NewClock(cfg.Start, cfg.End, cfg.Timestep)
	require.NoError(t, err)
	ctx := NewContext(cfg, clock, forcing.NewStore())

	var wetArea [numStrata]float64
	for i := range wetArea {
		wetArea[i] = 1e5 // area stays 1e6 m2 for any non-negative water level
	}
	blueBank, err := NewBasin(1, "Blue Bank", 1e6, 0, wetArea)
	require.NoError(t, err)
	blueBank.InitState(0, 0)
	require.NoError(t, ctx.AddBasin(blueBank))

	ocean := NewBoundaryBasin(59, "Ocean")
	ocean.WaterLevel = 0
	require.NoError(t, ctx.AddBasin(ocean))

	var wetLength [numStrata]float64
	wetLength[0] = 100
	shoal := NewShoal(1, blueBank.ID, ocean.ID, 50, 0.1, wetLength)
	require.NoError(t, ctx.AddShoal(shoal))

	ctx.FixedBC[blueBank.ID] = forcing.FixedBC{Kind: forcing.BCFlow, Value: 1000}

	driver := NewDriver(ctx)
	require.NoError(t, driver.Run())
	return blueBank, shoal
}

// TestBlueBankScenario_MassConservation checks spec §8 property 1 over the
// documented inflow/Manning/duration: cumulative fixed-BC inflow plus
// cumulative net shoal exchange must equal the basin's total volume change,
// with no negative-volume clamping along the way.
func TestBlueBankScenario_MassConservation(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Start = time.Date(2010, 1, 1, 8, 0, 0, 0, time.UTC)
	cfg.End = cfg.Start.Add(8 * time.Hour)
	cfg.Timestep = 60 * time.Second
	cfg.EnableFixedBC = true
	cfg.DisableRain = true
	cfg.DisableET = true
	cfg.DisableTide = true
	cfg.DisableMSL = true
	cfg.DisableRunoff = true
	cfg.DisableDynamicBC = true

	clock, err := NewClock(cfg.Start, cfg.End, cfg.Timestep)
	require.NoError(t, err)
	ctx := NewContext(cfg, clock, forcing.NewStore())

	var wetArea [numStrata]float64
	for i := range wetArea {
		wetArea[i] = 1e5
	}
	blueBank, err := NewBasin(1, "Blue Bank", 1e6, 0, wetArea)
	require.NoError(t, err)
	blueBank.InitState(0, 0)
	require.NoError(t, ctx.AddBasin(blueBank))

	ocean := NewBoundaryBasin(59, "Ocean")
	ocean.WaterLevel = 0
	require.NoError(t, ctx.AddBasin(ocean))

	var wetLength [numStrata]float64
	wetLength[0] = 100
	shoal := NewShoal(1, blueBank.ID, ocean.ID, 50, 0.1, wetLength)
	require.NoError(t, ctx.AddShoal(shoal))

	ctx.FixedBC[blueBank.ID] = forcing.FixedBC{Kind: forcing.BCFlow, Value: 1000}

	initialVolume := blueBank.WaterVolume
	var cumulativeBC, cumulativeShoalNet float64
	timestep := cfg.Timestep.Seconds()

	for !ctx.Clock.Done() {
		ctx.Clock.Advance()
		ctx.ApplyFixedBC()
		cumulativeBC += 1000 * timestep

		ctx.ShoalVelocities()
		require.NoError(t, ctx.MassTransport())
		cumulativeShoalNet += -shoal.VolumeAB // A-endpoint net change from the shoal

		ctx.UpdateDepths()

		require.GreaterOrEqual(t, blueBank.WaterVolume, 0.0)
	}

	expected := initialVolume + cumulativeBC + cumulativeShoalNet
	assert.InDelta(t, expected, blueBank.WaterVolume, 1e-6)

	// Blue Bank should end up higher than the fixed-0 ocean boundary,
	// driving outflow (spec §8 property 7: direction follows the higher
	// head).
	assert.Greater(t, blueBank.WaterLevel, ocean.WaterLevel)
}

// TestBlueBankScenario_FluxConvergesToInflowAsTimestepShrinks checks the
// direction of spec §8's documented timestep sensitivity: with friction
// held fixed for a whole step and updated only from the previous step's
// hydraulic radius (spec §4.1 step 3), a coarser timestep lags further
// behind the converging heads each step than a finer one does, so the
// shoal's final flux sits further above the imposed inflow at the coarse
// timestep than at the fine one.
func TestBlueBankScenario_FluxConvergesToInflowAsTimestepShrinks(t *testing.T) {
	_, coarseShoal := blueBankScenario(t, 60*time.Second, 8*time.Hour)
	_, fineShoal := blueBankScenario(t, 1*time.Second, 8*time.Hour)

	const inflow = 1000.0
	coarseError := math.Abs(coarseShoal.QTotal - inflow)
	fineError := math.Abs(fineShoal.QTotal - inflow)

	assert.Less(t, fineError, coarseError)
}
