package geometry

import (
	"fmt"
	"time"

	"github.com/floridabay/bam/sim"
	"github.com/floridabay/bam/sim/forcing"
)

// Build validates and assembles basin, shoal, and forcing specs into a
// ready-to-run sim.Context (spec §3 "Lifecycle": geometry and forcing
// stores are built once at initialization).
func Build(cfg sim.RunConfig, basins []BasinSpec, shoals []ShoalSpec, fs ForcingSpec) (*sim.Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateBasins(basins); err != nil {
		return nil, err
	}
	if err := validateBC(basins, fs); err != nil {
		return nil, err
	}

	clock, err := sim.NewClock(cfg.Start, cfg.End, cfg.Timestep)
	if err != nil {
		return nil, err
	}

	store := forcing.NewStore()
	store.Rain = fs.Rain
	store.ET = fs.ET
	store.RunoffStage = fs.RunoffStage
	store.Salinity = fs.Salinity

	ctx := sim.NewContext(cfg, clock, store)

	for _, bs := range basins {
		b, err := buildBasin(bs)
		if err != nil {
			return nil, err
		}
		if err := ctx.AddBasin(b); err != nil {
			return nil, err
		}
	}

	for _, ss := range shoals {
		if ss.BasinA == 0 && ss.BasinB == 0 {
			// Spec §6: "Shoals with both basins = 0 are discarded."
			continue
		}
		sh := sim.NewShoal(sim.ShoalID(ss.Number), sim.BasinID(ss.BasinA), sim.BasinID(ss.BasinB),
			ss.Width, ss.ManningCoefficient, ss.WetLength)
		if err := ctx.AddShoal(sh); err != nil {
			return nil, err
		}
	}

	if err := attachTideAndMSL(ctx, fs); err != nil {
		return nil, err
	}
	attachBoundaryConditions(ctx, fs)

	if err := attachRunoffEVER(ctx, basins); err != nil {
		return nil, err
	}

	if err := validateTimeRange(cfg, fs); err != nil {
		return nil, err
	}

	return ctx, nil
}

func buildBasin(bs BasinSpec) (*sim.Basin, error) {
	var b *sim.Basin
	var err error
	if bs.IsBoundary {
		b = sim.NewBoundaryBasin(sim.BasinID(bs.Number), bs.Name)
	} else {
		b, err = sim.NewBasin(sim.BasinID(bs.Number), bs.Name, bs.TotalArea, bs.LandArea, bs.WetArea)
		if err != nil {
			return nil, err
		}
	}
	b.RainStations = bs.RainStations
	b.SalinityStationID = bs.SalinityStationID
	b.SalinityFromData = bs.SalinityFromData
	b.RunoffStationID = bs.RunoffStationID
	b.HasTideFunction = bs.HasTide
	b.InitState(bs.InitialWaterLevel, bs.InitialSalinity)
	return b, nil
}

func attachTideAndMSL(ctx *sim.Context, fs ForcingSpec) error {
	for basinNum, points := range fs.TidePoints {
		interp, err := forcing.NewTide(points)
		if err != nil {
			return fmt.Errorf("bam: basin %d tide interpolator: %w", basinNum, err)
		}
		ctx.TideFunc[sim.BasinID(basinNum)] = interp
	}
	if len(fs.SeasonalMSLPoints) > 0 {
		interp, err := forcing.NewSeasonalMSL(fs.SeasonalMSLPoints)
		if err != nil {
			return fmt.Errorf("bam: seasonal MSL interpolator: %w", err)
		}
		ctx.SeasonalMSL = interp
	}
	return nil
}

func attachBoundaryConditions(ctx *sim.Context, fs ForcingSpec) {
	for basinNum, bc := range fs.FixedBC {
		ctx.FixedBC[sim.BasinID(basinNum)] = bc
	}
	for basinNum, series := range fs.DynamicFlowBC {
		ctx.DynamicFlowBC[sim.BasinID(basinNum)] = series
	}
	for basinNum, series := range fs.DynamicHeadBC {
		ctx.DynamicHeadBC[sim.BasinID(basinNum)] = series
	}
}

// attachRunoffEVER binds each runoff-stage-driven basin to the shoals that
// define its runoff_EVER accumulator, asserting the basin is the B endpoint
// of every one of them (spec §9 open question (c): "the loader must assert
// this; the simulation aborts if violated").
func attachRunoffEVER(ctx *sim.Context, basins []BasinSpec) error {
	for _, bs := range basins {
		if bs.RunoffStationID == "" {
			continue
		}
		id := sim.BasinID(bs.Number)
		basin := ctx.Basin(id)
		for _, sid := range basin.Shoals {
			sh := ctx.Shoal(sid)
			if sh.BasinB != id {
				return &sim.ValidationError{
					Field: "runoff_stage",
					Msg: fmt.Sprintf("basin %d (%s) is runoff-stage driven but is not the B endpoint of shoal %d",
						id, basin.Name, sid),
				}
			}
			ctx.RunoffEVERShoals[id] = append(ctx.RunoffEVERShoals[id], sid)
		}
	}
	return nil
}

func validateTimeRange(cfg sim.RunConfig, fs ForcingSpec) error {
	if cfg.DisableTide {
		return nil
	}
	startUnix := float64(cfg.Start.Unix())
	endUnix := float64(cfg.End.Unix())
	for basinNum, points := range fs.TidePoints {
		lo, hi := pointRange(points)
		if startUnix < lo || endUnix > hi {
			return &sim.ValidationError{
				Field: "run_time_range",
				Msg: fmt.Sprintf("basin %d tide series covers [%s, %s], run covers [%s, %s]",
					basinNum, unixToTime(lo), unixToTime(hi), cfg.Start, cfg.End),
			}
		}
	}
	return nil
}

func pointRange(points []forcing.Point) (lo, hi float64) {
	if len(points) == 0 {
		return 0, 0
	}
	lo, hi = points[0].X, points[0].X
	for _, p := range points {
		if p.X < lo {
			lo = p.X
		}
		if p.X > hi {
			hi = p.X
		}
	}
	return lo, hi
}

func unixToTime(sec float64) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}
