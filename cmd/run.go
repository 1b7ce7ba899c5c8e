package cmd

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/floridabay/bam/sim"
	"github.com/floridabay/bam/sim/forcing"
	"github.com/floridabay/bam/sim/geometry"
)

// buildContext turns a decoded RunFile plus CLI overrides into a ready
// sim.Context (spec §3, "forcing stores and geometry are built once at
// initialization").
func buildContext(rf *RunFile, overrides cliOverrides) (*sim.Context, error) {
	start, err := time.Parse(time.RFC3339, rf.StartTime)
	if err != nil {
		return nil, &sim.ValidationError{Field: "start_time", Msg: err.Error()}
	}
	end, err := time.Parse(time.RFC3339, rf.EndTime)
	if err != nil {
		return nil, &sim.ValidationError{Field: "end_time", Msg: err.Error()}
	}

	cfg := sim.DefaultRunConfig()
	cfg.Start = start
	cfg.End = end
	if rf.TimestepSeconds > 0 {
		cfg.Timestep = time.Duration(rf.TimestepSeconds) * time.Second
	}
	if rf.VelocityTolerance > 0 {
		cfg.VelocityTol = rf.VelocityTolerance
	}
	if rf.MaxIteration > 0 {
		cfg.MaxIteration = rf.MaxIteration
	}
	if rf.ETScale > 0 {
		cfg.ETScale = rf.ETScale
	}
	if rf.OutputIntervalHours > 0 {
		cfg.OutputIntervalHours = rf.OutputIntervalHours
	}
	cfg.RunID = rf.RunID
	cfg.OutputDir = rf.OutputDir
	cfg.DisableRain = rf.Flags.DisableRain
	cfg.DisableET = rf.Flags.DisableET
	cfg.DisableTide = rf.Flags.DisableTide
	cfg.DisableMSL = rf.Flags.DisableMSL
	cfg.DisableRunoff = rf.Flags.DisableRunoff
	cfg.EnableFixedBC = rf.Flags.EnableFixedBC
	cfg.DisableDynamicBC = rf.Flags.DisableDynamicBC
	cfg.GaugeSalinityOverride = rf.Flags.GaugeSalinityOverride
	cfg.DisableSalinitySpikeCorrection = rf.Flags.DisableSalinitySpikeCorrection

	overrides.apply(&cfg)

	basins := make([]geometry.BasinSpec, 0, len(rf.Basins))
	for _, b := range rf.Basins {
		basins = append(basins, geometry.BasinSpec{
			Number:            b.Number,
			Name:              b.Name,
			TotalArea:         b.TotalArea,
			LandArea:          b.LandArea,
			WetArea:           b.WetArea,
			IsBoundary:        b.IsBoundary,
			InitialWaterLevel: b.InitialWaterLevel,
			InitialSalinity:   b.InitialSalinity,
		})
	}
	shoals := make([]geometry.ShoalSpec, 0, len(rf.Shoals))
	for _, s := range rf.Shoals {
		shoals = append(shoals, geometry.ShoalSpec{
			Number:             s.Number,
			BasinA:             s.BasinA,
			BasinB:             s.BasinB,
			Width:              s.Width,
			ManningCoefficient: s.ManningCoefficient,
			WetLength:          s.WetLength,
		})
	}

	fs := geometry.ForcingSpec{
		FixedBC: map[int32]forcing.FixedBC{},
	}
	for _, bc := range rf.FixedBC {
		kind := forcing.BCFlow
		if bc.Kind == "stage" {
			kind = forcing.BCStage
		}
		fs.FixedBC[bc.Basin] = forcing.FixedBC{Kind: kind, Value: bc.Value}
	}

	return geometry.Build(cfg, basins, shoals, fs)
}

// cliOverrides holds flag values that take precedence over the scenario
// file, following the teacher's pattern of binding cobra flags straight to
// package-level vars and applying them after config load.
type cliOverrides struct {
	runID     string
	outputDir string
}

func (o cliOverrides) apply(cfg *sim.RunConfig) {
	if o.runID != "" {
		cfg.RunID = o.runID
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
}

// runScenario builds and executes one run to completion, logging a final
// per-basin summary in the spirit of the teacher's Metrics.Print.
func runScenario(rf *RunFile, overrides cliOverrides) error {
	ctx, err := buildContext(rf, overrides)
	if err != nil {
		return err
	}
	driver := sim.NewDriver(ctx)
	if err := driver.Run(); err != nil {
		return err
	}
	printSummary(ctx)
	return nil
}

func printSummary(ctx *sim.Context) {
	logrus.Infof("bam: run complete, final state at %s", ctx.Clock.Current.Format(time.RFC3339))
	for _, id := range ctx.Basins() {
		b := ctx.Basin(id)
		if b.IsBoundary {
			continue
		}
		logrus.Infof("  %s", b)
	}
}
