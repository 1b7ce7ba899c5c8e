package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunFile is the YAML scenario format the CLI decodes before handing
// geometry and forcing data to sim/geometry.Build. It is a thin stand-in
// for the CSV/shapefile ingestion explicitly kept out of the core model's
// scope; it exists so `bam run` has something runnable without requiring a
// caller to embed Go.
type RunFile struct {
	TimestepSeconds     int          `yaml:"timestep_seconds"`
	StartTime           string       `yaml:"start_time"`
	EndTime             string       `yaml:"end_time"`
	VelocityTolerance   float64      `yaml:"velocity_tolerance"`
	MaxIteration        int          `yaml:"max_iteration"`
	ETScale             float64      `yaml:"et_scale"`
	OutputIntervalHours float64      `yaml:"output_interval_hours"`
	RunID               string       `yaml:"run_id"`
	OutputDir           string       `yaml:"output_dir"`
	Flags               FeatureFlags `yaml:"flags"`
	Basins              []BasinFile  `yaml:"basins"`
	Shoals              []ShoalFile  `yaml:"shoals"`
	FixedBC             []FixedBCFile `yaml:"fixed_bc"`
}

// FeatureFlags holds the run-time toggles copied onto sim.RunConfig:
// disable rain/ET/tide/MSL/runoff, fixed-BC enable, dynamic-BC disable,
// gauge-salinity override, and the salinity-spike correction switch. There
// is no salinity-init mode flag.
type FeatureFlags struct {
	DisableRain                     bool `yaml:"disable_rain"`
	DisableET                       bool `yaml:"disable_et"`
	DisableTide                     bool `yaml:"disable_tide"`
	DisableMSL                      bool `yaml:"disable_msl"`
	DisableRunoff                   bool `yaml:"disable_runoff"`
	EnableFixedBC                   bool `yaml:"enable_fixed_bc"`
	DisableDynamicBC                bool `yaml:"disable_dynamic_bc"`
	GaugeSalinityOverride           bool `yaml:"gauge_salinity_override"`
	DisableSalinitySpikeCorrection  bool `yaml:"disable_salinity_spike_correction"`
}

// BasinFile is one basin's geometry and initial state.
type BasinFile struct {
	Number            int32      `yaml:"number"`
	Name              string     `yaml:"name"`
	TotalArea         float64    `yaml:"total_area"`
	LandArea          float64    `yaml:"land_area"`
	WetArea           [10]float64 `yaml:"wet_area"`
	IsBoundary        bool       `yaml:"is_boundary"`
	InitialWaterLevel float64    `yaml:"initial_water_level"`
	InitialSalinity   float64    `yaml:"initial_salinity"`
}

// ShoalFile is one shoal's geometry.
type ShoalFile struct {
	Number             int32       `yaml:"number"`
	BasinA             int32       `yaml:"basin_a"`
	BasinB             int32       `yaml:"basin_b"`
	Width              float64     `yaml:"width"`
	ManningCoefficient float64     `yaml:"manning_coefficient"`
	WetLength          [10]float64 `yaml:"wet_length"`
}

// FixedBCFile is one constant boundary condition.
type FixedBCFile struct {
	Basin int32   `yaml:"basin"`
	Kind  string  `yaml:"kind"` // "flow" or "stage"
	Value float64 `yaml:"value"`
}

// LoadRunFile decodes a scenario file with strict field checking, so a
// typo'd YAML key fails fast instead of silently being ignored.
func LoadRunFile(path string) (*RunFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bam: open scenario file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var rf RunFile
	if err := dec.Decode(&rf); err != nil {
		return nil, fmt.Errorf("bam: parse scenario file %s: %w", path, err)
	}
	return &rf, nil
}
