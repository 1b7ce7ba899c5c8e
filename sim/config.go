package sim

import "time"

// RunConfig holds the run parameters a caller supplies up front (spec §6,
// "Run parameters"). It is read-only once a Driver is constructed.
type RunConfig struct {
	Timestep     time.Duration
	Start        time.Time
	End          time.Time
	VelocityTol  float64 // m/s, default 1e-4
	MaxIteration int     // default 3000
	ETScale      float64 // default 1.0

	OutputIntervalHours float64
	RunID               string
	OutputDir           string

	// Feature flags (spec §6: "disable rain/ET/tide/MSL/runoff,
	// gauge-salinity override, salinity-init mode, fixed-BC enable,
	// dynamic-BC disable").
	DisableRain      bool
	DisableET        bool
	DisableTide      bool
	DisableMSL       bool
	DisableRunoff    bool
	EnableFixedBC    bool
	DisableDynamicBC bool

	// GaugeSalinityOverride forces every basin's salinity to be set from
	// gauge data where available, instead of only boundary/salinity_from_data
	// basins.
	GaugeSalinityOverride bool

	// SalinityInitMode names a salinity seeding mode ("zero" by default).
	// The engine does not read it: every basin's initial salinity is the
	// value passed to Basin.InitState.
	SalinityInitMode string

	// DisableSalinitySpikeCorrection turns off the historical 0.5x
	// salt-mass sanity correction (spec §4.2, §9 open question (a)). The
	// default (false) preserves the original model's behavior.
	DisableSalinitySpikeCorrection bool
}

// DefaultRunConfig returns a RunConfig with the defaults called out in
// spec §4.1 and §6.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Timestep:            60 * time.Second,
		VelocityTol:         1e-4,
		MaxIteration:        3000,
		ETScale:             1.0,
		OutputIntervalHours: 1,
		EnableFixedBC:       false,
		SalinityInitMode:    "zero",
	}
}

// Validate checks the run parameters before the Clock is built: a positive
// timestep, velocity tolerance and iteration cap, and an end time after the
// start time.
func (c RunConfig) Validate() error {
	if c.Timestep <= 0 {
		return &ValidationError{Field: "timestep", Msg: "must be positive"}
	}
	if !c.End.After(c.Start) {
		return &ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	if c.VelocityTol <= 0 {
		return &ValidationError{Field: "velocity_tol", Msg: "must be positive"}
	}
	if c.MaxIteration <= 0 {
		return &ValidationError{Field: "max_iteration", Msg: "must be positive"}
	}
	return nil
}
