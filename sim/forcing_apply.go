package sim

import "github.com/floridabay/bam/sim/forcing"

// ApplyRain adds each interior basin's scaled, station-weighted rainfall
// for the current day to its volume (spec §4.4). Disabled entirely when
// Config.DisableRain is set.
func (c *Context) ApplyRain() {
	if c.Config.DisableRain || c.Forcing == nil {
		return
	}
	key := c.Clock.DateKey()
	stations := c.Forcing.Rain[key]
	if stations == nil {
		return
	}
	perDay := c.Clock.TimestepsPerDay()
	for _, id := range c.Basins() {
		b := c.Basin(id)
		if b.IsBoundary || len(b.RainStations) == 0 {
			continue
		}
		var cmDay float64
		for _, binding := range b.RainStations {
			cmDay += stations[binding.StationID] * binding.Scale
		}
		v := (cmDay / 100) * b.Area / perDay
		b.Rainfall = v
		b.WaterVolume += v
	}
}

// ApplyET subtracts evaporative loss from every interior basin's volume
// using the day's single domain-wide ET series (spec §4.4).
func (c *Context) ApplyET() {
	if c.Config.DisableET || c.Forcing == nil {
		return
	}
	key := c.Clock.DateKey()
	mmDay, ok := c.Forcing.ET[key]
	if !ok {
		return
	}
	perDay := c.Clock.TimestepsPerDay()
	for _, id := range c.Basins() {
		b := c.Basin(id)
		if b.IsBoundary {
			continue
		}
		v := (mmDay / 1000) * b.Area * c.Config.ETScale / perDay
		b.Evaporation = v
		b.WaterVolume -= v
	}
}

// ApplyRunoffStage overwrites each runoff-stage-driven boundary basin's
// water level with today's EDEN station reading (spec §4.4).
func (c *Context) ApplyRunoffStage() {
	if c.Config.DisableRunoff || c.Forcing == nil {
		return
	}
	key := c.Clock.DateKey()
	stages := c.Forcing.RunoffStage[key]
	if stages == nil {
		return
	}
	for _, id := range c.Basins() {
		b := c.Basin(id)
		if b.RunoffStationID == "" {
			continue
		}
		if v, ok := stages[b.RunoffStationID]; ok {
			b.WaterLevel = v
		}
	}
}

// ApplyTide overwrites every tide-driven boundary basin's water level with
// the sum of the per-basin tide interpolator and the seasonal MSL anomaly
// (spec §4.4). Out-of-range samples default to 0 with a warning (spec §7).
func (c *Context) ApplyTide() {
	if c.Config.DisableTide {
		return
	}
	unix := c.Clock.UnixSeconds()
	for id, interp := range c.TideFunc {
		tide := c.evalInterp(interp, unix, "tide basin "+basinLabel(c, id))
		msl := c.seasonalMSL(unix)
		c.Basin(id).WaterLevel = tide + msl
	}
}

// seasonalMSL evaluates the seasonal mean-sea-level anomaly spline. It
// returns 0 when MSL is disabled or no spline is bound, and 0 with a warning
// when the time is out of range.
func (c *Context) seasonalMSL(unix float64) float64 {
	if c.Config.DisableMSL || c.SeasonalMSL == nil {
		return 0
	}
	return c.evalInterp(c.SeasonalMSL, unix, "seasonal MSL")
}

func (c *Context) evalInterp(interp forcing.Interpolator, x float64, label string) float64 {
	v, ok := interp.At(x)
	if !ok {
		c.Log.Append(logf("%s interpolation out of range at t=%.0f, defaulting to 0", label, x))
		return 0
	}
	return v
}

func basinLabel(c *Context, id BasinID) string {
	return c.Basin(id).Name
}

// ApplyFixedBC applies the constant flow or stage boundary conditions
// configured for this run (spec §4.4). Only active when Config.EnableFixedBC
// is set. The flow branch only adds to volume, matching
// original_source/model.py's BoundaryConditions: runoff_BC is reported from
// the dynamic BC table only, never the fixed one.
func (c *Context) ApplyFixedBC() {
	if !c.Config.EnableFixedBC {
		return
	}
	timestep := c.Clock.Timestep.Seconds()
	for id, bc := range c.FixedBC {
		b := c.Basin(id)
		switch bc.Kind {
		case forcing.BCFlow:
			b.WaterVolume += bc.Value * timestep
		case forcing.BCStage:
			b.WaterLevel = bc.Value
		}
	}
}

// ApplyDynamicBC applies the per-basin time-varying flow/stage boundary
// condition tables for the current day (spec §4.4). Disabled entirely when
// Config.DisableDynamicBC is set.
func (c *Context) ApplyDynamicBC() {
	if c.Config.DisableDynamicBC {
		return
	}
	key := c.Clock.DateKey()
	timestep := c.Clock.Timestep.Seconds()
	for id, series := range c.DynamicFlowBC {
		cfs, ok := series[key]
		if !ok {
			continue
		}
		v := cfs * forcing.CfsToCms * timestep
		b := c.Basin(id)
		b.RunoffBC = v
		b.WaterVolume += v
	}
	for id, series := range c.DynamicHeadBC {
		m, ok := series[key]
		if !ok {
			continue
		}
		c.Basin(id).WaterLevel = m
	}
}

// ApplyGaugeSalinity sets salinity directly from gauge data on boundary
// basins and basins marked salinity_from_data (spec §4.4). When
// Config.GaugeSalinityOverride is set, every basin with a bound salinity
// station is driven from the gauge regardless of those flags.
func (c *Context) ApplyGaugeSalinity() {
	if c.Forcing == nil {
		return
	}
	key := c.Clock.DateKey()
	gauges := c.Forcing.Salinity[key]
	if gauges == nil {
		return
	}
	for _, id := range c.Basins() {
		b := c.Basin(id)
		if b.SalinityStationID == "" {
			continue
		}
		driven := b.IsBoundary || b.SalinityFromData || c.Config.GaugeSalinityOverride
		if !driven {
			continue
		}
		reading, ok := gauges[b.SalinityStationID]
		if !ok || !reading.Valid {
			c.Log.Append(logf("basin %d (%s): missing salinity gauge reading for %s", b.ID, b.Name, key))
			continue
		}
		b.Salinity = reading.Value
	}
}
