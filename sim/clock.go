package sim

import (
	"time"

	"github.com/floridabay/bam/sim/forcing"
)

// Clock tracks simulated calendar time, its Unix-second equivalent, and the
// fixed step size. It has no wall-clock dependency: Advance is the only way
// time moves, so a replayed run with the same Config produces the same
// sequence of keys (spec §8 property 5, deterministic replay).
type Clock struct {
	Start    time.Time
	End      time.Time
	Current  time.Time
	Timestep time.Duration
}

// NewClock builds a Clock with start/end snapped down to the hour, per
// spec §6 ("user-entered start/end times are snapped down to the hour").
func NewClock(start, end time.Time, timestep time.Duration) (*Clock, error) {
	start = start.Truncate(time.Hour)
	end = end.Truncate(time.Hour)
	if !end.After(start) {
		return nil, &ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	if timestep <= 0 {
		return nil, &ValidationError{Field: "timestep", Msg: "must be positive"}
	}
	return &Clock{Start: start, End: end, Current: start, Timestep: timestep}, nil
}

// Advance moves the clock forward by one timestep.
func (c *Clock) Advance() {
	c.Current = c.Current.Add(c.Timestep)
}

// Done reports whether the clock has passed the configured end time.
func (c *Clock) Done() bool {
	return c.Current.After(c.End)
}

// UnixSeconds returns the current time as seconds since the Unix epoch, the
// coordinate tide and seasonal-MSL interpolators are evaluated at.
func (c *Clock) UnixSeconds() float64 {
	return float64(c.Current.Unix())
}

// DateKey returns the (year, month, day) key used to index daily forcing
// series (rain, ET, runoff stage, gauge salinity).
func (c *Clock) DateKey() forcing.DateKey {
	y, m, d := c.Current.Date()
	return forcing.DateKey{Year: y, Month: int(m), Day: d}
}

// TimestepsPerDay is 86400 / timestep, used to spread a daily rain/ET total
// evenly across the steps that fall within that day.
func (c *Clock) TimestepsPerDay() float64 {
	return 86400 / c.Timestep.Seconds()
}
