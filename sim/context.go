package sim

import (
	"fmt"

	"github.com/floridabay/bam/sim/forcing"
)

// Context owns the geometry, forcing bindings, clock, and configuration for
// one run. It is built once before the loop starts and, per spec §5
// ("Forcing stores are immutable after load"), never structurally mutated
// again: only the Basin/Shoal values it holds change, and only from the
// single simulation goroutine.
type Context struct {
	Config RunConfig
	Clock  *Clock
	Log    *RunLog

	basins map[BasinID]*Basin
	shoals map[ShoalID]*Shoal

	Forcing *forcing.Store

	// Per-basin forcing bindings. A basin appears in at most one of
	// TideFunc, RunoffStation (on Basin itself), FixedBC, DynamicFlowBC,
	// DynamicHeadBC.
	SeasonalMSL   forcing.Interpolator
	TideFunc      map[BasinID]forcing.Interpolator
	FixedBC       map[BasinID]forcing.FixedBC
	DynamicFlowBC map[BasinID]forcing.DynamicSeries
	DynamicHeadBC map[BasinID]forcing.DynamicSeries

	// RunoffEVERShoals maps a runoff-stage-driven basin to the shoals whose
	// A/B-B sum defines its runoff_EVER accumulator (spec §4.2, last
	// paragraph).
	RunoffEVERShoals map[BasinID][]ShoalID

	series *Series
}

// NewContext assembles an empty simulation context. Basin and shoal
// populations are added with AddBasin/AddShoal by sim/geometry.Build; the
// output series is allocated on the first call to Series.
func NewContext(cfg RunConfig, clock *Clock, store *forcing.Store) *Context {
	return &Context{
		Config:           cfg,
		Clock:            clock,
		Log:              NewRunLog(),
		basins:           map[BasinID]*Basin{},
		shoals:           map[ShoalID]*Shoal{},
		Forcing:          store,
		TideFunc:         map[BasinID]forcing.Interpolator{},
		FixedBC:          map[BasinID]forcing.FixedBC{},
		DynamicFlowBC:    map[BasinID]forcing.DynamicSeries{},
		DynamicHeadBC:    map[BasinID]forcing.DynamicSeries{},
		RunoffEVERShoals: map[BasinID][]ShoalID{},
	}
}

// AddBasin registers a basin. Called only during context construction.
func (c *Context) AddBasin(b *Basin) error {
	if _, exists := c.basins[b.ID]; exists {
		return &ValidationError{Field: "basin_num", Msg: fmt.Sprintf("duplicate basin number %d", b.ID)}
	}
	c.basins[b.ID] = b
	return nil
}

// AddShoal registers a shoal and wires it into both endpoint basins'
// adjacency lists. Called only during context construction.
func (c *Context) AddShoal(s *Shoal) error {
	if _, exists := c.shoals[s.ID]; exists {
		return &ValidationError{Field: "shoal_num", Msg: fmt.Sprintf("duplicate shoal number %d", s.ID)}
	}
	a, ok := c.basins[s.BasinA]
	if !ok {
		return &ValidationError{Field: "basin_a", Msg: fmt.Sprintf("shoal %d references unknown basin %d", s.ID, s.BasinA)}
	}
	b, ok := c.basins[s.BasinB]
	if !ok {
		return &ValidationError{Field: "basin_b", Msg: fmt.Sprintf("shoal %d references unknown basin %d", s.ID, s.BasinB)}
	}
	c.shoals[s.ID] = s
	a.AddShoal(s.ID)
	b.AddShoal(s.ID)
	return nil
}

// Basin returns the basin with the given ID. It panics on an unknown ID,
// since every ID in play after geometry validation is one Context itself
// assigned.
func (c *Context) Basin(id BasinID) *Basin {
	b, ok := c.basins[id]
	if !ok {
		panic(fmt.Sprintf("bam: unknown basin id %d", id))
	}
	return b
}

// Shoal returns the shoal with the given ID.
func (c *Context) Shoal(id ShoalID) *Shoal {
	s, ok := c.shoals[id]
	if !ok {
		panic(fmt.Sprintf("bam: unknown shoal id %d", id))
	}
	return s
}

// Basins returns every basin ID in a deterministic, ascending order.
func (c *Context) Basins() []BasinID {
	return sortedBasinIDs(c.basins)
}

// Shoals returns every shoal ID in a deterministic, ascending order.
func (c *Context) Shoals() []ShoalID {
	ids := make([]ShoalID, 0, len(c.shoals))
	for id := range c.shoals {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// BasinByName looks up a basin by name, used by tests and CLI scenario
// wiring (spec §8 concrete scenario references basins by name).
func (c *Context) BasinByName(name string) (*Basin, bool) {
	for _, id := range c.Basins() {
		if b := c.basins[id]; b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Series returns the output time-series buffer, lazily allocated.
func (c *Context) Series() *Series {
	if c.series == nil {
		c.series = NewSeries(c.Basins())
	}
	return c.series
}
