package sim

import (
	"testing"
	"time"

	"github.com/floridabay/bam/sim/forcing"
)

// newTestContext builds a minimal two-basin, one-shoal context for unit
// tests: basin 1 (interior) connected to basin 2 (interior) by shoal 1.
// Callers mutate the returned basins/shoal before exercising solver code.
func newTestContext(t *testing.T) (*Context, *Basin, *Basin, *Shoal) {
	cfg := DefaultRunConfig()
	cfg.Start = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.End = cfg.Start.Add(time.Hour)
	clock, err := NewClock(cfg.Start, cfg.End, cfg.Timestep)
	if err != nil {
		t.Fatalf("newTestContext: %v", err)
	}
	ctx := NewContext(cfg, clock, forcing.NewStore())

	var wetArea [numStrata]float64
	for i := range wetArea {
		wetArea[i] = 1000
	}
	a, err := NewBasin(1, "Basin A", 10000, 0, wetArea)
	if err != nil {
		t.Fatalf("newTestContext: %v", err)
	}
	b, err := NewBasin(2, "Basin B", 10000, 0, wetArea)
	if err != nil {
		t.Fatalf("newTestContext: %v", err)
	}
	a.InitState(1.0, 20)
	b.InitState(1.0, 20)
	if err := ctx.AddBasin(a); err != nil {
		t.Fatalf("newTestContext: %v", err)
	}
	if err := ctx.AddBasin(b); err != nil {
		t.Fatalf("newTestContext: %v", err)
	}

	var wetLength [numStrata]float64
	for i := range wetLength {
		wetLength[i] = 100
	}
	sh := NewShoal(1, 1, 2, 50, 0.03, wetLength)
	if err := ctx.AddShoal(sh); err != nil {
		t.Fatalf("newTestContext: %v", err)
	}

	return ctx, a, b, sh
}
