package forcing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Point is one (time, value) sample fed to an Interpolator constructor.
type Point struct {
	X float64 // unix seconds
	Y float64
}

// Interpolator evaluates a forcing series at an arbitrary unix-second time.
// The returned bool reports whether x fell within the fitted domain; callers
// fall back to a documented default (spec §7: "tide/MSL interpolation out of
// range -> default to 0 with warning") when it is false, rather than
// trusting gonum's extrapolation past the fitted range.
type Interpolator interface {
	At(x float64) (y float64, inRange bool)
}

type fittedInterp struct {
	xs   []float64
	pred interp.FittablePredictor
}

func (f *fittedInterp) At(x float64) (float64, bool) {
	if len(f.xs) == 0 {
		return 0, false
	}
	if x < f.xs[0] || x > f.xs[len(f.xs)-1] {
		return 0, false
	}
	return f.pred.Predict(x), true
}

func newFitted(points []Point, pred interp.FittablePredictor, name string) (Interpolator, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("forcing: %s interpolator needs at least 2 points, got %d", name, len(points))
	}
	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, p := range sorted {
		if i > 0 && xs[i-1] == p.X {
			return nil, fmt.Errorf("forcing: %s interpolator has duplicate timestamp %v", name, p.X)
		}
		xs[i] = p.X
		ys[i] = p.Y
	}
	if err := pred.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("forcing: fit %s interpolator: %w", name, err)
	}
	return &fittedInterp{xs: xs, pred: pred}, nil
}

// NewTide builds a piecewise-linear interpolator over demeaned tide heights,
// per spec §9 ("linear interpolation (tide, already demeaned)").
func NewTide(points []Point) (Interpolator, error) {
	return newFitted(points, new(interp.PiecewiseLinear), "tide")
}

// NewSeasonalMSL builds a natural-cubic-spline interpolator over the
// seasonal mean-sea-level anomaly series, per spec §9 ("cubic-spline
// evaluation (seasonal MSL)").
func NewSeasonalMSL(points []Point) (Interpolator, error) {
	return newFitted(points, new(interp.NaturalCubic), "seasonal MSL")
}
