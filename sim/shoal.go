package sim

import "fmt"

// FlowSign is the signed flow direction across a shoal stratum: B->A, none,
// or A->B (spec §3: "signed flow_sign in {-1, 0, +1}").
type FlowSign int8

const (
	FlowBtoA FlowSign = -1
	FlowNone FlowSign = 0
	FlowAtoB FlowSign = 1
)

// Stratum is the packed per-depth-bin solver state for one shoal, held as a
// contiguous array rather than a map-per-field so iteration over strata is
// cache-linear (spec §9, "Per-depth maps").
type Stratum struct {
	WetLength       float64 // m; strata below 1m are skipped (spec §4.1)
	Velocity        float64 // m/s
	HydraulicRadius float64 // m
	FrictionFactor  float64
	HUpstream       float64 // m
	HDownstream     float64 // m
	CrossSection    float64 // m2
	Q               float64 // m3/s
	FlowSign        FlowSign
}

// Wet reports whether this stratum participates in the solver this step
// (spec §4.1: "strata whose wet_length >= 1 m").
func (s *Stratum) Wet() bool {
	return s.WetLength >= 1
}

// Shoal is a narrow inter-basin passage modelled as Manning open-channel
// flow over a rectangular cross-section, evaluated independently per depth
// stratum.
type Shoal struct {
	ID                 ShoalID
	Width              float64 // m; NoFlow iff Width == 0
	ManningCoefficient float64
	BasinA             BasinID
	BasinB             BasinID

	Strata [numStrata]Stratum

	// Aggregate per-step state.
	QTotal           float64 // m3/s, summed over strata
	CrossSectionTotal float64 // m2, summed over strata
	VolumeAB         float64 // m3, this step; VolumeBA = -VolumeAB
	VolumeBA         float64
	FlowSign         FlowSign // aggregate direction, mirrors the dominant stratum
	InitialVelocity  bool     // true once the solver has run at least once
}

// NoFlow reports whether this shoal is a land barrier that contributes no
// transport (spec §3: "no_flow iff width == 0").
func (s *Shoal) NoFlow() bool {
	return s.Width == 0
}

// NewShoal constructs a shoal from its geometry. Strata with wet_length > 0
// get friction_factor = 0, the same zero value every other stratum starts
// with. The solver never reads this initial value: each pass recomputes
// friction from the previous step's hydraulic radius (spec §4.1 step 3).
func NewShoal(id ShoalID, basinA, basinB BasinID, width, manning float64, wetLength [numStrata]float64) *Shoal {
	sh := &Shoal{
		ID:                 id,
		Width:              width,
		ManningCoefficient: manning,
		BasinA:             basinA,
		BasinB:             basinB,
	}
	for d := 0; d < numStrata; d++ {
		sh.Strata[d].WetLength = wetLength[d]
		if wetLength[d] > 0 {
			sh.Strata[d].FrictionFactor = 0
		}
	}
	return sh
}

// Other returns the basin at the far end of this shoal from the given one.
func (s *Shoal) Other(from BasinID) BasinID {
	if from == s.BasinA {
		return s.BasinB
	}
	return s.BasinA
}

// String renders a one-line debug summary of the shoal's current state.
func (s *Shoal) String() string {
	if s.NoFlow() {
		return fmt.Sprintf("Shoal %d (barrier %d-%d)", s.ID, s.BasinA, s.BasinB)
	}
	return fmt.Sprintf("Shoal %d (%d-%d): Q_total=%.3fm3/s volume_A_B=%.1fm3 flow_sign=%d",
		s.ID, s.BasinA, s.BasinB, s.QTotal, s.VolumeAB, s.FlowSign)
}
