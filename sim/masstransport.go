package sim

import "fmt"

// saltwaterDensity converts a g/kg salinity and an m3 volume into grams of
// salt (spec §4.2: "salinity_source * deltaV * 997").
const saltwaterDensity = 997

// salinitySpikeThreshold is the g/kg level above which a basin's freshly
// computed salinity is treated as a numeric anomaly rather than a real
// reading (spec §4.2).
const salinitySpikeThreshold = 90

// shallowBankExemptions lists basins where a salinity reading above the
// spike threshold is physically plausible (very small, shallow, poorly
// flushed banks) and must not trigger the sanity correction (spec §4.2).
var shallowBankExemptions = map[string]bool{
	"First National Bank": true,
	"Ninemile Bank":        true,
	"Conchie Channel":      true,
	"Johnson Key":          true,
	"Sandy Key":            true,
	"Dildo Key Bank":       true,
	"Snake Bight":          true,
	"Rankin Bight":         true,
	"Rankin Lake":          true,
	"Deer Key":             true,
	"Swash Keys":           true,
}

// MassTransport aggregates this step's shoal velocities into basin volume
// and salt-mass deltas (spec §4.2). It must run after ShoalVelocities and
// before UpdateDepths.
func (c *Context) MassTransport() error {
	for _, id := range c.Shoals() {
		if err := c.transportShoal(c.Shoal(id)); err != nil {
			return err
		}
	}
	for _, id := range c.Basins() {
		c.finalizeBasinSalinity(c.Basin(id))
	}
	c.applyRunoffEVER()
	return nil
}

// transportShoal computes one shoal's per-stratum flux, aggregates it into
// the shoal's per-step volume totals, and applies the resulting volume and
// salt transfer to its endpoint basins.
func (c *Context) transportShoal(s *Shoal) error {
	if s.NoFlow() {
		return nil
	}
	a := c.Basin(s.BasinA)
	b := c.Basin(s.BasinB)

	var qTotal, crossTotal float64
	for depthFt := 0; depthFt < numStrata; depthFt++ {
		st := &s.Strata[depthFt]
		if !st.Wet() {
			continue
		}
		_, _, sign, dry := shoalBasinLevels(a, b, depthFt)
		if dry {
			st.Q = 0
			st.CrossSection = 0
			continue
		}
		st.FlowSign = sign

		hFlow := st.HDownstream
		if hFlow <= 0 {
			hFlow = st.HydraulicRadius
		}
		cross := hFlow * st.WetLength
		if cross < 0 {
			return fmt.Errorf("bam: shoal %d stratum %dft: negative cross-section %.6f", s.ID, depthFt, cross)
		}
		st.CrossSection = cross
		st.Q = st.Velocity * cross

		qTotal += st.Q
		crossTotal += cross
	}
	s.QTotal = qTotal
	s.CrossSectionTotal = crossTotal
	switch {
	case qTotal > 0:
		s.FlowSign = FlowAtoB
	case qTotal < 0:
		s.FlowSign = FlowBtoA
	default:
		s.FlowSign = FlowNone
	}

	timestep := c.Clock.Timestep.Seconds()
	deltaV := qTotal * timestep
	s.VolumeAB = deltaV
	s.VolumeBA = -deltaV

	c.applyVolumeAndSalt(a, b, deltaV, s)
	return nil
}

// applyVolumeAndSalt moves deltaV m3 from A to B (negative deltaV moves it
// from B to A), clamping both endpoints to non-negative volume and salt
// mass, and skipping boundary basins entirely (spec §4.2).
func (c *Context) applyVolumeAndSalt(a, b *Basin, deltaV float64, s *Shoal) {
	if !a.IsBoundary {
		a.WaterVolume -= deltaV
		if a.WaterVolume < 0 {
			a.WaterVolume = 0
		}
	}
	if !b.IsBoundary {
		b.WaterVolume += deltaV
		if b.WaterVolume < 0 {
			b.WaterVolume = 0
		}
	}
	if a.WaterVolume == 0 || b.WaterVolume == 0 {
		return
	}

	var sourceSalinity float64
	switch s.FlowSign {
	case FlowAtoB:
		sourceSalinity = a.Salinity
	case FlowBtoA:
		sourceSalinity = b.Salinity
	default:
		return
	}
	deltaMass := sourceSalinity * deltaV * saltwaterDensity

	if !a.IsBoundary {
		a.SaltMass -= deltaMass
		if a.SaltMass < 0 {
			a.SaltMass = 0
		}
	}
	if !b.IsBoundary {
		b.SaltMass += deltaMass
		if b.SaltMass < 0 {
			b.SaltMass = 0
		}
	}
}

// finalizeBasinSalinity aggregates shoal_transport for one basin and
// recomputes its salinity from the salt mass just accumulated, applying
// the spike sanity correction where the basin is not exempt (spec §4.2).
func (c *Context) finalizeBasinSalinity(basin *Basin) {
	if basin.IsBoundary {
		return
	}
	var transport float64
	for _, sid := range basin.Shoals {
		sh := c.Shoal(sid)
		if sh.BasinA == basin.ID {
			transport += sh.VolumeAB
		} else {
			transport += sh.VolumeBA
		}
	}
	basin.ShoalTransport = transport

	if basin.WaterVolume == 0 {
		return
	}
	sNew := basin.SaltMass / (basin.WaterVolume * saltwaterDensity)
	if !c.Config.DisableSalinitySpikeCorrection && sNew > salinitySpikeThreshold && !shallowBankExemptions[basin.Name] {
		c.Log.Append(logf("basin %d (%s): salinity spike %.2f g/kg, halving salt mass", basin.ID, basin.Name, sNew))
		basin.SaltMass /= 2
		sNew = basin.SaltMass / (basin.WaterVolume * saltwaterDensity)
	}
	if !basin.SalinityFromData {
		basin.Salinity = sNew
	}
}

// applyRunoffEVER sets runoff_EVER on every runoff-stage-driven basin to
// the negated sum of volume_A_B over its bound shoals (spec §4.2, last
// paragraph; spec §9 open question (c) requires every such basin to be the
// B endpoint, which sim/geometry.Build asserts at load time).
func (c *Context) applyRunoffEVER() {
	if len(c.RunoffEVERShoals) == 0 {
		return
	}
	for basinID, shoalIDs := range c.RunoffEVERShoals {
		basin := c.Basin(basinID)
		var sum float64
		for _, sid := range shoalIDs {
			sum += c.Shoal(sid).VolumeAB
		}
		basin.RunoffEVER = -sum
	}
}
