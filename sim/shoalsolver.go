package sim

import "math"

// gravity is WGS gravitational acceleration at 25.1 degrees N, the
// latitude band of the modeled estuary (spec §4.1).
const gravity = 9.7896248

// dryFriction stands in for an effectively infinite friction factor when a
// stratum has no hydraulic radius to base one on, or when both basins are
// dry above the stratum's top.
const dryFriction = 1e9

// ShoalVelocities runs the per-step Manning velocity solve over every
// non-barrier shoal's wet depth strata. Each shoal's iteration reads only
// Basin.WaterLevel, which nothing in this loop writes (spec §4.1:
// "No global locking: each shoal's iteration is independent of every other
// shoal's state within the same step"), so the loop could run concurrently
// per shoal with no coordination; it stays serial per spec §5's retained
// contract.
func (c *Context) ShoalVelocities() {
	for _, id := range c.Shoals() {
		s := c.Shoal(id)
		if s.NoFlow() {
			continue
		}
		a := c.Basin(s.BasinA)
		b := c.Basin(s.BasinB)
		for depthFt := 0; depthFt < numStrata; depthFt++ {
			st := &s.Strata[depthFt]
			if !st.Wet() {
				continue
			}
			c.solveStratum(s, st, a, b, depthFt)
		}
		s.InitialVelocity = true
	}
}

// shoalBasinLevels is the head-setup step shared by the velocity solver and
// mass transport (spec §4.1 step 1 / §4.2 step 1: "Recompute heads/flow_sign
// ... this re-derives the sign"). It reports dry=true for the both-basins-
// dry case, which callers short-circuit.
func shoalBasinLevels(a, b *Basin, depthFt int) (hUp, hDown float64, sign FlowSign, dry bool) {
	d := float64(depthFt) * 0.3048
	hA := a.WaterLevel + d
	hB := b.WaterLevel + d
	switch {
	case hA < 0 && hB < 0:
		return hA, hB, FlowNone, true
	case hA > hB:
		return hA, hB, FlowAtoB, false
	default:
		return hB, hA, FlowBtoA, false
	}
}

// solveStratum runs head setup, a once-per-step friction update, and the
// velocity/hydraulic-radius iteration for one shoal depth bin (spec §4.1
// steps 1, 3 and 4). There is no separate seeding evaluation on a shoal's
// first call: a stratum starts from zero velocity and hydraulic radius, so
// its first friction factor is dryFriction. Step 3 (friction) and step 4
// (iteration) are distinct: the
// friction factor is computed once, from the hydraulic radius this stratum
// converged to on the *previous* timestep, and held fixed for every pass of
// the velocity iteration that follows (original_source/hydro.py's
// VelocityHydraulicRadius never recomputes friction_factor itself;
// ShoalVelocities computes it once per call from the prior step's
// hydraulic_radius). The cross-timestep lag this produces, not an
// intra-step fixed point, is what makes the solver's equilibrium
// timestep-dependent (spec §8's Blue Bank scenario).
func (c *Context) solveStratum(s *Shoal, st *Stratum, a, b *Basin, depthFt int) {
	hUp, hDown, sign, dry := shoalBasinLevels(a, b, depthFt)
	if dry {
		st.HUpstream = hUp
		st.HDownstream = hDown
		st.FrictionFactor = dryFriction
		st.Velocity = 0
		st.HydraulicRadius = 0
		st.FlowSign = FlowNone
		st.Q = 0
		return
	}
	st.FlowSign = sign
	st.HUpstream = hUp
	st.HDownstream = hDown

	// Step 3: friction update from the previous step's hydraulic radius.
	var friction float64
	if st.HydraulicRadius > 0 {
		friction = 2 * gravity * s.ManningCoefficient * s.ManningCoefficient * s.Width * math.Pow(st.HydraulicRadius, -4.0/3.0)
	} else {
		friction = dryFriction
	}
	st.FrictionFactor = friction

	hCrit := 2 * hUp / (3 + friction)
	hDownEff := hDown
	if hDownEff < hCrit {
		hDownEff = hCrit
	}

	// Step 4: velocity/hydraulic-radius iteration, holding friction fixed.
	v := st.Velocity
	r := st.HydraulicRadius
	tol := c.Config.VelocityTol
	maxIter := c.Config.MaxIteration

	converged := false
	for iter := 0; iter < maxIter; iter++ {
		dh := hUp - hDownEff
		hv := dh / (1 + friction)
		if hv < 0 {
			hv = 0
		}
		vNew := float64(st.FlowSign) * math.Sqrt(2*gravity*hv)
		rNew := math.Max(0, hUp-hv+hDownEff) / 2

		if math.Abs(vNew-v) <= tol {
			v, r = vNew, rNew
			converged = true
			break
		}
		v, r = vNew, rNew
	}
	if !converged {
		c.Log.Append(logf("shoal %d stratum %dft: velocity iteration did not converge after %d steps", s.ID, depthFt, maxIter))
	}
	st.Velocity = v
	st.HydraulicRadius = r
}
