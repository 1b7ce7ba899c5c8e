package sim

// UpdateDepths converts this step's volume change into a stage change for
// every basin with real geometry (spec §4.3). Boundary basins have their
// water level set directly by forcing and are skipped here.
func (c *Context) UpdateDepths() {
	for _, id := range c.Basins() {
		b := c.Basin(id)
		if b.IsBoundary {
			continue
		}
		b.RecomputeArea()
		if b.Area > 0 {
			deltaH := (b.WaterVolume - b.PreviousVolume) / b.Area
			b.WaterLevel += deltaH
		}
		b.PreviousVolume = b.WaterVolume
	}
}
