package sim

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// basinSample holds one output row's worth of per-basin variables.
type basinSample struct {
	waterLevel     float64
	salinity       float64
	waterVolume    float64
	shoalTransport float64
	rainfall       float64
	evaporation    float64
	runoffEVER     float64
	runoffBC       float64
}

// Series is the shared output time-series buffer, sampled at each
// outputInterval boundary and persisted once at the end of the run
// (spec §4.5 steps 5-6, §6 "per-basin CSV file").
type Series struct {
	basinOrder []BasinID
	times      []time.Time
	samples    map[BasinID][]basinSample
	stepCount  int
}

// NewSeries allocates an empty Series for the given basins, in the order
// they should be written.
func NewSeries(basins []BasinID) *Series {
	s := &Series{
		basinOrder: basins,
		samples:    make(map[BasinID][]basinSample, len(basins)),
	}
	for _, id := range basins {
		s.samples[id] = nil
	}
	return s
}

// Sample appends a row to the output buffer if the current step lands on an
// outputInterval boundary (spec §4.5 step 5: "strictly monotonic and
// aligned to step boundaries").
func (s *Series) Sample(ctx *Context) {
	s.stepCount++
	stepsPerInterval := int(math.Round(ctx.Config.OutputIntervalHours * 3600 / ctx.Clock.Timestep.Seconds()))
	if stepsPerInterval <= 0 {
		stepsPerInterval = 1
	}
	if s.stepCount%stepsPerInterval != 0 {
		return
	}
	s.times = append(s.times, ctx.Clock.Current)
	for _, id := range s.basinOrder {
		b := ctx.Basin(id)
		s.samples[id] = append(s.samples[id], basinSample{
			waterLevel:     b.WaterLevel,
			salinity:       b.Salinity,
			waterVolume:    b.WaterVolume,
			shoalTransport: b.ShoalTransport,
			rainfall:       b.Rainfall,
			evaporation:    b.Evaporation,
			runoffEVER:     b.RunoffEVER,
			runoffBC:       b.RunoffBC,
		})
	}
}

// Times returns the sampled output timestamps.
func (s *Series) Times() []time.Time {
	return s.times
}

// BasinSeries returns the raw sampled rows for one basin, for tests that
// want to inspect output without going through disk.
func (s *Series) BasinSeries(id BasinID) []basinSample {
	return s.samples[id]
}

// Flush persists the time series to per-basin CSV files and the run log to
// RunInfo.txt (spec §6). With Config.OutputDir unset, Flush is a no-op,
// which keeps engine tests free of filesystem side effects.
func (c *Context) Flush() error {
	dir := c.Config.OutputDir
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("bam: create output directory %s: %w", dir, err)
	}

	series := c.Series()
	for _, id := range series.basinOrder {
		b := c.Basin(id)
		if err := writeBasinCSV(dir, c.Config.RunID, b, series); err != nil {
			logrus.Errorf("bam: writing output for basin %d (%s): %v", b.ID, b.Name, err)
			continue
		}
	}

	infoPath := filepath.Join(dir, "RunInfo.txt")
	f, err := os.Create(infoPath)
	if err != nil {
		logrus.Errorf("bam: writing RunInfo.txt: %v", err)
		return nil
	}
	defer f.Close()
	for _, line := range c.Log.Lines() {
		fmt.Fprintln(f, line)
	}
	return nil
}

var csvHeader = []string{
	"Time",
	"Water Level (m)",
	"Salinity (g/kg)",
	"Volume (m3)",
	"Shoal Transport (m3)",
	"Rainfall (m3)",
	"Evaporation (m3)",
	"Runoff EVER (m3)",
	"Runoff BC (m3)",
}

func writeBasinCSV(dir, runID string, b *Basin, series *Series) error {
	path := filepath.Join(dir, fmt.Sprintf("%s%s.csv", b.Name, runID))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	rows := series.samples[b.ID]
	for i, t := range series.times {
		row := rows[i]
		w.Write([]string{
			t.Format(time.RFC3339),
			formatValue(row.waterLevel),
			formatValue(row.salinity),
			formatValue(row.waterVolume),
			formatValue(row.shoalTransport),
			formatValue(row.rainfall),
			formatValue(row.evaporation),
			formatValue(row.runoffEVER),
			formatValue(row.runoffBC),
		})
	}
	w.Flush()
	return w.Error()
}

// formatValue rounds to 3 decimals and substitutes NA for non-finite
// values (spec §6: "values rounded to 3 decimals; missing values as NA").
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NA"
	}
	return fmt.Sprintf("%.3f", v)
}
