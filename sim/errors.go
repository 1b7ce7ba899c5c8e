package sim

import "fmt"

// ValidationError reports an input-validation failure discovered before the
// simulation loop starts (spec §7: "fail-fast before simulation"). These are
// always returned to the caller; they are never logged-and-swallowed like
// in-loop numeric anomalies.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bam: invalid %s: %s", e.Field, e.Msg)
}

// RunLog accumulates the run's log stream for later persistence to
// RunInfo.txt (spec §6), in addition to whatever a logrus handler does with
// each entry. It is append-only and only ever written from the simulation
// goroutine (spec §5: "the run_info log buffer is append-only from the
// simulation thread").
type RunLog struct {
	lines []string
}

// NewRunLog returns an empty RunLog.
func NewRunLog() *RunLog {
	return &RunLog{}
}

// Append records one line of the run log.
func (r *RunLog) Append(line string) {
	r.lines = append(r.lines, line)
}

// Lines returns the accumulated log lines in order.
func (r *RunLog) Lines() []string {
	return r.lines
}
