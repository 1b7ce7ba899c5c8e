package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// logf formats an in-loop numeric-anomaly warning (spec §7: "recover,
// warn"), emits it through logrus, and returns the formatted line so the
// caller can also append it to the run's RunLog for RunInfo.txt.
func logf(format string, args ...interface{}) string {
	msg := "bam: " + fmt.Sprintf(format, args...)
	logrus.Warn(msg)
	return msg
}
