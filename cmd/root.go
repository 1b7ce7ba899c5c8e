// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel     string
	scenarioFile string
	runIDFlag    string
	outputDir    string
)

var rootCmd = &cobra.Command{
	Use:   "bam",
	Short: "Bay Assessment Model: lumped-parameter estuary hydrodynamics and salinity simulator",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a BAM scenario to completion",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("bam: invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		rf, err := LoadRunFile(scenarioFile)
		if err != nil {
			logrus.Fatalf("bam: %v", err)
		}

		logrus.Infof("bam: starting run %q from %s to %s, timestep=%ds",
			rf.RunID, rf.StartTime, rf.EndTime, rf.TimestepSeconds)

		if err := runScenario(rf, cliOverrides{runID: runIDFlag, outputDir: outputDir}); err != nil {
			logrus.Fatalf("bam: run failed: %v", err)
		}
		logrus.Info("bam: simulation complete")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "Path to the YAML scenario file (required)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runIDFlag, "run-id", "", "Overrides the scenario file's run_id, used in output filenames")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "Overrides the scenario file's output_dir")
	runCmd.MarkFlagRequired("scenario")

	rootCmd.AddCommand(runCmd)
}
