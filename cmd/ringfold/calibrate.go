package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
	"github.com/DisruptivelyUseful/ringfold/pkg/search"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Find the closed fold angle for the structure",
	Long: `Search for the fold angle at which the module rotations sum to a
full turn, closing the ring. For an arch the same angle describes the
fully-curled configuration.

Example:
  ringfold calibrate --modules 8 --pivot-pct 41.5`,
	Run: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fail(err)
	}

	cal := search.NewCalibrator()
	closed, err := cal.ClosedAngle(cfg)
	if err != nil {
		fail(err)
	}
	total, err := linkage.TotalRotation(closed, cfg)
	if err != nil {
		fail(err)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Closed angle:\t%.2f°\n", closed*180/math.Pi)
	fmt.Fprintf(w, "  Total rotation:\t%.3f°\n", total*180/math.Pi)
	fmt.Fprintf(w, "  Closure error:\t%.4f°\n", (total-2*math.Pi)*180/math.Pi)
	w.Flush()
}
