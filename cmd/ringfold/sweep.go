package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DisruptivelyUseful/ringfold/pkg/search"
)

var (
	sweepFrom float64
	sweepTo   float64
	sweepStep float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Report collision counts across a fold-angle range",
	Long: `Assemble the structure at each angle in a range and count the
collisions found, printing one row per sample. Useful for locating the
safe operating band of a configuration.

Example:
  ringfold sweep --from 120 --to 140 --step 0.5`,
	Run: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 10, "Start angle (degrees)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 170, "End angle (degrees)")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 5, "Step size (degrees)")
}

func runSweep(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fail(err)
	}

	deg := math.Pi / 180
	points, err := search.Sweep(cfg, sweepFrom*deg, sweepTo*deg, sweepStep*deg)
	if err != nil {
		fail(err)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Angle\tCollisions")
	for _, p := range points {
		marker := ""
		if p.Collisions > 0 {
			marker = " ✗"
		}
		fmt.Fprintf(w, "  %.1f°\t%d%s\n", p.Angle/deg, p.Collisions, marker)
	}
	w.Flush()
}
