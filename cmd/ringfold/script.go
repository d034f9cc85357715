package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/DisruptivelyUseful/ringfold/pkg/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Evaluate a structure script",
	Long: `Evaluate a Lisp structure script and report the resulting
configuration, fold state and collisions.

A script describes a structure and optionally folds it:

  ; ten-module arch, nearly closed
  (structure :modules 10 :pivot-pct 40 :arch true)
  (fold 130)

Example:
  ringfold script ring.rfl`,
	Args: cobra.ExactArgs(1),
	Run:  runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fail(err)
	}

	eng := script.NewEngine()
	res, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		fail(err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintln(os.Stderr, "script:", e.Error())
		}
		os.Exit(1)
	}

	cfg := res.Config
	fmt.Printf("structure: %d modules, pivot %.1f%%, %s\n",
		cfg.ModuleCount, cfg.PivotPct, cfg.Orientation)
	if !res.FoldSet {
		fmt.Println("no fold angle set")
		return
	}
	fmt.Printf("fold: %.2f°  beams: %d  collisions: %d\n",
		res.FoldAngle*180/math.Pi, len(res.Geometry.Beams), len(res.Collisions))
	for _, c := range res.Collisions {
		fmt.Printf("  beam %d ↔ beam %d  [%s] %s\n", c.A, c.B, c.Cause, c.Detail)
	}
}
