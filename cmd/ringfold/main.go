package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

// Structure flags shared by every subcommand.
var (
	flagModules       int
	flagHLength       float64
	flagVLength       float64
	flagPivotPct      float64
	flagHobermanAngle float64
	flagPivotAngle    float64
	flagHStack        int
	flagVStack        int
	flagBeamWidth     float64
	flagBeamThickness float64
	flagEndOffset     float64
	flagStackGap      float64
	flagArch          bool
)

var rootCmd = &cobra.Command{
	Use:   "ringfold",
	Short: "Deployable scissor-ring structure calculator",
	Long: `ringfold - parametric deployable ring structures

Solves the kinematics of scissor-hinged ring and arch structures,
assembles their beam geometry at a given fold angle, checks the
result for beam collisions, and exports triangle meshes.

Use 'ringfold --help' to see available commands.`,
}

func init() {
	def := linkage.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagModules, "modules", def.ModuleCount, "Number of scissor modules in the chain")
	pf.Float64Var(&flagHLength, "h-length", def.HorizontalLength, "Horizontal beam length (ft)")
	pf.Float64Var(&flagVLength, "v-length", def.VerticalLength, "Vertical strut length (ft)")
	pf.Float64Var(&flagPivotPct, "pivot-pct", def.PivotPct, "Pivot position along the beam (percent)")
	pf.Float64Var(&flagHobermanAngle, "hoberman-angle", 0, "Hoberman bend per joint (degrees)")
	pf.Float64Var(&flagPivotAngle, "pivot-angle", 0, "Pivot skew angle (degrees)")
	pf.IntVar(&flagHStack, "h-stack", def.HStackCount, "Horizontal laminations per beam")
	pf.IntVar(&flagVStack, "v-stack", def.VStackCount, "Vertical laminations per strut")
	pf.Float64Var(&flagBeamWidth, "beam-width", def.BeamWidth, "Beam width (ft)")
	pf.Float64Var(&flagBeamThickness, "beam-thickness", def.BeamThickness, "Lamination thickness (ft)")
	pf.Float64Var(&flagEndOffset, "end-offset", def.EndOffset, "Beam overhang past the end joints (ft)")
	pf.Float64Var(&flagStackGap, "stack-gap", def.StackGap, "Gap between laminations (ft)")
	pf.BoolVar(&flagArch, "arch", false, "Build an open arch instead of a closed ring")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// buildConfig assembles a validated ModuleConfig from the global flags.
func buildConfig() (linkage.ModuleConfig, error) {
	cfg := linkage.DefaultConfig()
	cfg.ModuleCount = flagModules
	cfg.HorizontalLength = flagHLength
	cfg.VerticalLength = flagVLength
	cfg.PivotPct = flagPivotPct
	cfg.HobermanAngle = flagHobermanAngle * math.Pi / 180
	cfg.PivotAngle = flagPivotAngle * math.Pi / 180
	cfg.HStackCount = flagHStack
	cfg.VStackCount = flagVStack
	cfg.BeamWidth = flagBeamWidth
	cfg.BeamThickness = flagBeamThickness
	cfg.EndOffset = flagEndOffset
	cfg.StackGap = flagStackGap
	if flagArch {
		cfg.Orientation = linkage.OrientArch
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
