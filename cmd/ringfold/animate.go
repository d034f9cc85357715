package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/DisruptivelyUseful/ringfold/pkg/animation"
)

var (
	animSeconds  float64
	animSpeed    float64
	animFPS      int
	animLoop     bool
	animPingPong bool
)

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Print fold angles for an unfold animation",
	Long: `Run the animation scheduler for a fixed duration and print the fold
angle at each frame. The structure folds from fully open toward its
closed angle, pausing at the bounds.

Example:
  ringfold animate --seconds 10 --fps 4 --ping-pong`,
	Run: runAnimate,
}

func init() {
	rootCmd.AddCommand(animateCmd)

	animateCmd.Flags().Float64Var(&animSeconds, "seconds", 10, "Simulated duration")
	animateCmd.Flags().Float64Var(&animSpeed, "speed", 1, "Playback speed multiplier")
	animateCmd.Flags().IntVar(&animFPS, "fps", 4, "Frames per simulated second")
	animateCmd.Flags().BoolVar(&animLoop, "loop", false, "Restart from the open angle at the closed bound")
	animateCmd.Flags().BoolVar(&animPingPong, "ping-pong", false, "Reverse direction at each bound")
	animateCmd.MarkFlagsMutuallyExclusive("loop", "ping-pong")
}

func runAnimate(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fail(err)
	}

	sched := animation.NewScheduler(cfg)
	sched.SetSpeed(animSpeed)
	sched.SetLoop(animLoop)
	sched.SetPingPong(animPingPong)
	sched.Play()

	frame := time.Second / time.Duration(animFPS)
	frames := int(animSeconds * float64(animFPS))
	for i := 0; i <= frames; i++ {
		angle := sched.Tick(frame)
		fmt.Printf("t=%5.2fs  fold=%7.2f°\n", float64(i)*frame.Seconds(), angle*180/math.Pi)
		if !sched.Playing() {
			break
		}
	}
}
