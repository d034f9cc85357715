// Package animation advances the fold angle over wall-clock time between
// the flat bound and the calibrated closed-ring bound. The host drives it
// with Tick; the scheduler never runs goroutines of its own and is safe to
// abandon between ticks.
package animation

import (
	"math"
	"time"

	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
	"github.com/DisruptivelyUseful/ringfold/pkg/search"
)

const (
	// TraversalDuration is the nominal time for one full sweep between the
	// bounds at speed 1.
	TraversalDuration = 8 * time.Second

	// BoundPause is the one-time dwell inserted when the fold reaches the
	// closed-ring bound.
	BoundPause = 1500 * time.Millisecond

	// closedEpsilon is how close to the closed bound counts as reaching it.
	closedEpsilon = 0.01
)

// State is the mutable playback record. It is owned by one Scheduler and
// never accessed concurrently.
type State struct {
	Angle     float64 // current fold angle, radians
	Direction int     // +1 folding toward closure, -1 extending
	Speed     float64 // playback multiplier, > 0
	Loop      bool    // hard reset to the opposite bound on arrival
	PingPong  bool    // flip direction on arrival
	StopAngle float64 // optional explicit upper bound; 0 means unset

	playing    bool
	clock      time.Duration // accumulated elapsed time
	pauseUntil time.Duration // deadline on clock; zero when not pausing
	atBound    bool          // arrival transition pending after the pause
}

// Scheduler owns one structure's animation state and its calibration cache.
type Scheduler struct {
	cfg   linkage.ModuleConfig
	cal   *search.Calibrator
	state State
}

// NewScheduler creates a stopped scheduler at the lower bound.
func NewScheduler(cfg linkage.ModuleConfig) *Scheduler {
	return &Scheduler{
		cfg: cfg,
		cal: search.NewCalibrator(),
		state: State{
			Angle:     linkage.MinFoldAngle,
			Direction: 1,
			Speed:     1,
		},
	}
}

// SetConfig swaps the structure being animated. The calibration cache is
// keyed structurally, so sweeping the fold angle or resizing beams does not
// trigger recalibration; only module count or pivot changes do.
func (s *Scheduler) SetConfig(cfg linkage.ModuleConfig) {
	s.cfg = cfg
	lo, hi := s.bounds()
	s.state.Angle = math.Min(hi, math.Max(lo, s.state.Angle))
}

// Angle returns the current fold angle.
func (s *Scheduler) Angle() float64 { return s.state.Angle }

// Playing reports whether the scheduler is advancing.
func (s *Scheduler) Playing() bool { return s.state.playing }

// Play starts advancing from the current angle.
func (s *Scheduler) Play() { s.state.playing = true }

// Stop halts without losing the current angle.
func (s *Scheduler) Stop() { s.state.playing = false }

// Toggle flips between Playing and Stopped and reports the new state.
func (s *Scheduler) Toggle() bool {
	s.state.playing = !s.state.playing
	return s.state.playing
}

// SetSpeed sets the playback multiplier. Non-positive values are ignored.
func (s *Scheduler) SetSpeed(speed float64) {
	if speed > 0 {
		s.state.Speed = speed
	}
}

// SetLoop enables hard-reset looping on arrival at a bound.
func (s *Scheduler) SetLoop(on bool) { s.state.Loop = on }

// SetPingPong enables direction flipping on arrival at a bound.
func (s *Scheduler) SetPingPong(on bool) { s.state.PingPong = on }

// SetStopAngle sets an explicit upper bound. The animation still never
// passes the calibrated closed angle, whichever is smaller. Zero clears it.
func (s *Scheduler) SetStopAngle(angle float64) { s.state.StopAngle = angle }

// bounds returns the active [lo, hi] fold window.
func (s *Scheduler) bounds() (lo, hi float64) {
	lo = linkage.MinFoldAngle
	hi = linkage.MaxFoldAngle
	if closed, err := s.cal.ClosedAngle(s.cfg); err == nil {
		hi = closed
	}
	if s.state.StopAngle > 0 && s.state.StopAngle < hi {
		hi = s.state.StopAngle
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Tick advances the animation by the measured elapsed wall-clock time and
// returns the new fold angle. Ticks during a bound pause are no-ops that
// keep the clock running. Irregular intervals are fine; the step is derived
// from elapsed time, not tick count.
func (s *Scheduler) Tick(elapsed time.Duration) float64 {
	s.state.clock += elapsed
	if !s.state.playing {
		return s.state.Angle
	}
	if s.state.pauseUntil > 0 {
		if s.state.clock < s.state.pauseUntil {
			return s.state.Angle
		}
		s.state.pauseUntil = 0
	}

	lo, hi := s.bounds()
	if s.state.atBound {
		s.state.atBound = false
		if !s.arrive(lo, hi, s.state.Direction > 0) {
			return s.state.Angle
		}
	}

	span := hi - lo
	if span <= 0 {
		s.state.Angle = lo
		return s.state.Angle
	}
	rate := span / (TraversalDuration.Seconds() / s.state.Speed)
	s.state.Angle += float64(s.state.Direction) * rate * elapsed.Seconds()

	if s.state.Direction > 0 && s.state.Angle >= hi {
		s.state.Angle = hi
		s.reached(lo, hi, true)
	} else if s.state.Direction < 0 && s.state.Angle <= lo {
		s.state.Angle = lo
		s.reached(lo, hi, false)
	}
	return s.state.Angle
}

// reached handles arrival at a bound. Arrival at the closed-ring bound
// inserts a one-time pause tracked as a clock deadline; the mode transition
// is deferred until the pause expires.
func (s *Scheduler) reached(lo, hi float64, upper bool) {
	closed, err := s.cal.ClosedAngle(s.cfg)
	if upper && err == nil && math.Abs(hi-closed) < closedEpsilon {
		s.state.pauseUntil = s.state.clock + BoundPause
		s.state.atBound = true
		return
	}
	s.arrive(lo, hi, upper)
}

// arrive applies the configured arrival semantics and reports whether
// playback continues.
func (s *Scheduler) arrive(lo, hi float64, upper bool) bool {
	switch {
	case s.state.PingPong:
		if upper {
			s.state.Direction = -1
		} else {
			s.state.Direction = 1
		}
	case s.state.Loop:
		if upper {
			s.state.Angle = lo
		} else {
			s.state.Angle = hi
		}
	default:
		s.state.playing = false
		return false
	}
	return true
}
