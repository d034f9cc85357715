package linkage

import "fmt"

// AngleError reports a fold angle outside the solvable domain.
// Callers are expected to clamp user input before solving; an AngleError
// is a caller bug, not a recoverable geometry state.
type AngleError struct {
	Angle float64 // offending angle in radians
	Min   float64
	Max   float64
}

func (e *AngleError) Error() string {
	return fmt.Sprintf("fold angle %.4f rad outside domain [%.4f, %.4f]",
		e.Angle, e.Min, e.Max)
}

// ConfigError reports a degenerate module configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}
