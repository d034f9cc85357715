package linkage

import "math"

// Orientation selects how the module chain terminates.
type Orientation int

const (
	OrientRing Orientation = iota // chain wraps, module N-1 meets module 0
	OrientArch                    // chain terminates, no wrap
)

func (o Orientation) String() string {
	switch o {
	case OrientRing:
		return "ring"
	case OrientArch:
		return "arch"
	default:
		return "unknown"
	}
}

// ModuleConfig is the immutable parameter set for one structure.
// It is passed by value into every solve; nothing in the core mutates it.
// Lengths are in feet, angles in radians.
type ModuleConfig struct {
	ModuleCount      int         // repeating units around the ring, >= 3
	HorizontalLength float64     // full drawn bar length
	VerticalLength   float64     // base height of the top ring above the bottom ring
	PivotPct         float64     // scissor crossing position, percent of active length, (0, 100)
	HobermanAngle    float64     // fold-independent curvature bias
	PivotAngle       float64     // included-angle bias
	HStackCount      int         // laminations per horizontal beam slot, >= 2
	VStackCount      int         // laminations per vertical strut slot, >= 2
	BeamWidth        float64     // cross-section width
	BeamThickness    float64     // cross-section thickness
	EndOffset        float64     // bar overhang beyond each hinge
	StackGap         float64     // gap between laminations
	Orientation      Orientation
}

// DefaultConfig returns the documented known-valid reference configuration:
// eight modules, 8 ft bars, pivot at 41.5%, no bias angles.
func DefaultConfig() ModuleConfig {
	return ModuleConfig{
		ModuleCount:      8,
		HorizontalLength: 8,
		VerticalLength:   3,
		PivotPct:         41.5,
		HobermanAngle:    0,
		PivotAngle:       0,
		HStackCount:      2,
		VStackCount:      2,
		BeamWidth:        0.3,
		BeamThickness:    0.125,
		EndOffset:        0.25,
		StackGap:         0.02,
		Orientation:      OrientRing,
	}
}

// ActiveLength is the hinge-to-hinge bar length that participates in the
// linkage, excluding the end overhangs.
func (c ModuleConfig) ActiveLength() float64 {
	return c.HorizontalLength - 2*c.EndOffset
}

// StackSpan is the total height of one laminated horizontal slot.
func (c ModuleConfig) StackSpan() float64 {
	return float64(c.HStackCount)*c.BeamThickness + float64(c.HStackCount-1)*c.StackGap
}

// Validate checks the configuration for degenerate values. It returns nil
// when the config is solvable. All findings are *ConfigError values.
func (c ModuleConfig) Validate() error {
	if c.ModuleCount < 3 {
		return &ConfigError{Field: "ModuleCount", Reason: "must be at least 3"}
	}
	if c.PivotPct <= 0 || c.PivotPct >= 100 {
		// A pivot at either bar end collapses one scissor arm to a point.
		return &ConfigError{Field: "PivotPct", Reason: "must be strictly between 0 and 100"}
	}
	if c.ActiveLength() <= 0 {
		return &ConfigError{Field: "HorizontalLength", Reason: "active length (length minus end offsets) must be positive"}
	}
	if c.VerticalLength <= c.StackSpan() {
		return &ConfigError{Field: "VerticalLength", Reason: "must exceed the horizontal stack span"}
	}
	if c.HStackCount < 2 {
		return &ConfigError{Field: "HStackCount", Reason: "must be at least 2"}
	}
	if c.VStackCount < 2 {
		return &ConfigError{Field: "VStackCount", Reason: "must be at least 2"}
	}
	if c.BeamWidth <= 0 || c.BeamThickness <= 0 {
		return &ConfigError{Field: "BeamWidth", Reason: "cross-section dimensions must be positive"}
	}
	if c.StackGap < 0 {
		return &ConfigError{Field: "StackGap", Reason: "must not be negative"}
	}
	if math.Abs(c.PivotAngle) >= math.Pi/4 {
		return &ConfigError{Field: "PivotAngle", Reason: "bias must stay below 45 degrees"}
	}
	return nil
}
