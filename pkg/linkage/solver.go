package linkage

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fold angle domain. Outside this window the scissor is effectively flat
// or fully folded and the linkage loses numerical meaning.
const (
	MinFoldAngle = 5 * math.Pi / 180
	MaxFoldAngle = 175 * math.Pi / 180
)

// domainSlack absorbs accumulated floating point error from callers that
// step the fold angle up to an exact bound.
const domainSlack = 1e-9

// JointResult is the solved state of one representative module for a given
// fold angle. Positions are in the module's entry-interface frame: the entry
// hinge pair is centered on the origin, the chord to the next module runs
// along +X, and Y is the vertical (stacking) axis. All positions lie in the
// plan (XZ) plane; vertical placement happens in assembly.
type JointResult struct {
	// RelativeRotation is the signed yaw increment, in radians, from this
	// module's frame to the next module's frame.
	RelativeRotation float64

	// Chord is the plan distance between consecutive interface midpoints.
	Chord float64

	// InterfaceWidth is the hinge-to-hinge span of one interface.
	InterfaceWidth float64

	// Pivot is the scissor crossing point.
	Pivot mgl64.Vec3

	// Hinge nodes of the entry and exit interfaces. Vertical struts attach
	// at these points. "Outer" is the short-arm node, which faces outward
	// from the ring center when the pivot sits below 50%.
	EntryOuter, EntryInner mgl64.Vec3
	ExitOuter, ExitInner   mgl64.Vec3

	// Unit plan directions of the two crossing bars. The top-ring bar runs
	// along TopAxis from EntryOuter to ExitInner; the bottom-ring bar runs
	// along BottomAxis from EntryInner to ExitOuter.
	TopAxis, BottomAxis mgl64.Vec3

	// Active-length midpoints of the two bars.
	TopCenter, BottomCenter mgl64.Vec3
}

// SolveJoint solves the planar scissor element for one fold angle.
//
// The module is modeled as a scissor-like element: two bars of equal active
// length cross at a pivot placed at PivotPct along the bar, hinged to the
// neighboring modules at their ends. The fold angle is the included angle on
// the interface side of the crossing; increasing it curls the chain. The
// derivation reduces to
//
//	dTheta = 2*atan2((1-2p)*sin(phi/2 + pivotAngle), cos(phi/2 + pivotAngle)) + 2*hobermanAngle
//
// which is continuous and monotonic in phi across the whole domain for a
// fixed config. A centered pivot (p = 0.5) yields a straight chain unless a
// Hoberman bias is applied.
func SolveJoint(foldAngle float64, cfg ModuleConfig) (JointResult, error) {
	if err := cfg.Validate(); err != nil {
		return JointResult{}, err
	}
	if foldAngle < MinFoldAngle-domainSlack || foldAngle > MaxFoldAngle+domainSlack {
		return JointResult{}, &AngleError{Angle: foldAngle, Min: MinFoldAngle, Max: MaxFoldAngle}
	}

	p := cfg.PivotPct / 100
	l := cfg.ActiveLength()

	half := foldAngle/2 + cfg.PivotAngle
	c := math.Sin(half) // plan projection of a bar onto the chord axis
	s := math.Cos(half) // plan projection onto the interface axis

	dTheta := 2*math.Atan2((1-2*p)*c, s) + 2*cfg.HobermanAngle

	lc := l * c
	ls := l * s

	res := JointResult{
		RelativeRotation: dTheta,
		Chord:            lc,
		InterfaceWidth:   l * math.Hypot(c*(2*p-1), s),
		Pivot:            mgl64.Vec3{lc / 2, 0, -ls * (1 - 2*p) / 2},
		EntryOuter:       mgl64.Vec3{lc * (1 - 2*p) / 2, 0, -ls / 2},
		EntryInner:       mgl64.Vec3{lc * (2*p - 1) / 2, 0, ls / 2},
		ExitOuter:        mgl64.Vec3{lc * (1 + 2*p) / 2, 0, -ls / 2},
		ExitInner:        mgl64.Vec3{lc * (3 - 2*p) / 2, 0, ls / 2},
		TopAxis:          mgl64.Vec3{c, 0, s},
		BottomAxis:       mgl64.Vec3{c, 0, -s},
		TopCenter:        mgl64.Vec3{lc * (1 - p), 0, 0},
		BottomCenter:     mgl64.Vec3{lc * p, 0, 0},
	}
	return res, nil
}

// TotalRotation is the cumulative yaw of the full chain at the given fold
// angle: RelativeRotation times the module count. The ring closes when this
// reaches exactly 2*pi.
func TotalRotation(foldAngle float64, cfg ModuleConfig) (float64, error) {
	res, err := SolveJoint(foldAngle, cfg)
	if err != nil {
		return 0, err
	}
	return res.RelativeRotation * float64(cfg.ModuleCount), nil
}
