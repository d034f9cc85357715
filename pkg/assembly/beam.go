// Package assembly places every beam of a scissor ring or arch in world
// space from a single solved joint. Its output is a value-typed geometry
// snapshot; nothing here is mutated after Assemble returns.
package assembly

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// StackRole identifies the structural slot a beam occupies.
type StackRole int

const (
	StackHorizontalTop    StackRole = iota // top-ring scissor bar
	StackHorizontalBottom                  // bottom-ring scissor bar
	StackVertical                          // hinge-line strut
)

func (r StackRole) String() string {
	switch r {
	case StackHorizontalTop:
		return "horizontal-top"
	case StackHorizontalBottom:
		return "horizontal-bottom"
	case StackVertical:
		return "vertical"
	default:
		return fmt.Sprintf("StackRole(%d)", int(r))
	}
}

// Base display colors per slot, assigned at assembly time so downstream
// renderers get stable colors without re-deriving roles.
var roleColors = map[StackRole]string{
	StackHorizontalTop:    "#4A90D9",
	StackHorizontalBottom: "#E67E22",
	StackVertical:         "#2ECC71",
}

const (
	bracketColor = "#9B59B6"
	boltColor    = "#95A5A6"
)

// Beam is one rigid box of the assembled structure. Beams are value objects
// recomputed on every solve and never mutated in place.
type Beam struct {
	// Corners holds the eight box vertices: the four corners of the lower
	// face counterclockwise, then the upper face in the same order.
	Corners [8]mgl64.Vec3

	Module     int       // owning module index
	Role       StackRole // structural slot
	Lamination int       // replicate index within the slot

	// PivotEnds are the two hinge points this beam spans.
	PivotEnds [2]mgl64.Vec3

	Center mgl64.Vec3
	Color  string
}

// Bounds returns the axis-aligned extent of the beam.
func (b Beam) Bounds() (min, max mgl64.Vec3) {
	min, max = b.Corners[0], b.Corners[0]
	for _, c := range b.Corners[1:] {
		for ax := 0; ax < 3; ax++ {
			if c[ax] < min[ax] {
				min[ax] = c[ax]
			}
			if c[ax] > max[ax] {
				max[ax] = c[ax]
			}
		}
	}
	return min, max
}

// Length is the beam's own long-axis extent.
func (b Beam) Length() float64 {
	return b.Corners[1].Sub(b.Corners[0]).Len()
}

// Bracket is a small fixed box seated at a scissor pivot.
type Bracket struct {
	Center     mgl64.Vec3
	HalfExtent mgl64.Vec3
	Module     int
	Color      string
}

// Bolt is the pivot pin, modeled as a vertical cylinder through the
// crossing point of both rings.
type Bolt struct {
	Center mgl64.Vec3 // mid-height of the pin
	Radius float64
	Height float64
	Module int
	Color  string
}

// SurfaceFace is an outward quad suitable for downstream panel placement.
type SurfaceFace struct {
	Quad   [4]mgl64.Vec3
	Normal mgl64.Vec3
	Module int
}

// StructureGeometry is the full output of one solve. It is owned by the
// caller that requested it and safe to read from anywhere.
type StructureGeometry struct {
	Beams    []Beam
	Brackets []Bracket
	Bolts    []Bolt
	Faces    []SurfaceFace

	// RelativeRotation is the per-module yaw increment this geometry was
	// assembled with; collision detection derives the total ring rotation
	// from it.
	RelativeRotation float64
	FoldAngle        float64
	ModuleCount      int
}
