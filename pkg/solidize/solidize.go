// Package solidize walks an assembled structure and produces one triangle
// mesh per element using a geometry kernel. It is a pure consumer of the
// assembly output, the same role a renderer plays.
package solidize

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/DisruptivelyUseful/ringfold/pkg/assembly"
	"github.com/DisruptivelyUseful/ringfold/pkg/kernel"
)

// pivotHoleRadius is the clearance hole drilled through ring bars at their
// hinge points when drilling is enabled.
const pivotHoleRadius = 0.05

// boltHeadScale sizes the pin head relative to the shaft.
const (
	boltHeadScale  = 2.5
	boltHeadHeight = 0.06
)

// Options tunes mesh generation.
type Options struct {
	// DrillPivots subtracts hinge-pin clearance holes from ring bars.
	DrillPivots bool
}

// Meshes builds one mesh per beam, bracket and bolt of the structure.
// Meshes carry the element's base color and a stable label of the form
// "module-03/horizontal-top/1".
func Meshes(geom *assembly.StructureGeometry, k kernel.Kernel, opts Options) ([]*kernel.Mesh, error) {
	if geom == nil {
		return nil, nil
	}

	meshes := make([]*kernel.Mesh, 0, len(geom.Beams)+len(geom.Brackets)+len(geom.Bolts))

	for _, b := range geom.Beams {
		s := beamSolid(k, b)
		if opts.DrillPivots && b.Role != assembly.StackVertical {
			s = drillHinges(k, s, b)
		}
		m, err := k.ToMesh(s)
		if err != nil {
			return nil, fmt.Errorf("solidize: beam %s of module %d: %w", b.Role, b.Module, err)
		}
		m.Label = fmt.Sprintf("module-%02d/%s/%d", b.Module, b.Role, b.Lamination)
		m.Color = b.Color
		meshes = append(meshes, m)
	}

	for i, br := range geom.Brackets {
		s := k.Box(2*br.HalfExtent.X(), 2*br.HalfExtent.Y(), 2*br.HalfExtent.Z())
		s = k.Translate(s, br.Center.X(), br.Center.Y(), br.Center.Z())
		m, err := k.ToMesh(s)
		if err != nil {
			return nil, fmt.Errorf("solidize: bracket %d: %w", i, err)
		}
		m.Label = fmt.Sprintf("module-%02d/bracket/%d", br.Module, i%2)
		m.Color = br.Color
		meshes = append(meshes, m)
	}

	for _, bolt := range geom.Bolts {
		m, err := k.ToMesh(boltSolid(k, bolt))
		if err != nil {
			return nil, fmt.Errorf("solidize: bolt of module %d: %w", bolt.Module, err)
		}
		m.Label = fmt.Sprintf("module-%02d/bolt", bolt.Module)
		m.Color = bolt.Color
		meshes = append(meshes, m)
	}

	return meshes, nil
}

// beamSolid rebuilds a beam's oriented box from its corner set: edge 0→1 is
// the long axis, 0→3 the width, 0→4 the height.
func beamSolid(k kernel.Kernel, b assembly.Beam) kernel.Solid {
	along := b.Corners[1].Sub(b.Corners[0])
	across := b.Corners[3].Sub(b.Corners[0])
	height := b.Corners[4].Y() - b.Corners[0].Y()

	s := k.Box(along.Len(), height, across.Len())
	s = k.RotateY(s, yawOf(along))
	return k.Translate(s, b.Center.X(), b.Center.Y(), b.Center.Z())
}

// drillHinges subtracts a vertical clearance hole at each hinge point.
func drillHinges(k kernel.Kernel, s kernel.Solid, b assembly.Beam) kernel.Solid {
	height := 2 * (b.Corners[4].Y() - b.Corners[0].Y())
	for _, p := range b.PivotEnds {
		hole := k.Cylinder(height, pivotHoleRadius)
		hole = k.Translate(hole, p.X(), p.Y(), p.Z())
		s = k.Difference(s, hole)
	}
	return s
}

// boltSolid is a pin shaft with a wider head, built as a union so the pin
// renders as one element.
func boltSolid(k kernel.Kernel, bolt assembly.Bolt) kernel.Solid {
	shaft := k.Cylinder(bolt.Height, bolt.Radius)
	head := k.Cylinder(boltHeadHeight, bolt.Radius*boltHeadScale)
	head = k.Translate(head, 0, bolt.Height/2+boltHeadHeight/2, 0)
	s := k.Union(shaft, head)
	return k.Translate(s, bolt.Center.X(), bolt.Center.Y(), bolt.Center.Z())
}

// yawOf returns the RotateY angle that maps +X onto the plan direction of v.
func yawOf(v mgl64.Vec3) float64 {
	if v.X() == 0 && v.Z() == 0 {
		return 0
	}
	return math.Atan2(-v.Z(), v.X())
}
