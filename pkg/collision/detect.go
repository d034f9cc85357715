// Package collision derives self-interference facts from an assembled
// structure. It depends only on the shape of the assembly output, never on
// the assembler itself, so hand-built geometry is as valid an input as a
// solved one.
package collision

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"

	"github.com/DisruptivelyUseful/ringfold/pkg/assembly"
	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

// Cause classifies why two beams interfere.
type Cause string

const (
	// CauseVerticalHorizontal marks a strut passing through a ring bar.
	CauseVerticalHorizontal Cause = "vertical-horizontal"
	// CauseOverFolding marks non-adjacent ring bars driven into each other.
	CauseOverFolding Cause = "over-folding"
	// CauseGeometricOverfold marks a fold angle at which the cumulative
	// rotation exceeds a full turn; the ring cannot close regardless of
	// exact beam placement.
	CauseGeometricOverfold Cause = "geometric-overfold"
)

// Collision is a derived fact about one beam pair. A and B index into the
// geometry's beam list; collisions are recomputed on every call and never
// persisted.
type Collision struct {
	A, B   int
	Cause  Cause
	Detail string // human-readable magnitude, e.g. rotation excess in degrees
}

// Detection thresholds. The overlap thresholds discard the grazing contact
// that hinged beams legitimately have at their shared joints; the angular
// heuristic constants are empirical and tunable (see package tests).
const (
	overfoldTolerance = 5 * math.Pi / 180 // slack past a full turn

	minOverlapVolume float32 = 0.25 // cubic length units
	minOverlapSize   float32 = 0.5  // largest overlap dimension

	// Pass-3 near-miss heuristic: thin bars can pass arbitrarily close
	// without a box overlap at coarse angle sampling.
	angularProximityFrac = 0.30 // fraction of expected module spacing
	centerDistanceFrac   = 0.80 // fraction of beam length
)

// Detector runs the interference passes. The zero value is ready to use;
// AABBTests counts box intersection tests for instrumentation.
type Detector struct {
	AABBTests int
}

// Detect classifies pairwise interference in three passes: a global
// over-fold check that short-circuits everything else, strut/ring box
// overlap, and over-folding between non-adjacent ring bars. Empty geometry
// is trivially collision-free.
func (d *Detector) Detect(geom *assembly.StructureGeometry, cfg linkage.ModuleConfig) []Collision {
	if geom == nil || len(geom.Beams) == 0 {
		return nil
	}

	if out := d.overfoldPass(geom); out != nil {
		return out
	}

	boxes := make([]cube.BBox, len(geom.Beams))
	vertical := make([]bool, len(geom.Beams))
	for i, b := range geom.Beams {
		boxes[i] = beamBox(b)
		vertical[i] = isVertical(boxes[i])
	}

	var out []Collision
	out = append(out, d.strutPass(geom, boxes, vertical)...)
	out = append(out, d.overlapPass(geom, cfg, boxes, vertical)...)
	return out
}

// Detect runs the three interference passes with a throwaway Detector.
func Detect(geom *assembly.StructureGeometry, cfg linkage.ModuleConfig) []Collision {
	var d Detector
	return d.Detect(geom, cfg)
}

// overfoldPass synthesizes collisions when the cumulative chain rotation
// exceeds a full turn plus tolerance. No finer check is meaningful once the
// ring mathematically cannot close, so it returns immediately on a hit.
func (d *Detector) overfoldPass(geom *assembly.StructureGeometry) []Collision {
	total := math.Abs(geom.RelativeRotation) * float64(geom.ModuleCount)
	excess := total - 2*math.Pi
	if excess <= overfoldTolerance {
		return nil
	}

	detail := fmt.Sprintf("rotation exceeds full turn by %.1f°", excess*180/math.Pi)
	var out []Collision
	last := geom.ModuleCount - 1
	for i, a := range geom.Beams {
		if a.Module != 0 || a.Role == assembly.StackVertical {
			continue
		}
		for j, b := range geom.Beams {
			if b.Module != last || b.Role != a.Role {
				continue
			}
			out = append(out, Collision{A: i, B: j, Cause: CauseGeometricOverfold, Detail: detail})
		}
	}
	if len(out) == 0 && len(geom.Beams) >= 2 {
		// No horizontal beams to pair; fall back to the first two beams.
		out = append(out, Collision{A: 0, B: 1, Cause: CauseGeometricOverfold, Detail: detail})
	}
	return out
}

// strutPass reports struts passing through ring bars.
func (d *Detector) strutPass(geom *assembly.StructureGeometry, boxes []cube.BBox, vertical []bool) []Collision {
	var out []Collision
	for i := range geom.Beams {
		if !vertical[i] {
			continue
		}
		for j := range geom.Beams {
			if vertical[j] {
				continue
			}
			if ok, dims := d.overlaps(boxes[i], boxes[j]); ok {
				out = append(out, Collision{
					A: i, B: j,
					Cause:  CauseVerticalHorizontal,
					Detail: fmt.Sprintf("overlap %.2f×%.2f×%.2f", dims[0], dims[1], dims[2]),
				})
			}
		}
	}
	return out
}

// overlapPass reports over-folding between ring bars of non-adjacent
// modules. Adjacent modules (including the wrap pair in ring mode) share
// hinges and are always exempt.
func (d *Detector) overlapPass(geom *assembly.StructureGeometry, cfg linkage.ModuleConfig, boxes []cube.BBox, vertical []bool) []Collision {
	n := geom.ModuleCount
	expected := 2 * math.Pi / float64(n)
	wrap := cfg.Orientation == linkage.OrientRing

	var out []Collision
	for i := range geom.Beams {
		if vertical[i] {
			continue
		}
		for j := i + 1; j < len(geom.Beams); j++ {
			if vertical[j] {
				continue
			}
			a, b := geom.Beams[i], geom.Beams[j]
			if adjacent(a.Module, b.Module, n, wrap) {
				continue
			}
			// Same ring level only.
			if boxes[i].Max().Y() < boxes[j].Min().Y() || boxes[j].Max().Y() < boxes[i].Min().Y() {
				continue
			}

			if ok, dims := d.overlaps(boxes[i], boxes[j]); ok {
				out = append(out, Collision{
					A: i, B: j,
					Cause:  CauseOverFolding,
					Detail: fmt.Sprintf("overlap %.2f×%.2f×%.2f", dims[0], dims[1], dims[2]),
				})
				continue
			}

			// Secondary angular-proximity heuristic for near misses.
			angA := math.Atan2(a.Center.Z(), a.Center.X())
			angB := math.Atan2(b.Center.Z(), b.Center.X())
			sep := math.Abs(wrapAngle(angA - angB))
			if sep >= angularProximityFrac*expected {
				continue
			}
			dist := a.Center.Sub(b.Center).Len()
			limit := centerDistanceFrac * math.Max(a.Length(), b.Length())
			if dist < limit {
				out = append(out, Collision{
					A: i, B: j,
					Cause:  CauseOverFolding,
					Detail: fmt.Sprintf("angular separation %.1f° at %.2f distance", sep*180/math.Pi, dist),
				})
			}
		}
	}
	return out
}

// overlaps tests two boxes and applies the volume and size thresholds.
// It returns the overlap dimensions for reporting.
func (d *Detector) overlaps(a, b cube.BBox) (bool, [3]float32) {
	d.AABBTests++
	if !a.IntersectsWith(b) {
		return false, [3]float32{}
	}
	var dims [3]float32
	var volume float32 = 1
	var largest float32
	for ax := 0; ax < 3; ax++ {
		lo := math32.Max(a.Min()[ax], b.Min()[ax])
		hi := math32.Min(a.Max()[ax], b.Max()[ax])
		dims[ax] = hi - lo
		volume *= dims[ax]
		largest = math32.Max(largest, dims[ax])
	}
	return volume > minOverlapVolume && largest > minOverlapSize, dims
}

// beamBox computes the axis-aligned bounding box of a beam.
func beamBox(b assembly.Beam) cube.BBox {
	min, max := b.Bounds()
	return cube.Box(
		float32(min.X()), float32(min.Y()), float32(min.Z()),
		float32(max.X()), float32(max.Y()), float32(max.Z()),
	)
}

// isVertical classifies a beam as a strut when its vertical span exceeds
// half its largest horizontal extent.
func isVertical(box cube.BBox) bool {
	ySpan := box.Max().Y() - box.Min().Y()
	xSpan := box.Max().X() - box.Min().X()
	zSpan := box.Max().Z() - box.Min().Z()
	return ySpan > math32.Max(xSpan, zSpan)/2
}

// adjacent reports whether two module indices are neighbors, including the
// wrap pair when the chain closes.
func adjacent(a, b, count int, wrap bool) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff <= 1 {
		return true
	}
	return wrap && diff == count-1
}

// wrapAngle maps an angle difference into (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
