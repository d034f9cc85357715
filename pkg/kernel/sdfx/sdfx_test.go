package sdfx

import (
	"math"
	"testing"
)

func TestBoxBounds(t *testing.T) {
	k := New()
	s := k.Box(2, 4, 6)
	min, max := s.BoundingBox()

	want := [3]float64{1, 2, 3}
	for ax := 0; ax < 3; ax++ {
		if math.Abs(max[ax]-want[ax]) > 0.1 || math.Abs(min[ax]+want[ax]) > 0.1 {
			t.Errorf("axis %d: bounds [%v, %v], want ±%v", ax, min[ax], max[ax], want[ax])
		}
	}
}

// The cylinder axis must come out vertical after the backend's Z-to-Y
// remapping.
func TestCylinderAxisVertical(t *testing.T) {
	k := New()
	s := k.Cylinder(4, 0.5)
	min, max := s.BoundingBox()

	if ySpan := max[1] - min[1]; math.Abs(ySpan-4) > 0.1 {
		t.Errorf("y span = %v, want 4 (the height)", ySpan)
	}
	for _, ax := range []int{0, 2} {
		if span := max[ax] - min[ax]; math.Abs(span-1) > 0.1 {
			t.Errorf("axis %d span = %v, want 1 (the diameter)", ax, span)
		}
	}
}

func TestTranslateAndRotate(t *testing.T) {
	k := New()
	s := k.Box(2, 2, 2)
	s = k.Translate(s, 10, 0, 0)
	min, max := s.BoundingBox()
	if center := (min[0] + max[0]) / 2; math.Abs(center-10) > 0.1 {
		t.Errorf("translated center x = %v, want 10", center)
	}

	// A quarter turn about Y carries the +X offset onto -Z.
	s = k.RotateY(s, math.Pi/2)
	min, max = s.BoundingBox()
	if center := (min[2] + max[2]) / 2; math.Abs(center+10) > 0.2 {
		t.Errorf("rotated center z = %v, want -10", center)
	}
}

func TestToMesh(t *testing.T) {
	k := New()
	m, err := k.ToMesh(k.Box(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if m.TriangleCount() == 0 || m.VertexCount() != 3*m.TriangleCount() {
		t.Errorf("vertices = %d, triangles = %d, want unindexed triangle soup",
			m.VertexCount(), m.TriangleCount())
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals = %d floats, vertices = %d floats", len(m.Normals), len(m.Vertices))
	}
}

func TestDifference(t *testing.T) {
	k := New()
	block := k.Box(2, 2, 2)
	hole := k.Cylinder(4, 0.5)
	s := k.Difference(block, hole)

	min, max := s.BoundingBox()
	if span := max[0] - min[0]; math.Abs(span-2) > 0.2 {
		t.Errorf("x span after difference = %v, want the block's 2", span)
	}
}
