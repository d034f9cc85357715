package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/DisruptivelyUseful/ringfold/pkg/assembly"
	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

// boxBeam hand-builds an axis-aligned beam for pass-level tests, corners in
// the assembly convention: lower face counterclockwise, then upper.
func boxBeam(module int, role assembly.StackRole, min, max mgl64.Vec3) assembly.Beam {
	b := assembly.Beam{
		Module: module,
		Role:   role,
		Center: min.Add(max).Mul(0.5),
	}
	b.Corners = [8]mgl64.Vec3{
		{min.X(), min.Y(), min.Z()},
		{max.X(), min.Y(), min.Z()},
		{max.X(), min.Y(), max.Z()},
		{min.X(), min.Y(), max.Z()},
		{min.X(), max.Y(), min.Z()},
		{max.X(), max.Y(), min.Z()},
		{max.X(), max.Y(), max.Z()},
		{min.X(), max.Y(), max.Z()},
	}
	return b
}

func assembleAt(t *testing.T, angle float64, cfg linkage.ModuleConfig) *assembly.StructureGeometry {
	t.Helper()
	geom, err := assembly.Assemble(angle, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return geom
}

// The reference ring is collision-free across its working range, including
// at its closed angle. Hinged beams touch at their shared joints; the
// thresholds must not report that contact.
func TestDetectReferenceRingSafe(t *testing.T) {
	cfg := linkage.DefaultConfig()
	for _, d := range []float64{90.0, 120, 135.4} {
		geom := assembleAt(t, deg(d), cfg)
		if hits := Detect(geom, cfg); len(hits) != 0 {
			t.Errorf("%v°: got %d collisions, want none (first: %+v)", d, len(hits), hits[0])
		}
	}
}

// Past the closed angle the cumulative rotation exceeds a full turn and the
// detector short-circuits: only synthetic overfold pairs, no box tests.
func TestDetectOverfoldShortCircuit(t *testing.T) {
	cfg := linkage.DefaultConfig()
	geom := assembleAt(t, deg(150), cfg)

	det := &Detector{}
	hits := det.Detect(geom, cfg)

	if len(hits) == 0 {
		t.Fatal("got no collisions, want geometric overfold")
	}
	// 4 horizontal bars of module 0, each paired with the 2 same-role bars
	// of the last module.
	if len(hits) != 8 {
		t.Errorf("got %d collisions, want 8", len(hits))
	}
	for _, h := range hits {
		if h.Cause != CauseGeometricOverfold {
			t.Fatalf("cause = %q, want %q", h.Cause, CauseGeometricOverfold)
		}
		a, b := geom.Beams[h.A], geom.Beams[h.B]
		if a.Module != 0 || b.Module != cfg.ModuleCount-1 || a.Role != b.Role {
			t.Fatalf("pair %d/%d: modules %d/%d roles %v/%v", h.A, h.B, a.Module, b.Module, a.Role, b.Role)
		}
	}
	if det.AABBTests != 0 {
		t.Errorf("AABBTests = %d, want 0 after short-circuit", det.AABBTests)
	}
}

func TestDetectOverfoldFallbackPair(t *testing.T) {
	// Struts only; the pass cannot form horizontal pairs and must still
	// report something.
	geom := &assembly.StructureGeometry{
		Beams: []assembly.Beam{
			boxBeam(0, assembly.StackVertical, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.3, 3, 0.3}),
			boxBeam(3, assembly.StackVertical, mgl64.Vec3{5, 0, 0}, mgl64.Vec3{5.3, 3, 0.3}),
		},
		RelativeRotation: 2.0,
		ModuleCount:      4,
	}
	hits := Detect(geom, linkage.DefaultConfig())
	if len(hits) != 1 || hits[0].A != 0 || hits[0].B != 1 || hits[0].Cause != CauseGeometricOverfold {
		t.Fatalf("got %+v, want one geometric-overfold pair (0, 1)", hits)
	}
}

func TestDetectStrutThroughBar(t *testing.T) {
	geom := &assembly.StructureGeometry{
		Beams: []assembly.Beam{
			boxBeam(0, assembly.StackHorizontalBottom, mgl64.Vec3{-4, 0, -0.5}, mgl64.Vec3{4, 1, 0.5}),
			boxBeam(2, assembly.StackVertical, mgl64.Vec3{-0.5, -3, -0.5}, mgl64.Vec3{0.5, 3, 0.5}),
		},
		ModuleCount: 4,
	}
	det := &Detector{}
	hits := det.Detect(geom, linkage.DefaultConfig())

	if len(hits) != 1 {
		t.Fatalf("got %d collisions, want 1: %+v", len(hits), hits)
	}
	if hits[0].Cause != CauseVerticalHorizontal {
		t.Errorf("cause = %q, want %q", hits[0].Cause, CauseVerticalHorizontal)
	}
	if det.AABBTests == 0 {
		t.Error("AABBTests = 0, want box tests to have run")
	}
}

// Grazing joint contact between a strut and its bar stays under the volume
// and size thresholds.
func TestDetectGrazingContactIgnored(t *testing.T) {
	geom := &assembly.StructureGeometry{
		Beams: []assembly.Beam{
			boxBeam(0, assembly.StackHorizontalBottom, mgl64.Vec3{-4, 0, -0.15}, mgl64.Vec3{4, 0.27, 0.15}),
			// Strut overlapping only the bar's end corner.
			boxBeam(1, assembly.StackVertical, mgl64.Vec3{3.9, 0, -0.15}, mgl64.Vec3{4.2, 3.27, 0.15}),
		},
		ModuleCount: 4,
	}
	if hits := Detect(geom, linkage.DefaultConfig()); len(hits) != 0 {
		t.Fatalf("got %+v, want none for joint contact", hits)
	}
}

func TestDetectOverFoldingAdjacency(t *testing.T) {
	overlapping := func(moduleA, moduleB int) []assembly.Beam {
		return []assembly.Beam{
			boxBeam(moduleA, assembly.StackHorizontalBottom, mgl64.Vec3{-4, 0, -0.5}, mgl64.Vec3{4, 1, 0.5}),
			boxBeam(moduleB, assembly.StackHorizontalBottom, mgl64.Vec3{-3, 0, -0.5}, mgl64.Vec3{5, 1, 0.5}),
		}
	}

	tests := []struct {
		name        string
		modules     [2]int
		orientation linkage.Orientation
		want        int
	}{
		{"adjacent modules exempt", [2]int{0, 1}, linkage.OrientRing, 0},
		{"non-adjacent modules collide", [2]int{0, 2}, linkage.OrientRing, 1},
		{"wrap pair exempt in a ring", [2]int{0, 3}, linkage.OrientRing, 0},
		{"wrap pair collides in an arch", [2]int{0, 3}, linkage.OrientArch, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := linkage.DefaultConfig()
			cfg.Orientation = tt.orientation
			geom := &assembly.StructureGeometry{
				Beams:       overlapping(tt.modules[0], tt.modules[1]),
				ModuleCount: 4,
			}
			hits := Detect(geom, cfg)
			if len(hits) != tt.want {
				t.Fatalf("got %d collisions, want %d: %+v", len(hits), tt.want, hits)
			}
			if tt.want > 0 && hits[0].Cause != CauseOverFolding {
				t.Errorf("cause = %q, want %q", hits[0].Cause, CauseOverFolding)
			}
		})
	}
}

// Bars at different ring levels never over-fold into each other.
func TestDetectOverFoldingLevelGate(t *testing.T) {
	geom := &assembly.StructureGeometry{
		Beams: []assembly.Beam{
			boxBeam(0, assembly.StackHorizontalBottom, mgl64.Vec3{-4, 0, -0.5}, mgl64.Vec3{4, 1, 0.5}),
			boxBeam(2, assembly.StackHorizontalTop, mgl64.Vec3{-3, 3, -0.5}, mgl64.Vec3{5, 4, 0.5}),
		},
		ModuleCount: 4,
	}
	if hits := Detect(geom, linkage.DefaultConfig()); len(hits) != 0 {
		t.Fatalf("got %+v, want none across ring levels", hits)
	}
}

// Thin bars can pass arbitrarily close without their boxes overlapping; the
// angular-proximity heuristic still reports them.
func TestDetectAngularProximity(t *testing.T) {
	geom := &assembly.StructureGeometry{
		Beams: []assembly.Beam{
			boxBeam(0, assembly.StackHorizontalBottom, mgl64.Vec3{6, 0, 0.05}, mgl64.Vec3{14, 0.2, 0.15}),
			boxBeam(2, assembly.StackHorizontalBottom, mgl64.Vec3{6.5, 0, -0.15}, mgl64.Vec3{14.5, 0.2, -0.05}),
		},
		ModuleCount: 8,
	}
	hits := Detect(geom, linkage.DefaultConfig())
	if len(hits) != 1 {
		t.Fatalf("got %d collisions, want 1: %+v", len(hits), hits)
	}
	if hits[0].Cause != CauseOverFolding {
		t.Errorf("cause = %q, want %q", hits[0].Cause, CauseOverFolding)
	}
}

func TestDetectEmptyGeometry(t *testing.T) {
	cfg := linkage.DefaultConfig()
	if hits := Detect(nil, cfg); hits != nil {
		t.Errorf("Detect(nil) = %v, want nil", hits)
	}
	if hits := Detect(&assembly.StructureGeometry{}, cfg); hits != nil {
		t.Errorf("Detect(empty) = %v, want nil", hits)
	}
}
