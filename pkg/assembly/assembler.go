package assembly

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

// Fixed auxiliary geometry sizes, in the same length units as the config.
const (
	bracketSide   = 0.45
	bracketHeight = 0.1
	boltRadius    = 0.04
	boltMargin    = 0.1
)

var up = mgl64.Vec3{0, 1, 0}

// Assemble solves the linkage once and places every beam, bracket, bolt and
// panel face of the structure in world space. The ring's central axis is Y;
// the bottom ring sits at y=0. Beams are emitted in a stable order: module
// index, then slot (top, bottom, outer strut, inner strut), then lamination
// index. Downstream collision pairing relies on this ordering.
func Assemble(foldAngle float64, cfg linkage.ModuleConfig) (*StructureGeometry, error) {
	jr, err := linkage.SolveJoint(foldAngle, cfg)
	if err != nil {
		return nil, err
	}

	n := cfg.ModuleCount
	interfaces := n
	if cfg.Orientation == linkage.OrientArch {
		// An arch keeps its trailing interface instead of wrapping it
		// onto module 0.
		interfaces = n + 1
	}

	// Chain the interface midpoints, then recenter on their centroid so the
	// ring's central axis passes through the origin.
	headings := make([]float64, n)
	origins := make([]mgl64.Vec3, n+1)
	var centroid mgl64.Vec3
	pos := mgl64.Vec3{}
	for i := 0; i < n; i++ {
		h := float64(i) * jr.RelativeRotation
		headings[i] = h
		origins[i] = pos
		pos = pos.Add(mgl64.Rotate3DY(h).Mul3x1(mgl64.Vec3{jr.Chord, 0, 0}))
	}
	origins[n] = pos
	for i := 0; i < interfaces; i++ {
		centroid = centroid.Add(origins[i])
	}
	centroid = centroid.Mul(1 / float64(interfaces))
	centroid[1] = 0
	for i := range origins {
		origins[i] = origins[i].Sub(centroid)
	}

	t := cfg.BeamThickness
	gap := cfg.StackGap
	topBase := cfg.VerticalLength
	totalHeight := topBase + cfg.StackSpan()

	geom := &StructureGeometry{
		Beams:            make([]Beam, 0, n*(2*cfg.HStackCount+2*cfg.VStackCount)),
		RelativeRotation: jr.RelativeRotation,
		FoldAngle:        foldAngle,
		ModuleCount:      n,
	}

	for i := 0; i < n; i++ {
		rot := mgl64.Rotate3DY(headings[i])
		place := func(v mgl64.Vec3) mgl64.Vec3 { return rot.Mul3x1(v).Add(origins[i]) }
		dir := func(v mgl64.Vec3) mgl64.Vec3 { return rot.Mul3x1(v) }

		topAxis := dir(jr.TopAxis)
		bottomAxis := dir(jr.BottomAxis)
		topCenter := place(jr.TopCenter)
		bottomCenter := place(jr.BottomCenter)
		pivot := place(jr.Pivot)

		// Top-ring bars.
		for k := 0; k < cfg.HStackCount; k++ {
			y0 := topBase + float64(k)*(t+gap)
			geom.Beams = append(geom.Beams, horizontalBeam(cfg, i, StackHorizontalTop, k,
				topCenter, topAxis, y0,
				place(jr.EntryOuter), place(jr.ExitInner)))
		}
		// Bottom-ring bars.
		for k := 0; k < cfg.HStackCount; k++ {
			y0 := float64(k) * (t + gap)
			geom.Beams = append(geom.Beams, horizontalBeam(cfg, i, StackHorizontalBottom, k,
				bottomCenter, bottomAxis, y0,
				place(jr.EntryInner), place(jr.ExitOuter)))
		}
		// Hinge struts on the entry interface: outer slot, then inner.
		chordDir := dir(mgl64.Vec3{1, 0, 0})
		geom.Beams = append(geom.Beams, strutStack(cfg, i,
			place(jr.EntryOuter), place(jr.EntryInner), chordDir, totalHeight)...)
		geom.Beams = append(geom.Beams, strutStack(cfg, i,
			place(jr.EntryInner), place(jr.EntryOuter), chordDir, totalHeight)...)

		// Pivot hardware: one bracket per ring level, one pin through both.
		geom.Brackets = append(geom.Brackets,
			Bracket{
				Center:     mgl64.Vec3{pivot.X(), cfg.StackSpan() + bracketHeight/2, pivot.Z()},
				HalfExtent: mgl64.Vec3{bracketSide / 2, bracketHeight / 2, bracketSide / 2},
				Module:     i,
				Color:      bracketColor,
			},
			Bracket{
				Center:     mgl64.Vec3{pivot.X(), topBase - bracketHeight/2, pivot.Z()},
				HalfExtent: mgl64.Vec3{bracketSide / 2, bracketHeight / 2, bracketSide / 2},
				Module:     i,
				Color:      bracketColor,
			})
		geom.Bolts = append(geom.Bolts, Bolt{
			Center: mgl64.Vec3{pivot.X(), totalHeight / 2, pivot.Z()},
			Radius: boltRadius,
			Height: totalHeight + 2*boltMargin,
			Module: i,
			Color:  boltColor,
		})
	}

	// An arch keeps struts on the trailing interface so the last module is
	// hinged on both sides.
	if cfg.Orientation == linkage.OrientArch {
		last := n - 1
		rot := mgl64.Rotate3DY(headings[last])
		place := func(v mgl64.Vec3) mgl64.Vec3 { return rot.Mul3x1(v).Add(origins[last]) }
		chordDir := rot.Mul3x1(mgl64.Vec3{1, 0, 0})
		geom.Beams = append(geom.Beams, strutStack(cfg, last,
			place(jr.ExitOuter), place(jr.ExitInner), chordDir, totalHeight)...)
		geom.Beams = append(geom.Beams, strutStack(cfg, last,
			place(jr.ExitInner), place(jr.ExitOuter), chordDir, totalHeight)...)
	}

	// Panel faces: the upward quad of each module's outermost top-ring bar.
	topLam := cfg.HStackCount - 1
	for _, b := range geom.Beams {
		if b.Role == StackHorizontalTop && b.Lamination == topLam {
			geom.Faces = append(geom.Faces, SurfaceFace{
				Quad:   [4]mgl64.Vec3{b.Corners[4], b.Corners[5], b.Corners[6], b.Corners[7]},
				Normal: up,
				Module: b.Module,
			})
		}
	}

	return geom, nil
}

// horizontalBeam builds one scissor bar box. The drawn bar is the full
// HorizontalLength; the hinges sit EndOffset inside each end.
func horizontalBeam(cfg linkage.ModuleConfig, module int, role StackRole, lam int,
	center, axis mgl64.Vec3, y0 float64, hingeA, hingeB mgl64.Vec3) Beam {

	t := cfg.BeamThickness
	yMid := y0 + t/2
	half := axis.Mul(cfg.HorizontalLength / 2)
	side := axis.Cross(up).Mul(cfg.BeamWidth / 2)

	b := Beam{
		Module:     module,
		Role:       role,
		Lamination: lam,
		Center:     mgl64.Vec3{center.X(), yMid, center.Z()},
		Color:      roleColors[role],
	}
	b.Corners = boxCorners(b.Center, half, side, y0, y0+t)
	b.PivotEnds = [2]mgl64.Vec3{
		{hingeA.X(), yMid, hingeA.Z()},
		{hingeB.X(), yMid, hingeB.Z()},
	}
	return b
}

// strutStack builds the laminated vertical struts for one hinge node.
// Laminations fan out along the interface direction, away from the opposite
// node so replicates never cross the interface midline.
func strutStack(cfg linkage.ModuleConfig, module int, node, other, chordDir mgl64.Vec3, totalHeight float64) []Beam {
	w := cfg.BeamWidth
	away := node.Sub(other)
	away[1] = 0
	if away.Len() > 0 {
		away = away.Normalize()
	}

	beams := make([]Beam, 0, cfg.VStackCount)
	for k := 0; k < cfg.VStackCount; k++ {
		centerPlan := node.Add(away.Mul(float64(k) * (w + cfg.StackGap)))
		center := mgl64.Vec3{centerPlan.X(), totalHeight / 2, centerPlan.Z()}

		b := Beam{
			Module:     module,
			Role:       StackVertical,
			Lamination: k,
			Center:     center,
			Color:      roleColors[StackVertical],
		}
		b.Corners = boxCorners(center,
			chordDir.Mul(w/2), chordDir.Cross(up).Mul(w/2),
			0, totalHeight)
		b.PivotEnds = [2]mgl64.Vec3{
			{centerPlan.X(), 0, centerPlan.Z()},
			{centerPlan.X(), totalHeight, centerPlan.Z()},
		}
		beams = append(beams, b)
	}
	return beams
}

// boxCorners returns the eight vertices of a box from its plan center, two
// plan half-extent vectors and a vertical range. Lower face first, both
// faces in the same winding.
func boxCorners(center, halfA, halfB mgl64.Vec3, y0, y1 float64) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	plan := [4]mgl64.Vec3{
		center.Sub(halfA).Sub(halfB),
		center.Add(halfA).Sub(halfB),
		center.Add(halfA).Add(halfB),
		center.Sub(halfA).Add(halfB),
	}
	for i, p := range plan {
		out[i] = mgl64.Vec3{p.X(), y0, p.Z()}
		out[i+4] = mgl64.Vec3{p.X(), y1, p.Z()}
	}
	return out
}
