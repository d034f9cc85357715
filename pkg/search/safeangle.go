package search

import (
	"math"

	"github.com/DisruptivelyUseful/ringfold/pkg/assembly"
	"github.com/DisruptivelyUseful/ringfold/pkg/collision"
	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

const (
	safeStep      = 0.5 * math.Pi / 180
	safeMaxOffset = 30 * math.Pi / 180
)

// FindSafeAngle searches outward from target for the nearest fold angle
// with zero reported collisions, trying below the target before above at
// each offset. The second return is false when the whole ±30° range is
// exhausted; callers must treat that as "no safe angle nearby", never as an
// angle of zero.
func FindSafeAngle(cfg linkage.ModuleConfig, target float64) (float64, bool) {
	return findSafe(cfg, target, -1)
}

// FindSafeAngleDirected is FindSafeAngle biased by the motion already in
// progress: candidates on the side the fold came from are tried first at
// each offset, so a fold stops short of the obstruction instead of jumping
// past it.
func FindSafeAngleDirected(cfg linkage.ModuleConfig, target, previous float64) (float64, bool) {
	prefer := -1
	if previous > target {
		prefer = 1
	}
	return findSafe(cfg, target, prefer)
}

func findSafe(cfg linkage.ModuleConfig, target float64, prefer int) (float64, bool) {
	if err := cfg.Validate(); err != nil {
		return 0, false
	}

	if safeAt(cfg, target) {
		return target, true
	}
	for off := safeStep; off <= safeMaxOffset; off += safeStep {
		for _, side := range [2]int{prefer, -prefer} {
			candidate := target + float64(side)*off
			if candidate < linkage.MinFoldAngle || candidate > linkage.MaxFoldAngle {
				continue
			}
			if safeAt(cfg, candidate) {
				return candidate, true
			}
		}
	}
	return 0, false
}

func safeAt(cfg linkage.ModuleConfig, angle float64) bool {
	if angle < linkage.MinFoldAngle || angle > linkage.MaxFoldAngle {
		return false
	}
	geom, err := assembly.Assemble(angle, cfg)
	if err != nil {
		return false
	}
	return len(collision.Detect(geom, cfg)) == 0
}

// SweepPoint is one sample of a collision sweep.
type SweepPoint struct {
	Angle      float64
	Collisions int
}

// Sweep samples collision counts across [from, to] at the given step. It is
// a convenience for hosts that recolor or plot interference against the
// fold angle.
func Sweep(cfg linkage.ModuleConfig, from, to, step float64) ([]SweepPoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if step <= 0 || to < from {
		return nil, &linkage.ConfigError{Field: "sweep", Reason: "step must be positive and range ascending"}
	}

	var out []SweepPoint
	for a := from; a <= to+domainSlack; a += step {
		angle := clampAngle(a)
		geom, err := assembly.Assemble(angle, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, SweepPoint{Angle: angle, Collisions: len(collision.Detect(geom, cfg))})
	}
	return out, nil
}
