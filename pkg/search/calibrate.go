// Package search finds notable fold angles: the unique angle that closes
// the ring to a full turn, and the nearest collision-free angle to a
// requested one. Both searches are bounded-iteration sweeps with
// deterministic worst-case cost.
package search

import (
	"math"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

const (
	coarseStep = 1 * math.Pi / 180
	fineStep   = 0.1 * math.Pi / 180
	fineWindow = 2 * math.Pi / 180

	// maxCacheEntries bounds the calibration memo; entries beyond it are
	// evicted oldest-first.
	maxCacheEntries = 64
)

// cacheKey is the structural tuple the closed angle actually depends on.
// Fold angle is the search variable and the remaining config fields only
// scale the geometry, so neither invalidates the memo.
type cacheKey struct {
	moduleCount int
	pivotPct    float64
}

// Calibrator memoizes closed-angle searches per (module count, pivot
// percent). The zero value is not ready; use NewCalibrator. A Calibrator is
// not safe for concurrent use; give each logical thread of control its own.
type Calibrator struct {
	cache *orderedmap.OrderedMap[cacheKey, float64]
}

// NewCalibrator returns an empty calibrator.
func NewCalibrator() *Calibrator {
	return &Calibrator{cache: orderedmap.NewOrderedMap[cacheKey, float64]()}
}

// CacheSize reports how many structural tuples are memoized.
func (c *Calibrator) CacheSize() int {
	return c.cache.Len()
}

// ClosedAngle finds the fold angle at which the cumulative chain rotation
// equals exactly one full turn. Two phases: a coarse 1° sweep across the
// domain that stops early once the rotation has overshot 2*pi and the error
// starts growing again, then a fine 0.1° sweep in a ±2° window around the
// coarse winner. The result is clamped into the valid domain even if the
// fine window drifts past a boundary.
func (c *Calibrator) ClosedAngle(cfg linkage.ModuleConfig) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	key := cacheKey{moduleCount: cfg.ModuleCount, pivotPct: cfg.PivotPct}
	if angle, ok := c.cache.Get(key); ok {
		return angle, nil
	}

	coarse := sweepBest(cfg, linkage.MinFoldAngle, linkage.MaxFoldAngle, coarseStep, true)
	fine := sweepBest(cfg,
		clampAngle(coarse-fineWindow), clampAngle(coarse+fineWindow),
		fineStep, false)
	fine = clampAngle(fine)

	c.cache.Set(key, fine)
	for c.cache.Len() > maxCacheEntries {
		c.cache.Delete(c.cache.Front().Key)
	}
	return fine, nil
}

// sweepBest scans [lo, hi] tracking the angle with minimum closure error.
// With earlyStop set it abandons the scan once the total rotation has passed
// a full turn and the error is worsening; the optimum cannot lie further on
// because the rotation is monotonic in the fold angle.
func sweepBest(cfg linkage.ModuleConfig, lo, hi, step float64, earlyStop bool) float64 {
	best := lo
	bestErr := math.Inf(1)
	prevErr := math.Inf(1)

	for a := lo; a <= hi+domainSlack; a += step {
		angle := clampAngle(a)
		total, err := linkage.TotalRotation(angle, cfg)
		if err != nil {
			continue
		}
		closure := math.Abs(math.Abs(total) - 2*math.Pi)
		if closure < bestErr {
			bestErr = closure
			best = angle
		}
		if earlyStop && math.Abs(total) > 2*math.Pi && closure > prevErr {
			break
		}
		prevErr = closure
	}
	return best
}

const domainSlack = 1e-9

func clampAngle(a float64) float64 {
	return math.Min(linkage.MaxFoldAngle, math.Max(linkage.MinFoldAngle, a))
}
