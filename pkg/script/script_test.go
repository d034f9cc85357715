package script

import (
	"math"
	"strings"
	"testing"

	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

func evaluate(t *testing.T, source string) *Result {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return res
}

func evaluateErr(t *testing.T, source string) []EvalError {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatalf("got result %+v, want eval errors", res)
	}
	return evalErrs
}

func TestEvaluateEmpty(t *testing.T) {
	res := evaluate(t, "")
	if res.Config != linkage.DefaultConfig() {
		t.Errorf("config = %+v, want the default", res.Config)
	}
	if res.FoldSet || res.Geometry != nil {
		t.Error("empty script produced a fold state")
	}
}

func TestEvaluateStructure(t *testing.T) {
	res := evaluate(t, `
		; a ten-module arch with a centered-ish pivot
		(structure :modules 10
		           :pivot-pct 40
		           :hoberman-angle 2
		           :arch true)
	`)
	cfg := res.Config
	if cfg.ModuleCount != 10 {
		t.Errorf("ModuleCount = %d, want 10", cfg.ModuleCount)
	}
	if cfg.PivotPct != 40 {
		t.Errorf("PivotPct = %v, want 40", cfg.PivotPct)
	}
	if math.Abs(cfg.HobermanAngle-2*math.Pi/180) > 1e-12 {
		t.Errorf("HobermanAngle = %v, want 2°", cfg.HobermanAngle)
	}
	if cfg.Orientation != linkage.OrientArch {
		t.Errorf("Orientation = %v, want arch", cfg.Orientation)
	}
	// Untouched fields keep their defaults.
	if cfg.HorizontalLength != 8 {
		t.Errorf("HorizontalLength = %v, want the default 8", cfg.HorizontalLength)
	}
}

func TestEvaluateFold(t *testing.T) {
	res := evaluate(t, `
		(structure :modules 10 :pivot-pct 40 :arch true)
		(fold 90)
	`)
	if !res.FoldSet {
		t.Fatal("fold not recorded")
	}
	if math.Abs(res.FoldAngle-math.Pi/2) > 1e-12 {
		t.Errorf("FoldAngle = %v, want π/2", res.FoldAngle)
	}
	// 10 modules × 8 beams, plus the arch's trailing strut stacks.
	if want := 10*8 + 4; len(res.Geometry.Beams) != want {
		t.Errorf("beams = %d, want %d", len(res.Geometry.Beams), want)
	}
}

// Builtins compose: feed the calibrated closed angle straight into fold.
func TestEvaluateClosedAngleComposes(t *testing.T) {
	res := evaluate(t, `(fold (closed-angle))`)
	if !res.FoldSet {
		t.Fatal("fold not recorded")
	}
	if d := res.FoldAngle * 180 / math.Pi; d < 135 || d > 135.8 {
		t.Errorf("FoldAngle = %v°, want the ~135.4° closed angle", d)
	}
	if len(res.Collisions) != 0 {
		t.Errorf("collisions at the closed angle = %d, want 0", len(res.Collisions))
	}
}

func TestEvaluateQueryBuiltins(t *testing.T) {
	// Values are discarded; this exercises that the builtins run clean.
	evaluate(t, `
		(structure :modules 8)
		(fold 120)
		(beam-count)
		(collisions)
	`)
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantSub string
	}{
		{
			name:    "fold out of domain",
			source:  `(fold 200)`,
			wantSub: "outside domain",
		},
		{
			name:    "invalid structure",
			source:  `(structure :modules 2)`,
			wantSub: "ModuleCount",
		},
		{
			name:    "unknown option",
			source:  `(structure :wat 1)`,
			wantSub: "unknown option",
		},
		{
			name:    "collisions before fold",
			source:  `(collisions)`,
			wantSub: "call (fold ...) first",
		},
		{
			name:    "non-numeric fold",
			source:  `(fold "wide open")`,
			wantSub: "expected a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := evaluateErr(t, tt.source)
			found := false
			for _, e := range errs {
				if strings.Contains(e.Message, tt.wantSub) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", errs, tt.wantSub)
			}
		})
	}
}

func TestEvaluateParseError(t *testing.T) {
	evaluateErr(t, `(structure :modules`)
}

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "keyword becomes a marker string",
			in:   `(structure :pivot-pct 40)`,
			want: `(structure "__kw_pivot_pct" 40)`,
		},
		{
			name: "kebab symbols become underscores",
			in:   `(closed-angle)`,
			want: `(closed_angle)`,
		},
		{
			name: "semicolon comments become line comments",
			in:   "; note\n(fold 90)",
			want: "// note\n(fold 90)",
		},
		{
			name: "string contents are untouched",
			in:   `(print "a :b c-d ; e")`,
			want: `(print "a :b c-d ; e")`,
		},
		{
			name: "negative numbers keep their sign",
			in:   `(structure :pivot-angle -5)`,
			want: `(structure "__kw_pivot_angle" -5)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKwArgs(t *testing.T) {
	if _, err := kwArgs(nil); err != nil {
		t.Errorf("kwArgs(nil) = %v, want nil", err)
	}
}
