package script

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/DisruptivelyUseful/ringfold/pkg/assembly"
	"github.com/DisruptivelyUseful/ringfold/pkg/collision"
	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
	"github.com/DisruptivelyUseful/ringfold/pkg/search"
)

// preprocessSource rewrites the friendlier script dialect into plain
// zygomys before parsing:
//
//	:keyword    -> "__kw_keyword" (string marker, resolved by kwArgs)
//	kebab-case  -> kebab_case outside strings
//	; comment   -> // comment
func preprocessSource(src string) string {
	var out strings.Builder
	inString := false
	runes := []rune(src)

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if c == '"' && (i == 0 || runes[i-1] != '\\') {
			inString = !inString
			out.WriteRune(c)
			continue
		}
		if inString {
			out.WriteRune(c)
			continue
		}

		if c == ';' {
			out.WriteString("//")
			continue
		}

		if c == ':' && i+1 < len(runes) && isSymbolRune(runes[i+1]) {
			j := i + 1
			for j < len(runes) && isSymbolRune(runes[j]) {
				j++
			}
			word := strings.ReplaceAll(string(runes[i+1:j]), "-", "_")
			out.WriteString(`"__kw_` + word + `"`)
			i = j - 1
			continue
		}

		if c == '-' && i > 0 && isSymbolRune(runes[i-1]) && i+1 < len(runes) && isLetterRune(runes[i+1]) {
			out.WriteRune('_')
			continue
		}

		out.WriteRune(c)
	}

	return out.String()
}

func isSymbolRune(c rune) bool {
	return isLetterRune(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isLetterRune(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// kwArgs folds a flat (:key value :key value ...) argument list into a map.
// Keys arrive as the "__kw_" string markers emitted by preprocessSource.
func kwArgs(args []zygo.Sexp) (map[string]zygo.Sexp, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("expected keyword/value pairs, got %d arguments", len(args))
	}
	out := make(map[string]zygo.Sexp, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		s, ok := args[i].(*zygo.SexpStr)
		if !ok || !strings.HasPrefix(s.S, "__kw_") {
			return nil, fmt.Errorf("argument %d: expected a :keyword, got %s", i+1, args[i].SexpString(nil))
		}
		out[strings.TrimPrefix(s.S, "__kw_")] = args[i+1]
	}
	return out, nil
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected a number, got %s", s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok {
		return 0, fmt.Errorf("expected an integer, got %s", s.SexpString(nil))
	}
	return int(v.Val), nil
}

func toBool(s zygo.Sexp) (bool, error) {
	v, ok := s.(*zygo.SexpBool)
	if !ok {
		return false, fmt.Errorf("expected true or false, got %s", s.SexpString(nil))
	}
	return v.Val, nil
}

// registerBuiltins wires the structure-description functions into env. All
// builtins close over st, so each evaluation gets an isolated state.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	var cal *search.Calibrator

	env.AddFunction("structure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		kw, err := kwArgs(args)
		if err != nil {
			return zygo.SexpNull, err
		}
		cfg := st.cfg
		for key, val := range kw {
			switch key {
			case "modules":
				cfg.ModuleCount, err = toInt(val)
			case "h_length":
				cfg.HorizontalLength, err = toFloat64(val)
			case "v_length":
				cfg.VerticalLength, err = toFloat64(val)
			case "pivot_pct":
				cfg.PivotPct, err = toFloat64(val)
			case "hoberman_angle":
				var deg float64
				deg, err = toFloat64(val)
				cfg.HobermanAngle = deg * math.Pi / 180
			case "pivot_angle":
				var deg float64
				deg, err = toFloat64(val)
				cfg.PivotAngle = deg * math.Pi / 180
			case "h_stack":
				cfg.HStackCount, err = toInt(val)
			case "v_stack":
				cfg.VStackCount, err = toInt(val)
			case "beam_width":
				cfg.BeamWidth, err = toFloat64(val)
			case "beam_thickness":
				cfg.BeamThickness, err = toFloat64(val)
			case "end_offset":
				cfg.EndOffset, err = toFloat64(val)
			case "stack_gap":
				cfg.StackGap, err = toFloat64(val)
			case "arch":
				var arch bool
				arch, err = toBool(val)
				if arch {
					cfg.Orientation = linkage.OrientArch
				} else {
					cfg.Orientation = linkage.OrientRing
				}
			default:
				return zygo.SexpNull, fmt.Errorf("structure: unknown option :%s", strings.ReplaceAll(key, "_", "-"))
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("structure: :%s: %v", strings.ReplaceAll(key, "_", "-"), err)
			}
		}
		if err := cfg.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("structure: %v", err)
		}
		st.cfg = cfg
		cal = nil
		return zygo.SexpNull, nil
	})

	env.AddFunction("fold", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("fold: expected one angle in degrees")
		}
		deg, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fold: %v", err)
		}
		rad := deg * math.Pi / 180
		if rad < linkage.MinFoldAngle || rad > linkage.MaxFoldAngle {
			return zygo.SexpNull, fmt.Errorf("fold: %v", &linkage.AngleError{
				Angle: rad, Min: linkage.MinFoldAngle, Max: linkage.MaxFoldAngle,
			})
		}
		st.fold = rad
		st.foldSet = true
		return zygo.SexpNull, nil
	})

	env.AddFunction("closed_angle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if cal == nil {
			cal = search.NewCalibrator()
		}
		rad, err := cal.ClosedAngle(st.cfg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("closed-angle: %v", err)
		}
		return &zygo.SexpFloat{Val: rad * 180 / math.Pi}, nil
	})

	env.AddFunction("collisions", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if !st.foldSet {
			return zygo.SexpNull, fmt.Errorf("collisions: call (fold ...) first")
		}
		geom, err := assembly.Assemble(st.fold, st.cfg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("collisions: %v", err)
		}
		return &zygo.SexpInt{Val: int64(len(collision.Detect(geom, st.cfg)))}, nil
	})

	env.AddFunction("beam_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		angle := st.fold
		if !st.foldSet {
			angle = linkage.MinFoldAngle
		}
		geom, err := assembly.Assemble(angle, st.cfg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("beam-count: %v", err)
		}
		return &zygo.SexpInt{Val: int64(len(geom.Beams))}, nil
	})
}
