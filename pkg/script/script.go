// Package script provides a small Lisp surface for describing structures
// and querying solves. It wraps zygomys in a sandboxed environment and
// produces a ModuleConfig plus solve results from user source code.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/DisruptivelyUseful/ringfold/pkg/assembly"
	"github.com/DisruptivelyUseful/ringfold/pkg/collision"
	"github.com/DisruptivelyUseful/ringfold/pkg/linkage"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the full output of one evaluation.
type Result struct {
	Config    linkage.ModuleConfig
	FoldAngle float64 // radians; valid only when FoldSet
	FoldSet   bool

	// Geometry and Collisions are populated when the script set a fold
	// angle; both are recomputed from scratch every evaluation.
	Geometry   *assembly.StructureGeometry
	Collisions []collision.Collision
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use; each
// call to Evaluate creates a fresh sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source and produces a Result.
//
// Return semantics:
//   - On success: result + nil errors + nil error
//   - On parse/eval failure: nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOutcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalOutcome{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	st := &evalState{cfg: linkage.DefaultConfig()}

	// Empty source is a valid program describing the default structure.
	if strings.TrimSpace(source) == "" {
		return st.finish()
	}

	// Sandbox mode prevents user code from reaching the filesystem.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err), nil
	}

	return st.finish()
}

// evalState accumulates the script's structure description.
type evalState struct {
	cfg     linkage.ModuleConfig
	fold    float64
	foldSet bool
}

// finish assembles and detects once when the script set a fold angle.
func (st *evalState) finish() (*Result, []EvalError, error) {
	res := &Result{Config: st.cfg, FoldAngle: st.fold, FoldSet: st.foldSet}
	if !st.foldSet {
		return res, nil, nil
	}
	geom, err := assembly.Assemble(st.fold, st.cfg)
	if err != nil {
		return nil, []EvalError{{Message: err.Error()}}, nil
	}
	res.Geometry = geom
	res.Collisions = collision.Detect(geom, st.cfg)
	return res, nil, nil
}

// linePattern matches zygomys error messages that include line information.
var (
	linePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// parseZygoError converts a zygomys error into EvalError values, extracting
// line numbers where the message carries them.
func parseZygoError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
