package script

import (
	"fmt"
	"sync"
	"time"
)

// EvalTimeout bounds a single evaluation. Scripts that loop forever are
// abandoned; their goroutine result is discarded via the generation check.
const EvalTimeout = 5 * time.Second

type evalOutcome struct {
	result *Result
	errors []EvalError
	err    error
}

// waitWithTimeout waits for the evaluation goroutine to finish or the
// timeout to expire. A stale goroutine from a timed-out run can still send
// its outcome later; the generation counter lets callers ignore it.
func waitWithTimeout(ch chan evalOutcome, gen uint64, mu *sync.Mutex, generation *uint64) (*Result, []EvalError, error) {
	select {
	case out := <-ch:
		mu.Lock()
		stale := gen != *generation
		mu.Unlock()
		if stale {
			return nil, nil, fmt.Errorf("evaluation superseded")
		}
		return out.result, out.errors, out.err
	case <-time.After(EvalTimeout):
		return nil, nil, fmt.Errorf("evaluation timed out after %v", EvalTimeout)
	}
}
