package orchestrator

import (
	"errors"
	"fmt"
)

// ErrAlreadyInvoked Run 只能调用一次
var ErrAlreadyInvoked = errors.New("orchestrator: already invoked")

// OrchestrationFailure is a failure raised while driving the run rather than
// by a plugin: opening logs, a panic in the run-when-started callback,
// formatting or writing the report.
type OrchestrationFailure struct {
	Err error
}

func (e *OrchestrationFailure) Error() string {
	return fmt.Sprintf("sysinfo orchestration failed: %v", e.Err)
}

func (e *OrchestrationFailure) Unwrap() error { return e.Err }
