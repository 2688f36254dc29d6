package mealy

import (
	"fmt"

	. "github.com/enetx/g"
)

// ErrUnhandledEvent is returned by Fire when neither the active state's
// table nor the machine-wide default table binds the fired event. An
// unhandled event in a control loop is a correctness bug, so it is always
// surfaced, never swallowed; the machine itself is left untouched.
type ErrUnhandledEvent[E comparable] struct {
	State String
	Event E
}

func (e *ErrUnhandledEvent[E]) Error() string {
	return fmt.Sprintf("mealy: event %v not handled in state %q", e.Event, e.State)
}

// ErrInvalidPhase is returned when an operation is called outside the
// lifecycle phase that allows it: Fire and Stop require Running, Start
// requires Pending, Reset refuses Running. Nothing is mutated on this path.
type ErrInvalidPhase struct {
	Op    String
	Phase Phase
}

func (e *ErrInvalidPhase) Error() string {
	return fmt.Sprintf("mealy: cannot %s while %s", e.Op, e.Phase)
}

// ErrHook is returned when an enter or exit hook returns an error or panics.
// Hook names the side ("enter" or "exit"), State the ident of the hook's
// owner, and Err the original error or the recovered panic. The active-state
// pointer is left wherever the completed hooks put it: a failing exit keeps
// the previous state active, a failing enter keeps the target active.
type ErrHook struct {
	Hook  String
	State String
	Err   error
}

func (e *ErrHook) Error() string {
	return fmt.Sprintf("mealy: %s hook of %q failed: %v", e.Hook, e.State, e.Err)
}

// Unwrap provides compatibility with the standard library's errors package,
// allowing the use of errors.Is and errors.As to inspect the wrapped error.
func (e *ErrHook) Unwrap() error { return e.Err }

// ErrNilState is returned by Fire when the resolved action carries no next
// state. The machine is left untouched.
type ErrNilState[E comparable] struct {
	Event E
}

func (e *ErrNilState[E]) Error() string {
	return fmt.Sprintf("mealy: action for event %v has no next state", e.Event)
}

// DriftWarning describes a change in the shape of the handled event set
// noticed after a completed dispatch: bindings that appeared or disappeared
// since the previous check. Replacing an action for an existing event is not
// drift. The warning is advisory and reaches the host only through the
// OnDrift observer; Fire never returns it. It implements error so observers
// that treat alphabet drift as fatal can feed it to their error pipeline.
type DriftWarning[E comparable] struct {
	Machine String
	State   String
	Added   Slice[E]
	Removed Slice[E]
}

func (w *DriftWarning[E]) Error() string {
	return fmt.Sprintf("mealy: %q: event set drifted in state %q: added %v, removed %v",
		w.Machine, w.State, w.Added, w.Removed)
}
