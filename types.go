package mealy

import . "github.com/enetx/g"

type (
	// Event is a ready-made string event type for machines that do not need
	// a custom one. Any comparable type can drive a machine.
	Event String

	// Hook is a side effect run when control enters or leaves a state.
	// A non-nil error marks the surrounding operation as failed.
	Hook func() error

	// Action pairs the state to activate with the output to return when an
	// event is dispatched. Table entries are replaced wholesale; an Action
	// value is never mutated in place.
	Action[E comparable, O any] struct {
		Next   Statelike[E, O]
		Output O
	}

	// Statelike is anything a machine can activate: a plain State, or a
	// Machine nested as a state inside an enclosing machine.
	Statelike[E comparable, O any] interface {
		// Ident returns the display name used in errors, history and DOT output.
		Ident() String
		// Actions returns the live action table consulted on dispatch.
		Actions() *Table[E, O]
		// Enter runs the activation side effect.
		Enter() error
		// Exit runs the deactivation side effect.
		Exit() error
	}
)

// Phase is the lifecycle position of a Machine.
type Phase uint8

const (
	// Pending means the machine is configured but not started.
	Pending Phase = iota
	// Running means a session is active and events may be fired.
	Running
	// Stopped means the session has ended; Reset returns the machine to Pending.
	Stopped
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}
