package mealy

import . "github.com/enetx/g"

// StateMachine is the behavior shared by Machine and its thread-safe
// wrapper. It extends Statelike, so any StateMachine can also be nested as a
// state inside an enclosing machine.
type StateMachine[E comparable, O any] interface {
	Statelike[E, O]

	Fire(E) (O, error)
	Start() error
	Stop() error
	Reset() error
	Run(func(StateMachine[E, O]) error) error
	To(O) Action[E, O]
	Current() Statelike[E, O]
	Phase() Phase
	Events() Set[E]
	History() Slice[String]
	ToDOT() String
	MarshalJSON() ([]byte, error)
}

// Interface compliance checks.
var (
	_ StateMachine[rune, any] = (*Machine[rune, any])(nil)
	_ StateMachine[rune, any] = (*SyncMachine[rune, any])(nil)
	_ Statelike[rune, any]    = (*State[rune, any])(nil)
)
