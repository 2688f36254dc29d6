package mealy

import . "github.com/enetx/g"

// State is a named node with its own action table and optional enter/exit
// hooks.
//
// Identity is the pointer: two states sharing an ident are still distinct.
// The ident only labels the state in errors, history and DOT output. One
// State instance may be the target of actions from many source states and
// may be reused across machines.
type State[E comparable, O any] struct {
	ident   String
	actions *Table[E, O]
	enter   Hook
	exit    Hook

	// Value is the output carried by actions built with the Moore-style
	// Action accessor. Actions built with To carry their own output.
	Value O
}

// NewState creates a state labeled ident with an empty action table.
// Type parameters are spelled out at the call site:
//
//	idle := mealy.NewState[rune, string]("idle")
func NewState[E comparable, O any](ident String) *State[E, O] {
	return &State[E, O]{
		ident:   ident,
		actions: NewTable[E, O](),
	}
}

// WithValue sets the Moore value and returns the state.
func (s *State[E, O]) WithValue(value O) *State[E, O] {
	s.Value = value
	return s
}

// On binds event to action in this state's table.
func (s *State[E, O]) On(event E, action Action[E, O]) *State[E, O] {
	s.actions.Set(event, action)
	return s
}

// OnEnter sets the enter hook, replacing any previous one.
func (s *State[E, O]) OnEnter(hook Hook) *State[E, O] {
	s.enter = hook
	return s
}

// OnExit sets the exit hook, replacing any previous one.
func (s *State[E, O]) OnExit(hook Hook) *State[E, O] {
	s.exit = hook
	return s
}

// To builds an action that activates this state and returns output.
func (s *State[E, O]) To(output O) Action[E, O] {
	return Action[E, O]{Next: s, Output: output}
}

// Action builds the Moore form of To: activate this state, return its Value.
// Every action built this way yields the same output no matter which event
// or source state led here.
func (s *State[E, O]) Action() Action[E, O] {
	return s.To(s.Value)
}

// Ident returns the state's label.
func (s *State[E, O]) Ident() String { return s.ident }

// Actions returns the live action table.
func (s *State[E, O]) Actions() *Table[E, O] { return s.actions }

// Enter runs the enter hook, if any.
func (s *State[E, O]) Enter() error {
	if s.enter == nil {
		return nil
	}

	return s.enter()
}

// Exit runs the exit hook, if any.
func (s *State[E, O]) Exit() error {
	if s.exit == nil {
		return nil
	}

	return s.exit()
}
