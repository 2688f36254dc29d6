// Package mealy implements a small finite state machine engine with
// Mealy-style outputs: firing an event activates a next state and returns a
// value. It is built with types and utilities from the github.com/enetx/g
// library.
//
// States own their action tables; a machine adds a machine-wide default
// table consulted when the active state has no binding for an event. Side
// effects attach as enter and exit hooks on states and on the machine
// itself, and run in a guaranteed exit-before-enter order on every
// transition, self-transitions included. A Machine is itself Statelike, so
// it can be nested as a state inside an enclosing machine. The base Machine
// is single-threaded; wrap it with Sync for concurrent use.
package mealy

import (
	"errors"
	"fmt"

	. "github.com/enetx/g"
)

// Machine drives one session of event dispatch over a set of states.
// Its own action table holds the machine-wide defaults.
type Machine[E comparable, O any] struct {
	ident    String
	initial  Statelike[E, O]
	current  Statelike[E, O]
	phase    Phase
	actions  *Table[E, O]
	enter    Hook
	exit     Hook
	onDrift  func(*DriftWarning[E])
	alphabet Set[E]
	history  Slice[String]
}

// New creates a machine that activates initial when started.
// Type parameters are spelled out at the call site:
//
//	m := mealy.New[rune, string](idle)
func New[E comparable, O any](initial Statelike[E, O]) *Machine[E, O] {
	if initial == nil {
		panic("mealy: initial state must not be nil")
	}

	return &Machine[E, O]{
		ident:   "machine",
		initial: initial,
		actions: NewTable[E, O](),
	}
}

// Named sets the machine's display ident, "machine" by default.
func (m *Machine[E, O]) Named(ident String) *Machine[E, O] {
	m.ident = ident
	return m
}

// On binds event to action in the machine-wide default table, consulted when
// the active state has no binding for the event.
func (m *Machine[E, O]) On(event E, action Action[E, O]) *Machine[E, O] {
	m.actions.Set(event, action)
	return m
}

// OnEnter sets the machine's own enter hook, run by Start before the initial
// state is activated. Replaces any previous one.
func (m *Machine[E, O]) OnEnter(hook Hook) *Machine[E, O] {
	m.enter = hook
	return m
}

// OnExit sets the machine's own exit hook, run by Stop after the active
// state is deactivated, even when that deactivation fails. Replaces any
// previous one.
func (m *Machine[E, O]) OnExit(hook Hook) *Machine[E, O] {
	m.exit = hook
	return m
}

// OnDrift registers an observer for changes in the handled event set. The
// observer runs synchronously inside Fire after a completed transition; a
// panic there propagates to Fire's caller, which is the opt-in way of
// treating drift as fatal. Registering while running records the current
// alphabet as the new baseline.
func (m *Machine[E, O]) OnDrift(fn func(*DriftWarning[E])) *Machine[E, O] {
	m.onDrift = fn
	if m.phase == Running {
		m.alphabet = m.handled()
	}

	return m
}

// Start opens the session: the machine's own enter hook runs first, then the
// initial state is activated.
//
// A failing machine hook leaves the machine Pending. A failing initial enter
// leaves it Running with the initial state active and its entry incomplete,
// the same bookkeeping Fire applies to a half-entered target.
func (m *Machine[E, O]) Start() error {
	if m.phase != Pending {
		return &ErrInvalidPhase{Op: "start", Phase: m.phase}
	}

	if err := runHook(m.enter); err != nil {
		return &ErrHook{Hook: "enter", State: m.ident, Err: err}
	}

	m.phase = Running
	m.current = m.initial
	m.history = Slice[String]{m.initial.Ident()}
	m.alphabet = m.handled()

	if err := runHook(m.initial.Enter); err != nil {
		return &ErrHook{Hook: "enter", State: m.initial.Ident(), Err: err}
	}

	return nil
}

// Stop closes the session: the active state is deactivated, then the
// machine's own exit hook runs no matter how that deactivation went. Both
// failures are reported, joined.
func (m *Machine[E, O]) Stop() error {
	if m.phase != Running {
		return &ErrInvalidPhase{Op: "stop", Phase: m.phase}
	}

	var stateErr error
	if err := runHook(m.current.Exit); err != nil {
		stateErr = &ErrHook{Hook: "exit", State: m.current.Ident(), Err: err}
	}

	m.phase = Stopped
	m.current = nil

	var ownErr error
	if err := runHook(m.exit); err != nil {
		ownErr = &ErrHook{Hook: "exit", State: m.ident, Err: err}
	}

	return errors.Join(stateErr, ownErr)
}

// Reset returns a machine that is not running to Pending so it can be
// started again. Tables and hooks are kept; history and the drift baseline
// are cleared.
func (m *Machine[E, O]) Reset() error {
	if m.phase == Running {
		return &ErrInvalidPhase{Op: "reset", Phase: m.phase}
	}

	m.phase = Pending
	m.current = nil
	m.history = nil
	m.alphabet = nil

	return nil
}

// Run executes fn inside a started session and guarantees Stop on every exit
// path: normal return, error, or panic. When Start fails, fn is not called;
// a hook failure that left the session open (a half-entered initial state)
// is still stopped, while a phase refusal on a machine that is already
// running or stopped mutates nothing. Stop errors are joined with whatever
// fn returned.
func (m *Machine[E, O]) Run(fn func(StateMachine[E, O]) error) error {
	return runSession[E, O](m, fn)
}

// runSession drives the scoped start/stop protocol shared by Machine.Run and
// SyncMachine.Run.
func runSession[E comparable, O any](sm StateMachine[E, O], fn func(StateMachine[E, O]) error) (err error) {
	if err = sm.Start(); err != nil {
		// Close only a session this Start opened (the initial enter hook
		// failed after the phase went live). A phase refusal mutates
		// nothing, so a session already running stays the caller's.
		var hookErr *ErrHook
		if errors.As(err, &hookErr) && sm.Phase() == Running {
			return errors.Join(err, sm.Stop())
		}

		return err
	}

	defer func() {
		if stopErr := sm.Stop(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	return fn(sm)
}

// Fire dispatches event against the active state's table first, the
// machine-wide default table second, then performs the resolved transition:
// exit the active state, activate the action's target, enter it, and return
// the action's output. Both tables are read live on every call, and a
// self-transition runs the full exit and enter cycle.
//
// On failure the output is O's zero value. *ErrInvalidPhase,
// *ErrUnhandledEvent and *ErrNilState leave the machine untouched. A failing
// exit hook keeps the previous state active and skips the enter. A failing
// enter hook leaves the target active with its entry incomplete.
func (m *Machine[E, O]) Fire(event E) (O, error) {
	var zero O

	if m.phase != Running {
		return zero, &ErrInvalidPhase{Op: "fire", Phase: m.phase}
	}

	resolved := m.current.Actions().Get(event)
	if resolved.IsNone() {
		resolved = m.actions.Get(event)
	}

	if resolved.IsNone() {
		return zero, &ErrUnhandledEvent[E]{State: m.current.Ident(), Event: event}
	}

	action := resolved.Some()
	if action.Next == nil {
		return zero, &ErrNilState[E]{Event: event}
	}

	if err := runHook(m.current.Exit); err != nil {
		return zero, &ErrHook{Hook: "exit", State: m.current.Ident(), Err: err}
	}

	m.current = action.Next
	m.history.Push(action.Next.Ident())

	if err := runHook(action.Next.Enter); err != nil {
		return zero, &ErrHook{Hook: "enter", State: action.Next.Ident(), Err: err}
	}

	m.checkDrift()

	return action.Output, nil
}

// runHook invokes fn, recovering a panic into an error so a throwing hook
// cannot unwind through a dispatch half-way.
func runHook(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if fn == nil {
		return nil
	}

	return fn()
}

// Ident returns the machine's display name.
func (m *Machine[E, O]) Ident() String { return m.ident }

// Actions returns the machine-wide default table.
func (m *Machine[E, O]) Actions() *Table[E, O] { return m.actions }

// Enter activates the machine as a nested state: a stopped machine is reset
// first, then the session starts. Entering a running machine fails with
// *ErrInvalidPhase.
func (m *Machine[E, O]) Enter() error {
	if m.phase == Stopped {
		if err := m.Reset(); err != nil {
			return err
		}
	}

	return m.Start()
}

// Exit stops the nested session.
func (m *Machine[E, O]) Exit() error { return m.Stop() }

// To builds an action that activates this machine as a nested state and
// returns output. Because every transition runs the full exit and enter
// cycle, an action that targets the machine's own slot stops the running
// session and starts a fresh one.
func (m *Machine[E, O]) To(output O) Action[E, O] {
	return Action[E, O]{Next: m, Output: output}
}

// Current returns the active state while Running, the configured initial
// state while Pending, and nil once Stopped.
func (m *Machine[E, O]) Current() Statelike[E, O] {
	if m.phase == Pending {
		return m.initial
	}

	return m.current
}

// Phase returns the machine's lifecycle phase.
func (m *Machine[E, O]) Phase() Phase { return m.phase }

// Events returns the set of events the machine would consider right now: the
// machine-wide defaults plus the bindings of the state Current reports.
func (m *Machine[E, O]) Events() Set[E] {
	return m.handled()
}

// History returns the idents of every state activated this session, in
// activation order, the initial state first.
func (m *Machine[E, O]) History() Slice[String] {
	return m.history.Clone()
}

// Sync wraps the machine for concurrent use.
func (m *Machine[E, O]) Sync() *SyncMachine[E, O] {
	return &SyncMachine[E, O]{machine: m}
}

// handled returns the union of the machine-wide and active-state alphabets.
func (m *Machine[E, O]) handled() Set[E] {
	events := m.actions.Events()

	if state := m.Current(); state != nil {
		for event := range state.Actions().Events().ToSlice().Iter() {
			events.Insert(event)
		}
	}

	return events
}

// checkDrift compares the handled alphabet against the last observed one and
// reports any shape change to the drift observer.
func (m *Machine[E, O]) checkDrift() {
	if m.onDrift == nil {
		return
	}

	now := m.handled()
	if now.Eq(m.alphabet) {
		return
	}

	warning := &DriftWarning[E]{
		Machine: m.ident,
		State:   m.current.Ident(),
	}

	for event := range now.ToSlice().Iter() {
		if !m.alphabet.Contains(event) {
			warning.Added.Push(event)
		}
	}

	for event := range m.alphabet.ToSlice().Iter() {
		if !now.Contains(event) {
			warning.Removed.Push(event)
		}
	}

	m.alphabet = now
	m.onDrift(warning)
}
