package mealy

import (
	"sync"

	. "github.com/enetx/g"
)

// SyncMachine is a thread-safe wrapper around a Machine.
// It protects all state-mutating and state-reading operations with a
// sync.RWMutex, making it safe for use across multiple goroutines. Tables
// reached through Actions are shared and not guarded by the wrapper's lock;
// configure them before sharing the machine or serialize such mutations
// yourself.
type SyncMachine[E comparable, O any] struct {
	machine *Machine[E, O]
	mu      sync.RWMutex
}

// Fire is the thread-safe version of Machine.Fire.
// It atomically dispatches an event and performs the resolved transition.
func (s *SyncMachine[E, O]) Fire(event E) (O, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.Fire(event)
}

// Start is the thread-safe version of Machine.Start.
func (s *SyncMachine[E, O]) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.Start()
}

// Stop is the thread-safe version of Machine.Stop.
func (s *SyncMachine[E, O]) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.Stop()
}

// Reset is the thread-safe version of Machine.Reset.
func (s *SyncMachine[E, O]) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.Reset()
}

// Run executes fn inside a started session, stopping it on every exit path.
// The lock is not held while fn runs; fn and any concurrent goroutine reach
// the session through the wrapper's locked methods.
func (s *SyncMachine[E, O]) Run(fn func(StateMachine[E, O]) error) error {
	return runSession[E, O](s, fn)
}

// Enter is the thread-safe version of Machine.Enter, activating the machine
// as a nested state.
func (s *SyncMachine[E, O]) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.Enter()
}

// Exit is the thread-safe version of Machine.Exit, stopping the nested
// session.
func (s *SyncMachine[E, O]) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.Exit()
}

// To builds an action that activates this wrapper as a nested state, so the
// nested session's start and stop go through the wrapper's lock.
func (s *SyncMachine[E, O]) To(output O) Action[E, O] {
	return Action[E, O]{Next: s, Output: output}
}

// Ident returns the machine's display name.
func (s *SyncMachine[E, O]) Ident() String {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.Ident()
}

// Actions returns the machine-wide default table. The table is shared and
// not guarded by the wrapper's lock.
func (s *SyncMachine[E, O]) Actions() *Table[E, O] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.Actions()
}

// Current is the thread-safe version of Machine.Current.
func (s *SyncMachine[E, O]) Current() Statelike[E, O] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.Current()
}

// Phase is the thread-safe version of Machine.Phase.
func (s *SyncMachine[E, O]) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.Phase()
}

// Events is the thread-safe version of Machine.Events.
func (s *SyncMachine[E, O]) Events() Set[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.Events()
}

// History is the thread-safe version of Machine.History.
// It returns a copy of the state activation history.
func (s *SyncMachine[E, O]) History() Slice[String] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.History()
}

// ToDOT is the thread-safe version of Machine.ToDOT.
// It generates a DOT language string representation of the machine for
// visualization.
func (s *SyncMachine[E, O]) ToDOT() String {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.ToDOT()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the machine's position to JSON.
func (s *SyncMachine[E, O]) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machine.MarshalJSON()
}
