package mealy

import . "github.com/enetx/g"

// Table maps events to actions for one owner, a State or a Machine.
// Dispatch reads the table live: entries added or removed while the owner is
// active apply from the next Fire.
type Table[E comparable, O any] struct {
	entries Map[E, Action[E, O]]
}

// NewTable creates an empty action table.
func NewTable[E comparable, O any]() *Table[E, O] {
	return &Table[E, O]{entries: NewMap[E, Action[E, O]]()}
}

// Set binds event to action, replacing any previous binding.
func (t *Table[E, O]) Set(event E, action Action[E, O]) *Table[E, O] {
	t.entries.Set(event, action)
	return t
}

// Delete removes the binding for event, if any.
func (t *Table[E, O]) Delete(event E) *Table[E, O] {
	t.entries.Delete(event)
	return t
}

// Get returns the action bound to event.
func (t *Table[E, O]) Get(event E) Option[Action[E, O]] {
	return t.entries.Get(event)
}

// Contains reports whether event has a binding.
func (t *Table[E, O]) Contains(event E) bool {
	return t.entries.Contains(event)
}

// Events returns the set of events the table currently binds.
func (t *Table[E, O]) Events() Set[E] {
	events := NewSet[E]()
	for event := range t.entries.Keys().Iter() {
		events.Insert(event)
	}

	return events
}

// Len returns the number of bindings.
func (t *Table[E, O]) Len() Int {
	return t.entries.Len()
}

// Iter returns an iterator over the table's bindings.
func (t *Table[E, O]) Iter() SeqMap[E, Action[E, O]] {
	return t.entries.Iter()
}
