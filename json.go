package mealy

import (
	"encoding/json"

	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// Snapshot is the serializable view of a machine's observable position,
// produced by MarshalJSON for logs and debug endpoints. There is no inverse:
// a machine is rebuilt by configuring and starting it, not by loading state.
type Snapshot struct {
	Ident   g.String          `json:"ident"`
	Phase   g.String          `json:"phase"`
	Current g.String          `json:"current,omitempty"`
	History g.Slice[g.String] `json:"history,omitempty"`
	Events  g.Slice[g.String] `json:"events,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface. Events are formatted
// and sorted so the output is stable enough to diff.
func (m *Machine[E, O]) MarshalJSON() ([]byte, error) {
	snapshot := Snapshot{
		Ident:   m.ident,
		Phase:   g.String(m.phase.String()),
		History: m.history.Clone(),
	}

	if state := m.Current(); state != nil {
		snapshot.Current = state.Ident()
	}

	var events g.Slice[g.String]
	for event := range m.handled().ToSlice().Iter() {
		events.Push(g.Format("{}", event))
	}

	events.SortBy(cmp.Cmp)
	snapshot.Events = events

	return json.Marshal(snapshot)
}
