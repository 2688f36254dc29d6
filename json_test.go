package mealy_test

import (
	"encoding/json"
	"testing"

	. "github.com/enetx/g"
	. "github.com/enetx/mealy"
)

func TestMarshalJSON_RunningMachine(t *testing.T) {
	m, _, _, _, _ := newTrafficLight()
	assertNoError(t, m.Start())

	_, err := m.Fire(redTimeout)
	assertNoError(t, err)

	data, err := json.Marshal(m)
	assertNoError(t, err)

	var snap Snapshot
	assertNoError(t, json.Unmarshal(data, &snap))

	assertEqual(t, snap.Ident, "traffic-light")
	assertEqual(t, snap.Phase, "running")
	assertEqual(t, snap.Current, "green")
	assertTrue(t, snap.History.Eq(SliceOf[String]("red", "green")))

	// Events are formatted and sorted for stable output.
	assertTrue(t, snap.Events.Eq(SliceOf[String](
		"AMBER_TIMEOUT", "ERROR", "GREEN_TIMEOUT", "RED_TIMEOUT",
	)))
}

func TestMarshalJSON_PendingMachine(t *testing.T) {
	m, _, _, _ := newEdgeDetector()

	data, err := json.Marshal(m)
	assertNoError(t, err)

	var snap Snapshot
	assertNoError(t, json.Unmarshal(data, &snap))

	assertEqual(t, snap.Phase, "pending")
	assertEqual(t, snap.Current, "s_i") // the configured initial state
	assertEqual(t, snap.History.Len(), 0)
}

func TestMarshalJSON_StoppedMachine(t *testing.T) {
	m, _, _, _ := newEdgeDetector()
	assertNoError(t, m.Start())

	_, err := m.Fire(one)
	assertNoError(t, err)

	assertNoError(t, m.Stop())

	data, err := json.Marshal(m)
	assertNoError(t, err)

	// No active state once the session is over.
	assertFalse(t, String(data).Contains(`"current"`))

	var snap Snapshot
	assertNoError(t, json.Unmarshal(data, &snap))

	assertEqual(t, snap.Phase, "stopped")
	assertEqual(t, snap.Current, "")
	assertTrue(t, snap.History.Eq(SliceOf[String]("s_i", "s_1")))
}
