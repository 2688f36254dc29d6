package mealy_test

import (
	"testing"

	. "github.com/enetx/g"
	. "github.com/enetx/mealy"
)

func TestToDOT_TrafficLight(t *testing.T) {
	m, _, _, _, _ := newTrafficLight()
	dot := m.ToDOT()

	assertTrue(t, dot.Contains("digraph mealy {"))
	assertTrue(t, dot.Contains(`__start -> "red" [label=" initial"]`))

	// Every reachable state is drawn, including flashing_red, which is only
	// a machine-default target.
	for ident := range SliceOf[String]("red", "amber", "green", "flashing_red").Iter() {
		assertTrue(t, dot.Contains(`"`+ident+`" [label="`+ident+`"`))
	}

	// Edges carry Mealy "event / output" labels.
	assertTrue(t, dot.Contains(`"red" -> "green" [label=" RED_TIMEOUT / green "]`))
	assertTrue(t, dot.Contains(`"green" -> "amber" [label=" GREEN_TIMEOUT / amber "]`))
	assertTrue(t, dot.Contains(`"amber" -> "red" [label=" AMBER_TIMEOUT / red "]`))

	// Machine-wide defaults hang off a synthetic dashed node.
	assertTrue(t, dot.Contains(`__defaults [shape=box, style=dashed, label="traffic-light defaults"]`))
	assertTrue(t, dot.Contains("ERROR / flashing_red"))
	assertTrue(t, dot.Contains("cluster_legend"))

	// flashing_red has no bindings of its own, so it renders as terminal.
	assertTrue(t, dot.Contains(`"flashing_red" [label="flashing_red", fillcolor="#d3d3d3", shape=doublecircle]`))

	// No state is highlighted as active before the session starts.
	assertFalse(t, dot.Contains("#90ee90"))

	assertNoError(t, m.Start())

	dot = m.ToDOT()
	assertTrue(t, dot.Contains(`"red" [label="red", fillcolor="#90ee90", shape=doublecircle]`))
}

func TestToDOT_NestedSlot(t *testing.T) {
	outer, _, _, _, _ := newPlant()
	dot := outer.ToDOT()

	assertTrue(t, dot.Contains(`"auto" [label="auto", tooltip="Nested machine"]`))
	assertTrue(t, dot.Contains(`"standby" -> "auto" [label=" POWER_ON / auto engaged "]`))
	assertTrue(t, dot.Contains(`"auto" -> "standby" [label=" POWER_OFF / auto disengaged "]`))
}

func TestToDOT_HookTooltips(t *testing.T) {
	a := NewState[bit, bit]("a").
		OnEnter(func() error { return nil }).
		OnExit(func() error { return nil })
	b := NewState[bit, bit]("b")

	a.On(one, b.To(one))

	dot := New[bit, bit](a).ToDOT()

	assertTrue(t, dot.Contains(`"a" [label="a", tooltip="OnEnter\nOnExit"]`))
}
