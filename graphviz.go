package mealy

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// states walks the transition graph from the initial state and the
// machine-default targets, collecting every reachable state once.
func (m *Machine[E, O]) states() g.Slice[Statelike[E, O]] {
	seen := g.NewSet[Statelike[E, O]]()
	queue := g.SliceOf[Statelike[E, O]](m.initial)

	for _, action := range m.actions.Iter() {
		if action.Next != nil {
			queue.Push(action.Next)
		}
	}

	for queue.NotEmpty() {
		state := queue[0]
		queue = queue[1:]

		if seen.Contains(state) {
			continue
		}

		seen.Insert(state)

		for _, action := range state.Actions().Iter() {
			if action.Next != nil {
				queue.Push(action.Next)
			}
		}
	}

	return seen.ToSlice()
}

// ToDOT generates a DOT language string representation of the machine for
// visualization. Edges are labeled "event / output"; machine-wide default
// actions are drawn dashed from a synthetic defaults node.
func (m *Machine[E, O]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph mealy {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", m.initial.Ident()))

	states := m.states()
	states.SortBy(func(x, y Statelike[E, O]) cmp.Ordering { return cmp.Cmp(x.Ident(), y.Ident()) })

	grouped := g.NewMap[g.Pair[g.String, g.String], g.Slice[g.String]]()

	for state := range states.Iter() {
		for event, action := range state.Actions().Iter() {
			if action.Next == nil {
				continue
			}

			key := g.Pair[g.String, g.String]{Key: state.Ident(), Value: action.Next.Ident()}
			label := g.Format("{} / {}", event, action.Output)

			grouped.Entry(key).
				AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
				OrInsert(g.SliceOf(label))
		}
	}

	for state := range states.Iter() {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state.Ident()))

		switch {
		case state == m.current:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case state.Actions().Len() == 0:
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		var tooltips g.Slice[g.String]

		switch st := state.(type) {
		case *State[E, O]:
			if st.enter != nil {
				tooltips.Push("OnEnter")
			}

			if st.exit != nil {
				tooltips.Push("OnExit")
			}
		case *Machine[E, O], *SyncMachine[E, O]:
			tooltips.Push("Nested machine")
		}

		if tooltips.NotEmpty() {
			attrs.Push(g.Format("tooltip=\"{}\"", tooltips.Join("\\n")))
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state.Ident(), attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for pair, labels := range grouped.Iter() {
		from, to := pair.Key, pair.Value

		b.WriteString(g.Format("  \"{}\" -> \"{}\" [label=\" {} \"];\n", from, to, labels.Join("\\n")))
	}

	if m.actions.Len() > 0 {
		defaults := g.NewMap[g.String, g.Slice[g.String]]()

		for event, action := range m.actions.Iter() {
			if action.Next == nil {
				continue
			}

			label := g.Format("{} / {}", event, action.Output)

			defaults.Entry(action.Next.Ident()).
				AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
				OrInsert(g.SliceOf(label))
		}

		b.WriteString(g.Format("\n  __defaults [shape=box, style=dashed, label=\"{} defaults\"];\n", m.ident))

		for to, labels := range defaults.Iter() {
			b.WriteString(g.Format("  __defaults -> \"{}\" [label=\" {} \", style=dashed, color=gray];\n",
				to, labels.Join("\\n")))
		}
	}

	b.WriteString("\n  subgraph cluster_legend {\n")
	b.WriteString("    label = \"Legend\";\n")
	b.WriteString("    style = dashed;\n")
	b.WriteString(`    key [label=<
      <table border="0" cellpadding="4" cellspacing="0" cellborder="0">
        <tr><td align="right">●</td><td>Regular state</td></tr>
        <tr><td align="right"><font color="green">◎</font></td><td>Active state</td></tr>
        <tr><td align="right"><font color="gray">◎</font></td><td>No own bindings</td></tr>
        <tr><td align="right"><font color="gray">⇢</font></td><td>Machine default</td></tr>
      </table>
    >, shape=none];`)

	b.WriteString("  }\n")
	b.WriteString("}\n")

	return b.String()
}
