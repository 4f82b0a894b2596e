package report

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/parse"
	"github.com/ashware/chomsky/internal/slr"
)

// dotEscape escapes a string for use inside a double-quoted DOT label.
func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\l`)
	return s
}

// AutomatonDOT renders an LR(0) automaton in Graphviz DOT format, labelling
// each state with its number and items.
func AutomatonDOT(m *slr.Automaton) string {
	var lines []string
	lines = append(lines, "node [shape=box];")

	for i := 0; i < m.NumStates(); i++ {
		var label strings.Builder
		label.WriteString(fmt.Sprintf("%d\n", i))
		for _, item := range m.State(i).Items() {
			label.WriteString(item.String())
			label.WriteRune('\n')
		}
		lines = append(lines, fmt.Sprintf("q%d [label=\"%s\"]", i, dotEscape(label.String())))
	}

	for _, t := range m.Transitions() {
		lines = append(lines, fmt.Sprintf("q%d -> q%d [label=\"%s\"]", t.From, t.To, dotEscape(t.On.String())))
	}

	return "digraph {\n\t" + strings.Join(lines, ";\n\t") + "\n}\n"
}

// TreeDOT renders a parse tree in Graphviz DOT format, with child order
// preserved.
func TreeDOT(t *parse.Tree) string {
	var lines []string
	lines = append(lines, `graph [ordering="out"]`)

	nextID := 0
	var walk func(node *parse.Tree) int
	walk = func(node *parse.Tree) int {
		id := nextID
		nextID++
		label := node.Value.String()
		if node.Value == grammar.Epsilon {
			label = "ε"
		}
		lines = append(lines, fmt.Sprintf("q%d [label=\"%s\"]", id, dotEscape(label)))
		for _, c := range node.Children {
			childID := walk(c)
			lines = append(lines, fmt.Sprintf("q%d -> q%d", id, childID))
		}
		return id
	}
	walk(t)

	return "digraph {\n\t" + strings.Join(lines, ";\n\t") + "\n}\n"
}
