package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Digraph_Cyclic(t *testing.T) {
	testCases := []struct {
		name   string
		edges  [][2]string
		expect bool
	}{
		{
			name:   "empty graph",
			expect: false,
		},
		{
			name:   "single edge",
			edges:  [][2]string{{"a", "b"}},
			expect: false,
		},
		{
			name:   "self loop",
			edges:  [][2]string{{"a", "a"}},
			expect: true,
		},
		{
			name:   "two-node cycle",
			edges:  [][2]string{{"a", "b"}, {"b", "a"}},
			expect: true,
		},
		{
			name:   "diamond without cycle",
			edges:  [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			expect: false,
		},
		{
			name:   "cycle not reachable from first vertex",
			edges:  [][2]string{{"a", "b"}, {"c", "d"}, {"d", "c"}},
			expect: true,
		},
		{
			name:   "long chain into cycle",
			edges:  [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}},
			expect: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := NewDigraph[string]()
			for _, e := range tc.edges {
				g.AddEdge(e[0], e[1])
			}

			assert.Equal(tc.expect, g.Cyclic())
		})
	}
}

func Test_Digraph_EdgesAndVertices(t *testing.T) {
	assert := assert.New(t)

	g := NewDigraph[int]()
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	g.AddVertex(4)

	assert.True(g.HasVertex(1))
	assert.True(g.HasVertex(4))
	assert.False(g.HasVertex(5))

	assert.True(g.HasEdge(1, 2))
	assert.False(g.HasEdge(2, 1))

	assert.ElementsMatch([]int{2, 3}, g.Successors(1))
	assert.Empty(g.Successors(4))
	assert.Len(g.Vertices(), 4)
}

func Test_Stack(t *testing.T) {
	assert := assert.New(t)

	var s Stack[string]
	assert.True(s.Empty())

	s.Push("a")
	s.Push("b")

	assert.Equal(2, s.Len())
	assert.Equal("b", s.Peek())
	assert.Equal("b", s.PeekAt(0))
	assert.Equal("a", s.PeekAt(1))

	assert.Equal("b", s.Pop())
	assert.Equal("a", s.Pop())
	assert.True(s.Empty())

	assert.Panics(func() {
		s.Pop()
	})
}
