package chain

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/chains/pkg/payload"
)

// constructors builds one list of each topology with the same options.
var constructors = []struct {
	name  string
	build func(opts ...Option) List
}{
	{"singly", func(opts ...Option) List { return NewSingly(opts...) }},
	{"doubly", func(opts ...Option) List { return NewDoubly(opts...) }},
	{"circular", func(opts ...Option) List { return NewCircular(opts...) }},
}

func engineOf(l List) *engine {
	switch v := l.(type) {
	case *Singly:
		return &v.engine
	case *Doubly:
		return &v.engine
	case *Circular:
		return &v.engine
	}
	panic("unknown list type")
}

// quiet returns a logger that records entries instead of printing them.
func quiet() (Option, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return WithLogger(logger), hook
}

func strs(l List) []string {
	var out []string
	for _, v := range l.All() {
		out = append(out, v.String())
	}
	return out
}

func pushBackCopies(t *testing.T, l List, vals ...string) {
	t.Helper()
	for _, v := range vals {
		require.NoError(t, l.PushBack(payload.Copy([]byte(v))))
	}
}

// checkInvariants walks the list exactly size steps and verifies the link
// structure of its topology.
func checkInvariants(t *testing.T, l List) {
	t.Helper()
	e := engineOf(l)
	if e.size == 0 {
		require.Equal(t, none, e.head, "empty list has no head")
		require.Equal(t, none, e.tail, "empty list has no tail")
		require.Equal(t, 0, e.cells.Len(), "empty list holds no cells")
		return
	}
	require.Equal(t, e.size, e.cells.Len(), "every cell in use is linked")

	seen := make(map[int]bool, e.size)
	idx, prev := e.head, none
	for i := 0; i < e.size; i++ {
		require.NotEqual(t, none, idx, "link %d ends early", i)
		require.False(t, seen[idx], "node reached twice after %d steps", i)
		seen[idx] = true
		c := e.at(idx)
		if e.topo.backLink {
			require.Equal(t, prev, c.prev, "back link of node %d", i)
		}
		prev, idx = idx, c.next
	}
	require.Equal(t, e.tail, prev, "tail is the last node walked")
	if e.topo.circular {
		require.Equal(t, e.head, idx, "ring returns to the head after size steps")
	} else {
		require.Equal(t, none, idx, "tail has no next link")
	}
}
