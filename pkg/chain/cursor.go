package chain

import (
	"iter"

	"github.com/mesh-intelligence/chains/pkg/payload"
)

// Cursor is a position in a list. A cursor whose node has been deleted, or
// whose list was freed, is invalid; it never aliases a node inserted later.
// The zero Cursor is invalid.
type Cursor struct {
	e   *engine
	idx int
	gen uint64
}

func (e *engine) cursor(idx int) Cursor {
	if idx == none {
		return Cursor{}
	}
	return Cursor{e: e, idx: idx, gen: e.cells.Gen(idx)}
}

// Valid reports whether the cursor still points at a node.
func (c Cursor) Valid() bool {
	return c.e != nil && c.e.cells.Live(c.idx, c.gen)
}

// Value returns a read-only view of the payload under the cursor, or an
// empty view if the cursor is invalid.
func (c Cursor) Value() payload.View {
	if !c.Valid() {
		return payload.View{}
	}
	return c.e.at(c.idx).p.View()
}

// Next follows the next link. On a circular list it wraps from the tail to
// the head; elsewhere it returns an invalid cursor past the tail.
func (c Cursor) Next() Cursor {
	if !c.Valid() {
		return Cursor{}
	}
	return c.e.cursor(c.e.at(c.idx).next)
}

// Prev follows the back link. Only doubly linked lists have back links; on
// the other topologies Prev returns an invalid cursor.
func (c Cursor) Prev() Cursor {
	if !c.Valid() || !c.e.topo.backLink {
		return Cursor{}
	}
	return c.e.cursor(c.e.at(c.idx).prev)
}

// Same reports whether c and o are valid and point at the same node.
func (c Cursor) Same(o Cursor) bool {
	return c.Valid() && o.Valid() && c.e == o.e && c.idx == o.idx
}

// Front returns a cursor at the head.
func (e *engine) Front() Cursor { return e.cursor(e.head) }

// All iterates the payloads from the head, once each, with their positions.
func (e *engine) All() iter.Seq2[int, payload.View] {
	return func(yield func(int, payload.View) bool) {
		idx := e.head
		for i := 0; i < e.size && idx != none; i++ {
			c := e.at(idx)
			if !yield(i, c.p.View()) {
				return
			}
			idx = c.next
		}
	}
}

// Values returns copies of all payloads in forward order.
func (e *engine) Values() [][]byte {
	out := make([][]byte, 0, e.size)
	for _, v := range e.All() {
		out = append(out, v.Bytes())
	}
	return out
}
