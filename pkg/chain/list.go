package chain

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/chains/pkg/payload"
	"github.com/mesh-intelligence/chains/pkg/types"
)

// List is the operation set shared by all three topologies.
type List interface {
	Topology() string
	ID() uuid.UUID
	Len() int

	CreateNode(src payload.Source, next *Node) (*Node, error)
	PushFront(src payload.Source) error
	PushBack(src payload.Source) error
	InsertAt(index int, src payload.Source) error
	PushFrontNode(ns NodeSource) error
	PushBackNode(ns NodeSource) error
	InsertNodeAt(index int, ns NodeSource) error

	Get(index int) (payload.View, error)
	Find(value []byte) (Cursor, error)
	IndexOf(value []byte) int
	Contains(value []byte) bool

	DeleteAt(index int) error
	DeleteByValue(value []byte) error
	FreeAll()

	Front() Cursor
	All() iter.Seq2[int, payload.View]
	Values() [][]byte
}

// Singly is a singly linked list. The tail's next link is empty.
type Singly struct{ engine }

// NewSingly returns an empty singly linked list.
func NewSingly(opts ...Option) *Singly {
	return &Singly{newEngine(singly, opts)}
}

// Doubly is a doubly linked list. For every node n with a successor,
// n.next.prev is n; the head has no previous link and the tail no next link.
type Doubly struct{ engine }

// NewDoubly returns an empty doubly linked list.
func NewDoubly(opts ...Option) *Doubly {
	return &Doubly{newEngine(doubly, opts)}
}

// Back returns a cursor at the tail.
func (d *Doubly) Back() Cursor { return d.cursor(d.tail) }

// Backward iterates the payloads from the tail to the head.
func (d *Doubly) Backward() iter.Seq2[int, payload.View] {
	return func(yield func(int, payload.View) bool) {
		idx := d.tail
		for i := d.size - 1; i >= 0 && idx != none; i-- {
			c := d.at(idx)
			if !yield(i, c.p.View()) {
				return
			}
			idx = c.prev
		}
	}
}

// Circular is a singly linked ring. The tail links back to the head and an
// empty ring has no nodes at all.
type Circular struct{ engine }

// NewCircular returns an empty circular list.
func NewCircular(opts ...Option) *Circular {
	return &Circular{newEngine(circular, opts)}
}

// Back returns a cursor at the tail, the node whose next is the head.
func (c *Circular) Back() Cursor { return c.cursor(c.tail) }

var (
	_ List = (*Singly)(nil)
	_ List = (*Doubly)(nil)
	_ List = (*Circular)(nil)
)

// New builds the list selected by cfg. A positive MaxBytes installs a
// payload.Budget allocator unless opts provide one; MaxNodes caps the node
// count unless opts override it.
func New(cfg types.Config, opts ...Option) (List, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("chain config: %w", err)
	}
	base := []Option{WithMaxNodes(cfg.MaxNodes)}
	if cfg.MaxBytes > 0 {
		base = append(base, WithAllocator(payload.NewBudget(cfg.MaxBytes)))
	}
	opts = append(base, opts...)

	switch cfg.Topology {
	case types.TopologyDoubly:
		return NewDoubly(opts...), nil
	case types.TopologyCircular:
		return NewCircular(opts...), nil
	default:
		return NewSingly(opts...), nil
	}
}
