package chain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/chains/internal/arena"
	"github.com/mesh-intelligence/chains/pkg/payload"
	"github.com/mesh-intelligence/chains/pkg/types"
)

const none = arena.None

// topology is the capability set that tells the engine how to link cells.
type topology struct {
	name     string
	backLink bool
	circular bool
}

var (
	singly   = topology{name: types.TopologySingly}
	doubly   = topology{name: types.TopologyDoubly, backLink: true}
	circular = topology{name: types.TopologyCircular, circular: true}
)

// cell is a linked node. prev is kept only when the topology has back links.
type cell struct {
	p    payload.Payload
	next int
	prev int
}

type engine struct {
	topo  topology
	id    uuid.UUID
	alloc payload.Allocator
	log   logrus.FieldLogger
	cells *arena.Arena[cell]
	head  int
	tail  int
	size  int
}

func newEngine(topo topology, opts []Option) engine {
	o := buildOptions(opts)
	id := uuid.Must(uuid.NewV7())
	return engine{
		topo:  topo,
		id:    id,
		alloc: o.alloc,
		log:   o.log.WithFields(logrus.Fields{"list": id.String(), "topology": topo.name}),
		cells: arena.New[cell](o.maxNodes),
		head:  none,
		tail:  none,
	}
}

// Topology returns the topology name, one of the types.Topology constants.
func (e *engine) Topology() string { return e.topo.name }

// ID returns the identity of the list used in log entries.
func (e *engine) ID() uuid.UUID { return e.id }

// Len returns the number of nodes.
func (e *engine) Len() int { return e.size }

func (e *engine) at(i int) *cell { return e.cells.At(i) }

// walk returns the cell at position pos and its predecessor. The walk is
// bounded by the list size, so a malformed ring cannot loop forever.
// The predecessor of the head is none, except on a ring where it is the tail.
func (e *engine) walk(pos int) (idx, pred int) {
	pred = none
	if e.topo.circular {
		pred = e.tail
	}
	idx = e.head
	for i := 0; i < pos && i < e.size; i++ {
		pred = idx
		idx = e.at(idx).next
	}
	return idx, pred
}

// scan returns the position, cell, and predecessor of the first payload
// equal to value, or pos -1 if none matches. It stops after size steps or
// when it returns to the head.
func (e *engine) scan(value []byte) (pos, idx, pred int) {
	pred = none
	if e.topo.circular {
		pred = e.tail
	}
	idx = e.head
	for i := 0; i < e.size && idx != none; i++ {
		if e.at(idx).p.View().Equal(value) {
			return i, idx, pred
		}
		pred = idx
		idx = e.at(idx).next
		if idx == e.head {
			break
		}
	}
	return -1, none, none
}

// splice links the run first..last of n already chained cells so that first
// lands at position pos, 0 <= pos <= size.
func (e *engine) splice(pos, first, last, n int) {
	switch {
	case e.size == 0:
		e.head, e.tail = first, last
	case pos == 0:
		e.at(last).next = e.head
		if e.topo.backLink {
			e.at(e.head).prev = last
		}
		e.head = first
	case pos >= e.size:
		e.at(e.tail).next = first
		if e.topo.backLink {
			e.at(first).prev = e.tail
		}
		e.tail = last
	default:
		p, _ := e.walk(pos - 1)
		q := e.at(p).next
		e.at(p).next = first
		e.at(last).next = q
		if e.topo.backLink {
			e.at(first).prev = p
			e.at(q).prev = last
		}
	}
	e.size += n
	e.seal()
}

// seal restores the end conditions of the topology after a link change.
func (e *engine) seal() {
	if e.size == 0 {
		e.head, e.tail = none, none
		return
	}
	if e.topo.circular {
		e.at(e.tail).next = e.head
	} else {
		e.at(e.tail).next = none
	}
	if e.topo.backLink {
		e.at(e.head).prev = none
	}
}

// unlink removes cell idx whose predecessor is pred, then releases its
// payload if the node owns it and frees the cell.
func (e *engine) unlink(idx, pred int) {
	c := e.at(idx)
	next := c.next
	switch {
	case e.size == 1:
		e.head, e.tail = none, none
	case idx == e.head:
		e.head = next
	default:
		e.at(pred).next = next
		if idx == e.tail {
			e.tail = pred
		} else if e.topo.backLink {
			e.at(next).prev = pred
		}
	}
	e.size--
	e.seal()
	c.p.Release()
	e.cells.Free(idx)
}

// link allocates a chained run of cells for ps and splices it at pos. The
// caller has already checked that len(ps) cells fit.
func (e *engine) link(pos int, ps []payload.Payload) {
	first, last := none, none
	for _, p := range ps {
		idx, err := e.cells.Alloc(cell{p: p, next: none, prev: none})
		if err != nil {
			// Capacity was checked by the caller.
			panic(fmt.Sprintf("chain: %v", err))
		}
		if last == none {
			first = idx
		} else {
			e.at(last).next = idx
			if e.topo.backLink {
				e.at(idx).prev = last
			}
		}
		last = idx
	}
	e.splice(pos, first, last, len(ps))
}

// reserve checks that n more cells fit under the node limit.
func (e *engine) reserve(op string, n int) error {
	if e.cells.Fits(n) {
		return nil
	}
	e.log.WithField("op", op).WithError(arena.ErrFull).Warn("node allocation refused")
	return fmt.Errorf("%s: %w", op, arena.ErrFull)
}

func (e *engine) miss(op string, err error, fields logrus.Fields) error {
	e.log.WithField("op", op).WithFields(fields).Debug(err.Error())
	return fmt.Errorf("%s: %w", op, err)
}

// maxInsert returns the largest index InsertAt accepts. The doubly linked
// list only inserts before an existing node.
func (e *engine) maxInsert() int {
	if e.topo.backLink {
		return e.size - 1
	}
	return e.size
}

// insert binds src and links it at pos. Nothing is linked and no buffer is
// kept if any step fails.
func (e *engine) insert(op string, pos int, src payload.Source) error {
	if err := e.reserve(op, 1); err != nil {
		return err
	}
	b, err := src.Bind(e.alloc)
	if err != nil {
		e.log.WithField("op", op).WithField("mode", src.Mode().String()).WithError(err).Warn("payload bind failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	e.link(pos, []payload.Payload{b.Commit()})
	return nil
}

// CreateNode builds a detached node holding src, chained to next. The node
// is linked into a list only by one of the node-variant inserts.
func (e *engine) CreateNode(src payload.Source, next *Node) (*Node, error) {
	b, err := src.Bind(e.alloc)
	if err != nil {
		return nil, fmt.Errorf("create node: %w", err)
	}
	return &Node{p: b.Commit(), next: next}, nil
}

// PushFront inserts src as the new head.
func (e *engine) PushFront(src payload.Source) error {
	return e.insert("push front", 0, src)
}

// PushBack inserts src as the new tail.
func (e *engine) PushBack(src payload.Source) error {
	return e.insert("push back", e.size, src)
}

// InsertAt inserts src so that it ends up at position index. An index out of
// range returns types.ErrIndexOutOfRange and changes nothing.
func (e *engine) InsertAt(index int, src payload.Source) error {
	const op = "insert at"
	if index < 0 || index > e.maxInsert() {
		return e.miss(op, types.ErrIndexOutOfRange, logrus.Fields{"index": index, "size": e.size})
	}
	return e.insert(op, index, src)
}

// insertNodes links the detached chain of ns at pos.
func (e *engine) insertNodes(op string, pos int, ns NodeSource) error {
	nodes, err := ns.chain()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := e.reserve(op, len(nodes)); err != nil {
		return err
	}
	ps, err := ns.bind(e.alloc, nodes)
	if err != nil {
		e.log.WithField("op", op).WithField("mode", ns.mode.String()).WithError(err).Warn("node bind failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	e.link(pos, ps)
	return nil
}

// PushFrontNode links the detached node chain of ns at the head.
func (e *engine) PushFrontNode(ns NodeSource) error {
	return e.insertNodes("push front node", 0, ns)
}

// PushBackNode links the detached node chain of ns at the tail.
func (e *engine) PushBackNode(ns NodeSource) error {
	return e.insertNodes("push back node", e.size, ns)
}

// InsertNodeAt links the detached node chain of ns so that its first node
// ends up at position index.
func (e *engine) InsertNodeAt(index int, ns NodeSource) error {
	const op = "insert node at"
	if index < 0 || index > e.maxInsert() {
		return e.miss(op, types.ErrIndexOutOfRange, logrus.Fields{"index": index, "size": e.size})
	}
	return e.insertNodes(op, index, ns)
}

// Get returns a read-only view of the payload at index.
func (e *engine) Get(index int) (payload.View, error) {
	const op = "get"
	if e.size == 0 {
		return payload.View{}, e.miss(op, types.ErrEmptyList, nil)
	}
	if index < 0 || index >= e.size {
		return payload.View{}, e.miss(op, types.ErrIndexOutOfRange, logrus.Fields{"index": index, "size": e.size})
	}
	idx, _ := e.walk(index)
	return e.at(idx).p.View(), nil
}

// Find returns a cursor at the first node whose payload has the length of
// value and the same bytes.
func (e *engine) Find(value []byte) (Cursor, error) {
	const op = "find"
	if e.size == 0 {
		return Cursor{}, e.miss(op, types.ErrEmptyList, nil)
	}
	pos, idx, _ := e.scan(value)
	if pos < 0 {
		return Cursor{}, e.miss(op, types.ErrValueNotFound, logrus.Fields{"length": len(value)})
	}
	return e.cursor(idx), nil
}

// IndexOf returns the position of the first node equal to value, or -1.
func (e *engine) IndexOf(value []byte) int {
	pos, _, _ := e.scan(value)
	return pos
}

// Contains reports whether some node's payload equals value.
func (e *engine) Contains(value []byte) bool {
	return e.IndexOf(value) >= 0
}

// DeleteAt removes the node at index, releasing its payload if owned.
// Deleting from an empty list is a no-op.
func (e *engine) DeleteAt(index int) error {
	const op = "delete at"
	if e.size == 0 {
		return nil
	}
	if index < 0 || index >= e.size {
		return e.miss(op, types.ErrIndexOutOfRange, logrus.Fields{"index": index, "size": e.size})
	}
	idx, pred := e.walk(index)
	e.unlink(idx, pred)
	return nil
}

// DeleteByValue removes the first node equal to value, releasing its payload
// if owned. Deleting from an empty list is a no-op.
func (e *engine) DeleteByValue(value []byte) error {
	const op = "delete by value"
	if e.size == 0 {
		return nil
	}
	pos, idx, pred := e.scan(value)
	if pos < 0 {
		return e.miss(op, types.ErrValueNotFound, logrus.Fields{"length": len(value)})
	}
	e.unlink(idx, pred)
	return nil
}

// FreeAll releases every owned payload, visiting each node exactly once,
// and leaves the list empty.
func (e *engine) FreeAll() {
	idx := e.head
	released := 0
	for i := 0; i < e.size && idx != none; i++ {
		c := e.at(idx)
		if c.p.Owned() {
			released++
		}
		c.p.Release()
		idx = c.next
	}
	e.log.WithFields(logrus.Fields{"nodes": e.size, "released": released}).Debug("list freed")
	e.cells.Reset()
	e.head, e.tail, e.size = none, none, 0
}
