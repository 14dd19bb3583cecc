package chain

import (
	"github.com/mesh-intelligence/chains/pkg/payload"
	"github.com/mesh-intelligence/chains/pkg/types"
)

// Node is a detached node handle returned by CreateNode. It holds a payload
// and an optional next node fixed at creation, so detached chains are always
// acyclic. A node is consumed when it is moved into a list.
type Node struct {
	p    payload.Payload
	next *Node
}

// Value returns a read-only view of the node payload. A consumed node has
// an empty view.
func (n *Node) Value() payload.View {
	if n == nil || n.p == nil {
		return payload.View{}
	}
	return n.p.View()
}

// Len returns the payload length.
func (n *Node) Len() int { return n.Value().Len() }

// Next returns the detached node that follows n, or nil.
func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	return n.next
}

// Owned reports whether the node owns its payload.
func (n *Node) Owned() bool { return n != nil && n.p != nil && n.p.Owned() }

// Release gives back the payload of a node that was never moved into a
// list. Nodes that were moved are already empty and Release does nothing.
func (n *Node) Release() {
	if n == nil || n.p == nil {
		return
	}
	payload.Take(&n.p).Release()
}

// NodeSource supplies a detached node chain to a node-variant insert in one
// ownership mode. Build one with RefNode, MoveNode, or CopyNode.
type NodeSource struct {
	mode payload.Mode
	node *Node
	slot **Node
}

// RefNode links the chain starting at n by reference. The list shares the
// node payloads and never releases them.
func RefNode(n *Node) NodeSource { return NodeSource{mode: payload.ModeRef, node: n} }

// MoveNode transfers the chain starting at *slot into the list. Once the
// insert succeeds *slot is nil and every node of the chain is consumed.
func MoveNode(slot **Node) NodeSource { return NodeSource{mode: payload.ModeMove, slot: slot} }

// CopyNode links private copies of the payloads of the chain starting at n.
func CopyNode(n *Node) NodeSource { return NodeSource{mode: payload.ModeCopy, node: n} }

// Mode returns the ownership mode of the source.
func (ns NodeSource) Mode() payload.Mode { return ns.mode }

func (ns NodeSource) head() *Node {
	if ns.mode == payload.ModeMove {
		if ns.slot == nil {
			return nil
		}
		return *ns.slot
	}
	return ns.node
}

// chain collects the detached chain without modifying it.
func (ns NodeSource) chain() ([]*Node, error) {
	first := ns.head()
	if first == nil {
		return nil, types.ErrNilSlot
	}
	var nodes []*Node
	for n := first; n != nil; n = n.next {
		if n.p == nil {
			return nil, types.ErrNilSlot
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// bind turns nodes into payloads ready to link. On error nothing has been
// allocated and the caller's slot is untouched.
func (ns NodeSource) bind(alloc payload.Allocator, nodes []*Node) ([]payload.Payload, error) {
	ps := make([]payload.Payload, 0, len(nodes))
	switch ns.mode {
	case payload.ModeMove:
		payload.Take(ns.slot)
		for _, n := range nodes {
			ps = append(ps, payload.Take(&n.p))
			n.next = nil
		}
	case payload.ModeCopy:
		for _, n := range nodes {
			b, err := payload.CopyOf(n.p.View()).Bind(alloc)
			if err != nil {
				for _, p := range ps {
					p.Release()
				}
				return nil, err
			}
			ps = append(ps, b.Commit())
		}
	default:
		for _, n := range nodes {
			ps = append(ps, payload.Share(n.p))
		}
	}
	return ps, nil
}
