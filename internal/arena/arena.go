// Package arena stores list cells in reusable slots addressed by index.
//
// Freed slots are kept on a free list and handed out again before the slot
// table grows. Every allocation stamps its slot with a fresh generation, so
// an index held across a Free can be detected as stale.
package arena

import (
	"fmt"

	"github.com/mesh-intelligence/chains/pkg/types"
)

// None is the index that refers to no slot.
const None = -1

// ErrFull is returned by Alloc when the slot limit is reached.
var ErrFull = fmt.Errorf("%w: node limit reached", types.ErrAllocation)

type slot[T any] struct {
	val      T
	gen      uint64
	inUse    bool
	nextFree int // index+1 of the next free slot, 0 ends the list
}

// Arena holds values of T. The zero value is an empty, unlimited arena.
type Arena[T any] struct {
	slots []slot[T]
	free  int // index+1 of the first free slot, 0 if none
	inUse int
	seq   uint64
	limit int
}

// New returns an arena that holds at most limit values; 0 means unlimited.
func New[T any](limit int) *Arena[T] {
	return &Arena[T]{limit: limit}
}

// Len returns the number of slots in use.
func (a *Arena[T]) Len() int { return a.inUse }

// Available returns how many more values fit, or -1 when unlimited.
func (a *Arena[T]) Available() int {
	if a.limit <= 0 {
		return -1
	}
	return a.limit - a.inUse
}

// Fits reports whether n more values can be allocated.
func (a *Arena[T]) Fits(n int) bool {
	return a.limit <= 0 || a.inUse+n <= a.limit
}

// Alloc stores v and returns its index, reusing a freed slot if one exists.
func (a *Arena[T]) Alloc(v T) (int, error) {
	if !a.Fits(1) {
		return None, ErrFull
	}
	a.seq++
	var i int
	if a.free != 0 {
		i = a.free - 1
		a.free = a.slots[i].nextFree
	} else {
		a.slots = append(a.slots, slot[T]{})
		i = len(a.slots) - 1
	}
	a.slots[i] = slot[T]{val: v, gen: a.seq, inUse: true}
	a.inUse++
	return i, nil
}

// Free releases slot i and puts it at the head of the free list. Freeing an
// index that is not in use does nothing.
func (a *Arena[T]) Free(i int) {
	if !a.valid(i) {
		return
	}
	a.slots[i] = slot[T]{nextFree: a.free}
	a.free = i + 1
	a.inUse--
}

// At returns a pointer to the value in slot i. It panics if i is not in use.
func (a *Arena[T]) At(i int) *T {
	if !a.valid(i) {
		panic(fmt.Sprintf("arena: slot %d not in use", i))
	}
	return &a.slots[i].val
}

// Gen returns the generation of slot i, or 0 if it is not in use.
func (a *Arena[T]) Gen(i int) uint64 {
	if !a.valid(i) {
		return 0
	}
	return a.slots[i].gen
}

// Live reports whether slot i is in use and still holds generation gen.
func (a *Arena[T]) Live(i int, gen uint64) bool {
	return a.valid(i) && a.slots[i].gen == gen
}

// Reset drops every slot. Generations keep increasing, so indices taken
// before Reset never match values allocated after it.
func (a *Arena[T]) Reset() {
	a.slots = nil
	a.free = 0
	a.inUse = 0
}

func (a *Arena[T]) valid(i int) bool {
	return i >= 0 && i < len(a.slots) && a.slots[i].inUse
}
