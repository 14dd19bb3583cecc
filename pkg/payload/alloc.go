package payload

import (
	"fmt"

	"github.com/mesh-intelligence/chains/pkg/types"
)

// Allocator hands out and takes back the buffers owned by list nodes.
type Allocator interface {
	// Alloc returns a zeroed buffer of exactly n bytes.
	Alloc(n int) ([]byte, error)
	// Adopt accounts for a caller buffer whose ownership moves to a node.
	Adopt(buf []byte) error
	// Free takes back an owned buffer. It never writes to buf.
	Free(buf []byte)
}

// Heap allocates from the Go heap and never fails.
type Heap struct{}

func (Heap) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", types.ErrAllocation, n)
	}
	return make([]byte, n), nil
}

func (Heap) Adopt([]byte) error { return nil }
func (Heap) Free([]byte)        {}

// Stats reports the accounting of a Budget.
type Stats struct {
	Live   int `json:"live"`   // bytes currently owned by nodes
	Allocs int `json:"allocs"` // successful Alloc and Adopt calls
	Frees  int `json:"frees"`  // Free calls
}

// Budget is an Allocator that refuses to own more than Limit bytes at once.
// A Limit of 0 means unlimited, which still keeps Stats.
type Budget struct {
	Limit int
	stats Stats
}

// NewBudget returns a Budget with the given limit.
func NewBudget(limit int) *Budget {
	return &Budget{Limit: limit}
}

func (b *Budget) reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", types.ErrAllocation, n)
	}
	if b.Limit > 0 && b.stats.Live+n > b.Limit {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			types.ErrAllocation, n, b.stats.Live, b.Limit)
	}
	b.stats.Live += n
	b.stats.Allocs++
	return nil
}

func (b *Budget) Alloc(n int) ([]byte, error) {
	if err := b.reserve(n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

func (b *Budget) Adopt(buf []byte) error {
	return b.reserve(len(buf))
}

func (b *Budget) Free(buf []byte) {
	b.stats.Live -= len(buf)
	b.stats.Frees++
}

// Stats returns a snapshot of the accounting.
func (b *Budget) Stats() Stats { return b.stats }
