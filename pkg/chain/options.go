package chain

import (
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/chains/pkg/payload"
)

// Option configures a list at construction.
type Option func(*options)

type options struct {
	alloc    payload.Allocator
	maxNodes int
	log      logrus.FieldLogger
}

func buildOptions(opts []Option) options {
	o := options{
		alloc: payload.Heap{},
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAllocator sets the allocator used for copied payloads and for the
// accounting of moved ones.
func WithAllocator(a payload.Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithMaxNodes caps the number of nodes; 0 means unlimited.
func WithMaxNodes(n int) Option {
	return func(o *options) { o.maxNodes = n }
}

// WithLogger sets the logger. Misses are logged at debug level and refused
// allocations at warn level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}
