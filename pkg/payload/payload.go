package payload

import "bytes"

// Payload is a buffer stored in a list node together with its ownership tag.
type Payload interface {
	// View returns a read-only view of the stored bytes.
	View() View
	// Len returns the stored length.
	Len() int
	// Owned reports whether the node holding the payload must release it.
	Owned() bool
	// Release gives an owned buffer back to its allocator. It is a no-op for
	// borrowed payloads and for owned payloads that were already released.
	Release()
}

// Borrowed is a payload the caller keeps ownership of.
type Borrowed struct {
	buf []byte
}

// Borrow wraps buf without taking ownership.
func Borrow(buf []byte) Borrowed { return Borrowed{buf: buf} }

func (b Borrowed) View() View  { return View{b: b.buf} }
func (b Borrowed) Len() int    { return len(b.buf) }
func (b Borrowed) Owned() bool { return false }
func (b Borrowed) Release()    {}

// Owned is a payload whose buffer belongs to the node holding it.
type Owned struct {
	buf   []byte
	alloc Allocator
}

func (o *Owned) View() View  { return View{b: o.buf} }
func (o *Owned) Len() int    { return len(o.buf) }
func (o *Owned) Owned() bool { return true }

// Release returns the buffer to the allocator it came from. A second call
// does nothing.
func (o *Owned) Release() {
	if o.buf == nil {
		return
	}
	buf := Take(&o.buf)
	if o.alloc != nil {
		o.alloc.Free(buf)
	}
}

// View is a read-only view of a stored payload. The zero View is empty.
type View struct {
	b []byte
}

// Len returns the number of bytes in the view.
func (v View) Len() int { return len(v.b) }

// Bytes returns a copy of the viewed bytes.
func (v View) Bytes() []byte {
	if v.b == nil {
		return nil
	}
	return bytes.Clone(v.b)
}

// String returns the bytes as a string.
func (v View) String() string { return string(v.b) }

// Equal reports whether value has the stored length and the same bytes.
func (v View) Equal(value []byte) bool {
	return len(v.b) == len(value) && bytes.Equal(v.b, value)
}

// AppendTo appends the viewed bytes to dst.
func (v View) AppendTo(dst []byte) []byte { return append(dst, v.b...) }

// Share returns a borrowed payload over the same bytes as p. The result
// never releases anything, whatever the ownership of p.
func Share(p Payload) Borrowed {
	return Borrowed{buf: p.View().b}
}
