package payload

import "github.com/mesh-intelligence/chains/pkg/types"

// Source supplies a payload to a list operation in one ownership mode.
// Build one with Ref, Move, or Copy.
type Source interface {
	// Mode returns the ownership mode of the source.
	Mode() Mode
	// Bind prepares the payload against alloc. Bind never touches the
	// caller's slot; that happens in Binding.Commit.
	Bind(alloc Allocator) (Binding, error)
}

// Binding is a payload prepared for insertion. The caller must finish it
// with exactly one of Commit or Abort.
type Binding struct {
	payload Payload
	commit  func()
}

// Payload returns the prepared payload.
func (b Binding) Payload() Payload { return b.payload }

// Commit completes the transfer and returns the payload to store. For moved
// sources this is the point where the caller's slot is cleared.
func (b Binding) Commit() Payload {
	if b.commit != nil {
		b.commit()
	}
	return b.payload
}

// Abort undoes Bind: copied buffers are released and a moved slot is left
// exactly as the caller passed it.
func (b Binding) Abort() {
	if b.payload != nil {
		b.payload.Release()
	}
}

type refSource struct{ buf []byte }

// Ref borrows buf. The list stores buf itself and never releases it.
func Ref(buf []byte) Source { return refSource{buf: buf} }

func (refSource) Mode() Mode { return ModeRef }

func (s refSource) Bind(Allocator) (Binding, error) {
	return Binding{payload: Borrow(s.buf)}, nil
}

type moveSource struct{ slot *[]byte }

// Move transfers ownership of *slot to the list. Once the insert succeeds
// *slot is nil; if it fails the slot is left untouched.
func Move(slot *[]byte) Source { return moveSource{slot: slot} }

func (moveSource) Mode() Mode { return ModeMove }

func (s moveSource) Bind(alloc Allocator) (Binding, error) {
	if s.slot == nil || *s.slot == nil {
		return Binding{}, types.ErrNilSlot
	}
	buf := *s.slot
	if err := alloc.Adopt(buf); err != nil {
		return Binding{}, err
	}
	// Abort releases the accounting only; the bytes stay with the caller.
	return Binding{
		payload: &Owned{buf: buf, alloc: alloc},
		commit:  func() { Take(s.slot) },
	}, nil
}

type copySource struct{ buf []byte }

// Copy stores a private copy of buf owned by the list. The caller may
// mutate or drop buf afterwards without affecting the list.
func Copy(buf []byte) Source { return copySource{buf: buf} }

func (copySource) Mode() Mode { return ModeCopy }

func (s copySource) Bind(alloc Allocator) (Binding, error) {
	dup, err := alloc.Alloc(len(s.buf))
	if err != nil {
		return Binding{}, err
	}
	copy(dup, s.buf)
	return Binding{payload: &Owned{buf: dup, alloc: alloc}}, nil
}

// From builds a Source for mode. ModeMove reads from and clears *slot;
// the other modes use *slot without modifying it.
func From(mode Mode, slot *[]byte) Source {
	switch mode {
	case ModeMove:
		return Move(slot)
	case ModeCopy:
		return Copy(*slot)
	default:
		return Ref(*slot)
	}
}

// CopyOf stores a private copy of the bytes behind v.
func CopyOf(v View) Source { return copySource{buf: v.b} }
