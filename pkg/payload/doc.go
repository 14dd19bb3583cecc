// Package payload holds the ownership model for list payloads.
//
// A payload is an opaque byte buffer. Every insertion into a list names one
// of three ownership modes through a Source:
//
//	payload.Ref(buf)   // borrowed: the list keeps buf, the caller owns it
//	payload.Move(&buf) // moved: the list takes buf, the caller's slot is cleared
//	payload.Copy(buf)  // copied: the list allocates and owns a private copy
//
// Stored payloads are either Borrowed or Owned. Only Owned payloads are
// released when their node is deleted. Lookups hand out a View, which is
// read-only and cannot be turned back into a move slot.
package payload
