// Package chain implements linked lists of opaque byte payloads in three
// topologies: singly linked, doubly linked, and singly linked circular.
//
// Every insert takes a payload.Source (or a NodeSource for detached nodes)
// naming the ownership mode, so the same operation is available as borrow,
// move, and deep copy:
//
//	l := chain.NewDoubly()
//	l.PushBack(payload.Copy([]byte("A")))
//	buf := []byte("B")
//	l.PushBack(payload.Move(&buf)) // buf is nil from here on
//	v, err := l.Get(1)
//
// All three list types share one engine. Cells live in an arena and link to
// each other by index; the doubly linked list additionally keeps back links
// and the circular list closes the tail onto the head.
//
// Lists are not safe for concurrent use.
package chain
