// Package render turns payload views and lists into display strings for
// the CLI. It only reads the views it is given.
package render

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mesh-intelligence/chains/pkg/chain"
	"github.com/mesh-intelligence/chains/pkg/payload"
	"github.com/mesh-intelligence/chains/pkg/types"
)

// Format selects how payload bytes are shown.
type Format int

// Payload formats.
const (
	Auto  Format = iota // text when printable, otherwise hex
	Text                // raw bytes as a string
	Hex                 // lower-case hex with 0x prefix
	Int                 // little-endian signed integer of 1, 2, 4, or 8 bytes
	Float               // little-endian float32 or float64
)

var formatNames = map[string]Format{
	"auto":  Auto,
	"text":  Text,
	"hex":   Hex,
	"int":   Int,
	"float": Float,
}

// ParseFormat maps a format name to a Format. The empty string is Auto.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Auto, nil
	}
	f, ok := formatNames[strings.ToLower(s)]
	if !ok {
		return Auto, fmt.Errorf("unknown format %q (valid: auto, text, hex, int, float)", s)
	}
	return f, nil
}

// Payload renders v in format f. Int and Float fall back to Auto when the
// length does not fit the number type; trailing NUL bytes are dropped from
// text so C-style strings read naturally.
func Payload(v payload.View, f Format) string {
	b := v.AppendTo(nil)
	switch f {
	case Text:
		return string(b)
	case Hex:
		return "0x" + hex.EncodeToString(b)
	case Int:
		if s, ok := intString(b); ok {
			return s
		}
	case Float:
		if s, ok := floatString(b); ok {
			return s
		}
	}
	return auto(b)
}

func auto(b []byte) string {
	t := strings.TrimRight(string(b), "\x00")
	if utf8.ValidString(t) && strings.IndexFunc(t, func(r rune) bool {
		return !unicode.IsPrint(r) && !unicode.IsSpace(r)
	}) < 0 {
		return t
	}
	return "0x" + hex.EncodeToString(b)
}

func intString(b []byte) (string, bool) {
	switch len(b) {
	case 1:
		return strconv.Itoa(int(int8(b[0]))), true
	case 2:
		return strconv.Itoa(int(int16(binary.LittleEndian.Uint16(b)))), true
	case 4:
		return strconv.Itoa(int(int32(binary.LittleEndian.Uint32(b)))), true
	case 8:
		return strconv.FormatInt(int64(binary.LittleEndian.Uint64(b)), 10), true
	}
	return "", false
}

func floatString(b []byte) (string, bool) {
	switch len(b) {
	case 4:
		return strconv.FormatFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), 'g', -1, 32), true
	case 8:
		return strconv.FormatFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)), 'g', -1, 64), true
	}
	return "", false
}

// Strings renders every payload of l in forward order.
func Strings(l chain.List, f Format) []string {
	out := make([]string, 0, l.Len())
	for _, v := range l.All() {
		out = append(out, Payload(v, f))
	}
	return out
}

// BackwardStrings renders the payloads of d from the tail to the head.
func BackwardStrings(d *chain.Doubly, f Format) []string {
	out := make([]string, 0, d.Len())
	for _, v := range d.Backward() {
		out = append(out, Payload(v, f))
	}
	return out
}

// Chain draws l with arrows that show its topology:
//
//	singly:   A -> B -> nil
//	doubly:   nil <- A <-> B -> nil
//	circular: A -> B -> (A)
func Chain(l chain.List, f Format) string {
	items := Strings(l, f)
	if len(items) == 0 {
		return "(empty)"
	}
	switch l.Topology() {
	case types.TopologyDoubly:
		return "nil <- " + strings.Join(items, " <-> ") + " -> nil"
	case types.TopologyCircular:
		return strings.Join(items, " -> ") + " -> (" + items[0] + ")"
	default:
		return strings.Join(items, " -> ") + " -> nil"
	}
}
