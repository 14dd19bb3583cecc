package payload

import (
	"fmt"
	"strings"
)

// Mode is the ownership policy chosen when a payload enters a list.
type Mode int

// Ownership modes.
const (
	ModeRef  Mode = iota // borrowed, never released by the list
	ModeMove             // ownership transferred, source slot cleared
	ModeCopy             // private deep copy owned by the list
)

var modeNames = map[Mode]string{
	ModeRef:  "ref",
	ModeMove: "move",
	ModeCopy: "copy",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode. "borrow" is accepted for ModeRef.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ref", "borrow":
		return ModeRef, nil
	case "move":
		return ModeMove, nil
	case "copy", "deep-copy":
		return ModeCopy, nil
	}
	return 0, fmt.Errorf("unknown ownership mode %q", s)
}
