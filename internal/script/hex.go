package script

import (
	"encoding/hex"
	"strings"
)

// decodeHex accepts an optional 0x prefix and ignores spaces and
// underscores between digit pairs.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.NewReplacer(" ", "", "_", "").Replace(s)
	return hex.DecodeString(s)
}
