// Package stream provides device models that plug into the machine's I/O
// hooks: a capture/replay buffer, a channel-fed blocking input source, a
// tape-window recorder, and byte escaping for display.
package stream

import (
	"fmt"
	"strings"
)

// Escape renders bytes for display: printable ASCII and common whitespace
// pass through, everything else becomes \xHH.
func Escape(p []byte) string {
	var out strings.Builder
	for _, b := range p {
		switch {
		case b == '\n' || b == '\r' || b == '\t':
			out.WriteByte(b)
		case b >= 0x20 && b <= 0x7e:
			out.WriteByte(b)
		default:
			fmt.Fprintf(&out, "\\x%02X", b)
		}
	}
	return out.String()
}
