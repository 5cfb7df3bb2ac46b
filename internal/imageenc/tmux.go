// Package imageenc implements the Inline Image Encoder multiplexer
// (spec §4.5): one of four wire protocols (Kitty graphics, iTerm2
// inline, Sixel, ASCII), selected by detected terminal capability, plus
// the tmux passthrough wrapper all of them share.
package imageenc

import "strings"

const (
	tmuxPrefix     = "\x1bPtmux;\x1b\x1b"
	tmuxTerminator = "\x1b\x1b\\"
)

// WrapTmux applies the tmux passthrough convention (§4.5.5) to payload:
// prefix, every inner ESC doubled, then the terminator. It is a
// write-side transform applied once by the call site, never baked into
// an individual encoder.
func WrapTmux(payload []byte) []byte {
	var b strings.Builder
	b.Grow(len(payload) + len(tmuxPrefix) + len(tmuxTerminator))
	b.WriteString(tmuxPrefix)
	for _, c := range payload {
		if c == '\x1b' {
			b.WriteByte('\x1b')
		}
		b.WriteByte(c)
	}
	b.WriteString(tmuxTerminator)
	return []byte(b.String())
}

// UnwrapTmux reverses WrapTmux, the inverse used by tests to establish
// the involution property (spec §8 property 5).
func UnwrapTmux(wrapped []byte) []byte {
	s := string(wrapped)
	s = strings.TrimPrefix(s, tmuxPrefix)
	s = strings.TrimSuffix(s, tmuxTerminator)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\x1b' {
			b.WriteByte('\x1b')
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return []byte(b.String())
}
