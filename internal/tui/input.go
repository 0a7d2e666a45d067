package tui

// Token values produced by Keys besides single letters.
const (
	TokenEnter     = "enter"
	TokenBackspace = "backspace"
	TokenQuit      = "quit"
)

// Keys splits raw terminal bytes into key tokens. Letters pass through,
// Enter and Backspace become their engine tokens, Ctrl-C, Ctrl-D and a lone
// Esc become TokenQuit. Escape sequences (arrows, function keys) and other
// bytes are dropped.
func Keys(buf []byte) []string {
	var out []string
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == '\r' || b == '\n':
			out = append(out, TokenEnter)
		case b == 0x7f || b == 0x08:
			out = append(out, TokenBackspace)
		case b == 0x03 || b == 0x04:
			out = append(out, TokenQuit)
		case b == 0x1b:
			if i+1 >= len(buf) {
				out = append(out, TokenQuit)
				continue
			}
			i = skipEscape(buf, i)
		case b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z':
			out = append(out, string(b))
		}
	}
	return out
}

// skipEscape returns the index of the last byte of the escape sequence
// starting at buf[i].
func skipEscape(buf []byte, i int) int {
	if i+1 >= len(buf) {
		return i
	}
	switch buf[i+1] {
	case '[':
		// CSI: parameters then a final byte in 0x40–0x7e
		for j := i + 2; j < len(buf); j++ {
			if buf[j] >= 0x40 && buf[j] <= 0x7e {
				return j
			}
		}
		return len(buf) - 1
	case 'O':
		// SS3: exactly one more byte
		if i+2 < len(buf) {
			return i + 2
		}
		return len(buf) - 1
	}
	// Alt+key
	return i + 1
}
