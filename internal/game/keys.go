package game

import "strings"

// KeyKind classifies a raw key token coming from a keyboard or an
// on-screen keyboard.
type KeyKind int

const (
	KeyIgnored KeyKind = iota
	KeySubmit
	KeyDelete
	KeyLetter
)

// ParseKey classifies key, case-insensitively. "{enter}" and "{bksp}" are
// the tokens emitted by on-screen keyboards.
func ParseKey(key string) KeyKind {
	switch strings.ToLower(key) {
	case "enter", "{enter}":
		return KeySubmit
	case "backspace", "{bksp}":
		return KeyDelete
	}
	if isLetter(key) {
		return KeyLetter
	}
	return KeyIgnored
}

func (k KeyKind) String() string {
	switch k {
	case KeySubmit:
		return "submit"
	case KeyDelete:
		return "delete"
	case KeyLetter:
		return "letter"
	}
	return "ignored"
}
