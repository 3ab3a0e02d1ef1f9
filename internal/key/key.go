// Package key normalizes raw terminal input into the small symbolic
// key-event alphabet the interactive session dispatches on.
package key

import "unicode"

// Kind identifies a logical key.
type Kind int

const (
	KindRune Kind = iota
	KindEnter
	KindBackspace
	KindEscape
	KindTab
	KindUp
	KindDown
	KindLeft
	KindRight
	KindCtrlD
	KindCtrlY
	KindCtrlT
	KindCtrlC
)

// Event is a single decoded keypress. Rune is set only for KindRune.
type Event struct {
	Kind Kind
	Rune rune
}

// RuneEvent builds a character event.
func RuneEvent(r rune) Event {
	return Event{Kind: KindRune, Rune: r}
}

// IsPrintable reports whether the event carries a printable character.
func (e Event) IsPrintable() bool {
	return e.Kind == KindRune && unicode.IsPrint(e.Rune)
}

// IsDigit reports whether the event is a decimal digit character.
func (e Event) IsDigit() bool {
	return e.Kind == KindRune && e.Rune >= '0' && e.Rune <= '9'
}

func (e Event) String() string {
	switch e.Kind {
	case KindRune:
		if e.Rune == ' ' {
			return "Space"
		}
		return string(e.Rune)
	case KindEnter:
		return "Enter"
	case KindBackspace:
		return "Backspace"
	case KindEscape:
		return "Esc"
	case KindTab:
		return "Tab"
	case KindUp:
		return "Up"
	case KindDown:
		return "Down"
	case KindLeft:
		return "Left"
	case KindRight:
		return "Right"
	case KindCtrlD:
		return "Ctrl+D"
	case KindCtrlY:
		return "Ctrl+Y"
	case KindCtrlT:
		return "Ctrl+T"
	case KindCtrlC:
		return "Ctrl+C"
	}
	return "Unknown"
}
