package key

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// escapeLookahead bounds the wait for the two bytes that follow ESC in a
// cursor-key sequence, so a lone Escape press does not block forever.
const escapeLookahead = 50 * time.Millisecond

// Seams for tests: terminal control goes through package variables so tests
// can run without a real tty.
var (
	isTerminal = term.IsTerminal
	makeRaw    = term.MakeRaw
	restore    = term.Restore
)

// Reader acquires one logical keypress per ReadKey call. On a terminal it
// switches to raw mode for the duration of the read only and restores the
// previous mode on every exit path. On anything else it degrades to
// line-buffered pseudo-events: the line's printable runes followed by Enter.
type Reader struct {
	in      *os.File
	fd      int
	tty     bool
	pending []Event
}

func NewReader(in *os.File) *Reader {
	fd := int(in.Fd())
	return &Reader{
		in:  in,
		fd:  fd,
		tty: isTerminal(fd),
	}
}

// Interactive reports whether the reader drives a real terminal.
func (r *Reader) Interactive() bool { return r.tty }

// ReadKey blocks until one logical key arrives. Any OS-level read failure is
// returned to the caller, which treats it as a quit signal.
func (r *Reader) ReadKey() (Event, error) {
	if len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		return ev, nil
	}
	if !r.tty {
		return r.readLine()
	}
	return r.readRaw()
}

func (r *Reader) readRaw() (Event, error) {
	oldState, err := makeRaw(r.fd)
	if err != nil {
		return Event{}, fmt.Errorf("could not enter raw mode: %w", err)
	}
	defer func() {
		_ = restore(r.fd, oldState)
	}()

	for {
		b, err := r.readByte()
		if err != nil {
			return Event{}, fmt.Errorf("could not read key: %w", err)
		}

		switch {
		case b == '\r' || b == '\n':
			return Event{Kind: KindEnter}, nil
		case b == 0x7f || b == 0x08:
			return Event{Kind: KindBackspace}, nil
		case b == '\t':
			return Event{Kind: KindTab}, nil
		case b == 0x1b:
			return r.decodeEscape(), nil
		case b == 0x03:
			return Event{Kind: KindCtrlC}, nil
		case b == 0x04:
			return Event{Kind: KindCtrlD}, nil
		case b == 0x19:
			return Event{Kind: KindCtrlY}, nil
		case b == 0x14:
			return Event{Kind: KindCtrlT}, nil
		case b < 0x20:
			// Unmapped control byte: not part of the alphabet, keep reading.
			continue
		case b < 0x80:
			return RuneEvent(rune(b)), nil
		default:
			if ev, ok := r.decodeMultibyte(b); ok {
				return ev, nil
			}
		}
	}
}

func (r *Reader) readByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := r.in.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// decodeEscape reads the two-byte lookahead after an ESC. The cursor
// sequences ESC [ A/B/C/D become arrow events; anything else, including a
// timeout on a lone Escape press, is reported as a bare Escape.
func (r *Reader) decodeEscape() Event {
	deadlineSet := r.in.SetReadDeadline(time.Now().Add(escapeLookahead)) == nil
	if deadlineSet {
		defer func() {
			_ = r.in.SetReadDeadline(time.Time{})
		}()
	}

	var buf [2]byte
	n, _ := io.ReadFull(r.in, buf[:])
	if n != 2 || buf[0] != '[' {
		return Event{Kind: KindEscape}
	}
	switch buf[1] {
	case 'A':
		return Event{Kind: KindUp}
	case 'B':
		return Event{Kind: KindDown}
	case 'C':
		return Event{Kind: KindRight}
	case 'D':
		return Event{Kind: KindLeft}
	}
	return Event{Kind: KindEscape}
}

func (r *Reader) decodeMultibyte(first byte) (Event, bool) {
	var size int
	switch {
	case first&0xe0 == 0xc0:
		size = 2
	case first&0xf0 == 0xe0:
		size = 3
	case first&0xf8 == 0xf0:
		size = 4
	default:
		return Event{}, false
	}
	buf := make([]byte, size)
	buf[0] = first
	if _, err := io.ReadFull(r.in, buf[1:]); err != nil {
		return Event{}, false
	}
	runes := []rune(string(buf))
	if len(runes) != 1 || runes[0] == 0xfffd {
		return Event{}, false
	}
	return RuneEvent(runes[0]), true
}

// readLine is the non-interactive path: one input line becomes its printable
// runes followed by Enter, enough to drive the textual command grammar.
// Reading byte by byte never consumes past the newline, so the prompts that
// share the descriptor still see the lines that follow.
func (r *Reader) readLine() (Event, error) {
	var raw []byte
	for {
		b, err := r.readByte()
		if err != nil {
			if len(raw) == 0 {
				return Event{}, fmt.Errorf("could not read input line: %w", err)
			}
			break
		}
		if b == '\n' {
			break
		}
		raw = append(raw, b)
	}
	line := string(raw)
	events := make([]Event, 0, len(line)+1)
	for _, ru := range line {
		ev := RuneEvent(ru)
		if ev.IsPrintable() {
			events = append(events, ev)
		}
	}
	events = append(events, Event{Kind: KindEnter})
	r.pending = events[1:]
	return events[0], nil
}
