package key

import (
	"os"
	"testing"

	"golang.org/x/term"
)

func newRawTestReader(t *testing.T, input []byte) *Reader {
	t.Helper()

	prevIsTerminal := isTerminal
	prevMakeRaw := makeRaw
	prevRestore := restore
	isTerminal = func(int) bool { return true }
	makeRaw = func(int) (*term.State, error) { return nil, nil }
	restore = func(int, *term.State) error { return nil }
	t.Cleanup(func() {
		isTerminal = prevIsTerminal
		makeRaw = prevMakeRaw
		restore = prevRestore
	})

	rd, wr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	t.Cleanup(func() {
		rd.Close()
	})
	go func() {
		defer wr.Close()
		_, _ = wr.Write(input)
	}()
	return NewReader(rd)
}

func readKinds(t *testing.T, r *Reader, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		ev, err := r.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey %d failed: %v", i, err)
		}
		events = append(events, ev)
	}
	return events
}

func TestReadKeyDecodesBasicBytes(t *testing.T) {
	r := newRawTestReader(t, []byte{'a', '\r', 0x7f, '\t', 0x03, 0x04, 0x19, 0x14})
	events := readKinds(t, r, 8)

	want := []Event{
		RuneEvent('a'),
		{Kind: KindEnter},
		{Kind: KindBackspace},
		{Kind: KindTab},
		{Kind: KindCtrlC},
		{Kind: KindCtrlD},
		{Kind: KindCtrlY},
		{Kind: KindCtrlT},
	}
	for i, ev := range events {
		if ev != want[i] {
			t.Fatalf("event %d = %v, want %v", i, ev, want[i])
		}
	}
}

func TestReadKeyDecodesArrowSequences(t *testing.T) {
	r := newRawTestReader(t, []byte("\x1b[A\x1b[B\x1b[C\x1b[D"))
	events := readKinds(t, r, 4)

	want := []Kind{KindUp, KindDown, KindRight, KindLeft}
	for i, ev := range events {
		if ev.Kind != want[i] {
			t.Fatalf("event %d kind = %v, want %v", i, ev.Kind, want[i])
		}
	}
}

func TestReadKeyLoneEscapeTimesOutToEscape(t *testing.T) {
	r := newRawTestReader(t, []byte{0x1b})
	ev, err := r.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey failed: %v", err)
	}
	if ev.Kind != KindEscape {
		t.Fatalf("lone ESC should decode as Escape, got %v", ev)
	}
}

func TestReadKeyUnknownEscapeSequenceIsEscape(t *testing.T) {
	r := newRawTestReader(t, []byte("\x1b[Zx"))
	ev, err := r.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey failed: %v", err)
	}
	if ev.Kind != KindEscape {
		t.Fatalf("unknown sequence should decode as Escape, got %v", ev)
	}
}

func TestReadKeySkipsUnmappedControlBytes(t *testing.T) {
	r := newRawTestReader(t, []byte{0x01, 0x02, 'z'})
	ev, err := r.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey failed: %v", err)
	}
	if ev != RuneEvent('z') {
		t.Fatalf("expected z after skipping control bytes, got %v", ev)
	}
}

func TestReadKeyAssemblesMultibyteRunes(t *testing.T) {
	r := newRawTestReader(t, []byte("é日"))
	events := readKinds(t, r, 2)
	if events[0] != RuneEvent('é') || events[1] != RuneEvent('日') {
		t.Fatalf("multibyte decode failed: %v", events)
	}
}

func TestReadKeyLineFallback(t *testing.T) {
	rd, wr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	defer rd.Close()
	go func() {
		defer wr.Close()
		_, _ = wr.WriteString("add build npm run build\n")
	}()

	r := NewReader(rd)
	if r.Interactive() {
		t.Fatalf("pipe must not be reported as interactive")
	}

	line := "add build npm run build"
	events := readKinds(t, r, len(line)+1)
	for i, ru := range line {
		if events[i] != RuneEvent(ru) {
			t.Fatalf("event %d = %v, want %q", i, events[i], ru)
		}
	}
	if events[len(line)].Kind != KindEnter {
		t.Fatalf("line must terminate with Enter, got %v", events[len(line)])
	}
}

func TestReadKeyLineFallbackLeavesNextLineUnread(t *testing.T) {
	rd, wr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	defer rd.Close()
	go func() {
		defer wr.Close()
		_, _ = wr.WriteString("first\nsecond\n")
	}()

	r := NewReader(rd)
	readKinds(t, r, len("first")+1)

	// The second line must still be on the descriptor for whoever
	// reads it next, typically a plain prompt sharing stdin.
	buf := make([]byte, 16)
	n, err := rd.Read(buf)
	if err != nil {
		t.Fatalf("read after line fallback failed: %v", err)
	}
	if got := string(buf[:n]); got != "second\n" {
		t.Fatalf("reader consumed past the newline, remaining %q", got)
	}
}

func TestReadKeyLineFallbackEOF(t *testing.T) {
	rd, wr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	defer rd.Close()
	wr.Close()

	r := NewReader(rd)
	if _, err := r.ReadKey(); err == nil {
		t.Fatalf("expected read error at EOF")
	}
}
