// Package session owns the interactive loop: a single-threaded state
// machine turns keypresses into actions, and the session applies their
// effects (store mutations, prompts, the execution handoff) between
// reads. No input is processed concurrently.
package session

import (
	"strings"

	"github.com/quicklaunch/ql/internal/key"
)

// Mode is the input mode of the main screen.
type Mode int

const (
	// ModeNormal navigates the command list.
	ModeNormal Mode = iota
	// ModeTextInput collects a command line for the grammar.
	ModeTextInput
	// ModeFilter collects fuzzy filter text that narrows the list live.
	ModeFilter
)

// View names the screen currently drawn.
type View int

const (
	ViewMain View = iota
	ViewTemplates
)

// ActionKind tells the session what effect a keypress asks for.
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionRun launches the visible entry at Index.
	ActionRun
	// ActionDryRun previews the visible entry at Index without running it.
	ActionDryRun
	// ActionCopy places the command of the entry at Index on the clipboard.
	ActionCopy
	// ActionSubmit hands the typed line in Text to the command grammar.
	ActionSubmit
	// ActionComplete asks for alias completion of the buffer in Text.
	ActionComplete
	// ActionLeaveView returns from a secondary view to the main screen.
	ActionLeaveView
	// ActionQuit ends the session.
	ActionQuit
)

// Action is the machine's verdict on one keypress. Index and Text are
// only meaningful for the kinds documented above.
type Action struct {
	Kind  ActionKind
	Index int
	Text  string
}

// State holds everything the machine needs between keypresses.
type State struct {
	Mode        Mode
	View        View
	Selected    int
	Input       string
	Filter      string
	ShowPreview bool
}

func NewState(showPreview bool) State {
	return State{ShowPreview: showPreview}
}

// Handle applies one keypress. visible is the number of entries the
// list currently shows after filtering; Selected stays within it.
func (s *State) Handle(ev key.Event, visible int) Action {
	if ev.Kind == key.KindCtrlC {
		return Action{Kind: ActionQuit}
	}

	if s.View == ViewTemplates {
		switch ev.Kind {
		case key.KindEnter, key.KindEscape, key.KindBackspace:
			s.View = ViewMain
			return Action{Kind: ActionLeaveView}
		}
		return Action{Kind: ActionNone}
	}

	switch s.Mode {
	case ModeFilter:
		return s.handleFilter(ev)
	case ModeTextInput:
		return s.handleTextInput(ev)
	default:
		return s.handleNormal(ev, visible)
	}
}

func (s *State) handleFilter(ev key.Event) Action {
	switch ev.Kind {
	case key.KindEnter:
		// Commit: the filter text keeps narrowing the list until cleared.
		s.Mode = ModeNormal
		s.Selected = 0
	case key.KindEscape:
		s.Mode = ModeNormal
		s.Filter = ""
		s.Selected = 0
	case key.KindBackspace:
		if s.Filter != "" {
			runes := []rune(s.Filter)
			s.Filter = string(runes[:len(runes)-1])
			s.Selected = 0
		} else {
			s.Mode = ModeNormal
		}
	case key.KindRune:
		if ev.Rune == '/' {
			s.Filter = ""
			s.Selected = 0
		} else if ev.IsPrintable() {
			s.Filter += string(ev.Rune)
			s.Selected = 0
		}
	}
	return Action{Kind: ActionNone}
}

func (s *State) handleTextInput(ev key.Event) Action {
	switch ev.Kind {
	case key.KindEnter:
		if strings.TrimSpace(s.Input) == "" {
			return Action{Kind: ActionNone}
		}
		line := s.Input
		s.Input = ""
		s.Mode = ModeNormal
		return Action{Kind: ActionSubmit, Text: line}
	case key.KindEscape:
		s.Input = ""
		s.Mode = ModeNormal
	case key.KindBackspace:
		if s.Input != "" {
			runes := []rune(s.Input)
			s.Input = string(runes[:len(runes)-1])
		}
		if s.Input == "" {
			s.Mode = ModeNormal
		}
	case key.KindTab:
		return Action{Kind: ActionComplete, Text: s.Input}
	case key.KindRune:
		if ev.IsPrintable() {
			s.Input += string(ev.Rune)
		}
	}
	return Action{Kind: ActionNone}
}

func (s *State) handleNormal(ev key.Event, visible int) Action {
	switch ev.Kind {
	case key.KindEnter:
		if visible > 0 && s.Selected >= 0 && s.Selected < visible {
			return Action{Kind: ActionRun, Index: s.Selected}
		}
	case key.KindUp:
		if visible > 0 && s.Selected > 0 {
			s.Selected--
		}
	case key.KindDown:
		if visible > 0 && s.Selected < visible-1 {
			s.Selected++
		}
	case key.KindCtrlD:
		if visible > 0 && s.Selected >= 0 && s.Selected < visible {
			return Action{Kind: ActionDryRun, Index: s.Selected}
		}
	case key.KindCtrlY:
		if visible > 0 && s.Selected >= 0 && s.Selected < visible {
			return Action{Kind: ActionCopy, Index: s.Selected}
		}
	case key.KindCtrlT:
		s.ShowPreview = !s.ShowPreview
	case key.KindEscape:
		if s.Filter != "" {
			s.Filter = ""
			s.Selected = 0
		}
	case key.KindRune:
		switch {
		case ev.Rune == '/':
			s.Mode = ModeFilter
			s.Filter = ""
			s.Selected = 0
		case ev.IsDigit():
			// Quick select runs a displayed entry by its 1-9 label.
			index := int(ev.Rune-'0') - 1
			if index >= 0 && index < visible && index < 9 {
				return Action{Kind: ActionRun, Index: index}
			}
		case ev.IsPrintable():
			s.Mode = ModeTextInput
			s.Input = string(ev.Rune)
		}
	}
	return Action{Kind: ActionNone}
}
