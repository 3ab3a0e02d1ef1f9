package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
)

// stdin/stdout seams for the plain backend in tests.
var (
	plainIn  io.Reader = os.Stdin
	plainOut           = func() *os.File { return os.Stdout }
)

// readPlainLine reads one line a byte at a time. The session's key reader
// shares the descriptor on piped stdin, so nothing past the newline may be
// consumed here.
func readPlainLine() (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := plainIn.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return string(line), nil
			}
			line = append(line, buf[0])
			continue
		}
		if err != nil {
			if len(line) > 0 && errors.Is(err, io.EOF) {
				return string(line), nil
			}
			return "", err
		}
	}
}

// Confirm asks a yes/no question. Detail lines are shown under the
// title. defaultYes picks the answer taken on a bare Enter.
func Confirm(backend string, title string, detail string, defaultYes bool) (bool, error) {
	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			approved bool
			err      error
		)
		switch candidate {
		case BackendBubbleTea:
			approved, err = confirmWithBubbleTea(title, detail, defaultYes)
		case BackendHuh:
			approved, err = confirmWithHuh(title, detail, defaultYes)
		case BackendTView:
			approved, err = confirmWithTView(title, detail)
		case BackendPlain:
			approved, err = confirmWithPlain(title, detail, defaultYes)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return approved, nil
	}
	return false, firstErr
}

type bubbleConfirmModel struct {
	title      string
	detail     string
	defaultYes bool
	approved   bool
	done       bool
}

func (m bubbleConfirmModel) Init() tea.Cmd { return nil }

func (m bubbleConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.KeyMsg:
		switch strings.ToLower(k.String()) {
		case "y":
			m.approved = true
			m.done = true
			return m, tea.Quit
		case "n", "esc", "ctrl+c":
			m.approved = false
			m.done = true
			return m, tea.Quit
		case "enter":
			m.approved = m.defaultYes
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m bubbleConfirmModel) View() string {
	hint := "[y] yes  [n] no"
	if m.defaultYes {
		hint = "[Y/n]"
	}
	if m.detail == "" {
		return fmt.Sprintf("%s\n\n%s", m.title, hint)
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", m.title, m.detail, hint)
}

func confirmWithBubbleTea(title string, detail string, defaultYes bool) (bool, error) {
	model := bubbleConfirmModel{
		title:      strings.TrimSpace(title),
		detail:     strings.TrimSpace(detail),
		defaultYes: defaultYes,
	}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return false, err
	}
	out, ok := final.(bubbleConfirmModel)
	if !ok || !out.done {
		return false, nil
	}
	return out.approved, nil
}

func confirmWithHuh(title string, detail string, defaultYes bool) (bool, error) {
	approved := defaultYes
	prompt := huh.NewConfirm().
		Title(title).
		Description(strings.TrimSpace(detail)).
		Affirmative("Yes").
		Negative("No").
		Value(&approved).
		WithTheme(huh.ThemeCharm())
	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}

func confirmWithTView(title string, detail string) (bool, error) {
	app := tview.NewApplication()
	approved := false
	done := false

	text := title
	if detail != "" {
		text += "\n\n" + detail
	}
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(_ int, label string) {
			done = true
			approved = strings.EqualFold(strings.TrimSpace(label), "yes")
			app.Stop()
		})

	if err := app.SetRoot(modal, true).Run(); err != nil {
		return false, err
	}
	if !done {
		return false, nil
	}
	return approved, nil
}

func confirmWithPlain(title string, detail string, defaultYes bool) (bool, error) {
	out := plainOut()
	fmt.Fprintln(out, title)
	if detail != "" {
		fmt.Fprintln(out, detail)
	}
	hint := "(y/N)"
	if defaultYes {
		hint = "(Y/n)"
	}
	fmt.Fprintf(out, "%s: ", hint)

	line, err := readPlainLine()
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return defaultYes, nil
	}
	return answer == "y" || answer == "yes", nil
}
