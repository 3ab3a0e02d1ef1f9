package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Input asks for one line of text. It returns ok=false when the user
// aborted the prompt.
func Input(backend string, title string, placeholder string, initial string) (string, bool, error) {
	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			value string
			ok    bool
			err   error
		)
		switch candidate {
		case BackendBubbleTea:
			value, ok, err = inputWithBubbleTea(title, placeholder, initial)
		case BackendHuh:
			value, ok, err = inputWithHuh(title, placeholder, initial)
		case BackendTView:
			value, ok, err = inputWithTView(title, initial)
		case BackendPlain:
			value, ok, err = inputWithPlain(title, initial)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return value, ok, nil
	}
	return "", false, firstErr
}

type bubbleInputModel struct {
	title     string
	input     textinput.Model
	cancelled bool
}

func (m bubbleInputModel) Init() tea.Cmd { return textinput.Blink }

func (m bubbleInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m bubbleInputModel) View() string {
	return fmt.Sprintf("%s\n\n%s\n\n[enter] accept  [esc] cancel", m.title, m.input.View())
}

func inputWithBubbleTea(title string, placeholder string, initial string) (string, bool, error) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(initial)
	input.CharLimit = 512
	input.Width = 72
	input.Focus()

	model := bubbleInputModel{title: strings.TrimSpace(title), input: input}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", false, err
	}
	out, ok := final.(bubbleInputModel)
	if !ok || out.cancelled {
		return "", false, nil
	}
	return strings.TrimSpace(out.input.Value()), true, nil
}

func inputWithHuh(title string, placeholder string, initial string) (string, bool, error) {
	value := initial
	prompt := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value).
		WithTheme(huh.ThemeCharm())
	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(value), true, nil
}

func inputWithTView(title string, initial string) (string, bool, error) {
	app := tview.NewApplication()
	value := ""
	done := false

	field := tview.NewInputField().
		SetLabel(title + ": ").
		SetText(initial).
		SetFieldWidth(64)
	field.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			value = field.GetText()
			done = true
		}
		app.Stop()
	})

	if err := app.SetRoot(field, true).SetFocus(field).Run(); err != nil {
		return "", false, err
	}
	if !done {
		return "", false, nil
	}
	return strings.TrimSpace(value), true, nil
}

func inputWithPlain(title string, initial string) (string, bool, error) {
	out := plainOut()
	if initial != "" {
		fmt.Fprintf(out, "%s [%s]: ", title, initial)
	} else {
		fmt.Fprintf(out, "%s: ", title)
	}
	line, err := readPlainLine()
	if err != nil {
		return "", false, err
	}
	value := strings.TrimSpace(line)
	if value == "" {
		value = initial
	}
	return value, true, nil
}
