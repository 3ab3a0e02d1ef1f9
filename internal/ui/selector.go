package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"

	"github.com/quicklaunch/ql/internal/safety"
)

type pickerOption struct {
	Label   string
	Command string
}

// PickSudoCDFix offers rewrites of a "sudo cd" chain plus the original
// command. It returns the chosen command, or ok=false when the user
// cancelled.
func PickSudoCDFix(backend string, command string, alts []safety.SudoCDAlternative) (string, bool, error) {
	options := buildSudoCDOptions(command, alts)

	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			choice string
			ok     bool
			err    error
		)
		switch candidate {
		case BackendBubbleTea:
			choice, ok, err = pickWithBubbleTea(command, options)
		case BackendHuh:
			choice, ok, err = pickWithHuh(command, options)
		case BackendTView:
			choice, ok, err = pickWithTView(command, options)
		case BackendPlain:
			choice, ok, err = pickWithPlain(command, options)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return choice, ok, nil
	}
	return "", false, firstErr
}

func buildSudoCDOptions(command string, alts []safety.SudoCDAlternative) []pickerOption {
	options := make([]pickerOption, 0, len(alts)+1)
	seen := map[string]struct{}{}

	add := func(label, cmd string) {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			return
		}
		key := strings.ToLower(cmd)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		options = append(options, pickerOption{Label: label, Command: cmd})
	}

	for _, alt := range alts {
		add(fmt.Sprintf("%s (%s)", alt.Command, alt.Note), alt.Command)
	}
	add("[run anyway] "+command, command)
	return options
}

func pickWithHuh(command string, options []pickerOption) (string, bool, error) {
	huhOptions := make([]huh.Option[string], 0, len(options))
	for _, option := range options {
		huhOptions = append(huhOptions, huh.NewOption(option.Label, option.Command))
	}

	choice := huhOptions[0].Value
	prompt := huh.NewSelect[string]().
		Title("'sudo cd' does not persist across commands").
		Description(fmt.Sprintf("Pick a rewrite of: %q", strings.TrimSpace(command))).
		Options(huhOptions...).
		Height(pickerHeight(len(huhOptions))).
		Value(&choice).
		WithTheme(huh.ThemeCharm())

	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return choice, true, nil
}

type pickerItem struct {
	label   string
	command string
}

func (i pickerItem) Title() string       { return i.label }
func (i pickerItem) Description() string { return "" }
func (i pickerItem) FilterValue() string { return i.label + " " + i.command }

type pickerModel struct {
	list      list.Model
	selection string
	cancelled bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(k.Width-4, pickerHeight(len(m.list.Items()))+4)
		return m, nil
	case tea.KeyMsg:
		switch k.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				m.selection = item.command
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string { return m.list.View() }

func pickWithBubbleTea(command string, options []pickerOption) (string, bool, error) {
	items := make([]list.Item, 0, len(options))
	for _, option := range options {
		items = append(items, pickerItem{label: option.Label, command: option.Command})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	picker := list.New(items, delegate, 76, pickerHeight(len(items))+4)
	picker.Title = fmt.Sprintf("'sudo cd' rewrite for: %s", strings.TrimSpace(command))
	picker.SetShowHelp(false)
	picker.SetFilteringEnabled(false)

	final, err := tea.NewProgram(pickerModel{list: picker}).Run()
	if err != nil {
		return "", false, err
	}
	out, ok := final.(pickerModel)
	if !ok || out.cancelled || strings.TrimSpace(out.selection) == "" {
		return "", false, nil
	}
	return out.selection, true, nil
}

func pickWithTView(command string, options []pickerOption) (string, bool, error) {
	app := tview.NewApplication()
	listView := tview.NewList()
	listView.SetBorder(true)
	listView.SetTitle(fmt.Sprintf("'sudo cd' rewrite for: %s", strings.TrimSpace(command)))
	listView.ShowSecondaryText(false)

	choice := ""
	used := false
	for _, option := range options {
		current := option
		listView.AddItem(current.Label, "", 0, func() {
			choice = current.Command
			used = true
			app.Stop()
		})
	}
	listView.SetDoneFunc(func() { app.Stop() })

	if err := app.SetRoot(listView, true).SetFocus(listView).Run(); err != nil {
		return "", false, err
	}
	if !used {
		return "", false, nil
	}
	return choice, true, nil
}

func pickWithPlain(command string, options []pickerOption) (string, bool, error) {
	out := plainOut()
	fmt.Fprintf(out, "'sudo cd' does not persist across commands: %s\n", command)
	for i, option := range options {
		fmt.Fprintf(out, "  %d. %s\n", i+1, option.Label)
	}
	fmt.Fprint(out, "Choice (empty to cancel): ")

	line, err := readPlainLine()
	if err != nil {
		return "", false, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false, nil
	}
	index, err := strconv.Atoi(line)
	if err != nil || index < 1 || index > len(options) {
		return "", false, nil
	}
	return options[index-1].Command, true, nil
}

func pickerHeight(optionCount int) int {
	if optionCount < 1 {
		optionCount = 1
	}
	height := optionCount + 1
	if height < 4 {
		height = 4
	}
	if height > 10 {
		height = 10
	}
	return height
}
