package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/quicklaunch/ql/internal/config"
	"github.com/quicklaunch/ql/internal/key"
	"github.com/quicklaunch/ql/internal/launch"
	"github.com/quicklaunch/ql/internal/logging"
	"github.com/quicklaunch/ql/internal/safety"
	"github.com/quicklaunch/ql/internal/screen"
	"github.com/quicklaunch/ql/internal/store"
	"github.com/quicklaunch/ql/internal/ui"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// seams for tests.
var (
	launchCommand      = launch.Launch
	sweepScripts       = launch.Sweep
	sweepAllScripts    = launch.SweepAll
	confirm            = ui.Confirm
	promptInput        = ui.Input
	pickSudoCDFix      = ui.PickSudoCDFix
	clipboardAvailable = ui.ClipboardAvailable
	copyToClipboard    = ui.CopyToClipboard
)

// Session drives the interactive loop.
type Session struct {
	cfg    config.Config
	reader *key.Reader
	render *screen.Renderer
	out    io.Writer

	commands      *store.Commands
	commandsPath  string
	stats         store.Stats
	statsPath     string
	templates     *store.Templates
	templatesPath string

	state State
	done  bool
}

// New loads the stores and prepares a session reading keys from in.
func New(cfg config.Config, in *os.File, out io.Writer) (*Session, error) {
	commands, commandsPath, err := store.LoadCommands()
	if err != nil {
		return nil, err
	}
	stats, statsPath := store.LoadStats()
	templates, templatesPath, err := store.LoadTemplates()
	if err != nil {
		logging.Error(err)
		templates = store.DefaultTemplates()
	}

	return &Session{
		cfg:           cfg,
		reader:        key.NewReader(in),
		render:        screen.NewRenderer(),
		out:           out,
		commands:      commands,
		commandsPath:  commandsPath,
		stats:         stats,
		statsPath:     statsPath,
		templates:     templates,
		templatesPath: templatesPath,
		state:         NewState(cfg.UI.ShowPreview),
	}, nil
}

// Run loops until the user quits or input ends. A panic in one
// iteration is logged and the loop continues with fresh state.
func (s *Session) Run() error {
	for !s.done {
		s.iterate()
	}
	fmt.Fprint(s.out, screen.Clear)
	fmt.Fprint(s.out, s.render.Goodbye())
	return nil
}

func (s *Session) iterate() {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(fmt.Errorf("session iteration panic: %v", r))
		}
	}()

	visible := s.visibleEntries()
	s.draw(visible)

	ev, err := s.reader.ReadKey()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logging.Error(err)
		}
		s.done = true
		return
	}

	// Typed text is never traced; it can contain secrets.
	if ev.Kind != key.KindRune {
		logging.Trace("key", map[string]string{"key": ev.String()})
	}
	action := s.state.Handle(ev, len(visible))
	s.apply(action, visible)
}

func (s *Session) visibleEntries() []screen.Entry {
	matched := s.commands.Filter(s.state.Filter)
	entries := make([]screen.Entry, 0, len(matched))
	for _, m := range matched {
		entries = append(entries, screen.Entry{
			Alias:   m.Alias,
			Command: m.Command,
			Uses:    s.stats.Count(m.Alias),
		})
	}
	return entries
}

func (s *Session) draw(visible []screen.Entry) {
	fmt.Fprint(s.out, screen.Clear)
	if s.state.View == ViewTemplates {
		fmt.Fprint(s.out, s.render.TemplateList(s.templates))
		return
	}

	links, chains := 0, 0
	for _, e := range s.commands.List() {
		if e.Command.Kind == store.KindChain {
			chains++
		} else {
			links++
		}
	}

	fmt.Fprint(s.out, s.render.Main(screen.Frame{
		Entries:       visible,
		Selected:      s.state.Selected,
		ShowPreview:   s.state.ShowPreview,
		FilterActive:  s.state.Mode == ModeFilter || s.state.Filter != "",
		FilterText:    s.state.Filter,
		InputActive:   s.state.Mode == ModeTextInput,
		InputText:     s.state.Input,
		TotalCommands: s.commands.Len(),
		TotalUses:     s.stats.TotalUses(),
		Links:         links,
		Chains:        chains,
		StorePath:     s.commandsPath,
		Templates:     s.templates,
		Clipboard:     clipboardAvailable(),
	}))
}

func (s *Session) apply(action Action, visible []screen.Entry) {
	switch action.Kind {
	case ActionQuit:
		s.done = true
	case ActionRun:
		s.runEntry(visible[action.Index])
	case ActionDryRun:
		entry := visible[action.Index]
		fmt.Fprint(s.out, screen.Clear)
		fmt.Fprint(s.out, s.render.DryRun(entry.Alias, entry.Command))
		s.waitForEnter()
	case ActionCopy:
		s.copyEntry(visible[action.Index])
	case ActionSubmit:
		s.execute(ParseLine(action.Text))
	case ActionComplete:
		s.complete(action.Text)
	}
}

// runEntry records usage, runs the safety gate and hands the process
// over to the command. It only returns when the launch was cancelled
// or failed.
func (s *Session) runEntry(entry screen.Entry) {
	sweepScripts(s.maxScriptAge())

	s.stats.RecordUse(entry.Alias)
	if err := s.stats.Save(s.statsPath); err != nil {
		logging.Error(err)
	}
	s.commands.MoveToFront(entry.Alias)
	if err := s.commands.Save(s.commandsPath); err != nil {
		logging.Error(err)
	}

	command, ok := s.safetyGate(entry.Command.Command)
	if !ok {
		return
	}

	fmt.Fprint(s.out, screen.Clear)
	emoji := "🔗"
	if entry.Command.Kind == store.KindChain {
		emoji = "⛓️"
	}
	fmt.Fprintf(s.out, "🚀 Launching %s %s in terminal...\n", emoji, entry.Alias)

	err := launchCommand(launch.Request{
		Alias:   entry.Alias,
		Command: command,
		Kind:    entry.Command.Kind,
		Shell:   s.cfg.Scripts.Shell,
	})
	if err != nil {
		logging.Error(err)
		s.notify("❌ Error executing command", err.Error())
	}
}

// safetyGate confirms dangerous commands and offers rewrites for
// "sudo cd" chains. It returns the command to run, which the user may
// have swapped for a suggested rewrite.
func (s *Session) safetyGate(command string) (string, bool) {
	if s.cfg.Safety.ConfirmDangerous && safety.IsDangerous(command) {
		approved, err := confirm(s.cfg.UI.Backend,
			"⚠️  WARNING: This command appears potentially dangerous!",
			"Command: "+command, false)
		if err != nil {
			logging.Error(err)
			return "", false
		}
		if !approved {
			s.notify("", "Command cancelled.")
			return "", false
		}
	}

	if safety.IsSudoCD(command) {
		choice, ok, err := pickSudoCDFix(s.cfg.UI.Backend, command, safety.SudoCDAlternatives(command))
		if err != nil {
			logging.Error(err)
			return "", false
		}
		if !ok {
			s.notify("", "Command cancelled.")
			return "", false
		}
		command = choice
	}
	return command, true
}

func (s *Session) copyEntry(entry screen.Entry) {
	if !clipboardAvailable() {
		s.notify("❌ Clipboard support not available", "")
		return
	}
	if err := copyToClipboard(entry.Command.Command); err != nil {
		logging.Error(err)
		s.notify("❌ Error copying to clipboard", err.Error())
		return
	}
	s.notify(fmt.Sprintf("📋 Copied '%s' to clipboard!", entry.Alias), "Command: "+entry.Command.Command)
}

// complete expands the buffer when exactly one alias starts with it;
// several candidates are listed instead.
func (s *Session) complete(buffer string) {
	suggestions := s.commands.Suggestions(buffer)
	switch {
	case len(suggestions) == 1:
		s.state.Input = suggestions[0] + " "
		s.state.Mode = ModeTextInput
	case len(suggestions) > 1:
		shown := suggestions
		extra := ""
		if len(shown) > 5 {
			extra = fmt.Sprintf("... and %d more", len(shown)-5)
			shown = shown[:5]
		}
		s.notify("Suggestions: "+strings.Join(shown, ", "), extra)
	}
}

func (s *Session) execute(req Request) {
	switch req.Verb {
	case VerbQuit:
		s.done = true
	case VerbHelp:
		fmt.Fprint(s.out, screen.Clear)
		fmt.Fprint(s.out, s.render.Help(s.templates))
		s.waitForEnter()
	case VerbTemplates:
		s.state.View = ViewTemplates
	case VerbAdd:
		s.addCommand(req.Alias, req.Command, store.KindLink)
	case VerbChain:
		s.addCommand(req.Alias, req.Command, store.KindChain)
	case VerbEdit:
		s.editCommand(req.Alias)
	case VerbRemove:
		s.removeCommand(req.Alias)
	case VerbTemplateRun:
		s.runTemplate(req.Name)
	case VerbTemplateSave:
		s.saveTemplate(req.Name, req.Command)
	case VerbTemplateEdit:
		s.editTemplate(req.Name)
	case VerbTemplateRemove:
		s.removeTemplate(req.Name)
	case VerbExport:
		s.exportCommands(req.Path)
	case VerbImport:
		s.importCommands(req.Path)
	case VerbCleanup:
		cleaned := sweepAllScripts()
		if cleaned > 0 {
			s.notify(fmt.Sprintf("✅ Cleaned up %d temporary script(s)", cleaned), "")
		} else {
			s.notify("✨ No temporary scripts to clean", "")
		}
	case VerbRunAlias:
		cmd, err := s.commands.Get(req.Alias)
		if err != nil {
			s.notify("❌ Unknown command: "+req.Alias,
				"Type 'help' for available commands or 'quit' to exit.")
			return
		}
		s.runEntry(screen.Entry{Alias: req.Alias, Command: cmd, Uses: s.stats.Count(req.Alias)})
	case VerbUsage:
		s.notify("❌ "+req.Usage, "")
	}
}

func (s *Session) addCommand(alias string, command string, kind store.Kind) {
	if !namePattern.MatchString(alias) {
		s.notify("❌ Alias can only contain letters, numbers, hyphens and underscores", "")
		return
	}

	command, ok := s.validateCommand(command)
	if !ok {
		s.notify("", "Command not added.")
		return
	}

	if existing, err := s.commands.Get(alias); err == nil {
		approved, err := confirm(s.cfg.UI.Backend,
			fmt.Sprintf("⚠️  Command '%s' already exists!", alias),
			"Current: "+existing.Command, false)
		if err != nil {
			logging.Error(err)
			return
		}
		if !approved {
			s.notify("", "Command not added.")
			return
		}
	}

	description, _, err := promptInput(s.cfg.UI.Backend, "Description (optional)", "", "")
	if err != nil {
		logging.Error(err)
	}
	tagsInput, _, err := promptInput(s.cfg.UI.Backend, "Tags (comma-separated, optional)", "", "")
	if err != nil {
		logging.Error(err)
	}

	s.commands.Set(alias, store.Command{
		Kind:        kind,
		Command:     command,
		Description: description,
		Tags:        splitTags(tagsInput),
		CreatedAt:   time.Now().Format(time.RFC3339),
	})
	if err := s.commands.Save(s.commandsPath); err != nil {
		logging.Error(err)
		s.notify("❌ Could not save commands", err.Error())
		return
	}

	s.selectAlias(alias)
	s.notify(fmt.Sprintf("✅ Added %s '%s'", kind, alias), "📁 Saved to: "+s.commandsPath)
}

// validateCommand applies the typo and PATH checks before a command is
// stored. The returned command may carry an accepted typo fix.
func (s *Session) validateCommand(command string) (string, bool) {
	if s.cfg.Safety.SuggestTypoFixes {
		if fixed, ok := safety.SuggestTypoFix(command); ok {
			approved, err := confirm(s.cfg.UI.Backend,
				"💡 Did you mean: "+fixed+"?", "", true)
			if err != nil {
				logging.Error(err)
			} else if approved {
				command = fixed
			}
		}
	}

	if s.cfg.Safety.CheckPath {
		if name, missing := safety.MissingFromPath(command); missing {
			approved, err := confirm(s.cfg.UI.Backend,
				fmt.Sprintf("⚠️  Command '%s' not found in PATH", name),
				"Continue anyway?", false)
			if err != nil {
				logging.Error(err)
				return "", false
			}
			if !approved {
				return "", false
			}
		}
	}
	return command, true
}

func (s *Session) editCommand(alias string) {
	cmd, err := s.commands.Get(alias)
	if err != nil {
		s.notify(fmt.Sprintf("❌ Command '%s' not found!", alias), "")
		return
	}

	newCommand, ok, err := promptInput(s.cfg.UI.Backend,
		"New command (Enter to keep current)", cmd.Command, cmd.Command)
	if err != nil {
		logging.Error(err)
		return
	}
	if ok && newCommand != "" && newCommand != cmd.Command {
		validated, accepted := s.validateCommand(newCommand)
		if !accepted {
			s.notify("", "Command not updated.")
			return
		}
		cmd.Command = validated
	}

	if description, ok, err := promptInput(s.cfg.UI.Backend,
		"Description (Enter to keep current)", cmd.Description, cmd.Description); err != nil {
		logging.Error(err)
	} else if ok {
		cmd.Description = description
	}

	if tagsInput, ok, err := promptInput(s.cfg.UI.Backend,
		"Tags (comma-separated, Enter to keep current)",
		strings.Join(cmd.Tags, ", "), strings.Join(cmd.Tags, ", ")); err != nil {
		logging.Error(err)
	} else if ok && tagsInput != "" {
		cmd.Tags = splitTags(tagsInput)
	}

	s.commands.Set(alias, cmd)
	if err := s.commands.Save(s.commandsPath); err != nil {
		logging.Error(err)
		s.notify("❌ Could not save commands", err.Error())
		return
	}
	s.notify(fmt.Sprintf("✅ Updated '%s'", alias), "")
}

func (s *Session) removeCommand(alias string) {
	cmd, err := s.commands.Get(alias)
	if err != nil {
		s.notify(fmt.Sprintf("❌ Command '%s' not found!", alias), "")
		return
	}

	approved, err := confirm(s.cfg.UI.Backend,
		fmt.Sprintf("⚠️  Remove %s '%s'?", cmd.Kind, alias),
		"Command: "+cmd.Command, false)
	if err != nil {
		logging.Error(err)
		return
	}
	if !approved {
		s.notify("", "Command not removed.")
		return
	}

	s.commands.Remove(alias)
	s.stats.Forget(alias)
	if err := s.commands.Save(s.commandsPath); err != nil {
		logging.Error(err)
	}
	if err := s.stats.Save(s.statsPath); err != nil {
		logging.Error(err)
	}

	if visible := len(s.visibleEntries()); s.state.Selected >= visible {
		s.state.Selected = max(0, visible-1)
	}
	s.notify(fmt.Sprintf("✅ Removed %s '%s'", cmd.Kind, alias), "")
}

func (s *Session) runTemplate(name string) {
	tmpl, err := s.templates.Get(name)
	if err != nil {
		detail := ""
		if names := s.templates.Names(); len(names) > 0 {
			detail = "Available templates: " + strings.Join(names, ", ")
		}
		s.notify(fmt.Sprintf("❌ Template '%s' not found!", name), detail)
		return
	}

	values := map[string]string{}
	for _, placeholder := range tmpl.Placeholders {
		value, ok, err := promptInput(s.cfg.UI.Backend, placeholder, "", "")
		if err != nil {
			logging.Error(err)
			return
		}
		if !ok || strings.TrimSpace(value) == "" {
			s.notify("", "Template cancelled.")
			return
		}
		values[placeholder] = value
	}

	command, ok := s.safetyGate(store.FillPlaceholders(tmpl.Template, values))
	if !ok {
		return
	}

	fmt.Fprint(s.out, screen.Clear)
	fmt.Fprintf(s.out, "🎨 Running template: %s\n", name)
	if err := launchCommand(launch.Request{Alias: name, Command: command, Kind: store.KindLink, Shell: s.cfg.Scripts.Shell}); err != nil {
		logging.Error(err)
		s.notify("❌ Error executing command", err.Error())
	}
}

func (s *Session) saveTemplate(name string, command string) {
	if !namePattern.MatchString(name) {
		s.notify("❌ Template name can only contain letters, numbers, hyphens and underscores", "")
		return
	}

	if existing, err := s.templates.Get(name); err == nil {
		approved, err := confirm(s.cfg.UI.Backend,
			fmt.Sprintf("⚠️  Template '%s' already exists!", name),
			"Current: "+existing.Template, false)
		if err != nil {
			logging.Error(err)
			return
		}
		if !approved {
			s.notify("", "Template not saved.")
			return
		}
	}

	description, _, err := promptInput(s.cfg.UI.Backend, "Description (optional)", "", "")
	if err != nil {
		logging.Error(err)
	}

	s.templates.Set(name, store.Template{Template: command, Description: description})
	if err := s.templates.Save(s.templatesPath); err != nil {
		logging.Error(err)
		s.notify("❌ Could not save templates", err.Error())
		return
	}

	saved, _ := s.templates.Get(name)
	detail := ""
	if len(saved.Placeholders) > 0 {
		detail = "Placeholders: " + strings.Join(saved.Placeholders, ", ")
	}
	s.notify(fmt.Sprintf("✅ Saved template '%s'", name), detail)
}

func (s *Session) editTemplate(name string) {
	tmpl, err := s.templates.Get(name)
	if err != nil {
		detail := ""
		if names := s.templates.Names(); len(names) > 0 {
			detail = "Available templates: " + strings.Join(names, ", ")
		}
		s.notify(fmt.Sprintf("❌ Template '%s' not found!", name), detail)
		return
	}

	if newCommand, ok, err := promptInput(s.cfg.UI.Backend,
		"New template (Enter to keep current)", tmpl.Template, tmpl.Template); err != nil {
		logging.Error(err)
		return
	} else if ok && newCommand != "" {
		tmpl.Template = newCommand
	}

	if description, ok, err := promptInput(s.cfg.UI.Backend,
		"Description (Enter to keep current)", tmpl.Description, tmpl.Description); err != nil {
		logging.Error(err)
	} else if ok {
		tmpl.Description = description
	}

	s.templates.Set(name, tmpl)
	if err := s.templates.Save(s.templatesPath); err != nil {
		logging.Error(err)
		s.notify("❌ Could not save templates", err.Error())
		return
	}
	s.notify(fmt.Sprintf("✅ Updated template '%s'", name), "")
}

func (s *Session) removeTemplate(name string) {
	tmpl, err := s.templates.Get(name)
	if err != nil {
		s.notify(fmt.Sprintf("❌ Template '%s' not found!", name), "")
		return
	}

	approved, err := confirm(s.cfg.UI.Backend,
		fmt.Sprintf("⚠️  Remove template '%s'?", name),
		"Template: "+tmpl.Template, false)
	if err != nil {
		logging.Error(err)
		return
	}
	if !approved {
		s.notify("", "Template not removed.")
		return
	}

	s.templates.Remove(name)
	if err := s.templates.Save(s.templatesPath); err != nil {
		logging.Error(err)
	}
	s.notify(fmt.Sprintf("✅ Removed template '%s'", name), "")
}

func (s *Session) exportCommands(path string) {
	if err := s.commands.Export(path); err != nil {
		logging.Error(err)
		s.notify("❌ Export failed", err.Error())
		return
	}
	s.notify(fmt.Sprintf("✅ Exported %d commands to %s", s.commands.Len(), path), "")
}

func (s *Session) importCommands(path string) {
	incoming, err := store.ImportFile(path)
	if err != nil {
		logging.Error(err)
		s.notify("❌ Import failed", err.Error())
		return
	}

	if conflicts := s.commands.Conflicts(incoming); len(conflicts) > 0 {
		shown := conflicts
		extra := ""
		if len(shown) > 5 {
			extra = fmt.Sprintf(" ... and %d more", len(shown)-5)
			shown = shown[:5]
		}
		approved, err := confirm(s.cfg.UI.Backend,
			fmt.Sprintf("⚠️  %d commands already exist: %s%s", len(conflicts), strings.Join(shown, ", "), extra),
			"Overwrite existing commands?", false)
		if err != nil {
			logging.Error(err)
			return
		}
		if !approved {
			s.notify("", "Import cancelled.")
			return
		}
	}

	imported := s.commands.Merge(incoming)
	if err := s.commands.Save(s.commandsPath); err != nil {
		logging.Error(err)
		s.notify("❌ Could not save commands", err.Error())
		return
	}
	s.notify(fmt.Sprintf("✅ Imported %d commands successfully", imported), "")
}

// selectAlias moves the highlight onto alias if it is visible.
func (s *Session) selectAlias(alias string) {
	for i, entry := range s.visibleEntries() {
		if entry.Alias == alias {
			s.state.Selected = i
			return
		}
	}
}

func (s *Session) notify(title string, lines ...string) {
	fmt.Fprint(s.out, screen.Clear)
	fmt.Fprint(s.out, s.render.Message(title, lines...))
	s.waitForEnter()
}

// waitForEnter swallows keys until Enter, Escape or end of input.
func (s *Session) waitForEnter() {
	for {
		ev, err := s.reader.ReadKey()
		if err != nil {
			s.done = true
			return
		}
		switch ev.Kind {
		case key.KindEnter, key.KindEscape:
			return
		case key.KindCtrlC:
			s.done = true
			return
		}
	}
}

func (s *Session) maxScriptAge() time.Duration {
	return time.Duration(s.cfg.Scripts.MaxAgeSeconds) * time.Second
}

func splitTags(input string) []string {
	tags := []string{}
	for _, tag := range strings.Split(input, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
