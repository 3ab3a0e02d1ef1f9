// Package screen renders the launcher's full-screen frames as strings.
// Rendering is pure: the session loop decides when to clear and write.
package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/quicklaunch/ql/internal/safety"
	"github.com/quicklaunch/ql/internal/store"
	"github.com/quicklaunch/ql/internal/theme"
)

// Clear wipes the terminal, scrollback included, and homes the cursor.
const Clear = "\x1b[2J\x1b[H\x1b[3J"

const (
	headerWidth       = 60
	commandColumnMax  = 40
	previewCommandMax = 80
)

// Entry is one row of the visible command list.
type Entry struct {
	Alias   string
	Command store.Command
	Uses    int
}

// Frame is a snapshot of everything the main screen needs to draw.
type Frame struct {
	Entries       []Entry
	Selected      int
	ShowPreview   bool
	FilterActive  bool
	FilterText    string
	InputActive   bool
	InputText     string
	TotalCommands int
	TotalUses     int
	Links         int
	Chains        int
	StorePath     string
	Templates     *store.Templates
	Clipboard     bool
}

// Renderer turns frames into styled terminal output.
type Renderer struct {
	styles *theme.Styles
}

func NewRenderer() *Renderer {
	return &Renderer{styles: theme.Default()}
}

// Main draws the command list, help footer and prompt line.
func (r *Renderer) Main(f Frame) string {
	var b strings.Builder

	r.header(&b, "🚀 QL - Quick Launcher")
	b.WriteString("\n")

	if f.TotalCommands == 0 {
		r.firstRun(&b, f.Templates)
	} else {
		r.listing(&b, f)
	}

	b.WriteString("\n")
	r.verbHelp(&b)
	if f.TotalCommands > 0 {
		r.navigationHelp(&b, f.Clipboard)
	}
	b.WriteString(r.styles.Help.Render("📁 Commands stored in: "+f.StorePath) + "\n")
	b.WriteString(r.prompt(f))
	return b.String()
}

func (r *Renderer) header(b *strings.Builder, title string) {
	rule := strings.Repeat("=", headerWidth)
	b.WriteString(r.styles.Header.Render(rule) + "\n")
	b.WriteString(r.styles.Header.Render(title) + "\n")
	b.WriteString(r.styles.Header.Render(rule) + "\n")
}

func (r *Renderer) firstRun(b *strings.Builder, templates *store.Templates) {
	b.WriteString(r.styles.Warning.Render("📝 No commands saved yet!") + "\n")
	b.WriteString(r.styles.Item.Render("Get started by adding your first command:") + "\n")
	b.WriteString(r.styles.CommandText.Render("   add <alias> <command>") + "\n")
	b.WriteString(r.styles.CommandText.Render("   chain <alias> <cmd1> && <cmd2> && <cmd3>") + "\n\n")
	b.WriteString(r.styles.Item.Render("Example:") + "\n")
	b.WriteString(r.styles.CommandText.Render("   add backup tar -czf backup.tar.gz ~/documents") + "\n")
	b.WriteString(r.styles.CommandText.Render("   chain setup git pull && npm install && npm run build") + "\n")
	if templates != nil && templates.Len() > 0 {
		b.WriteString("\n" + r.styles.Stats.Render("🎯 Available templates:") + "\n")
		for _, name := range templates.Names() {
			tmpl, err := templates.Get(name)
			if err != nil {
				continue
			}
			line := fmt.Sprintf("   %-12s - %s", name, tmpl.Description)
			b.WriteString(r.styles.Description.Render(line) + "\n")
		}
	}
}

func (r *Renderer) listing(b *strings.Builder, f Frame) {
	if f.FilterActive {
		status := fmt.Sprintf("🔍 Filter: %q (%d/%d commands)", f.FilterText, len(f.Entries), f.TotalCommands)
		b.WriteString(r.styles.FilterActive.Render(status) + "\n\n")
	} else {
		b.WriteString(r.styles.Stats.Render(r.statsLine(f)) + "\n\n")
	}

	if len(f.Entries) == 0 {
		b.WriteString(r.styles.Warning.Render("📭 No commands match your filter.") + "\n")
		return
	}

	aliasWidth := 0
	for _, e := range f.Entries {
		if len(e.Alias) > aliasWidth {
			aliasWidth = len(e.Alias)
		}
	}

	for i, e := range f.Entries {
		line := r.entryLine(i, e, aliasWidth)
		if i == f.Selected {
			b.WriteString(r.styles.SelectedItem.Render(line) + "\n")
			if f.ShowPreview {
				r.preview(b, e)
			}
			continue
		}
		b.WriteString(line + "\n")
	}
}

func (r *Renderer) entryLine(index int, e Entry, aliasWidth int) string {
	emoji := "🔗"
	if e.Command.Kind == store.KindChain {
		emoji = "⛓️"
	}

	number := fmt.Sprintf("%d", index+1)
	if index >= 9 {
		number = fmt.Sprintf("%2d", index+1)
	}
	if index < 9 {
		number = r.styles.ItemNumber.Render(number)
	} else {
		number = r.styles.Help.Render(number)
	}

	usage := ""
	if e.Uses > 0 {
		usage = fmt.Sprintf(" (%d)", e.Uses)
	}

	command := truncate.StringWithTail(e.Command.Command, commandColumnMax, "...")
	return fmt.Sprintf(" %s. %s %-*s%s → %s", number, emoji, aliasWidth, e.Alias, usage, command)
}

func (r *Renderer) preview(b *strings.Builder, e Entry) {
	var parts []string
	if e.Command.Description != "" {
		parts = append(parts, "📝 "+e.Command.Description)
	}
	if len(e.Command.Tags) > 0 {
		parts = append(parts, "🏷️ "+strings.Join(e.Command.Tags, ", "))
	}
	if e.Uses > 0 {
		parts = append(parts, fmt.Sprintf("📊 Used %d times", e.Uses))
	}
	if len(parts) > 0 {
		b.WriteString(r.styles.PreviewTitle.Render("   └─ "+strings.Join(parts, " • ")) + "\n")
	}
	command := truncate.StringWithTail(e.Command.Command, previewCommandMax, "...")
	b.WriteString(r.styles.PreviewBody.Render("   └─ Command: "+command) + "\n")
}

func (r *Renderer) statsLine(f Frame) string {
	line := fmt.Sprintf("📊 %d commands (%d links, %d chains)", f.TotalCommands, f.Links, f.Chains)
	if f.TotalUses > 0 {
		line += fmt.Sprintf(" • %d total uses", f.TotalUses)
	}
	return line
}

func (r *Renderer) verbHelp(b *strings.Builder) {
	b.WriteString(r.styles.Stats.Render("⚡ Commands:") + "\n")
	rows := [][2]string{
		{"add <alias> <command>", "Add new command link"},
		{"chain <alias> <cmd1> && <cmd2>", "Add command chain"},
		{"edit <alias>", "Edit existing command"},
		{"remove <alias>", "Remove command"},
		{"template <name> [<command>]", "Manage templates"},
		{"export <file-path>", "Export commands to file"},
		{"import <file-path>", "Import commands from file"},
		{"help", "Show detailed help"},
		{"quit or q", "Exit ql"},
	}
	r.helpRows(b, rows)
	b.WriteString("\n")
}

func (r *Renderer) navigationHelp(b *strings.Builder, clipboard bool) {
	b.WriteString(r.styles.Stats.Render("🎯 Navigation:") + "\n")
	rows := [][2]string{
		{"1-9", "Quick select (first 9 commands)"},
		{"↑/↓ arrows", "Navigate all commands"},
		{"Enter", "Run selected command"},
		{"Ctrl+D", "Dry run (preview command)"},
	}
	if clipboard {
		rows = append(rows, [2]string{"Ctrl+Y", "Copy command to clipboard"})
	}
	rows = append(rows,
		[2]string{"/", "Filter commands (fuzzy)"},
		[2]string{"Tab", "Auto-complete alias"},
		[2]string{"Ctrl+T", "Toggle preview on/off"},
	)
	r.helpRows(b, rows)
	b.WriteString("\n")
}

func (r *Renderer) helpRows(b *strings.Builder, rows [][2]string) {
	for _, row := range rows {
		key := r.styles.CommandText.Render(fmt.Sprintf("   %-30s", row[0]))
		b.WriteString(key + r.styles.Help.Render("- "+row[1]) + "\n")
	}
}

func (r *Renderer) prompt(f Frame) string {
	switch {
	case f.FilterActive:
		return r.styles.FilterPrompt.Render("🔍 Filter: ") + f.FilterText + "█"
	case f.InputActive:
		return r.styles.InputPrompt.Render("> ") + f.InputText + "█"
	default:
		return r.styles.InputPrompt.Render("> ")
	}
}

// DryRun draws the preview of what a command would execute.
func (r *Renderer) DryRun(alias string, cmd store.Command) string {
	var b strings.Builder
	emoji := "🔗"
	if cmd.Kind == store.KindChain {
		emoji = "⛓️"
	}
	b.WriteString("\n")
	b.WriteString(r.styles.FilterActive.Render(fmt.Sprintf("🔍 Dry run for %s %s:", emoji, alias)) + "\n")
	if cmd.Description != "" {
		b.WriteString(r.styles.Description.Render("📝 "+cmd.Description) + "\n")
	}
	if len(cmd.Tags) > 0 {
		b.WriteString(r.styles.Description.Render("🏷️ Tags: "+strings.Join(cmd.Tags, ", ")) + "\n")
	}
	b.WriteString("\n" + r.styles.CommandText.Render(cmd.Command) + "\n\n")
	if cmd.Kind == store.KindChain {
		b.WriteString(r.styles.Help.Render("This would run as a command chain (stops on first failure)") + "\n")
	}
	if safety.IsDangerous(cmd.Command) {
		b.WriteString(r.styles.Warning.Render("⚠️  WARNING: This command appears potentially dangerous!") + "\n")
	}
	b.WriteString("\n" + r.styles.Help.Render("Press Enter to continue..."))
	return b.String()
}

// TemplateList draws the template management screen.
func (r *Renderer) TemplateList(templates *store.Templates) string {
	var b strings.Builder
	r.header(&b, "🎨 QL - Templates")
	b.WriteString("\n")
	if templates == nil || templates.Len() == 0 {
		b.WriteString(r.styles.Help.Render("   No templates saved yet") + "\n")
	} else {
		for _, name := range templates.Names() {
			t, err := templates.Get(name)
			if err != nil {
				continue
			}
			suffix := ""
			if len(t.Placeholders) > 0 {
				suffix = " (" + strings.Join(t.Placeholders, ", ") + ")"
			}
			b.WriteString(fmt.Sprintf("   %s %s%s\n",
				r.styles.CommandText.Render(fmt.Sprintf("%-15s", name)),
				r.styles.Item.Render(t.Description),
				r.styles.Help.Render(suffix)))
			b.WriteString(r.styles.Description.Render("      "+t.Template) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Stats.Render("⚡ Usage:") + "\n")
	rows := [][2]string{
		{"template <name>", "Run template, prompting for placeholders"},
		{"template <name> <command>", "Save template with {placeholder} syntax"},
		{"template edit <name>", "Modify existing template"},
		{"template remove <name>", "Remove template"},
	}
	r.helpRows(&b, rows)
	b.WriteString("\n" + r.styles.Help.Render("Press Escape or Backspace to go back") + "\n")
	return b.String()
}

// Help draws the detailed help screen.
func (r *Renderer) Help(templates *store.Templates) string {
	var b strings.Builder
	r.header(&b, "🚀 QL - Quick Launcher Help")
	b.WriteString("\n")

	b.WriteString(r.styles.Stats.Render("📝 Adding Commands:") + "\n")
	b.WriteString(r.styles.CommandText.Render("   add backup tar -czf backup.tar.gz ~/docs") + "\n")
	b.WriteString(r.styles.Help.Render("   └─ Creates a simple command link") + "\n\n")
	b.WriteString(r.styles.CommandText.Render("   chain deploy git pull && npm install && npm run build") + "\n")
	b.WriteString(r.styles.Help.Render("   └─ Creates a command chain (stops on first failure)") + "\n\n")
	b.WriteString(r.styles.CommandText.Render("   template backup tar -czf backup-{date}.tar.gz {directory}") + "\n")
	b.WriteString(r.styles.Help.Render("   └─ Creates a template with placeholders for dynamic values") + "\n\n")

	b.WriteString(r.styles.Stats.Render("🎯 Navigation Tips:") + "\n")
	for _, tip := range []string{
		"Use / to search/filter commands by name, description, or tags",
		"Arrow keys to navigate, Enter to run",
		"Numbers 1-9 for quick selection of first 9 commands",
		"Ctrl+D for dry run preview (see what would execute)",
		"Ctrl+T to toggle command preview on/off",
	} {
		b.WriteString(r.styles.Item.Render("   • "+tip) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(r.styles.Stats.Render("🔧 Command Management:") + "\n")
	for _, tip := range []string{
		"edit <alias> - Modify existing commands",
		"Commands can have descriptions and tags for better organization",
		"Usage statistics track how often you use each command",
		"export/import for sharing command sets between machines",
	} {
		b.WriteString(r.styles.Item.Render("   • "+tip) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(r.styles.Stats.Render("🎨 Available Templates:") + "\n")
	if templates == nil || templates.Len() == 0 {
		b.WriteString(r.styles.Help.Render("   No templates saved yet") + "\n")
	} else {
		for _, name := range templates.Names() {
			t, err := templates.Get(name)
			if err != nil {
				continue
			}
			suffix := ""
			if len(t.Placeholders) > 0 {
				suffix = " (" + strings.Join(t.Placeholders, ", ") + ")"
			}
			line := fmt.Sprintf("   %-15s %s%s", name, t.Description, suffix)
			b.WriteString(r.styles.Item.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + r.styles.Help.Render("Press Enter to continue..."))
	return b.String()
}

// Message draws a transient notice followed by a continue prompt. The
// title style follows its outcome emoji.
func (r *Renderer) Message(title string, lines ...string) string {
	var b strings.Builder
	b.WriteString("\n")
	if title != "" {
		b.WriteString(r.titleStyle(title).Render(title) + "\n")
	}
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(r.styles.Item.Render(line) + "\n")
	}
	b.WriteString("\n" + r.styles.Help.Render("Press Enter to continue..."))
	return b.String()
}

func (r *Renderer) titleStyle(title string) *lipgloss.Style {
	switch {
	case strings.HasPrefix(title, "❌"):
		return r.styles.Error
	case strings.HasPrefix(title, "✅") || strings.HasPrefix(title, "📋"):
		return r.styles.Success
	default:
		return r.styles.Warning
	}
}

// Goodbye is printed when the session ends.
func (r *Renderer) Goodbye() string {
	return r.styles.Header.Render("👋 Thanks for using QL!") + "\n"
}
