package screen

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/quicklaunch/ql/internal/store"
)

func sampleFrame() Frame {
	return Frame{
		Entries: []Entry{
			{Alias: "build", Command: store.Command{Kind: store.KindLink, Command: "npm run build"}, Uses: 3},
			{Alias: "deploy", Command: store.Command{Kind: store.KindChain, Command: "git pull && make deploy", Description: "Ship it", Tags: []string{"ci"}}},
		},
		Selected:      0,
		ShowPreview:   true,
		TotalCommands: 2,
		TotalUses:     3,
		Links:         1,
		Chains:        1,
		StorePath:     "/home/u/.config/ql/commands.json",
	}
}

func TestMainListsNumberedEntries(t *testing.T) {
	out := NewRenderer().Main(sampleFrame())

	if !strings.Contains(out, "1.") || !strings.Contains(out, "2.") {
		t.Fatalf("missing quick-select numbers:\n%s", out)
	}
	if !strings.Contains(out, "build") || !strings.Contains(out, "deploy") {
		t.Fatalf("missing aliases:\n%s", out)
	}
	if !strings.Contains(out, "npm run build") {
		t.Fatalf("missing command text:\n%s", out)
	}
	if !strings.Contains(out, "(3)") {
		t.Fatalf("missing usage count:\n%s", out)
	}
	if !strings.Contains(out, "2 commands (1 links, 1 chains)") {
		t.Fatalf("missing stats line:\n%s", out)
	}
	if !strings.Contains(out, "/home/u/.config/ql/commands.json") {
		t.Fatalf("missing store path:\n%s", out)
	}
}

func TestMainPreviewFollowsSelection(t *testing.T) {
	f := sampleFrame()
	f.Selected = 1
	out := NewRenderer().Main(f)

	if !strings.Contains(out, "Ship it") {
		t.Fatalf("preview should show description of selected entry:\n%s", out)
	}
	if !strings.Contains(out, "ci") {
		t.Fatalf("preview should show tags:\n%s", out)
	}

	f.ShowPreview = false
	out = NewRenderer().Main(f)
	if strings.Contains(out, "└─ Command:") {
		t.Fatalf("preview rendered while toggled off:\n%s", out)
	}
}

func TestMainFilterStatus(t *testing.T) {
	f := sampleFrame()
	f.FilterActive = true
	f.FilterText = "bu"
	f.Entries = f.Entries[:1]
	out := NewRenderer().Main(f)

	if !strings.Contains(out, `Filter: "bu" (1/2 commands)`) {
		t.Fatalf("missing filter status:\n%s", out)
	}
	if !strings.Contains(out, "🔍 Filter: bu") {
		t.Fatalf("prompt should echo filter text:\n%s", out)
	}
}

func TestMainNoFilterMatches(t *testing.T) {
	f := sampleFrame()
	f.FilterActive = true
	f.FilterText = "zzz"
	f.Entries = nil
	out := NewRenderer().Main(f)

	if !strings.Contains(out, "No commands match your filter.") {
		t.Fatalf("missing empty-filter notice:\n%s", out)
	}
}

func TestMainFirstRun(t *testing.T) {
	f := Frame{Templates: store.DefaultTemplates(), StorePath: "/tmp/commands.json"}
	out := NewRenderer().Main(f)

	if !strings.Contains(out, "No commands saved yet!") {
		t.Fatalf("missing first-run banner:\n%s", out)
	}
	if !strings.Contains(out, "add <alias> <command>") {
		t.Fatalf("missing getting-started hint:\n%s", out)
	}
	if !strings.Contains(out, "git-setup") {
		t.Fatalf("first run should list default templates:\n%s", out)
	}
	if strings.Contains(out, "Navigation:") {
		t.Fatalf("navigation help should be hidden with no commands:\n%s", out)
	}
}

func TestMainTruncatesLongCommands(t *testing.T) {
	long := strings.Repeat("x", 120)
	f := Frame{
		Entries:       []Entry{{Alias: "big", Command: store.Command{Kind: store.KindLink, Command: long}}},
		TotalCommands: 1,
		Links:         1,
	}
	out := NewRenderer().Main(f)
	if strings.Contains(out, long) {
		t.Fatalf("long command was not truncated")
	}
	if !strings.Contains(out, "...") {
		t.Fatalf("truncated command should end in ellipsis")
	}
}

func TestDryRun(t *testing.T) {
	r := NewRenderer()

	out := r.DryRun("wipe", store.Command{Kind: store.KindChain, Command: "cd /tmp && rm -rf /tmp/cache"})
	if !strings.Contains(out, "Dry run for") {
		t.Fatalf("missing dry run title:\n%s", out)
	}
	if !strings.Contains(out, "command chain") {
		t.Fatalf("chain note missing:\n%s", out)
	}
	if !strings.Contains(out, "potentially dangerous") {
		t.Fatalf("dangerous warning missing:\n%s", out)
	}

	out = r.DryRun("ls", store.Command{Kind: store.KindLink, Command: "ls -la"})
	if strings.Contains(out, "potentially dangerous") {
		t.Fatalf("safe command flagged as dangerous:\n%s", out)
	}
}

func TestTemplateList(t *testing.T) {
	out := NewRenderer().TemplateList(store.DefaultTemplates())
	if !strings.Contains(out, "git-setup") || !strings.Contains(out, "docker-build") {
		t.Fatalf("missing default templates:\n%s", out)
	}
	if !strings.Contains(out, "repo, project") {
		t.Fatalf("missing placeholder list:\n%s", out)
	}

	out = NewRenderer().TemplateList(nil)
	if !strings.Contains(out, "No templates saved yet") {
		t.Fatalf("missing empty notice:\n%s", out)
	}
}

func TestHelpScreen(t *testing.T) {
	out := NewRenderer().Help(store.DefaultTemplates())
	if !strings.Contains(out, "Quick Launcher Help") {
		t.Fatalf("missing help header:\n%s", out)
	}
	if !strings.Contains(out, "Numbers 1-9 for quick selection") {
		t.Fatalf("missing navigation tip:\n%s", out)
	}
}

func TestMessageTitleStyleFollowsOutcome(t *testing.T) {
	r := NewRenderer()

	cases := []struct {
		title string
		want  *lipgloss.Style
	}{
		{"❌ Export failed", r.styles.Error},
		{"✅ Added link 'web'", r.styles.Success},
		{"📋 Copied 'web' to clipboard!", r.styles.Success},
		{"⚠️  Command 'web' already exists!", r.styles.Warning},
	}
	for _, tc := range cases {
		if got := r.titleStyle(tc.title); got != tc.want {
			t.Errorf("titleStyle(%q) picked the wrong style", tc.title)
		}
	}

	out := r.Message("✅ Added link 'web'", "📁 Saved to: /tmp/commands.json")
	if !strings.Contains(out, "Added link 'web'") || !strings.Contains(out, "Saved to") {
		t.Fatalf("message body missing:\n%s", out)
	}
}
