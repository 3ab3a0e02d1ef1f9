// Command ql is an interactive launcher for saved shell commands.
// Running it bare opens the full-screen session; `ql <alias>` runs one
// command directly and replaces the process with it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quicklaunch/ql/internal/appdirs"
	"github.com/quicklaunch/ql/internal/config"
	"github.com/quicklaunch/ql/internal/launch"
	"github.com/quicklaunch/ql/internal/logging"
	"github.com/quicklaunch/ql/internal/safety"
	"github.com/quicklaunch/ql/internal/session"
	"github.com/quicklaunch/ql/internal/store"
	"github.com/quicklaunch/ql/internal/ui"
)

var version = "dev"

type options struct {
	UI      string
	Version bool
	Cleanup bool
	DryRun  bool
}

func main() {
	opts, alias, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Version {
		fmt.Println("ql " + version)
		return
	}

	cfg, cfgPath, err := config.LoadOrCreate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ql: could not load config: %v\n", err)
		os.Exit(1)
	}
	logFile := cfg.Logging.File
	if logFile == "" {
		// Default the log next to the saved commands rather than the cwd.
		logFile, _ = appdirs.StateFilePath("ql.log")
	}
	logging.Configure(logFile)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if backend := strings.TrimSpace(opts.UI); backend != "" {
		cfg.UI.Backend = ui.NormalizeBackend(backend)
	}

	if opts.Cleanup {
		handleCleanup()
		return
	}

	// Reap scripts left behind by interrupted earlier sessions.
	launch.Sweep(time.Duration(cfg.Scripts.MaxAgeSeconds) * time.Second)

	if alias != "" {
		handleDirectRun(cfg, alias, opts.DryRun)
		return
	}

	s, err := session.New(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ql: %v\n", err)
		os.Exit(1)
	}
	logging.Trace("session_start", map[string]string{"config": cfgPath})
	if err := s.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ql: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (options, string, error) {
	fs := flag.NewFlagSet("ql", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts options
	fs.StringVar(&opts.UI, "ui", "", "override ui backend: auto|bubbletea|huh|tview|plain")
	fs.BoolVar(&opts.Version, "version", false, "print version")
	fs.BoolVar(&opts.Cleanup, "cleanup", false, "remove leftover launcher scripts and exit")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "print what the alias would run instead of running it")

	if err := fs.Parse(args); err != nil {
		return options{}, "", err
	}
	alias := strings.TrimSpace(strings.Join(fs.Args(), " "))
	return opts, alias, nil
}

func handleCleanup() {
	cleaned := launch.SweepAll()
	if cleaned > 0 {
		fmt.Printf("✅ Cleaned up %d temporary script(s)\n", cleaned)
	} else {
		fmt.Println("✨ No temporary scripts to clean")
	}
}

// handleDirectRun executes `ql <alias>` without entering the session.
// On success it never returns: the process becomes the command.
func handleDirectRun(cfg config.Config, alias string, dryRun bool) {
	commands, commandsPath, err := store.LoadCommands()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ql: could not load commands: %v\n", err)
		os.Exit(1)
	}

	cmd, err := commands.Get(alias)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Command '%s' not found!\n", alias)
		if names := commands.Names(); len(names) > 0 {
			fmt.Fprintf(os.Stderr, "Available commands: %s\n", strings.Join(names, ", "))
		} else {
			fmt.Fprintln(os.Stderr, "No commands saved. Run 'ql' to add some.")
		}
		os.Exit(1)
	}

	if dryRun {
		fmt.Printf("🔍 Dry run for %s:\n%s\n", alias, cmd.Command)
		return
	}

	if cfg.Safety.ConfirmDangerous && safety.IsDangerous(cmd.Command) {
		approved, err := ui.Confirm(cfg.UI.Backend,
			"⚠️  WARNING: This command appears potentially dangerous!",
			"Command: "+cmd.Command, false)
		if err != nil || !approved {
			fmt.Println("Command cancelled.")
			return
		}
	}

	stats, statsPath := store.LoadStats()
	stats.RecordUse(alias)
	if err := stats.Save(statsPath); err != nil {
		logging.Error(err)
	}
	commands.MoveToFront(alias)
	if err := commands.Save(commandsPath); err != nil {
		logging.Error(err)
	}

	if err := launch.Launch(launch.Request{Alias: alias, Command: cmd.Command, Kind: cmd.Kind, Shell: cfg.Scripts.Shell}); err != nil {
		fmt.Fprintf(os.Stderr, "ql: %v\n", err)
		os.Exit(1)
	}
}
