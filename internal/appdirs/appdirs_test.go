package appdirs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestEnsureConfigDirUsesPrivatePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat config dir failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("expected private config dir permissions, got %o", perms)
	}
}

func TestEnsureStateDirUsesPrivatePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")

	dir, err := EnsureStateDir()
	if err != nil {
		t.Fatalf("EnsureStateDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat state dir failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("expected private state dir permissions, got %o", perms)
	}
}

func TestEnsureStateDirTightensExistingPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")

	loose, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir failed: %v", err)
	}
	if err := os.MkdirAll(loose, 0o755); err != nil {
		t.Fatalf("could not pre-create state dir: %v", err)
	}

	dir, err := EnsureStateDir()
	if err != nil {
		t.Fatalf("EnsureStateDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat state dir failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("pre-existing state dir was not tightened, got %o", perms)
	}
}

func TestScriptDirLivesUnderStateDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")

	state, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir failed: %v", err)
	}
	scripts, err := EnsureScriptDir()
	if err != nil {
		t.Fatalf("EnsureScriptDir failed: %v", err)
	}
	if filepath.Dir(scripts) != state {
		t.Fatalf("expected script dir under %s, got %s", state, scripts)
	}
	if _, err := os.Stat(scripts); err != nil {
		t.Fatalf("script dir was not created: %v", err)
	}
}
