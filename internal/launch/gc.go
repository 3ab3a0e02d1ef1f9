package launch

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quicklaunch/ql/internal/appdirs"
	"github.com/quicklaunch/ql/internal/logging"
)

// DefaultMaxAge is how long a leftover script may sit before the startup
// sweep removes it. Healthy scripts delete themselves within seconds; only a
// crash before self-deletion leaves one behind.
const DefaultMaxAge = 5 * time.Minute

// Sweep removes generated scripts older than maxAge. Files are only removed
// when they carry the generator marker, so unrelated files that happen to
// match the naming glob survive. Per-file errors are skipped; the count of
// removed files is returned.
func Sweep(maxAge time.Duration) int {
	return sweep(maxAge, false)
}

// SweepAll removes every marked script regardless of age. Manual
// troubleshooting path.
func SweepAll() int {
	return sweep(0, true)
}

func sweep(maxAge time.Duration, ignoreAge bool) int {
	dir, err := appdirs.ScriptDir()
	if err != nil {
		return 0
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*"+scriptSuffix))
	if err != nil {
		return 0
	}

	removed := 0
	now := time.Now()
	for _, path := range paths {
		if !ignoreAge {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if now.Sub(info.ModTime()) <= maxAge {
				continue
			}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if !strings.Contains(string(content), Marker) {
			continue
		}
		if err := os.Remove(path); err != nil {
			continue
		}
		removed++
	}
	if removed > 0 {
		logging.Trace("script_sweep", map[string]int{"removed": removed})
	}
	return removed
}
