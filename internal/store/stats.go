package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quicklaunch/ql/internal/appdirs"
)

const statsFileName = "stats.json"

// Stats tracks how often and when each alias was run. Failures loading or
// saving stats are never fatal to the launcher.
type Stats struct {
	UsageCount map[string]int    `json:"usage_count"`
	LastUsed   map[string]string `json:"last_used"`
}

func NewStats() Stats {
	return Stats{UsageCount: map[string]int{}, LastUsed: map[string]string{}}
}

// LoadStats reads usage statistics, returning empty stats on any problem.
func LoadStats() (Stats, string) {
	stats := NewStats()
	path, err := appdirs.StateFilePath(statsFileName)
	if err != nil {
		return stats, ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return stats, path
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return NewStats(), path
	}
	if stats.UsageCount == nil {
		stats.UsageCount = map[string]int{}
	}
	if stats.LastUsed == nil {
		stats.LastUsed = map[string]string{}
	}
	return stats, path
}

// Save persists the statistics file.
func (s Stats) Save(path string) error {
	if path == "" {
		return nil
	}
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode stats: %w", err)
	}
	return writeFileAtomic(path, payload)
}

// RecordUse bumps the counters for one run of alias.
func (s Stats) RecordUse(alias string) {
	s.UsageCount[alias]++
	s.LastUsed[alias] = time.Now().Format(time.RFC3339)
}

// Forget drops all statistics for a removed alias.
func (s Stats) Forget(alias string) {
	delete(s.UsageCount, alias)
	delete(s.LastUsed, alias)
}

// Count returns how many times alias has been run.
func (s Stats) Count(alias string) int {
	return s.UsageCount[alias]
}

// TotalUses sums the run counters across all aliases.
func (s Stats) TotalUses() int {
	total := 0
	for _, n := range s.UsageCount {
		total += n
	}
	return total
}
