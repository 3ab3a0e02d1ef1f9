package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const exportVersion = "1.0.0"

// Export writes the full command set to filename in the interchange format
// {"commands": {...}, "exported_at": ..., "version": ...}, preserving order.
func (c *Commands) Export(filename string) error {
	body, err := c.encodeOrdered()
	if err != nil {
		return fmt.Errorf("could not encode export: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("{\n  \"commands\": ")
	buf.Write(indentBlock(bytes.TrimSpace(body)))
	buf.WriteString(",\n  \"exported_at\": ")
	ts, _ := json.Marshal(time.Now().Format(time.RFC3339))
	buf.Write(ts)
	buf.WriteString(",\n  \"version\": ")
	ver, _ := json.Marshal(exportVersion)
	buf.Write(ver)
	buf.WriteString("\n}\n")

	if err := os.WriteFile(filename, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("could not write export file: %w", err)
	}
	return nil
}

func indentBlock(body []byte) []byte {
	return bytes.ReplaceAll(body, []byte("\n"), []byte("\n  "))
}

// ImportFile reads an exported or raw command-map file and returns the
// incoming commands in file order.
func ImportFile(filename string) (*Commands, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read import file: %w", err)
	}

	var wrapper struct {
		Commands json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Commands) > 0 {
		return ParseCommands(wrapper.Commands)
	}
	return ParseCommands(data)
}

// Conflicts returns the incoming aliases that already exist in the store.
func (c *Commands) Conflicts(incoming *Commands) []string {
	var out []string
	for _, alias := range incoming.order {
		if c.Has(alias) {
			out = append(out, alias)
		}
	}
	return out
}

// Merge copies every incoming command into the store, overwriting existing
// aliases, and returns the number imported.
func (c *Commands) Merge(incoming *Commands) int {
	count := 0
	for _, entry := range incoming.List() {
		c.Set(entry.Alias, entry.Command)
		count++
	}
	return count
}
