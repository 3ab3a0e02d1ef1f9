// Package store persists the launcher's saved commands, templates and usage
// statistics as JSON files in the state directory.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quicklaunch/ql/internal/appdirs"
	"github.com/quicklaunch/ql/internal/match"
)

const commandsFileName = "commands.json"

// Kind distinguishes a single command link from a stop-on-failure chain.
type Kind string

const (
	KindLink  Kind = "link"
	KindChain Kind = "chain"
)

// ErrNotFound is returned when an alias or template name is unknown.
var ErrNotFound = errors.New("not found")

// Command is one saved runnable. Missing fields are filled with defaults on
// load so older files keep working.
type Command struct {
	Kind        Kind     `json:"type"`
	Command     string   `json:"command"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created"`
}

// Entry pairs an alias with its command for ordered listings.
type Entry struct {
	Alias   string
	Command Command
}

// Commands keeps saved commands in insertion order; the most recently run
// alias is moved to the front after each launch.
type Commands struct {
	order []string
	items map[string]Command
}

func NewCommands() *Commands {
	return &Commands{items: map[string]Command{}}
}

// LoadCommands reads the command store from the state directory. A missing
// file yields an empty store; a malformed file falls back to the legacy
// "alias: command" line format before giving up.
func LoadCommands() (*Commands, string, error) {
	path, err := appdirs.StateFilePath(commandsFileName)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewCommands(), path, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("could not read command store: %w", err)
	}
	cmds, err := ParseCommands(data)
	if err != nil {
		return nil, "", fmt.Errorf("could not parse command store: %w", err)
	}
	return cmds, path, nil
}

// ParseCommands decodes the JSON store while preserving key order. Plain
// string values and the legacy colon-separated text format are accepted.
func ParseCommands(data []byte) (*Commands, error) {
	cmds := NewCommands()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return cmds, nil
	}
	if trimmed[0] != '{' {
		parseLegacyLines(cmds, trimmed)
		return cmds, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		alias, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in command store", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		cmd, ok := decodeCommandValue(raw)
		if !ok {
			continue
		}
		cmds.Set(alias, cmd)
	}
	return cmds, nil
}

func decodeCommandValue(raw json.RawMessage) (Command, bool) {
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if strings.TrimSpace(legacy) == "" {
			return Command{}, false
		}
		return fillDefaults(Command{Command: legacy}), true
	}
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, false
	}
	if strings.TrimSpace(cmd.Command) == "" {
		return Command{}, false
	}
	return fillDefaults(cmd), true
}

func parseLegacyLines(cmds *Commands, data []byte) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		alias, command, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		alias = strings.TrimSpace(alias)
		command = strings.TrimSpace(command)
		if alias == "" || command == "" {
			continue
		}
		cmds.Set(alias, fillDefaults(Command{Command: command}))
	}
}

func fillDefaults(cmd Command) Command {
	if cmd.Kind != KindChain {
		cmd.Kind = KindLink
	}
	if cmd.Tags == nil {
		cmd.Tags = []string{}
	}
	if strings.TrimSpace(cmd.CreatedAt) == "" {
		cmd.CreatedAt = time.Now().Format(time.RFC3339)
	}
	return cmd
}

// Save writes the store atomically, keeping aliases in their current order.
func (c *Commands) Save(path string) error {
	payload, err := c.encodeOrdered()
	if err != nil {
		return fmt.Errorf("could not encode command store: %w", err)
	}
	return writeFileAtomic(path, payload)
}

func (c *Commands) encodeOrdered() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, alias := range c.order {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		keyBytes, err := json.Marshal(alias)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteString(": ")
		valueBytes, err := json.MarshalIndent(c.items[alias], "  ", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	if len(c.order) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create store dir: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".ql-store-*.json")
	if err != nil {
		return fmt.Errorf("could not create temp store file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}
	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp store file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp store file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp store file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not replace store file: %w", err)
	}
	return nil
}

// Len reports the number of saved commands.
func (c *Commands) Len() int { return len(c.order) }

// List returns all commands in display order.
func (c *Commands) List() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, alias := range c.order {
		entries = append(entries, Entry{Alias: alias, Command: c.items[alias]})
	}
	return entries
}

// Get looks an alias up; a missing alias reports ErrNotFound.
func (c *Commands) Get(alias string) (Command, error) {
	cmd, ok := c.items[alias]
	if !ok {
		return Command{}, fmt.Errorf("command %q: %w", alias, ErrNotFound)
	}
	return cmd, nil
}

// Has reports whether the alias exists.
func (c *Commands) Has(alias string) bool {
	_, ok := c.items[alias]
	return ok
}

// Set inserts or replaces a command. New aliases append to the order.
func (c *Commands) Set(alias string, cmd Command) {
	if _, exists := c.items[alias]; !exists {
		c.order = append(c.order, alias)
	}
	c.items[alias] = fillDefaults(cmd)
}

// Remove deletes an alias and reports whether it existed.
func (c *Commands) Remove(alias string) bool {
	if _, exists := c.items[alias]; !exists {
		return false
	}
	delete(c.items, alias)
	for i, a := range c.order {
		if a == alias {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// MoveToFront promotes the most recently run alias to the top of the list.
func (c *Commands) MoveToFront(alias string) {
	if _, exists := c.items[alias]; !exists {
		return
	}
	for i, a := range c.order {
		if a == alias {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append([]string{alias}, c.order...)
}

// Names returns the aliases in display order.
func (c *Commands) Names() []string {
	return append([]string(nil), c.order...)
}

// Suggestions returns aliases with the given prefix, for tab completion.
func (c *Commands) Suggestions(prefix string) []string {
	var out []string
	for _, alias := range c.order {
		if strings.HasPrefix(alias, prefix) {
			out = append(out, alias)
		}
	}
	return out
}

// Filter narrows the list to entries whose alias, command, description or
// tags match the pattern.
func (c *Commands) Filter(pattern string) []Entry {
	if strings.TrimSpace(pattern) == "" {
		return c.List()
	}
	var out []Entry
	for _, alias := range c.order {
		cmd := c.items[alias]
		if match.MatchesAny(pattern, alias, cmd.Command, cmd.Description, strings.Join(cmd.Tags, " ")) {
			out = append(out, Entry{Alias: alias, Command: cmd})
		}
	}
	return out
}
