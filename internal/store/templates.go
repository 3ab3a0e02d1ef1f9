package store

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/quicklaunch/ql/internal/appdirs"
)

const templatesFileName = "templates.json"

// Template is a saved command pattern with {placeholder} tokens that are
// filled in at run time.
type Template struct {
	Template     string   `json:"template"`
	Description  string   `json:"description"`
	Placeholders []string `json:"placeholders"`
}

// Templates holds the named template set.
type Templates struct {
	items map[string]Template
}

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// DefaultTemplates is the starter set written on first run.
func DefaultTemplates() *Templates {
	t := &Templates{items: map[string]Template{}}
	t.Set("git-setup", Template{
		Template:    "git clone {repo} && cd {project} && npm install",
		Description: "Clone repo and setup Node.js project",
	})
	t.Set("backup", Template{
		Template:    "tar -czf backup-$(date +%Y%m%d).tar.gz {directory}",
		Description: "Create timestamped backup of directory",
	})
	t.Set("deploy", Template{
		Template:    "git pull && {build_command} && {deploy_command}",
		Description: "Pull, build and deploy sequence",
	})
	t.Set("docker-build", Template{
		Template:    "docker build -t {image_name} . && docker run -p {port}:{port} {image_name}",
		Description: "Build and run Docker container",
	})
	return t
}

// LoadTemplates reads the template file, creating it with the default set
// when missing, empty or entirely invalid.
func LoadTemplates() (*Templates, string, error) {
	path, err := appdirs.StateFilePath(templatesFileName)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		defaults := DefaultTemplates()
		if saveErr := defaults.Save(path); saveErr != nil {
			return defaults, path, saveErr
		}
		return defaults, path, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("could not read template store: %w", err)
	}

	var raw map[string]Template
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) == 0 {
		defaults := DefaultTemplates()
		_ = defaults.Save(path)
		return defaults, path, nil
	}

	t := &Templates{items: map[string]Template{}}
	for name, tmpl := range raw {
		if strings.TrimSpace(tmpl.Template) == "" {
			continue
		}
		t.Set(name, tmpl)
	}
	if t.Len() == 0 {
		defaults := DefaultTemplates()
		_ = defaults.Save(path)
		return defaults, path, nil
	}
	return t, path, nil
}

// Save persists the template set.
func (t *Templates) Save(path string) error {
	payload, err := json.MarshalIndent(t.items, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode templates: %w", err)
	}
	return writeFileAtomic(path, payload)
}

// Len reports the number of templates.
func (t *Templates) Len() int { return len(t.items) }

// Names returns template names in sorted order for stable display.
func (t *Templates) Names() []string {
	names := make([]string, 0, len(t.items))
	for name := range t.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks a template up; a missing name reports ErrNotFound.
func (t *Templates) Get(name string) (Template, error) {
	tmpl, ok := t.items[name]
	if !ok {
		return Template{}, fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	return tmpl, nil
}

// Has reports whether the template exists.
func (t *Templates) Has(name string) bool {
	_, ok := t.items[name]
	return ok
}

// Set stores a template, recomputing its placeholder list from the body.
func (t *Templates) Set(name string, tmpl Template) {
	tmpl.Placeholders = ExtractPlaceholders(tmpl.Template)
	if strings.TrimSpace(tmpl.Description) == "" {
		tmpl.Description = "Template: " + name
	}
	t.items[name] = tmpl
}

// Remove deletes a template and reports whether it existed.
func (t *Templates) Remove(name string) bool {
	if _, ok := t.items[name]; !ok {
		return false
	}
	delete(t.items, name)
	return true
}

// ExtractPlaceholders returns the {placeholder} names in body, deduplicated,
// in first-occurrence order.
func ExtractPlaceholders(body string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(body, -1)
	seen := map[string]struct{}{}
	out := []string{}
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// FillPlaceholders substitutes the collected values into the template body.
func FillPlaceholders(body string, values map[string]string) string {
	out := body
	for name, value := range values {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}
