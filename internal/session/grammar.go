package session

import "strings"

// Verb is the operation a typed line asks for.
type Verb int

const (
	VerbNone Verb = iota
	VerbQuit
	VerbHelp
	VerbTemplates
	VerbAdd
	VerbChain
	VerbEdit
	VerbRemove
	VerbTemplateRun
	VerbTemplateSave
	VerbTemplateEdit
	VerbTemplateRemove
	VerbExport
	VerbImport
	VerbCleanup
	VerbRunAlias
	VerbUsage
)

// Request is a parsed input line.
type Request struct {
	Verb    Verb
	Alias   string
	Command string
	Name    string
	Path    string
	Usage   string
}

// ParseLine interprets one submitted line. Unknown first words fall
// through to a direct alias run.
func ParseLine(line string) Request {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Request{Verb: VerbNone}
	}
	verb := strings.ToLower(parts[0])

	switch verb {
	case "quit", "q", "exit":
		return Request{Verb: VerbQuit}
	case "help":
		return Request{Verb: VerbHelp}
	case "templates":
		return Request{Verb: VerbTemplates}
	case "add", "chain":
		if len(parts) < 3 {
			usage := "Usage: add <alias> <command>"
			if verb == "chain" {
				usage = "Usage: chain <alias> <cmd1> && <cmd2> && <cmd3>"
			}
			return Request{Verb: VerbUsage, Usage: usage}
		}
		kind := VerbAdd
		if verb == "chain" {
			kind = VerbChain
		}
		return Request{Verb: kind, Alias: parts[1], Command: strings.Join(parts[2:], " ")}
	case "edit":
		if len(parts) != 2 {
			return Request{Verb: VerbUsage, Usage: "Usage: edit <alias>"}
		}
		return Request{Verb: VerbEdit, Alias: parts[1]}
	case "remove":
		if len(parts) != 2 {
			return Request{Verb: VerbUsage, Usage: "Usage: remove <alias>"}
		}
		return Request{Verb: VerbRemove, Alias: parts[1]}
	case "template":
		return parseTemplate(parts)
	case "export":
		if len(parts) < 2 {
			return Request{Verb: VerbUsage, Usage: "Usage: export <filename>"}
		}
		return Request{Verb: VerbExport, Path: strings.Join(parts[1:], " ")}
	case "import":
		if len(parts) < 2 {
			return Request{Verb: VerbUsage, Usage: "Usage: import <filename>"}
		}
		return Request{Verb: VerbImport, Path: strings.Join(parts[1:], " ")}
	case "cleanup":
		return Request{Verb: VerbCleanup}
	default:
		return Request{Verb: VerbRunAlias, Alias: parts[0]}
	}
}

func parseTemplate(parts []string) Request {
	switch {
	case len(parts) == 1:
		return Request{Verb: VerbTemplates}
	case len(parts) == 2:
		return Request{Verb: VerbTemplateRun, Name: parts[1]}
	case parts[1] == "edit":
		if len(parts) != 3 {
			return Request{Verb: VerbUsage, Usage: "Usage: template edit <name>"}
		}
		return Request{Verb: VerbTemplateEdit, Name: parts[2]}
	case parts[1] == "remove":
		if len(parts) != 3 {
			return Request{Verb: VerbUsage, Usage: "Usage: template remove <name>"}
		}
		return Request{Verb: VerbTemplateRemove, Name: parts[2]}
	default:
		return Request{Verb: VerbTemplateSave, Name: parts[1], Command: strings.Join(parts[2:], " ")}
	}
}
