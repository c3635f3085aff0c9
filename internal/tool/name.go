// internal/tool/name.go
package tool

import "strings"

// canonical maps lower-cased tool identifiers emitted by the agent process to
// the short names the conversation vocabulary uses. Spellings cover both the
// CamelCase and snake_case conventions seen across agent versions.
var canonical = map[string]string{
	"read":       "Read",
	"read_file":  "Read",
	"readfile":   "Read",
	"write":      "Write",
	"write_file": "Write",
	"writefile":  "Write",
	"edit":       "Edit",
	"edit_file":  "Edit",
	"bash":       "Shell",
	"shell":      "Shell",
	"run_shell":  "Shell",
	"glob":       "Glob",
	"grep":       "Grep",
	"list":       "List",
	"ls":         "List",
	"webfetch":   "Fetch",
	"web_fetch":  "Fetch",
	"websearch":  "Search",
	"web_search": "Search",
	"task":       "Task",
	"todowrite":  "Todo",
	"todo_write": "Todo",
	"todoread":   "Todo",
	"todo_read":  "Todo",
}

// Normalize maps a free-form tool identifier to its canonical short name.
// Unrecognized names pass through unchanged, so the function is idempotent:
// normalizing an already-canonical name returns it as is.
func Normalize(name string) string {
	if short, ok := canonical[strings.ToLower(name)]; ok {
		return short
	}
	return name
}

// IsTodoWrite reports whether the tool identifier is the todo-list update
// tool. Matching is exact-token and case-insensitive over the recognized
// spellings; a composite or namespaced identifier that merely contains the
// token (e.g. "mcp/TodoWrite") does not match.
func IsTodoWrite(name string) bool {
	switch strings.ToLower(name) {
	case "todowrite", "todo_write":
		return true
	default:
		return false
	}
}
