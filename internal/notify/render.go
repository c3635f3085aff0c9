// internal/notify/render.go
package notify

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/user/codewatch/internal/types"
)

const maxBodyChars = 1500

// RenderTerminal builds the notification text for a session's terminal
// transition: the outcome, the original intent, and the tail of the
// conversation.
func RenderTerminal(session types.Session) string {
	var b strings.Builder

	switch session.Status {
	case types.SessionCompleted:
		b.WriteString("Task completed")
	case types.SessionFailed:
		b.WriteString("Task failed")
	case types.SessionInterrupted:
		b.WriteString("Task interrupted")
	default:
		b.WriteString("Task " + string(session.Status))
	}
	if session.Intent != "" {
		fmt.Fprintf(&b, ": %s", truncate(session.Intent, 120))
	}
	b.WriteString("\n")

	if last := lastAssistantText(session.Messages); last != "" {
		b.WriteString("\n")
		b.WriteString(truncate(CleanContent(last), maxBodyChars))
		b.WriteString("\n")
	}

	if pending := pendingTodos(session.Todos); pending > 0 {
		fmt.Fprintf(&b, "\n%d todo item(s) left open\n", pending)
	}
	fmt.Fprintf(&b, "\n%d message(s)", len(session.Messages))
	if session.ContextTokens > 0 {
		fmt.Fprintf(&b, ", ~%d context tokens", session.ContextTokens)
	}

	return b.String()
}

// CleanContent normalizes message content for delivery. HTML-bearing output
// (e.g. a fetch tool's result) is converted to markdown; plain text passes
// through unchanged.
func CleanContent(content string) string {
	if !looksLikeHTML(content) {
		return content
	}
	md, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(md)
}

func looksLikeHTML(s string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(trimmed, "<!doctype html") ||
		strings.HasPrefix(trimmed, "<html") ||
		strings.Contains(trimmed, "</p>") ||
		strings.Contains(trimmed, "</div>")
}

func lastAssistantText(messages []types.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Type == types.MessageAssistant && messages[i].Content != "" {
			return messages[i].Content
		}
	}
	return ""
}

func pendingTodos(todos []types.TodoItem) int {
	count := 0
	for _, item := range todos {
		if item.Status != types.TodoCompleted {
			count++
		}
	}
	return count
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\r", "")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
