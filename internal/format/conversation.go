// Package format renders the conversation model for the CLI.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/user/codewatch/internal/types"
)

// WriteConversation writes the session's messages to w in the requested
// format: "table", "plain", or "json". width bounds the content column of
// table output; zero or negative means the default.
func WriteConversation(w io.Writer, session types.Session, format string, width int) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeConversationTable(w, session, width)
	case "plain":
		return writeConversationPlain(w, session)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(session)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeConversationPlain(w io.Writer, session types.Session) error {
	for _, m := range session.Messages {
		label := string(m.Type)
		if m.Type == types.MessageTool {
			label = m.ToolName
			if m.Status != "" {
				label += " [" + string(m.Status) + "]"
			}
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", label, escapeNewlines(m.Content)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "status\t%s\n", session.Status)
	return err
}

func writeConversationTable(w io.Writer, session types.Session, width int) error {
	contentWidth := 100
	if width > 30 {
		contentWidth = width - 30
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: contentWidth},
	})
	tw.AppendHeader(table.Row{"Type", "Status", "Content"})

	for _, m := range session.Messages {
		label := string(m.Type)
		if m.Type == types.MessageTool {
			label = m.ToolName
		}
		tw.AppendRow(table.Row{label, string(m.Status), m.Content})
	}
	if len(session.Messages) == 0 {
		tw.AppendRow(table.Row{"-", "-", "(no messages)"})
	}

	tw.Render()
	return nil
}

// WriteTodos writes the session's todo snapshot as a table.
func WriteTodos(w io.Writer, todos []types.TodoItem) error {
	if len(todos) == 0 {
		return nil
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Status", "Content"})
	for _, item := range todos {
		tw.AppendRow(table.Row{item.ID, string(item.Status), item.Content})
	}
	tw.Render()
	return nil
}

func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n")
}
