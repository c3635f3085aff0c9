// internal/tool/todo.go
package tool

import "github.com/user/codewatch/internal/types"

// ParseTodoItem builds a TodoItem from one untyped entry of a todo-write
// payload. Both id and content must be non-empty strings; otherwise the item
// is dropped (ok == false) rather than failing the surrounding list. A missing
// or unrecognized status resolves to pending.
func ParseTodoItem(fields map[string]any) (types.TodoItem, bool) {
	id, _ := fields["id"].(string)
	content, _ := fields["content"].(string)
	if id == "" || content == "" {
		return types.TodoItem{}, false
	}

	status, _ := fields["status"].(string)
	return types.TodoItem{
		ID:      id,
		Content: content,
		Status:  types.ParseTodoStatus(status),
	}, true
}

// ParseTodoList parses every entry of a todo-write payload independently.
// Malformed entries are skipped; one bad item never discards the rest.
func ParseTodoList(entries []any) []types.TodoItem {
	items := make([]types.TodoItem, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if item, ok := ParseTodoItem(fields); ok {
			items = append(items, item)
		}
	}
	return items
}
