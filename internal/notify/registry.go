// internal/notify/registry.go

// Package notify delivers session status notifications to external channels.
// The core exposes session transitions as callbacks; this package is the
// collaborator that turns terminal transitions into user-visible messages.
package notify

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/codewatch/internal/types"
)

// Handler delivers a rendered notification for a session.
type Handler func(session types.Session, message string) error

// Registry routes notifications to the appropriate handler based on channel
// name prefix (e.g. "telegram:", "stdout:").
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	retry    *RetryPolicy
}

// NewRegistry creates an empty notification registry with the default retry
// policy for transient delivery failures.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		retry:    DefaultRetryPolicy(),
	}
}

// Register adds a handler for channels starting with prefix.
func (r *Registry) Register(prefix string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[prefix] = handler
}

// Deliver finds the handler matching the channel prefix and calls it,
// retrying transient failures. Returns an error if no handler is registered
// for the prefix or all attempts fail.
func (r *Registry) Deliver(channel string, session types.Session, message string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for prefix, handler := range r.handlers {
		if strings.HasPrefix(channel, prefix) {
			return r.retry.Execute(func() error {
				return handler(session, message)
			})
		}
	}
	return fmt.Errorf("no notification handler for channel: %s", channel)
}
