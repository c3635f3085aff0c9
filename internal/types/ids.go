// internal/types/ids.go
package types

import "github.com/google/uuid"

type SessionID string

// ExternalSessionID is the identifier the agent process assigns to a session,
// used to correlate stream events and to resume the process later.
type ExternalSessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}
