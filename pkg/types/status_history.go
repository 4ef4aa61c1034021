package types

import (
	"time"

	"github.com/google/uuid"
)

// StatusChange is a single append-only entry in an entity's status history.
type StatusChange struct {
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Note      *string    `json:"note,omitempty"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
}

// StatusHistory is the ordered sequence of status changes for an entity.
// Entries are only ever appended, never rewritten.
type StatusHistory []StatusChange

// Append returns the history with a new entry added.
func (h StatusHistory) Append(status string, actorID *uuid.UUID, note *string) StatusHistory {
	return append(h, StatusChange{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Note:      note,
		ActorID:   actorID,
	})
}

// Last returns the most recent entry, or nil when the history is empty.
func (h StatusHistory) Last() *StatusChange {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}
