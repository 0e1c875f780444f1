// Package eventstream defines transport-neutral task events and the
// Publisher interface used to deliver them after a task completes.
package eventstream

import (
	"time"

	"github.com/courtsideco/courtside/pkg/a2a"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeTaskCompleted is emitted when a task finishes successfully.
	EventTypeTaskCompleted = "courtside.task.completed"

	// EventTypeTaskFailed is emitted when a task ends in the failed state.
	EventTypeTaskFailed = "courtside.task.failed"
)

// TaskCompletedEvent is a transport-neutral event payload for a finished task.
type TaskCompletedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`
	ContextID     string    `json:"context_id"`
	TaskID        string    `json:"task_id"`
	State         string    `json:"state"`

	// Category is the routed query category (games, teams, ...), empty when
	// the query matched no category.
	Category string `json:"category,omitempty"`

	// Result is the full task result, as a webhook consumer would receive it.
	Result *a2a.Task `json:"result"`

	// Push, when set, overrides the webhook publisher's configured target
	// with the request's own pushNotificationConfig.
	Push *a2a.PushNotificationConfig `json:"-"`
}
