package a2a

// Task states.
const (
	TaskStateCompleted = "completed"
	TaskStateFailed    = "failed"
)

// Task is the result of processing one request against a context.
type Task struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	History   []Message  `json:"history,omitempty"`
}

// TaskStatus carries the terminal state and the agent's reply.
type TaskStatus struct {
	State   string   `json:"state"`
	Message *Message `json:"message,omitempty"`
}

// NewTask builds a completed task whose status message is the agent reply.
func NewTask(taskID, contextID string, reply Message, history []Message) *Task {
	return &Task{
		ID:        taskID,
		ContextID: contextID,
		Status: TaskStatus{
			State:   TaskStateCompleted,
			Message: &reply,
		},
		History: history,
	}
}

// NewFailedTask builds a failed task carrying an error message. History is
// omitted, matching the error path of the protocol.
func NewFailedTask(taskID, contextID, errText string) *Task {
	msg := NewTextMessage(RoleAgent, "Error: "+errText)
	return &Task{
		ID:        taskID,
		ContextID: contextID,
		Status: TaskStatus{
			State:   TaskStateFailed,
			Message: &msg,
		},
	}
}
