package a2a

import (
	"strings"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Part kinds.
const (
	PartKindText = "text"
	PartKindFile = "file"
)

// Message is a single conversational turn in a context's history.
type Message struct {
	Kind      string            `json:"kind,omitempty"`
	Role      string            `json:"role"`
	Parts     []Part            `json:"parts"`
	MessageID string            `json:"messageId,omitempty"`
	ContextID string            `json:"contextId,omitempty"`
	TaskID    string            `json:"taskId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Part is one piece of a message: text or a file reference.
type Part struct {
	Kind string    `json:"kind"`
	Text string    `json:"text,omitempty"`
	File *FilePart `json:"file,omitempty"`
}

// FilePart references file content by URI; inline bytes are unused here but
// part of the wire format.
type FilePart struct {
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Bytes    []byte `json:"bytes,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// NewTextMessage creates a single-part text message with a fresh message id.
func NewTextMessage(role, text string) Message {
	return Message{
		Kind:      "message",
		Role:      role,
		MessageID: uuid.NewString(),
		Parts: []Part{
			{Kind: PartKindText, Text: text},
		},
	}
}

// Text concatenates the message's text parts, space-separated.
func (m Message) Text() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if p.Kind != PartKindText || p.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
