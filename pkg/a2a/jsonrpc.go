// Package a2a defines the agent-to-agent request/response protocol spoken on
// the /a2a/nba endpoint: JSON-RPC 2.0 envelopes wrapping A2A messages and
// task results.
package a2a

import "encoding/json"

// JSONRPCVersion is the only accepted value for the "jsonrpc" field.
const JSONRPCVersion = "2.0"

// Supported JSON-RPC methods.
const (
	MethodMessageSend = "message/send"
	MethodExecute     = "execute"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a JSON-RPC 2.0 request envelope. Params stays raw until the
// method is known.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result and
// Error is set.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  *Task  `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewResponse wraps a task result in a response envelope echoing the request id.
func NewResponse(id any, result *Task) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse builds an error response envelope echoing the request id.
func NewErrorResponse(id any, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// MessageSendParams are the params for the "message/send" method.
type MessageSendParams struct {
	Message       Message         `json:"message"`
	Configuration *SendConfig     `json:"configuration,omitempty"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
}

// ExecuteParams are the params for the "execute" method.
type ExecuteParams struct {
	Messages  []Message `json:"messages"`
	ContextID string    `json:"contextId,omitempty"`
	TaskID    string    `json:"taskId,omitempty"`
}

// SendConfig carries per-request delivery configuration.
type SendConfig struct {
	Blocking               bool                    `json:"blocking,omitempty"`
	AcceptedOutputModes    []string                `json:"acceptedOutputModes,omitempty"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig,omitempty"`
}

// PushNotificationConfig names the webhook that should receive the completed
// task result.
type PushNotificationConfig struct {
	URL   string `json:"url"`
	Token string `json:"token,omitempty"`
}
