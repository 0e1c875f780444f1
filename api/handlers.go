package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/courtsideco/courtside/pkg/a2a"
	"github.com/courtsideco/courtside/pkg/storage"
)

// handleHealth returns the agent liveness status.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"agent":  "nba",
	})
}

// handleListContexts returns the ids of all active contexts.
func (s *Server) handleListContexts(c *fiber.Ctx) error {
	ids, err := s.storer.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list contexts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list contexts",
		})
	}

	// An empty store lists as [], not null.
	if ids == nil {
		ids = []string{}
	}

	return c.JSON(fiber.Map{
		"contexts": ids,
	})
}

// handleGetContext returns one context's full history.
func (s *Server) handleGetContext(c *fiber.Ctx) error {
	id := c.Params("id")

	stored, err := s.storer.Get(c.Context(), id)
	if err != nil {
		var notFound storage.ErrNotFound
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "context not found",
			})
		}
		s.logger.Error("failed to get context",
			zap.String("context_id", id),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get context",
		})
	}

	return c.JSON(stored)
}

// handleDeleteContext removes a context and its history.
func (s *Server) handleDeleteContext(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.storer.Delete(c.Context(), id); err != nil {
		var notFound storage.ErrNotFound
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "context not found",
			})
		}
		s.logger.Error("failed to delete context",
			zap.String("context_id", id),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete context",
		})
	}

	return c.JSON(fiber.Map{
		"status":     "deleted",
		"context_id": id,
	})
}

// handleA2A processes a JSON-RPC 2.0 request against the NBA agent.
//
// Envelope errors (parse, invalid request, unknown method) are returned as
// JSON-RPC errors; valid requests always yield a result, even when the
// upstream is down.
func (s *Server) handleA2A(c *fiber.Ctx) error {
	var req a2a.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(a2a.NewErrorResponse(nil, a2a.CodeParseError, "Parse error", err.Error()))
	}

	if req.JSONRPC != a2a.JSONRPCVersion || req.ID == nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(a2a.NewErrorResponse(req.ID, a2a.CodeInvalidRequest, "Invalid Request", nil))
	}

	switch req.Method {
	case a2a.MethodMessageSend:
		return s.handleMessageSend(c, &req)
	case a2a.MethodExecute:
		return s.handleExecute(c, &req)
	default:
		return c.Status(fiber.StatusOK).
			JSON(a2a.NewErrorResponse(req.ID, a2a.CodeMethodNotFound, "Method not found", req.Method))
	}
}

// handleMessageSend processes a single-message "message/send" request.
func (s *Server) handleMessageSend(c *fiber.Ctx, req *a2a.Request) error {
	var params a2a.MessageSendParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return c.Status(fiber.StatusOK).
			JSON(a2a.NewErrorResponse(req.ID, a2a.CodeInvalidParams, "Invalid params", err.Error()))
	}

	if len(params.Message.Parts) == 0 {
		return c.Status(fiber.StatusOK).
			JSON(a2a.NewErrorResponse(req.ID, a2a.CodeInvalidParams, "Invalid params", "message has no parts"))
	}

	// Chat integrations identify the conversation by channel id in metadata
	// instead of a contextId on the message. The message's own metadata takes
	// precedence over the params-level metadata.
	contextID := params.Message.ContextID
	if contextID == "" {
		contextID = params.Message.Metadata["channel_id"]
	}
	if contextID == "" {
		contextID = channelID(params.Metadata)
	}

	task := s.agent.ProcessMessages(
		c.Context(),
		[]a2a.Message{params.Message},
		contextID,
		params.Message.TaskID,
		params.Configuration,
	)

	return c.JSON(a2a.NewResponse(req.ID, task))
}

// handleExecute processes a batch "execute" request.
func (s *Server) handleExecute(c *fiber.Ctx, req *a2a.Request) error {
	var params a2a.ExecuteParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return c.Status(fiber.StatusOK).
			JSON(a2a.NewErrorResponse(req.ID, a2a.CodeInvalidParams, "Invalid params", err.Error()))
	}

	// An empty batch flows through to the agent, which fails the task for
	// lack of a user message.
	task := s.agent.ProcessMessages(c.Context(), params.Messages, params.ContextID, params.TaskID, nil)

	return c.JSON(a2a.NewResponse(req.ID, task))
}

// channelID extracts the channel_id field from request metadata, if present.
func channelID(metadata json.RawMessage) string {
	if len(metadata) == 0 {
		return ""
	}

	var meta struct {
		ChannelID string `json:"channel_id"`
	}
	if err := json.Unmarshal(metadata, &meta); err != nil {
		return ""
	}
	return meta.ChannelID
}
