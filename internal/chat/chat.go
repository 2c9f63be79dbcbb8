// Package chat talks to the backend chat endpoints.
package chat

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/models"
)

// History limits enforced by the backend, mirrored here so a request
// never trips its validation.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// Service exposes the chat operations. None of them are idempotent by
// design: repeating Send creates a new exchange.
type Service struct {
	Client *api.Client
}

type sendRequest struct {
	UserID      string              `json:"user_id"`
	Message     string              `json:"message"`
	UserContext *models.UserContext `json:"user_context,omitempty"`
}

// SendResponse is the agent's reply to one message.
type SendResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	UserID    string    `json:"user_id"`
	ToolsUsed []string  `json:"tools_used"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Exchange is one stored user/agent exchange from history.
type Exchange struct {
	ID            int64    `json:"id"`
	UserMessage   string   `json:"user_message"`
	AgentResponse string   `json:"agent_response"`
	ToolsUsed     []string `json:"tools_used"`
	Timestamp     string   `json:"timestamp"`
}

// Receipt is the backend's confirmation for clear/feedback operations.
type Receipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send submits a message for userID and returns the agent reply. The
// context is forwarded when it carries anything.
func (s *Service) Send(ctx context.Context, userID, message string, uc *models.UserContext) (*SendResponse, error) {
	req := sendRequest{UserID: userID, Message: message}
	if uc != nil && !uc.Empty() {
		req.UserContext = uc
	}
	var out SendResponse
	if err := s.Client.Post(ctx, "/chat/send", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches up to limit prior exchanges for userID, oldest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Exchange, error) {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	var out []Exchange
	if err := s.Client.Get(ctx, "/chat/history/"+url.PathEscape(userID), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClearHistory deletes all stored exchanges for userID.
func (s *Service) ClearHistory(ctx context.Context, userID string) (*Receipt, error) {
	var out Receipt
	if err := s.Client.Delete(ctx, "/chat/history/"+url.PathEscape(userID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type feedbackRequest struct {
	Helpful      bool   `json:"helpful"`
	FeedbackText string `json:"feedback_text,omitempty"`
}

// SubmitFeedback marks a stored message helpful or not, with optional
// free text.
func (s *Service) SubmitFeedback(ctx context.Context, messageID int64, helpful bool, text string) error {
	req := feedbackRequest{Helpful: helpful, FeedbackText: text}
	path := fmt.Sprintf("/chat/feedback/%d", messageID)
	var out Receipt
	return s.Client.Post(ctx, path, req, &out)
}
