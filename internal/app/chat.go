// Package app contains the view controllers: one per page of the
// client, each owning the request lifecycle for its store slice. The
// pattern is uniform: set loading, fire the service call, patch the
// store with the result or an error string, drop loading last.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/communitynav/navigator/internal/api"
	"github.com/communitynav/navigator/internal/chat"
	"github.com/communitynav/navigator/internal/resources"
	"github.com/communitynav/navigator/internal/store"
	"github.com/communitynav/navigator/models"
)

const (
	sendFallback     = "Failed to send message"
	historyFallback  = "Failed to load chat history"
	clearFallback    = "Failed to clear chat history"
	locationFallback = "Failed to search locations"
)

// Chat drives the chat view: optimistic sends, history, feedback and
// the in-chat location picker.
type Chat struct {
	Store     *store.ChatStore
	Profile   *store.ProfileStore
	Service   *chat.Service
	Resources *resources.Service

	feedback map[int64]bool
	logger   *log.Logger
}

// NewChat wires a chat controller to its stores and services.
func NewChat(st *store.ChatStore, profile *store.ProfileStore, svc *chat.Service, res *resources.Service) *Chat {
	return &Chat{
		Store:     st,
		Profile:   profile,
		Service:   svc,
		Resources: res,
		feedback:  make(map[int64]bool),
		logger:    log.New(log.Writer(), "[CHAT] ", log.LstdFlags),
	}
}

// Send appends an optimistic pending entry, submits the message with
// the current profile context, and reconciles: the entry is fulfilled
// in place on success and rolled back on failure, with the error string
// left in the store. Blank input is a no-op.
func (c *Chat) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	now := time.Now()
	c.Store.AddMessage(models.ChatMessage{
		ID:          now.UnixMilli(),
		UserMessage: text,
		ToolsUsed:   []string{},
		Timestamp:   now.UTC().Format(time.RFC3339),
		State:       models.MessagePending,
	})
	c.Store.SetLoading(true)
	c.Store.SetError("")

	uc := c.Profile.Context()
	resp, err := c.Service.Send(ctx, c.Store.UserID(), text, &uc)
	if err != nil {
		c.Store.SetError(api.ErrorMessage(err, sendFallback))
		c.Store.RollbackLast()
		c.Store.SetLoading(false)
		return err
	}

	c.Store.ResolveLast(resp.Message, resp.ToolsUsed)
	c.Store.SetLoading(false)
	return nil
}

// LoadHistory replaces the session's messages with stored exchanges.
// The chat view starts fresh by default; history is only loaded on
// explicit request.
func (c *Chat) LoadHistory(ctx context.Context, limit int) error {
	c.Store.SetLoading(true)
	c.Store.SetError("")
	exchanges, err := c.Service.History(ctx, c.Store.UserID(), limit)
	if err != nil {
		c.Store.SetError(api.ErrorMessage(err, historyFallback))
		c.Store.SetLoading(false)
		return err
	}
	messages := make([]models.ChatMessage, 0, len(exchanges))
	for _, ex := range exchanges {
		messages = append(messages, models.ChatMessage{
			ID:            ex.ID,
			UserMessage:   ex.UserMessage,
			AgentResponse: ex.AgentResponse,
			ToolsUsed:     ex.ToolsUsed,
			Timestamp:     ex.Timestamp,
			State:         models.MessageFulfilled,
		})
	}
	c.Store.SetMessages(messages)
	c.Store.SetLoading(false)
	return nil
}

// Clear wipes the conversation on the backend and locally.
func (c *Chat) Clear(ctx context.Context) error {
	if _, err := c.Service.ClearHistory(ctx, c.Store.UserID()); err != nil {
		c.Store.SetError(api.ErrorMessage(err, clearFallback))
		return err
	}
	c.Store.ClearMessages()
	c.Store.SetError("")
	return nil
}

// Feedback submits a helpful/not-helpful vote for a message. Failures
// are logged and swallowed; feedback is non-critical and never blocks
// the conversation.
func (c *Chat) Feedback(ctx context.Context, messageID int64, helpful bool) {
	if err := c.Service.SubmitFeedback(ctx, messageID, helpful, ""); err != nil {
		c.logger.Printf("feedback for message %d failed: %v", messageID, err)
		return
	}
	c.feedback[messageID] = helpful
}

// FeedbackFor reports the recorded vote for a message, if any.
func (c *Chat) FeedbackFor(messageID int64) (helpful, ok bool) {
	helpful, ok = c.feedback[messageID]
	return helpful, ok
}

// SearchLocations runs the free-text city search used by the in-chat
// location picker.
func (c *Chat) SearchLocations(ctx context.Context, query string) ([]models.Location, error) {
	locations, err := c.Resources.SearchLocations(ctx, query)
	if err != nil {
		c.Store.SetError(api.ErrorMessage(err, locationFallback))
		return nil, err
	}
	return locations, nil
}

// SelectLocation copies a picked location into the profile context and
// returns a suggested prompt for it.
func (c *Chat) SelectLocation(loc models.Location) string {
	c.Profile.Update(models.ContextUpdate{
		Location:  &loc.City,
		Latitude:  &loc.Latitude,
		Longitude: &loc.Longitude,
	})
	return fmt.Sprintf("Find shelter nearby %s", loc.City)
}

// ResponseText returns the agent response for a message, for copying
// out of the conversation.
func (c *Chat) ResponseText(messageID int64) (string, bool) {
	for _, m := range c.Store.Messages() {
		if m.ID == messageID && m.State == models.MessageFulfilled {
			return m.AgentResponse, true
		}
	}
	return "", false
}
