// Package store holds the mutable UI state: one container per logical
// domain (chat, resources, profile). Containers are constructed in the
// composition root and handed to the views explicitly; there are no
// package-level singletons. All containers are safe for concurrent use,
// though the views only ever mutate them from request continuations.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/communitynav/navigator/models"
)

// ChatStore holds the stable user identifier, the session's message
// list, and the chat view's loading/error slots.
type ChatStore struct {
	mu        sync.RWMutex
	userID    string
	sessionID string
	persist   func(string) error
	messages  []models.ChatMessage
	loading   bool
	lastErr   string
}

// NewChatStore wraps a previously loaded user identifier. persist is
// called whenever the identifier changes; nil disables persistence.
func NewChatStore(userID string, persist func(string) error) *ChatStore {
	return &ChatStore{
		userID:    userID,
		sessionID: uuid.NewString(),
		persist:   persist,
	}
}

// UserID returns the stable user identifier.
func (s *ChatStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// SessionID identifies this process's chat session.
func (s *ChatStore) SessionID() string {
	return s.sessionID
}

// SetUserID replaces the identifier and persists it.
func (s *ChatStore) SetUserID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persist != nil {
		if err := s.persist(id); err != nil {
			return err
		}
	}
	s.userID = id
	return nil
}

// Messages returns a copy of the ordered message list.
func (s *ChatStore) Messages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetMessages replaces the whole list.
func (s *ChatStore) SetMessages(messages []models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]models.ChatMessage(nil), messages...)
}

// AddMessage appends one message.
func (s *ChatStore) AddMessage(m models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// ResolveLast fulfils the trailing message with the agent's reply. Only
// the response, tools and state of that entry change; the list length
// does not. Returns false when the list is empty.
func (s *ChatStore) ResolveLast(response string, tools []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return false
	}
	last := &s.messages[len(s.messages)-1]
	last.AgentResponse = response
	if tools == nil {
		tools = []string{}
	}
	last.ToolsUsed = tools
	last.State = models.MessageFulfilled
	return true
}

// RollbackLast removes the trailing message if it is still pending,
// marking it failed on the way out. Returns false when there was
// nothing pending to roll back.
func (s *ChatStore) RollbackLast() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return false
	}
	last := &s.messages[len(s.messages)-1]
	if last.State != models.MessagePending {
		return false
	}
	last.State = models.MessageFailed
	s.messages = s.messages[:len(s.messages)-1]
	return true
}

// ClearMessages empties the list.
func (s *ChatStore) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// SetLoading flips the view's loading flag.
func (s *ChatStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading reports the loading flag.
func (s *ChatStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError stores the last error display string; empty clears it.
func (s *ChatStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// Err returns the last error display string, empty when none.
func (s *ChatStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
