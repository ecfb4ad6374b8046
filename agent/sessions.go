package agent

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// SessionManager keeps per-session conversations in a bounded LRU so
// abandoned sessions are evicted instead of accumulating for the process
// lifetime. An evicted session simply starts a fresh conversation on its
// next request.
type SessionManager struct {
	mu     sync.Mutex
	cache  *lru.Cache
	logger *zap.Logger
}

func NewSessionManager(size int, logger *zap.Logger) (*SessionManager, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &SessionManager{cache: cache, logger: logger}, nil
}

// Conversation returns the conversation for the given session, creating one
// on first use.
func (m *SessionManager) Conversation(sessionID uuid.UUID) *Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.cache.Get(sessionID); ok {
		return v.(*Conversation)
	}
	conv := NewConversation()
	m.cache.Add(sessionID, conv)
	m.logger.Debug("Created conversation", zap.String("session_id", sessionID.String()))
	return conv
}

// Reset drops the conversation state for the given session.
func (m *SessionManager) Reset(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Remove(sessionID)
}

// Len reports the number of live conversations.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}
