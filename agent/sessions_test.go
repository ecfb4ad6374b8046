package agent

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestSessionManagerScopesConversations(t *testing.T) {
	m, err := NewSessionManager(4, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	a, b := uuid.New(), uuid.New()
	convA := m.Conversation(a)
	convA.AppendPrimary("user", "hello")

	if m.Conversation(b).PrimaryLen() != 0 {
		t.Error("sessions must not share conversation history")
	}
	if m.Conversation(a) != convA {
		t.Error("same session must get the same conversation back")
	}
}

func TestSessionManagerReset(t *testing.T) {
	m, err := NewSessionManager(4, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	id := uuid.New()
	m.Conversation(id).AppendPrimary("user", "hello")
	m.Reset(id)

	if m.Conversation(id).PrimaryLen() != 0 {
		t.Error("reset session should start with an empty conversation")
	}
}

func TestSessionManagerEvictsOldest(t *testing.T) {
	m, err := NewSessionManager(2, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	first := uuid.New()
	m.Conversation(first).AppendPrimary("user", "hello")
	m.Conversation(uuid.New())
	m.Conversation(uuid.New())

	if m.Len() != 2 {
		t.Errorf("Len() = %d, want cache bounded at 2", m.Len())
	}
	// The evicted session simply starts fresh.
	if m.Conversation(first).PrimaryLen() != 0 {
		t.Error("evicted session should restart with an empty conversation")
	}
}
