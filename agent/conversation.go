package agent

import (
	"sync"

	"medcart-agent/web/types"
)

// Conversation holds the two append-only histories for a single session.
//
// The primary history carries user inputs and criteria-call outputs; the
// grounding history carries only the original user inputs and the raw
// recommendation-call outputs, so criteria-extraction artifacts never leak
// into the grounding call. Histories are mutated as the pipeline runs and are
// deliberately not rolled back on mid-pipeline failure.
type Conversation struct {
	mu        sync.Mutex
	primary   []types.Message
	grounding []types.Message
}

func NewConversation() *Conversation {
	return &Conversation{}
}

func (c *Conversation) AppendPrimary(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primary = append(c.primary, types.Message{Role: role, Content: content})
}

func (c *Conversation) AppendGrounding(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grounding = append(c.grounding, types.Message{Role: role, Content: content})
}

// PrimaryMessages returns the system message followed by a copy of the
// primary history, ready to send to the LLM.
func (c *Conversation) PrimaryMessages(system string) []types.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return prepend(system, c.primary)
}

// GroundingMessages returns the product-grounded system message followed by a
// copy of the grounding history.
func (c *Conversation) GroundingMessages(system string) []types.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return prepend(system, c.grounding)
}

// PrimaryLen reports the number of turns in the primary history.
func (c *Conversation) PrimaryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.primary)
}

// Reset clears both histories.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primary = nil
	c.grounding = nil
}

func prepend(system string, history []types.Message) []types.Message {
	out := make([]types.Message, 0, len(history)+1)
	out = append(out, types.Message{Role: "system", Content: system})
	return append(out, history...)
}
