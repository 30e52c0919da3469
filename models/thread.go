package models

import "time"

// Phase is the resting state of a dialogue thread between requests.
// Mid-request states (extracting, resolving, assembling) are transient and
// never persisted.
type Phase string

const (
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseExtracting    Phase = "extracting"
	PhaseClarifying    Phase = "clarifying"
	PhaseResolving     Phase = "resolving"
	PhaseAssembling    Phase = "assembling"
	PhaseResponded     Phase = "responded"
)

// Message is one entry of a thread's dialogue log.
type Message struct {
	Role    string    `json:"role" bson:"role"` // "user" or "assistant"
	Content string    `json:"content" bson:"content"`
	At      time.Time `json:"at" bson:"at"`
}

// Thread is one user's ongoing conversation and its extracted state.
// It is owned by the conversation store and mutated only by the dialogue
// controller.
type Thread struct {
	ID            string    `json:"id" bson:"id"`
	Messages      []Message `json:"messages" bson:"messages"`
	Slots         Slots     `json:"slots" bson:"slots"`
	Phase         Phase     `json:"phase" bson:"phase"`
	FollowupCount int       `json:"followupCount" bson:"followupCount"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewThread returns a fresh thread in the initial phase.
func NewThread(id string) *Thread {
	now := time.Now().UTC()
	return &Thread{
		ID:        id,
		Slots:     NewSlots(),
		Phase:     PhaseAwaitingInput,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append records one dialogue message.
func (t *Thread) Append(role, content string) {
	t.Messages = append(t.Messages, Message{Role: role, Content: content, At: time.Now().UTC()})
}
