package dialogue

import "voyago/models"

// Event is something that happened while handling one user message.
type Event string

const (
	EventUserMessage  Event = "user_message"
	EventExtracted    Event = "extracted"
	EventNeedsInfo    Event = "needs_info"
	EventReady        Event = "ready"
	EventResolved     Event = "resolved"
	EventAssembled    Event = "assembled"
	EventTurnFinished Event = "turn_finished"
)

// Advance is the dialogue state machine. Unknown transitions keep the
// current phase, so a stale persisted phase can never wedge a thread.
func Advance(current models.Phase, event Event) models.Phase {
	switch event {
	case EventUserMessage:
		return models.PhaseExtracting
	case EventExtracted:
		return models.PhaseExtracting
	case EventNeedsInfo:
		return models.PhaseClarifying
	case EventReady:
		return models.PhaseResolving
	case EventResolved:
		return models.PhaseAssembling
	case EventAssembled:
		return models.PhaseResponded
	case EventTurnFinished:
		return models.PhaseAwaitingInput
	}
	return current
}
