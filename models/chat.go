package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	ThreadID string `json:"thread_id" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// ExtractedInfo echoes the current slot values so the presentation layer
// can show collection progress.
type ExtractedInfo struct {
	Origin        string   `json:"origin,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	DepartureDate string   `json:"departureDate,omitempty"`
	DurationDays  int      `json:"durationDays,omitempty"`
	CabinClass    string   `json:"cabinClass,omitempty"`
	Ambiguous     []string `json:"ambiguous,omitempty"` // field names awaiting disambiguation
}

// ChatResponse is the structured result handed to the presentation layer.
// Exactly one of FollowupQuestion or Packages is meaningful.
type ChatResponse struct {
	ThreadID         string        `json:"thread_id"`
	Phase            Phase         `json:"phase"`
	FollowupQuestion string        `json:"followup_question,omitempty"`
	Packages         []Package     `json:"packages,omitempty"`
	Extracted        ExtractedInfo `json:"extracted"`
}

// Snapshot flattens the slot set into the response echo.
func (s Slots) Snapshot() ExtractedInfo {
	info := ExtractedInfo{}
	if s.Origin.Status == SlotKnown {
		info.Origin = s.Origin.Value
	}
	if s.Destination.Status == SlotKnown {
		info.Destination = s.Destination.Value
	}
	if s.DepartureDate.Status == SlotKnown {
		info.DepartureDate = s.DepartureDate.Value
	}
	if s.Duration.Status == SlotKnown {
		info.DurationDays = s.Duration.Value
	}
	if s.CabinClass.Status == SlotKnown {
		info.CabinClass = s.CabinClass.Value
	}
	if s.Destination.Status == SlotAmbiguous {
		info.Ambiguous = append(info.Ambiguous, "destination")
	}
	if s.DepartureDate.Status == SlotAmbiguous {
		info.Ambiguous = append(info.Ambiguous, "departureDate")
	}
	if s.CabinClass.Status == SlotAmbiguous {
		info.Ambiguous = append(info.Ambiguous, "cabinClass")
	}
	if s.Origin.Status == SlotAmbiguous {
		info.Ambiguous = append(info.Ambiguous, "origin")
	}
	return info
}
