package intent

import (
	"strings"

	"voyago/models"
)

// Field names the gate can ask about, in clarification priority order.
const (
	FieldDestination   = "destination"
	FieldDepartureDate = "departure_date"
	FieldDuration      = "duration"
	FieldCabinClass    = "cabin_class"
	FieldOrigin        = "origin"
)

// Decision is the gate's verdict on a slot set.
type Decision struct {
	Ready           bool
	MissingField    string
	Question        string
	DefaultedOrigin string // home city applied when origin was left unset
}

// Gate is a pure function of slots. The fixed priority order makes the
// follow-up question deterministic for a given incomplete slot set.
type Gate struct {
	HomeCity string
}

func questionFor(field string) string {
	switch field {
	case FieldDestination:
		return "Which city would you like to go to?"
	case FieldDepartureDate:
		return "What is your departure date? (YYYY-MM-DD)"
	case FieldDuration:
		return "How many days will your trip last?"
	case FieldCabinClass:
		return "Which cabin class do you prefer (economy, business, or first)?"
	case FieldOrigin:
		return "Which city are you departing from?"
	}
	return "Could you provide more details about your travel?"
}

func stringSettled(s models.StringSlot) bool { return s.Status == models.SlotKnown }
func dateSettled(s models.DateSlot) bool     { return s.Status == models.SlotKnown }
func intSettled(s models.IntSlot) bool       { return s.Status == models.SlotKnown }

// Evaluate returns the first missing-or-ambiguous field in priority order:
// destination > departure date > duration > cabin class > origin. Origin
// defaults to the home city instead of triggering a question when one is
// configured.
func (g Gate) Evaluate(s models.Slots) Decision {
	if !stringSettled(s.Destination) {
		return Decision{MissingField: FieldDestination, Question: questionFor(FieldDestination)}
	}
	if !dateSettled(s.DepartureDate) {
		return Decision{MissingField: FieldDepartureDate, Question: questionFor(FieldDepartureDate)}
	}
	if !intSettled(s.Duration) {
		return Decision{MissingField: FieldDuration, Question: questionFor(FieldDuration)}
	}
	if !stringSettled(s.CabinClass) {
		return Decision{MissingField: FieldCabinClass, Question: questionFor(FieldCabinClass)}
	}
	// An ambiguous origin is a real conflict to resolve with the user;
	// only a never-mentioned origin falls back to the home city.
	if s.Origin.Status == models.SlotAmbiguous {
		return Decision{MissingField: FieldOrigin, Question: questionFor(FieldOrigin)}
	}
	if s.Origin.Status == models.SlotUnset {
		if g.HomeCity == "" {
			return Decision{MissingField: FieldOrigin, Question: questionFor(FieldOrigin)}
		}
		return Decision{Ready: true, DefaultedOrigin: g.HomeCity}
	}
	return Decision{Ready: true}
}

// RecapQuestion lists everything still needed, used once the follow-up
// count passes the cap instead of cycling one field at a time.
func (g Gate) RecapQuestion(s models.Slots) string {
	var missing []string
	if !stringSettled(s.Destination) {
		missing = append(missing, "your destination")
	}
	if !dateSettled(s.DepartureDate) {
		missing = append(missing, "your departure date (YYYY-MM-DD)")
	}
	if !intSettled(s.Duration) {
		missing = append(missing, "how many days the trip lasts")
	}
	if !stringSettled(s.CabinClass) {
		missing = append(missing, "your preferred cabin class")
	}
	if s.Origin.Status == models.SlotAmbiguous ||
		(s.Origin.Status == models.SlotUnset && g.HomeCity == "") {
		missing = append(missing, "your departure city")
	}
	if len(missing) == 0 {
		return questionFor("")
	}
	return "To search for your trip I still need: " + strings.Join(missing, ", ") + "."
}
