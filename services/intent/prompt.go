package intent

import (
	"fmt"
	"strings"
	"time"

	"voyago/models"
)

// buildExtractionPrompt asks the model to re-evaluate every slot against the
// latest message, returning strict JSON. Known values are included so the
// model only overrides them on an explicit correction.
func buildExtractionPrompt(now time.Time, utterance string, prior models.Slots) string {
	var current strings.Builder
	if prior.Origin.Status == models.SlotKnown {
		fmt.Fprintf(&current, "- origin: %s\n", prior.Origin.Value)
	}
	if prior.Destination.Status == models.SlotKnown {
		fmt.Fprintf(&current, "- destination: %s\n", prior.Destination.Value)
	}
	if prior.DepartureDate.Status == models.SlotKnown {
		fmt.Fprintf(&current, "- departure_date: %s\n", prior.DepartureDate.Value)
	}
	if prior.Duration.Status == models.SlotKnown {
		fmt.Fprintf(&current, "- duration_days: %d\n", prior.Duration.Value)
	}
	if prior.CabinClass.Status == models.SlotKnown {
		fmt.Fprintf(&current, "- cabin_class: %s\n", prior.CabinClass.Value)
	}
	state := current.String()
	if state == "" {
		state = "(nothing collected yet)\n"
	}

	anchor := "UNKNOWN (do not resolve relative dates; report them as candidates instead)"
	if !now.IsZero() {
		anchor = now.Format("2006-01-02")
	}

	return fmt.Sprintf(`You are a travel assistant extracting flight search details. Today's date: %s.

ALREADY COLLECTED:
%s
USER'S LATEST MESSAGE: %q

Re-evaluate every field against the latest message. Rules:
- Keep an already-collected value unless the message explicitly changes that exact field (e.g. a new destination city replaces the destination; a new date alone does NOT change the destination).
- Output city/airport location codes in IATA form (Cairo -> CAI, Dubai -> DXB, Riyadh -> RUH, Paris -> PAR, London -> LON).
- Dates must be YYYY-MM-DD. If today's date is UNKNOWN and the user gave a relative date ("next month", "tomorrow"), put the possible readings in departure_date_candidates and leave departure_date null.
- cabin_class is one of ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST ("eco" -> ECONOMY, "biz" -> BUSINESS). Do not assume one.
- duration_days is the whole number of nights.
- A field the message says nothing about: repeat the collected value, or null if none.

Return ONLY a JSON object, no prose, no code fences:
{"origin": string|null, "destination": string|null, "departure_date": string|null, "departure_date_candidates": [string]|null, "duration_days": number|null, "cabin_class": string|null}`,
		anchor, state, utterance)
}
