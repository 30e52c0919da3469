package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"voyago/models"
	"voyago/services/genai"
)

// GeminiExtractor asks the generative model to update the slot set. Output
// that is not the expected JSON shape is an ExtractionError; the model
// finding nothing in the message is not an error.
type GeminiExtractor struct {
	Gen genai.TextGenerator
	Now func() time.Time
}

func NewGeminiExtractor(gen genai.TextGenerator) *GeminiExtractor {
	return &GeminiExtractor{Gen: gen, Now: time.Now}
}

// extractionPayload mirrors the JSON contract in the prompt. Pointers
// distinguish "not mentioned" from an explicit value.
type extractionPayload struct {
	Origin                  *string  `json:"origin"`
	Destination             *string  `json:"destination"`
	DepartureDate           *string  `json:"departure_date"`
	DepartureDateCandidates []string `json:"departure_date_candidates"`
	DurationDays            *int     `json:"duration_days"`
	CabinClass              *string  `json:"cabin_class"`
}

func (e *GeminiExtractor) Extract(ctx context.Context, utterance string, prior models.Slots) (models.Slots, error) {
	prompt := buildExtractionPrompt(e.Now(), utterance, prior)
	raw, err := e.Gen.GenerateContent(ctx, prompt)
	if err != nil {
		return prior, fmt.Errorf("extractor call: %w", err)
	}

	payload, err := parseExtraction(raw)
	if err != nil {
		return prior, &ExtractionError{Raw: raw, Err: err}
	}
	return mergeExtraction(prior, payload)
}

// parseExtraction tolerates stray code fences but nothing else.
func parseExtraction(raw string) (*extractionPayload, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &payload, nil
}

func mergeExtraction(prior models.Slots, p *extractionPayload) (models.Slots, error) {
	slots := prior

	if p.Origin != nil && *p.Origin != "" {
		slots.Origin = models.KnownString(strings.ToUpper(*p.Origin))
	}
	if p.Destination != nil && *p.Destination != "" {
		slots.Destination = models.KnownString(strings.ToUpper(*p.Destination))
	}

	if p.DepartureDate != nil && *p.DepartureDate != "" {
		if _, err := time.Parse("2006-01-02", *p.DepartureDate); err != nil {
			return prior, &ExtractionError{Raw: *p.DepartureDate, Err: fmt.Errorf("departure_date not YYYY-MM-DD: %w", err)}
		}
		slots.DepartureDate = models.KnownDate(*p.DepartureDate)
	} else if len(p.DepartureDateCandidates) > 0 {
		slots.DepartureDate = models.AmbiguousDate(p.DepartureDateCandidates)
	}

	if p.DurationDays != nil {
		if *p.DurationDays <= 0 {
			return prior, &ExtractionError{Err: fmt.Errorf("duration_days out of range: %d", *p.DurationDays)}
		}
		slots.Duration = models.KnownInt(*p.DurationDays)
	}

	if p.CabinClass != nil && *p.CabinClass != "" {
		cabin := strings.ToUpper(*p.CabinClass)
		switch cabin {
		case models.CabinEconomy, models.CabinPremiumEconomy, models.CabinBusiness, models.CabinFirst:
			slots.CabinClass = models.KnownString(cabin)
		default:
			return prior, &ExtractionError{Raw: cabin, Err: fmt.Errorf("unknown cabin class")}
		}
	}

	return slots, nil
}
