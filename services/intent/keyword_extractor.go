package intent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"voyago/models"
)

// cityLexicon maps casual city names to location codes. Deliberately small:
// the keyword extractor is the deterministic variant used without an LLM.
var cityLexicon = map[string]string{
	"cairo":      "CAI",
	"riyadh":     "RUH",
	"jeddah":     "JED",
	"dubai":      "DXB",
	"paris":      "PAR",
	"london":     "LON",
	"istanbul":   "IST",
	"new york":   "NYC",
	"alexandria": "HBE",
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	isoDateRe  = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	durationRe = regexp.MustCompile(`\b(\d+)\s*(?:nights?|days?)\b`)
	relativeRe = regexp.MustCompile(`\b(tomorrow|next week|next month)\b`)
)

// KeywordExtractor is the deterministic Extractor: a city lexicon plus date,
// duration and cabin keyword parsing. It never returns ExtractionError;
// input it cannot read simply leaves the slots unchanged. Now anchors
// relative dates; when zero, relative phrases yield an ambiguous slot
// instead of a guess.
type KeywordExtractor struct {
	Now time.Time
}

func (k *KeywordExtractor) Extract(_ context.Context, utterance string, prior models.Slots) (models.Slots, error) {
	slots := prior
	text := strings.ToLower(utterance)

	k.extractCities(text, &slots)
	k.extractDate(text, &slots)
	k.extractDuration(text, &slots)
	k.extractCabin(text, &slots)

	return slots, nil
}

// extractCities scans word positions so results do not depend on map order.
// A city preceded by "from" is the origin; any other mention is an explicit
// destination statement and overrides a Known destination.
func (k *KeywordExtractor) extractCities(text string, slots *models.Slots) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for i := 0; i < len(words); i++ {
		name := words[i]
		span := 1
		if i+1 < len(words) {
			if _, ok := cityLexicon[name+" "+words[i+1]]; ok {
				name = name + " " + words[i+1]
				span = 2
			}
		}
		code, ok := cityLexicon[name]
		if !ok {
			continue
		}
		if i > 0 && words[i-1] == "from" {
			slots.Origin = models.KnownString(code)
		} else {
			slots.Destination = models.KnownString(code)
		}
		i += span - 1
	}
}

func (k *KeywordExtractor) extractDate(text string, slots *models.Slots) {
	if m := isoDateRe.FindString(text); m != "" {
		if _, err := time.Parse("2006-01-02", m); err == nil {
			slots.DepartureDate = models.KnownDate(m)
			return
		}
	}

	if day, month, year, ok := k.findMonthDate(text); ok {
		if year == 0 {
			if k.Now.IsZero() {
				// Year cannot be inferred without an anchor.
				slots.DepartureDate = models.AmbiguousDate([]string{
					fmt.Sprintf("%s %d", month, day),
				})
				return
			}
			year = k.Now.Year()
			candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if candidate.Before(k.Now.Truncate(24 * time.Hour)) {
				year++
			}
		}
		slots.DepartureDate = models.KnownDate(
			time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
		return
	}

	if m := relativeRe.FindString(text); m != "" {
		if k.Now.IsZero() {
			slots.DepartureDate = models.AmbiguousDate([]string{m})
			return
		}
		var resolved time.Time
		switch m {
		case "tomorrow":
			resolved = k.Now.AddDate(0, 0, 1)
		case "next week":
			resolved = k.Now.AddDate(0, 0, 7)
		case "next month":
			resolved = k.Now.AddDate(0, 1, 0)
		}
		slots.DepartureDate = models.KnownDate(resolved.Format("2006-01-02"))
	}
}

// findMonthDate parses forms like "nov 2", "november 2 2025", "2 november".
func (k *KeywordExtractor) findMonthDate(text string) (day int, month time.Month, year int, ok bool) {
	words := strings.Fields(strings.NewReplacer(",", " ", ".", " ").Replace(text))
	trim := func(w string) string {
		for _, suffix := range []string{"st", "nd", "rd", "th"} {
			if strings.HasSuffix(w, suffix) && len(w) > len(suffix) {
				if _, err := strconv.Atoi(strings.TrimSuffix(w, suffix)); err == nil {
					return strings.TrimSuffix(w, suffix)
				}
			}
		}
		return w
	}
	for i, w := range words {
		m, isMonth := monthNames[w]
		if !isMonth {
			continue
		}
		// Day before or after the month name.
		if i+1 < len(words) {
			if d, err := strconv.Atoi(trim(words[i+1])); err == nil && d >= 1 && d <= 31 {
				day, month, ok = d, m, true
				if i+2 < len(words) {
					if y, err := strconv.Atoi(words[i+2]); err == nil && y >= 2000 && y <= 2100 {
						year = y
					}
				}
				return
			}
		}
		if i > 0 {
			if d, err := strconv.Atoi(trim(words[i-1])); err == nil && d >= 1 && d <= 31 {
				day, month, ok = d, m, true
				if i+1 < len(words) {
					if y, err := strconv.Atoi(words[i+1]); err == nil && y >= 2000 && y <= 2100 {
						year = y
					}
				}
				return
			}
		}
	}
	return 0, 0, 0, false
}

func (k *KeywordExtractor) extractDuration(text string, slots *models.Slots) {
	if m := durationRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			slots.Duration = models.KnownInt(n)
			return
		}
	}
	if strings.Contains(text, "a week") || strings.Contains(text, "one week") {
		slots.Duration = models.KnownInt(7)
	}
}

func (k *KeywordExtractor) extractCabin(text string, slots *models.Slots) {
	switch {
	case strings.Contains(text, "premium economy"), strings.Contains(text, "premium"):
		slots.CabinClass = models.KnownString(models.CabinPremiumEconomy)
	case strings.Contains(text, "business"), strings.Contains(text, "biz"):
		slots.CabinClass = models.KnownString(models.CabinBusiness)
	case strings.Contains(text, "first class"), strings.Contains(text, "first cabin"):
		slots.CabinClass = models.KnownString(models.CabinFirst)
	case strings.Contains(text, "economy"), strings.Contains(text, "eco "), strings.HasSuffix(text, "eco"):
		slots.CabinClass = models.KnownString(models.CabinEconomy)
	}
}
