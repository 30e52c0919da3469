package models

// SlotStatus tracks how much we trust a single extracted travel field.
type SlotStatus string

const (
	SlotUnset     SlotStatus = "unset"
	SlotKnown     SlotStatus = "known"
	SlotAmbiguous SlotStatus = "ambiguous"
)

// Cabin class values, normalized to the booking-provider vocabulary.
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// StringSlot holds a city code or cabin class. Candidates is only
// populated while the slot is ambiguous.
type StringSlot struct {
	Status     SlotStatus `json:"status" bson:"status"`
	Value      string     `json:"value,omitempty" bson:"value,omitempty"`
	Candidates []string   `json:"candidates,omitempty" bson:"candidates,omitempty"`
}

// DateSlot holds a calendar date as YYYY-MM-DD.
type DateSlot struct {
	Status     SlotStatus `json:"status" bson:"status"`
	Value      string     `json:"value,omitempty" bson:"value,omitempty"`
	Candidates []string   `json:"candidates,omitempty" bson:"candidates,omitempty"`
}

// IntSlot holds the trip duration in nights.
type IntSlot struct {
	Status SlotStatus `json:"status" bson:"status"`
	Value  int        `json:"value,omitempty" bson:"value,omitempty"`
}

// Slots is the structured travel intent accumulated over a conversation.
// Once a slot reaches Known it is only replaced by an explicit user
// correction for that field, never silently cleared.
type Slots struct {
	Origin        StringSlot `json:"origin" bson:"origin"`
	Destination   StringSlot `json:"destination" bson:"destination"`
	DepartureDate DateSlot   `json:"departureDate" bson:"departureDate"`
	Duration      IntSlot    `json:"duration" bson:"duration"`
	CabinClass    StringSlot `json:"cabinClass" bson:"cabinClass"`
}

// NewSlots returns an all-unset slot set.
func NewSlots() Slots {
	return Slots{
		Origin:        StringSlot{Status: SlotUnset},
		Destination:   StringSlot{Status: SlotUnset},
		DepartureDate: DateSlot{Status: SlotUnset},
		Duration:      IntSlot{Status: SlotUnset},
		CabinClass:    StringSlot{Status: SlotUnset},
	}
}

func KnownString(v string) StringSlot {
	return StringSlot{Status: SlotKnown, Value: v}
}

func AmbiguousString(candidates []string) StringSlot {
	return StringSlot{Status: SlotAmbiguous, Candidates: candidates}
}

func KnownDate(v string) DateSlot {
	return DateSlot{Status: SlotKnown, Value: v}
}

func AmbiguousDate(candidates []string) DateSlot {
	return DateSlot{Status: SlotAmbiguous, Candidates: candidates}
}

func KnownInt(v int) IntSlot {
	return IntSlot{Status: SlotKnown, Value: v}
}

// Complete reports whether every search-critical slot is Known. Origin is
// excluded: it falls back to the configured home city.
func (s Slots) Complete() bool {
	return s.Destination.Status == SlotKnown &&
		s.DepartureDate.Status == SlotKnown &&
		s.Duration.Status == SlotKnown &&
		s.CabinClass.Status == SlotKnown
}
