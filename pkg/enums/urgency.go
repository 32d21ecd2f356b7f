package enums

import "fmt"

// Urgency classifies how quickly an RFQ needs attention.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

var validUrgencies = []Urgency{
	UrgencyLow,
	UrgencyMedium,
	UrgencyHigh,
	UrgencyUrgent,
}

// AllUrgencies returns every known urgency in escalation order.
func AllUrgencies() []Urgency {
	return append([]Urgency(nil), validUrgencies...)
}

// String implements fmt.Stringer.
func (u Urgency) String() string {
	return string(u)
}

// IsValid reports whether the value is a known Urgency.
func (u Urgency) IsValid() bool {
	for _, candidate := range validUrgencies {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUrgency converts raw input into an Urgency.
func ParseUrgency(value string) (Urgency, error) {
	for _, candidate := range validUrgencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid urgency %q", value)
}
