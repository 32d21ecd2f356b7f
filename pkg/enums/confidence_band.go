package enums

import "fmt"

// ConfidenceBand buckets the 0-100 confidence score for filtering and stats.
type ConfidenceBand string

const (
	ConfidenceBandLow    ConfidenceBand = "low"
	ConfidenceBandMedium ConfidenceBand = "medium"
	ConfidenceBandHigh   ConfidenceBand = "high"
)

var validConfidenceBands = []ConfidenceBand{
	ConfidenceBandLow,
	ConfidenceBandMedium,
	ConfidenceBandHigh,
}

// String implements fmt.Stringer.
func (c ConfidenceBand) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConfidenceBand.
func (c ConfidenceBand) IsValid() bool {
	for _, candidate := range validConfidenceBands {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseConfidenceBand converts raw input into a ConfidenceBand.
func ParseConfidenceBand(value string) (ConfidenceBand, error) {
	for _, candidate := range validConfidenceBands {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid confidence band %q", value)
}

// BandForConfidence maps a raw 0-100 score onto its band: low <30,
// medium 30-69, high >=70.
func BandForConfidence(score int) ConfidenceBand {
	switch {
	case score >= 70:
		return ConfidenceBandHigh
	case score >= 30:
		return ConfidenceBandMedium
	default:
		return ConfidenceBandLow
	}
}
