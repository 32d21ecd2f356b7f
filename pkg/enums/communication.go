package enums

import "fmt"

// CommunicationKind classifies a customer touchpoint.
type CommunicationKind string

const (
	CommunicationKindEmail   CommunicationKind = "email"
	CommunicationKindPhone   CommunicationKind = "phone"
	CommunicationKindMeeting CommunicationKind = "meeting"
	CommunicationKindNote    CommunicationKind = "note"
)

var validCommunicationKinds = []CommunicationKind{
	CommunicationKindEmail,
	CommunicationKindPhone,
	CommunicationKindMeeting,
	CommunicationKindNote,
}

// String implements fmt.Stringer.
func (c CommunicationKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CommunicationKind.
func (c CommunicationKind) IsValid() bool {
	for _, candidate := range validCommunicationKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCommunicationKind converts raw input into a CommunicationKind.
func ParseCommunicationKind(value string) (CommunicationKind, error) {
	for _, candidate := range validCommunicationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid communication kind %q", value)
}

// CommunicationDirection marks whether the touchpoint came in or went out.
type CommunicationDirection string

const (
	CommunicationDirectionIncoming CommunicationDirection = "incoming"
	CommunicationDirectionOutgoing CommunicationDirection = "outgoing"
)

var validCommunicationDirections = []CommunicationDirection{
	CommunicationDirectionIncoming,
	CommunicationDirectionOutgoing,
}

// String implements fmt.Stringer.
func (d CommunicationDirection) String() string {
	return string(d)
}

// IsValid reports whether the value is a known CommunicationDirection.
func (d CommunicationDirection) IsValid() bool {
	for _, candidate := range validCommunicationDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseCommunicationDirection converts raw input into a CommunicationDirection.
func ParseCommunicationDirection(value string) (CommunicationDirection, error) {
	for _, candidate := range validCommunicationDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid communication direction %q", value)
}
