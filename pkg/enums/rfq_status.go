package enums

import "fmt"

// RFQStatus reflects the quoting/communication state of an RFQ.
type RFQStatus string

const (
	RFQStatusNew              RFQStatus = "new"
	RFQStatusAwaitingSupplier RFQStatus = "awaiting_supplier"
	RFQStatusQuoteReceived    RFQStatus = "quote_received"
	RFQStatusSentToCustomer   RFQStatus = "sent_to_customer"
	RFQStatusCompleted        RFQStatus = "completed"
	RFQStatusCancelled        RFQStatus = "cancelled"
)

var validRFQStatuses = []RFQStatus{
	RFQStatusNew,
	RFQStatusAwaitingSupplier,
	RFQStatusQuoteReceived,
	RFQStatusSentToCustomer,
	RFQStatusCompleted,
	RFQStatusCancelled,
}

// AllRFQStatuses returns every known status in declaration order.
func AllRFQStatuses() []RFQStatus {
	return append([]RFQStatus(nil), validRFQStatuses...)
}

// String implements fmt.Stringer.
func (s RFQStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RFQStatus.
func (s RFQStatus) IsValid() bool {
	for _, candidate := range validRFQStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the quoting pipeline.
func (s RFQStatus) IsTerminal() bool {
	return s == RFQStatusCompleted || s == RFQStatusCancelled
}

// ParseRFQStatus converts raw input into an RFQStatus.
func ParseRFQStatus(value string) (RFQStatus, error) {
	for _, candidate := range validRFQStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rfq status %q", value)
}
