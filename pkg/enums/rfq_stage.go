package enums

import "fmt"

// RFQStage tracks the position within the operational fulfillment pipeline,
// independent of RFQStatus except for the delivered/completed coupling.
type RFQStage string

const (
	RFQStageReceived       RFQStage = "rfq_received"
	RFQStageQuoteSubmitted RFQStage = "quote_submitted"
	RFQStagePriceAccepted  RFQStage = "price_accepted"
	RFQStageWaitingForPO   RFQStage = "waiting_for_po"
	RFQStagePOReceived     RFQStage = "po_received"
	RFQStageInProduction   RFQStage = "in_production"
	RFQStageShipped        RFQStage = "shipped"
	RFQStageDelivered      RFQStage = "delivered"
)

var validRFQStages = []RFQStage{
	RFQStageReceived,
	RFQStageQuoteSubmitted,
	RFQStagePriceAccepted,
	RFQStageWaitingForPO,
	RFQStagePOReceived,
	RFQStageInProduction,
	RFQStageShipped,
	RFQStageDelivered,
}

// AllRFQStages returns every known stage in pipeline order.
func AllRFQStages() []RFQStage {
	return append([]RFQStage(nil), validRFQStages...)
}

// String implements fmt.Stringer.
func (s RFQStage) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RFQStage.
func (s RFQStage) IsValid() bool {
	for _, candidate := range validRFQStages {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRFQStage converts raw input into an RFQStage.
func ParseRFQStage(value string) (RFQStage, error) {
	for _, candidate := range validRFQStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rfq stage %q", value)
}
