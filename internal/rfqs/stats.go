package rfqs

import (
	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/pkg/db/models"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
)

// Stats is the aggregate block computed over a set of RFQs.
type Stats struct {
	Total            int            `json:"total"`
	Active           int            `json:"active"`
	ByStatus         map[string]int `json:"by_status"`
	ByUrgency        map[string]int `json:"by_urgency"`
	ByConfidence     map[string]int `json:"by_confidence"`
	ByStage          map[string]int `json:"by_stage"`
	PotentialRevenue float64        `json:"potential_revenue"`
	CompletedRevenue float64        `json:"completed_revenue"`
	AvgQuantity      float64        `json:"avg_quantity"`
	AvgMargin        float64        `json:"avg_margin"`
	AvgConfidence    float64        `json:"avg_confidence"`
}

// SalespersonStats is one row of the manager breakdown.
type SalespersonStats struct {
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Total            int       `json:"total"`
	PotentialRevenue float64   `json:"potential_revenue"`
}

// ManagerOverview is the cross-team aggregate returned to managers.
type ManagerOverview struct {
	Stats         Stats              `json:"stats"`
	BySalesperson []SalespersonStats `json:"by_salesperson"`
}

// computeStats folds an RFQ set into the aggregate block. Keys cover
// every enum value so consumers see explicit zeroes.
func computeStats(rows []models.RFQ) Stats {
	stats := Stats{
		ByStatus:     make(map[string]int, len(enums.AllRFQStatuses())),
		ByUrgency:    make(map[string]int, len(enums.AllUrgencies())),
		ByConfidence: map[string]int{"low": 0, "medium": 0, "high": 0},
		ByStage:      make(map[string]int, len(enums.AllRFQStages())),
	}
	for _, status := range enums.AllRFQStatuses() {
		stats.ByStatus[string(status)] = 0
	}
	for _, urgency := range enums.AllUrgencies() {
		stats.ByUrgency[string(urgency)] = 0
	}
	for _, stage := range enums.AllRFQStages() {
		stats.ByStage[string(stage)] = 0
	}

	var quantitySum, marginSum, confidenceSum float64
	for i := range rows {
		rfq := &rows[i]
		stats.Total++
		stats.ByStatus[string(rfq.Status)]++
		stats.ByUrgency[string(rfq.Urgency)]++
		stats.ByConfidence[string(enums.BandForConfidence(rfq.Confidence))]++
		stats.ByStage[string(rfq.Stage)]++

		if rfq.CustomerQuote.Total != nil {
			stats.PotentialRevenue += *rfq.CustomerQuote.Total
			if rfq.Status == enums.RFQStatusCompleted {
				stats.CompletedRevenue += *rfq.CustomerQuote.Total
			}
		}

		quantitySum += float64(rfq.Quantity)
		marginSum += rfq.Margin
		confidenceSum += float64(rfq.Confidence)
	}

	stats.Active = stats.Total -
		stats.ByStatus[string(enums.RFQStatusCompleted)] -
		stats.ByStatus[string(enums.RFQStatusCancelled)]

	if stats.Total > 0 {
		n := float64(stats.Total)
		stats.AvgQuantity = quantitySum / n
		stats.AvgMargin = marginSum / n
		stats.AvgConfidence = confidenceSum / n
	}

	return stats
}

// computeBreakdown groups the set per owner for the manager view.
func computeBreakdown(rows []models.RFQ, names map[uuid.UUID]string) []SalespersonStats {
	index := make(map[uuid.UUID]int)
	var out []SalespersonStats

	for i := range rows {
		rfq := &rows[i]
		pos, ok := index[rfq.SalesUserID]
		if !ok {
			pos = len(out)
			index[rfq.SalesUserID] = pos
			out = append(out, SalespersonStats{
				UserID: rfq.SalesUserID,
				Name:   names[rfq.SalesUserID],
			})
		}
		out[pos].Total++
		if rfq.CustomerQuote.Total != nil {
			out[pos].PotentialRevenue += *rfq.CustomerQuote.Total
		}
	}

	return out
}
