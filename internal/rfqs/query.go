package rfqs

import (
	"strings"
	"time"

	"github.com/quoteline/rfqtracker-backend/pkg/enums"
	pkgerrors "github.com/quoteline/rfqtracker-backend/pkg/errors"
)

// ListFilters describe the supported filter knobs for listing and the
// advanced search endpoint. Nil pointers mean "not filtered".
type ListFilters struct {
	Search         string
	Status         *enums.RFQStatus
	Stage          *enums.RFQStage
	Urgency        *enums.Urgency
	ConfidenceBand *enums.ConfidenceBand
	DateFrom       *time.Time
	DateTo         *time.Time
	QuantityMin    *int
	QuantityMax    *int
	MarginMin      *float64
	MarginMax      *float64
	ConfidenceMin  *int
	ConfidenceMax  *int
	HasSupplier    *bool
	HasCustomer    *bool
	SortBy         string
	SortDir        string
	Limit          int
}

// sortColumns is the whitelist of caller-selectable sort keys.
var sortColumns = map[string]string{
	"created_at":    "created_at",
	"updated_at":    "updated_at",
	"date_received": "date_received",
	"customer_name": "customer_name",
	"part_number":   "part_number",
	"rfq_id":        "rfq_id",
	"quantity":      "quantity",
	"margin":        "margin",
	"confidence":    "confidence",
	"urgency":       "urgency",
	"status":        "status",
	"stage":         "stage",
}

// orderClause resolves the sort selection against the whitelist.
// Defaults to created_at DESC; unknown columns are a validation error.
func (f ListFilters) orderClause() (string, error) {
	column := strings.TrimSpace(strings.ToLower(f.SortBy))
	if column == "" {
		column = "created_at"
	}
	mapped, ok := sortColumns[column]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort column").
			WithDetails(map[string]any{"sort_by": f.SortBy})
	}

	dir := strings.TrimSpace(strings.ToUpper(f.SortDir))
	switch dir {
	case "":
		if column == "created_at" {
			dir = "DESC"
		} else {
			dir = "ASC"
		}
	case "ASC", "DESC":
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "sort direction must be asc or desc")
	}

	return mapped + " " + dir, nil
}

// confidenceBandRange maps a band to its inclusive score bounds.
func confidenceBandRange(band enums.ConfidenceBand) (min, max int) {
	switch band {
	case enums.ConfidenceBandLow:
		return 0, 29
	case enums.ConfidenceBandMedium:
		return 30, 69
	default:
		return 70, 100
	}
}
