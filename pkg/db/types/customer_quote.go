package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CustomerQuote is the jsonb column holding the customer-facing price
// and its delivery state. Price fields are nil until a supplier quote
// and margin produce a usable number.
type CustomerQuote struct {
	PerUnit *float64   `json:"per_unit"`
	Total   *float64   `json:"total"`
	Sent    bool       `json:"sent"`
	SentAt  *time.Time `json:"sent_at,omitempty"`
}

// HasPrice reports whether both price components are populated.
func (q CustomerQuote) HasPrice() bool {
	return q.PerUnit != nil && q.Total != nil
}

// Value marshals the quote into a jsonb literal. An empty quote is
// stored as NULL so has-quote filters can test the column directly.
func (q CustomerQuote) Value() (driver.Value, error) {
	if q == (CustomerQuote{}) {
		return nil, nil
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("CustomerQuote: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes a jsonb payload into the quote.
func (q *CustomerQuote) Scan(src any) error {
	if src == nil {
		*q = CustomerQuote{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return q.unmarshal(v)
	case string:
		return q.unmarshal([]byte(v))
	default:
		return fmt.Errorf("CustomerQuote: unsupported Scan type %T", src)
	}
}

func (q *CustomerQuote) unmarshal(raw []byte) error {
	if len(raw) == 0 {
		*q = CustomerQuote{}
		return nil
	}
	if err := json.Unmarshal(raw, q); err != nil {
		return fmt.Errorf("CustomerQuote: unmarshal: %w", err)
	}
	return nil
}
