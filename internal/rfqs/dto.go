package rfqs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/pkg/db/models"
	dbtypes "github.com/quoteline/rfqtracker-backend/pkg/db/types"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
)

const (
	receivedDateLayout = "2006-01-02"
	activityTimeLayout = "Jan 2, 2006 3:04 PM"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role enums.MemberRole
}

// CreateRFQInput holds the validated payload to open a new RFQ.
type CreateRFQInput struct {
	CustomerName  string     `json:"customer_name" validate:"required"`
	CustomerEmail string     `json:"customer_email" validate:"required,email"`
	PartNumber    string     `json:"part_number" validate:"required"`
	PCBSpecs      *string    `json:"pcb_specs,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Quantity      int        `json:"quantity" validate:"required,min=1"`
	Margin        *float64   `json:"margin,omitempty" validate:"omitempty,min=0"`
	Urgency       *string    `json:"urgency,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Confidence    *int       `json:"confidence,omitempty" validate:"omitempty,min=0,max=100"`
	DateReceived  *time.Time `json:"date_received,omitempty"`
}

// UpdateRFQInput carries the mutable field subset for generic updates.
// Pricing, status, and stage move through their dedicated operations.
type UpdateRFQInput struct {
	CustomerName  *string    `json:"customer_name,omitempty"`
	CustomerEmail *string    `json:"customer_email,omitempty" validate:"omitempty,email"`
	PartNumber    *string    `json:"part_number,omitempty"`
	PCBSpecs      *string    `json:"pcb_specs,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Quantity      *int       `json:"quantity,omitempty" validate:"omitempty,min=1"`
	DateReceived  *time.Time `json:"date_received,omitempty"`
}

// QuoteValue carries a supplier price that arrives as either a JSON
// number or a free-form string ("$2.45/pc", "2,450.00 USD").
type QuoteValue string

func (v *QuoteValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = QuoteValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = QuoteValue(n.String())
	return nil
}

// SupplierQuoteInput records the price a supplier returned.
type SupplierQuoteInput struct {
	Quote QuoteValue `json:"quote" validate:"required"`
	Notes *string    `json:"notes,omitempty"`
}

// SendToCustomerInput captures the outbound quote delivery.
type SendToCustomerInput struct {
	Message      *string `json:"message,omitempty"`
	CustomerNote *string `json:"customer_note,omitempty"`
}

// CommunicationInput logs one customer or supplier touchpoint. An
// omitted direction defaults to outgoing.
type CommunicationInput struct {
	Kind      string `json:"type" validate:"required,oneof=email phone meeting note"`
	Direction string `json:"direction,omitempty" validate:"omitempty,oneof=incoming outgoing"`
	Message   string `json:"message" validate:"required"`
}

// NoteInput appends a free-form note.
type NoteInput struct {
	Kind    string `json:"type,omitempty" validate:"omitempty,oneof=internal customer supplier"`
	Message string `json:"message" validate:"required"`
}

// CustomerQuoteDTO mirrors the stored customer quote.
type CustomerQuoteDTO struct {
	PerUnit *float64   `json:"per_unit"`
	Total   *float64   `json:"total"`
	Sent    bool       `json:"sent"`
	SentAt  *time.Time `json:"sent_at,omitempty"`
}

// RFQSummaryDTO is the list-row shape, annotated with counts and the
// formatted received date.
type RFQSummaryDTO struct {
	ID                 uuid.UUID         `json:"id"`
	RFQID              string            `json:"rfq_id"`
	CustomerName       string            `json:"customer_name"`
	CustomerEmail      string            `json:"customer_email"`
	PartNumber         string            `json:"part_number"`
	Quantity           int               `json:"quantity"`
	Margin             float64           `json:"margin"`
	SupplierQuote      *float64          `json:"supplier_quote,omitempty"`
	CustomerQuote      *CustomerQuoteDTO `json:"customer_quote,omitempty"`
	Urgency            enums.Urgency     `json:"urgency"`
	Confidence         int               `json:"confidence"`
	ConfidenceBand     string            `json:"confidence_band"`
	Status             enums.RFQStatus   `json:"status"`
	Stage              enums.RFQStage    `json:"stage"`
	DateReceived       time.Time         `json:"date_received"`
	ReceivedDate       string            `json:"received_date"`
	ActivityCount      int               `json:"activity_count"`
	CommunicationCount int               `json:"communication_count"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// RFQDetailDTO is the single-record shape with child collections.
type RFQDetailDTO struct {
	RFQSummaryDTO
	PCBSpecs       *string            `json:"pcb_specs,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	SalesUserID    uuid.UUID          `json:"sales_user_id"`
	DeliveredAt    *time.Time         `json:"delivered_at,omitempty"`
	Communications []CommunicationDTO `json:"communications"`
	NoteEntries    []NoteDTO          `json:"note_entries"`
}

// CommunicationDTO is the transport shape of a logged touchpoint.
type CommunicationDTO struct {
	ID        uuid.UUID                    `json:"id"`
	Kind      enums.CommunicationKind      `json:"kind"`
	Direction enums.CommunicationDirection `json:"direction"`
	Message   string                       `json:"message"`
	Author    string                       `json:"author"`
	CreatedAt time.Time                    `json:"created_at"`
}

// NoteDTO is the transport shape of a note entry.
type NoteDTO struct {
	ID        uuid.UUID      `json:"id"`
	Kind      enums.NoteKind `json:"kind"`
	Message   string         `json:"message"`
	Author    string         `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
}

// ActivityDTO is one audit-trail entry.
type ActivityDTO struct {
	ID                 uuid.UUID `json:"id"`
	Author             string    `json:"author"`
	Action             string    `json:"action"`
	Details            *string   `json:"details,omitempty"`
	CustomerName       string    `json:"customer_name"`
	PartNumber         string    `json:"part_number"`
	CreatedAt          time.Time `json:"created_at"`
	FormattedTimestamp string    `json:"formatted_timestamp"`
}

// ActivityLogDTO wraps the audit trail with the RFQ it belongs to.
type ActivityLogDTO struct {
	RFQID        string        `json:"rfq_id"`
	CustomerName string        `json:"customer_name"`
	PartNumber   string        `json:"part_number"`
	ActivityLog  []ActivityDTO `json:"activity_log"`
}

// ActorDTO echoes the caller identity on list responses.
type ActorDTO struct {
	ID   uuid.UUID        `json:"id"`
	Name string           `json:"name"`
	Role enums.MemberRole `json:"role"`
}

// RFQListDTO bundles the filtered rows with the caller's pipeline
// stats and identity, matching what the dashboard renders in one call.
type RFQListDTO struct {
	RFQs  []RFQSummaryDTO `json:"rfqs"`
	Stats Stats           `json:"stats"`
	User  ActorDTO        `json:"user"`
}

// StageListDTO is the stage-scoped listing with its row count.
type StageListDTO struct {
	RFQs  []RFQSummaryDTO `json:"rfqs"`
	Stage enums.RFQStage  `json:"stage"`
	Count int             `json:"count"`
}

// ChildCounts carries per-RFQ activity and communication totals.
type ChildCounts struct {
	Activities     int
	Communications int
}

func summaryFromModel(m *models.RFQ, counts ChildCounts) RFQSummaryDTO {
	return RFQSummaryDTO{
		ID:                 m.ID,
		RFQID:              m.RFQID,
		CustomerName:       m.CustomerName,
		CustomerEmail:      m.CustomerEmail,
		PartNumber:         m.PartNumber,
		Quantity:           m.Quantity,
		Margin:             m.Margin,
		SupplierQuote:      m.SupplierQuote,
		CustomerQuote:      customerQuoteDTO(m.CustomerQuote),
		Urgency:            m.Urgency,
		Confidence:         m.Confidence,
		ConfidenceBand:     string(enums.BandForConfidence(m.Confidence)),
		Status:             m.Status,
		Stage:              m.Stage,
		DateReceived:       m.DateReceived,
		ReceivedDate:       m.DateReceived.Format(receivedDateLayout),
		ActivityCount:      counts.Activities,
		CommunicationCount: counts.Communications,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func detailFromModel(m *models.RFQ, counts ChildCounts) *RFQDetailDTO {
	detail := &RFQDetailDTO{
		RFQSummaryDTO: summaryFromModel(m, counts),
		PCBSpecs:      m.PCBSpecs,
		Notes:         m.Notes,
		SalesUserID:   m.SalesUserID,
		DeliveredAt:   m.DeliveredAt,
	}

	detail.Communications = make([]CommunicationDTO, 0, len(m.Communications))
	for _, c := range m.Communications {
		detail.Communications = append(detail.Communications, CommunicationDTO{
			ID:        c.ID,
			Kind:      c.Kind,
			Direction: c.Direction,
			Message:   c.Message,
			Author:    c.Author,
			CreatedAt: c.CreatedAt,
		})
	}

	detail.NoteEntries = make([]NoteDTO, 0, len(m.NoteEntries))
	for _, n := range m.NoteEntries {
		detail.NoteEntries = append(detail.NoteEntries, NoteDTO{
			ID:        n.ID,
			Kind:      n.Kind,
			Message:   n.Message,
			Author:    n.Author,
			CreatedAt: n.CreatedAt,
		})
	}

	return detail
}

func activityFromModel(a models.RFQActivity) ActivityDTO {
	return ActivityDTO{
		ID:                 a.ID,
		Author:             a.Author,
		Action:             a.Action,
		Details:            a.Details,
		CustomerName:       a.CustomerName,
		PartNumber:         a.PartNumber,
		CreatedAt:          a.CreatedAt,
		FormattedTimestamp: a.CreatedAt.Format(activityTimeLayout),
	}
}

func customerQuoteDTO(q dbtypes.CustomerQuote) *CustomerQuoteDTO {
	if !q.HasPrice() && !q.Sent {
		return nil
	}
	return &CustomerQuoteDTO{
		PerUnit: q.PerUnit,
		Total:   q.Total,
		Sent:    q.Sent,
		SentAt:  q.SentAt,
	}
}
