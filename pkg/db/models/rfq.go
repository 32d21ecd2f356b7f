package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/quoteline/rfqtracker-backend/pkg/db/types"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
)

// RFQ is one request-for-quote owned by a single sales user. The
// status and stage axes move independently except that a delivered
// stage forces the completed status.
type RFQ struct {
	ID            uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RFQID         string                `gorm:"column:rfq_id;not null;uniqueIndex"`
	CustomerName  string                `gorm:"column:customer_name;not null"`
	CustomerEmail string                `gorm:"column:customer_email;not null"`
	PartNumber    string                `gorm:"column:part_number;not null"`
	PCBSpecs      *string               `gorm:"column:pcb_specs"`
	Notes         *string               `gorm:"column:notes"`
	Quantity      int                   `gorm:"column:quantity;not null"`
	Margin        float64               `gorm:"column:margin;not null;default:15"`
	SupplierQuote *float64              `gorm:"column:supplier_quote"`
	CustomerQuote dbtypes.CustomerQuote `gorm:"column:customer_quote;type:jsonb"`
	Urgency       enums.Urgency         `gorm:"column:urgency;not null;default:medium"`
	Confidence    int                   `gorm:"column:confidence;not null;default:50"`
	Status        enums.RFQStatus       `gorm:"column:status;not null;default:new"`
	Stage         enums.RFQStage        `gorm:"column:stage;not null;default:rfq_received"`
	SalesUserID   uuid.UUID             `gorm:"column:sales_user_id;type:uuid;not null;index"`
	DateReceived  time.Time             `gorm:"column:date_received;not null"`
	DeliveredAt   *time.Time            `gorm:"column:delivered_at"`

	Communications []RFQCommunication `gorm:"foreignKey:RFQRecordID;constraint:OnDelete:CASCADE"`
	NoteEntries    []RFQNote          `gorm:"foreignKey:RFQRecordID;constraint:OnDelete:CASCADE"`
	Activities     []RFQActivity      `gorm:"foreignKey:RFQRecordID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (RFQ) TableName() string { return "rfqs" }
