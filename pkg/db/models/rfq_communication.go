package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/pkg/enums"
)

// RFQCommunication is one customer or supplier touchpoint logged
// against an RFQ.
type RFQCommunication struct {
	ID          uuid.UUID                    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RFQRecordID uuid.UUID                    `gorm:"column:rfq_id;type:uuid;not null;index"`
	Kind        enums.CommunicationKind      `gorm:"column:kind;not null"`
	Direction   enums.CommunicationDirection `gorm:"column:direction;not null"`
	Message     string                       `gorm:"column:message;not null"`
	Author      string                       `gorm:"column:author;not null"`
	CreatedAt   time.Time                    `gorm:"column:created_at;autoCreateTime"`
}

func (RFQCommunication) TableName() string { return "rfq_communications" }
