package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/pkg/enums"
)

// RFQNote is a free-form annotation scoped to one RFQ.
type RFQNote struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RFQRecordID uuid.UUID      `gorm:"column:rfq_id;type:uuid;not null;index"`
	Kind        enums.NoteKind `gorm:"column:kind;not null;default:internal"`
	Message     string         `gorm:"column:message;not null"`
	Author      string         `gorm:"column:author;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (RFQNote) TableName() string { return "rfq_notes" }
