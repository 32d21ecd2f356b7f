package models

import (
	"time"

	"github.com/google/uuid"
)

// RFQActivity is one audit-trail entry. Customer name and part number
// are denormalized so the trail stays readable after the RFQ changes
// or is deleted.
type RFQActivity struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RFQRecordID  uuid.UUID `gorm:"column:rfq_id;type:uuid;not null;index"`
	Author       string    `gorm:"column:author;not null"`
	Action       string    `gorm:"column:action;not null"`
	Details      *string   `gorm:"column:details"`
	CustomerName string    `gorm:"column:customer_name;not null"`
	PartNumber   string    `gorm:"column:part_number;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RFQActivity) TableName() string { return "rfq_activities" }
