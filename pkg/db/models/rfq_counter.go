package models

// RFQCounter is the single-row sequence backing display-id assignment.
// The row is bumped with an atomic UPDATE inside the create
// transaction, so concurrent creates cannot observe the same value.
type RFQCounter struct {
	ID    int   `gorm:"column:id;primaryKey"`
	Value int64 `gorm:"column:value;not null"`
}

func (RFQCounter) TableName() string { return "rfq_counters" }
