package rfqs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quoteline/rfqtracker-backend/pkg/db/models"
	"github.com/quoteline/rfqtracker-backend/pkg/pagination"
)

// Repository exposes RFQ persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// NextDisplayNumber atomically bumps the display-id sequence and
// returns the new value. Must run inside the create transaction so a
// rollback releases nothing observable.
func (r *Repository) NextDisplayNumber(ctx context.Context) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).
		Raw("UPDATE rfq_counters SET value = value + 1 WHERE id = 1 RETURNING value").
		Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("bump rfq counter: %w", err)
	}
	if value == 0 {
		return 0, fmt.Errorf("rfq counter row missing")
	}
	return value, nil
}

// Create inserts a new RFQ. IDs are assigned app-side so the same
// code path works on Postgres and the SQLite test harness.
func (r *Repository) Create(ctx context.Context, rfq *models.RFQ) error {
	if rfq.ID == uuid.Nil {
		rfq.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(rfq).Error
}

// FindByID loads the RFQ without child collections.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	var rfq models.RFQ
	if err := r.db.WithContext(ctx).First(&rfq, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rfq, nil
}

// FindByIDWithChildren loads the RFQ with communications and notes.
func (r *Repository) FindByIDWithChildren(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	var rfq models.RFQ
	err := r.db.WithContext(ctx).
		Preload("Communications", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("NoteEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&rfq, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rfq, nil
}

// Save persists the full RFQ row.
func (r *Repository) Save(ctx context.Context, rfq *models.RFQ) error {
	return r.db.WithContext(ctx).Save(rfq).Error
}

// Delete removes the RFQ; child rows cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.RFQ{}, "id = ?", id).Error
}

// List returns the owner's RFQs matching the provided filters.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID, filters ListFilters) ([]models.RFQ, error) {
	order, err := filters.orderClause()
	if err != nil {
		return nil, err
	}

	q := r.applyFilters(r.db.WithContext(ctx).Where("sales_user_id = ?", ownerID), filters).
		Order(order).
		Limit(pagination.NormalizeLimit(filters.Limit))

	var out []models.RFQ
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every RFQ regardless of owner. Manager-only path.
func (r *Repository) ListAll(ctx context.Context) ([]models.RFQ, error) {
	var out []models.RFQ
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) applyFilters(q *gorm.DB, filters ListFilters) *gorm.DB {
	if search := filters.Search; search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"LOWER(customer_name) LIKE LOWER(?) OR LOWER(part_number) LIKE LOWER(?) OR LOWER(rfq_id) LIKE LOWER(?) OR LOWER(customer_email) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.Stage != nil {
		q = q.Where("stage = ?", *filters.Stage)
	}
	if filters.Urgency != nil {
		q = q.Where("urgency = ?", *filters.Urgency)
	}
	if filters.ConfidenceBand != nil {
		min, max := confidenceBandRange(*filters.ConfidenceBand)
		q = q.Where("confidence BETWEEN ? AND ?", min, max)
	}
	if filters.DateFrom != nil {
		q = q.Where("date_received >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("date_received <= ?", *filters.DateTo)
	}
	if filters.QuantityMin != nil {
		q = q.Where("quantity >= ?", *filters.QuantityMin)
	}
	if filters.QuantityMax != nil {
		q = q.Where("quantity <= ?", *filters.QuantityMax)
	}
	if filters.MarginMin != nil {
		q = q.Where("margin >= ?", *filters.MarginMin)
	}
	if filters.MarginMax != nil {
		q = q.Where("margin <= ?", *filters.MarginMax)
	}
	if filters.ConfidenceMin != nil {
		q = q.Where("confidence >= ?", *filters.ConfidenceMin)
	}
	if filters.ConfidenceMax != nil {
		q = q.Where("confidence <= ?", *filters.ConfidenceMax)
	}
	if filters.HasSupplier != nil {
		if *filters.HasSupplier {
			q = q.Where("supplier_quote IS NOT NULL")
		} else {
			q = q.Where("supplier_quote IS NULL")
		}
	}
	if filters.HasCustomer != nil {
		// an empty customer quote is stored as NULL
		if *filters.HasCustomer {
			q = q.Where("customer_quote IS NOT NULL")
		} else {
			q = q.Where("customer_quote IS NULL")
		}
	}
	return q
}

// AppendActivity writes one audit-trail entry.
func (r *Repository) AppendActivity(ctx context.Context, entry *models.RFQActivity) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// AppendCommunication logs a touchpoint against the RFQ.
func (r *Repository) AppendCommunication(ctx context.Context, entry *models.RFQCommunication) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// AppendNote stores a note entry.
func (r *Repository) AppendNote(ctx context.Context, entry *models.RFQNote) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListActivities returns the audit trail for one RFQ, newest first.
func (r *Repository) ListActivities(ctx context.Context, rfqID uuid.UUID) ([]models.RFQActivity, error) {
	var out []models.RFQActivity
	err := r.db.WithContext(ctx).
		Where("rfq_id = ?", rfqID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ChildCountsFor returns activity and communication totals for the
// provided RFQ ids.
func (r *Repository) ChildCountsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ChildCounts, error) {
	out := make(map[uuid.UUID]ChildCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	type countRow struct {
		RFQID uuid.UUID `gorm:"column:rfq_id"`
		Count int       `gorm:"column:count"`
	}

	var activityRows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.RFQActivity{}).
		Select("rfq_id, COUNT(*) AS count").
		Where("rfq_id IN ?", ids).
		Group("rfq_id").
		Scan(&activityRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range activityRows {
		counts := out[row.RFQID]
		counts.Activities = row.Count
		out[row.RFQID] = counts
	}

	var commRows []countRow
	err = r.db.WithContext(ctx).
		Model(&models.RFQCommunication{}).
		Select("rfq_id, COUNT(*) AS count").
		Where("rfq_id IN ?", ids).
		Group("rfq_id").
		Scan(&commRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range commRows {
		counts := out[row.RFQID]
		counts.Communications = row.Count
		out[row.RFQID] = counts
	}

	return out, nil
}

// UserNames resolves display names for the provided user ids.
func (r *Repository) UserNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	type nameRow struct {
		ID   uuid.UUID `gorm:"column:id"`
		Name string    `gorm:"column:name"`
	}

	var rows []nameRow
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}
