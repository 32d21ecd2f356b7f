package rfqs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quoteline/rfqtracker-backend/pkg/config"
	"github.com/quoteline/rfqtracker-backend/pkg/db"
	"github.com/quoteline/rfqtracker-backend/pkg/db/models"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
	pkgerrors "github.com/quoteline/rfqtracker-backend/pkg/errors"
	"github.com/quoteline/rfqtracker-backend/pkg/pricing"
)

const (
	defaultMargin     = 15.0
	defaultConfidence = 50
)

// Service exposes the RFQ lifecycle operations.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateRFQInput) (*RFQDetailDTO, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*RFQDetailDTO, error)
	List(ctx context.Context, actor Actor, filters ListFilters) ([]RFQSummaryDTO, error)
	ListByStage(ctx context.Context, actor Actor, stage enums.RFQStage) (*StageListDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateRFQInput) (*RFQDetailDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	RecordSupplierQuote(ctx context.Context, actor Actor, id uuid.UUID, input SupplierQuoteInput) (*RFQDetailDTO, error)
	UpdateMargin(ctx context.Context, actor Actor, id uuid.UUID, margin float64) (*RFQDetailDTO, error)
	UpdateStage(ctx context.Context, actor Actor, id uuid.UUID, stage enums.RFQStage) (*RFQDetailDTO, error)
	SendToCustomer(ctx context.Context, actor Actor, id uuid.UUID, input SendToCustomerInput) (*RFQDetailDTO, error)
	MarkComplete(ctx context.Context, actor Actor, id uuid.UUID) (*RFQDetailDTO, error)
	UpdateUrgency(ctx context.Context, actor Actor, id uuid.UUID, urgency enums.Urgency) (*RFQDetailDTO, error)
	UpdateConfidence(ctx context.Context, actor Actor, id uuid.UUID, confidence int) (*RFQDetailDTO, error)
	AddCommunication(ctx context.Context, actor Actor, id uuid.UUID, input CommunicationInput) (*RFQDetailDTO, error)
	AddNote(ctx context.Context, actor Actor, id uuid.UUID, input NoteInput) (*RFQDetailDTO, error)
	ListActivities(ctx context.Context, actor Actor, id uuid.UUID) (*ActivityLogDTO, error)
	Stats(ctx context.Context, actor Actor) (*Stats, error)
	Overview(ctx context.Context) (*ManagerOverview, error)
}

type service struct {
	db  *db.Client
	cfg config.RFQConfig
}

// ServiceParams bundles the dependencies required to build the RFQ service.
type ServiceParams struct {
	DB        *db.Client
	RFQConfig config.RFQConfig
}

// NewService constructs the RFQ service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	cfg := params.RFQConfig
	if cfg.DisplayIDPrefix == "" {
		cfg.DisplayIDPrefix = "RFQ"
	}
	if cfg.DisplayIDPad <= 0 {
		cfg.DisplayIDPad = 3
	}
	return &service{db: params.DB, cfg: cfg}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateRFQInput) (*RFQDetailDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	margin := defaultMargin
	if input.Margin != nil {
		if *input.Margin < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "margin cannot be negative")
		}
		margin = *input.Margin
	}

	urgency := enums.UrgencyMedium
	if input.Urgency != nil {
		parsed, err := enums.ParseUrgency(*input.Urgency)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency")
		}
		urgency = parsed
	}

	confidence := defaultConfidence
	if input.Confidence != nil {
		if *input.Confidence < 0 || *input.Confidence > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "confidence must be between 0 and 100")
		}
		confidence = *input.Confidence
	}

	now := time.Now().UTC()
	dateReceived := now
	if input.DateReceived != nil {
		dateReceived = input.DateReceived.UTC()
	}

	var result *RFQDetailDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		number, err := repo.NextDisplayNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign display id")
		}

		rfq := &models.RFQ{
			RFQID:         s.displayID(number),
			CustomerName:  strings.TrimSpace(input.CustomerName),
			CustomerEmail: strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
			PartNumber:    strings.TrimSpace(input.PartNumber),
			PCBSpecs:      input.PCBSpecs,
			Notes:         input.Notes,
			Quantity:      input.Quantity,
			Margin:        margin,
			Urgency:       urgency,
			Confidence:    confidence,
			Status:        enums.RFQStatusNew,
			Stage:         enums.RFQStageReceived,
			SalesUserID:   actor.ID,
			DateReceived:  dateReceived,
		}
		if err := repo.Create(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create rfq")
		}

		if err := s.logActivity(ctx, repo, rfq, actor, "created", nil); err != nil {
			return err
		}

		result, err = s.loadDetail(ctx, repo, rfq.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the full RFQ and records a "viewed" audit entry.
func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*RFQDetailDTO, error) {
	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		return s.logActivity(ctx, repo, rfq, actor, "viewed", nil)
	})
}

func (s *service) List(ctx context.Context, actor Actor, filters ListFilters) ([]RFQSummaryDTO, error) {
	repo := NewRepository(s.db.DB())
	rows, err := repo.List(ctx, actor.ID, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rfqs")
	}
	return s.summarize(ctx, repo, rows)
}

// ListByStage returns the caller's RFQs at one pipeline stage, most
// recently touched first.
func (s *service) ListByStage(ctx context.Context, actor Actor, stage enums.RFQStage) (*StageListDTO, error) {
	if !stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage")
	}
	rows, err := s.List(ctx, actor, ListFilters{Stage: &stage, SortBy: "updated_at", SortDir: "desc"})
	if err != nil {
		return nil, err
	}
	return &StageListDTO{RFQs: rows, Stage: stage, Count: len(rows)}, nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateRFQInput) (*RFQDetailDTO, error) {
	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		var changed []string
		if input.CustomerName != nil {
			rfq.CustomerName = strings.TrimSpace(*input.CustomerName)
			changed = append(changed, "customer_name")
		}
		if input.CustomerEmail != nil {
			rfq.CustomerEmail = strings.ToLower(strings.TrimSpace(*input.CustomerEmail))
			changed = append(changed, "customer_email")
		}
		if input.PartNumber != nil {
			rfq.PartNumber = strings.TrimSpace(*input.PartNumber)
			changed = append(changed, "part_number")
		}
		if input.PCBSpecs != nil {
			rfq.PCBSpecs = input.PCBSpecs
			changed = append(changed, "pcb_specs")
		}
		if input.Notes != nil {
			rfq.Notes = input.Notes
			changed = append(changed, "notes")
		}
		if input.Quantity != nil {
			if *input.Quantity < 1 {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
			}
			rfq.Quantity = *input.Quantity
			changed = append(changed, "quantity")
		}
		if input.DateReceived != nil {
			rfq.DateReceived = input.DateReceived.UTC()
			changed = append(changed, "date_received")
		}
		if len(changed) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
		}

		s.recomputeCustomerQuote(rfq)

		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update rfq")
		}

		details := "fields: " + strings.Join(changed, ", ")
		return s.logActivity(ctx, repo, rfq, actor, "updated", &details)
	})
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		rfq, err := s.loadOwned(ctx, repo, id, actor)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, rfq.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete rfq")
		}
		return nil
	})
}

func (s *service) RecordSupplierQuote(ctx context.Context, actor Actor, id uuid.UUID, input SupplierQuoteInput) (*RFQDetailDTO, error) {
	price, ok := pricing.Parse(string(input.Quote))
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier price holds no usable number")
	}

	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		rfq.SupplierQuote = &price
		rfq.Status = enums.RFQStatusQuoteReceived
		s.recomputeCustomerQuote(rfq)

		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record supplier quote")
		}

		if input.Notes != nil && strings.TrimSpace(*input.Notes) != "" {
			note := &models.RFQNote{
				RFQRecordID: rfq.ID,
				Kind:        enums.NoteKindSupplier,
				Message:     strings.TrimSpace(*input.Notes),
				Author:      actor.Name,
			}
			if err := repo.AppendNote(ctx, note); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append supplier note")
			}
		}

		details := fmt.Sprintf("supplier price %.2f", price)
		return s.logActivity(ctx, repo, rfq, actor, "supplier_quote_recorded", &details)
	})
}

func (s *service) UpdateMargin(ctx context.Context, actor Actor, id uuid.UUID, margin float64) (*RFQDetailDTO, error) {
	if margin < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "margin cannot be negative")
	}

	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		previous := rfq.Margin
		rfq.Margin = margin
		s.recomputeCustomerQuote(rfq)

		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update margin")
		}

		details := fmt.Sprintf("Changed from %g%% to %g%%", previous, margin)
		return s.logActivity(ctx, repo, rfq, actor, "margin_updated", &details)
	})
}

func (s *service) UpdateStage(ctx context.Context, actor Actor, id uuid.UUID, stage enums.RFQStage) (*RFQDetailDTO, error) {
	if !stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage")
	}

	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		previous := rfq.Stage
		rfq.Stage = stage
		// a delivered stage always closes the status axis
		if stage == enums.RFQStageDelivered {
			rfq.Status = enums.RFQStatusCompleted
			if rfq.DeliveredAt == nil {
				now := time.Now().UTC()
				rfq.DeliveredAt = &now
			}
		}

		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update stage")
		}

		details := "Changed from " + string(previous) + " to " + string(stage)
		return s.logActivity(ctx, repo, rfq, actor, "stage_updated", &details)
	})
}

func (s *service) SendToCustomer(ctx context.Context, actor Actor, id uuid.UUID, input SendToCustomerInput) (*RFQDetailDTO, error) {
	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		if rfq.SupplierQuote == nil || !rfq.CustomerQuote.HasPrice() {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot send quote before a supplier quote is recorded")
		}

		now := time.Now().UTC()
		rfq.CustomerQuote.Sent = true
		rfq.CustomerQuote.SentAt = &now
		rfq.Status = enums.RFQStatusSentToCustomer

		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send quote")
		}

		message := "Quote sent to customer"
		if input.Message != nil && strings.TrimSpace(*input.Message) != "" {
			message = strings.TrimSpace(*input.Message)
		}
		comm := &models.RFQCommunication{
			RFQRecordID: rfq.ID,
			Kind:        enums.CommunicationKindEmail,
			Direction:   enums.CommunicationDirectionOutgoing,
			Message:     message,
			Author:      actor.Name,
		}
		if err := repo.AppendCommunication(ctx, comm); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append communication")
		}

		if input.CustomerNote != nil && strings.TrimSpace(*input.CustomerNote) != "" {
			note := &models.RFQNote{
				RFQRecordID: rfq.ID,
				Kind:        enums.NoteKindCustomer,
				Message:     strings.TrimSpace(*input.CustomerNote),
				Author:      actor.Name,
			}
			if err := repo.AppendNote(ctx, note); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append customer note")
			}
		}

		return s.logActivity(ctx, repo, rfq, actor, "sent_to_customer", nil)
	})
}

func (s *service) MarkComplete(ctx context.Context, actor Actor, id uuid.UUID) (*RFQDetailDTO, error) {
	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		now := time.Now().UTC()
		rfq.Status = enums.RFQStatusCompleted
		rfq.Stage = enums.RFQStageDelivered
		rfq.DeliveredAt = &now

		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark complete")
		}

		return s.logActivity(ctx, repo, rfq, actor, "completed", nil)
	})
}

func (s *service) UpdateUrgency(ctx context.Context, actor Actor, id uuid.UUID, urgency enums.Urgency) (*RFQDetailDTO, error) {
	if !urgency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency")
	}

	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		previous := rfq.Urgency
		rfq.Urgency = urgency
		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update urgency")
		}

		details := "Changed from " + string(previous) + " to " + string(urgency)
		return s.logActivity(ctx, repo, rfq, actor, "urgency_updated", &details)
	})
}

func (s *service) UpdateConfidence(ctx context.Context, actor Actor, id uuid.UUID, confidence int) (*RFQDetailDTO, error) {
	if confidence < 0 || confidence > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "confidence must be between 0 and 100")
	}

	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		previous := rfq.Confidence
		rfq.Confidence = confidence
		if err := repo.Save(ctx, rfq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update confidence")
		}

		details := fmt.Sprintf("Changed from %d%% to %d%%", previous, confidence)
		return s.logActivity(ctx, repo, rfq, actor, "confidence_updated", &details)
	})
}

func (s *service) AddCommunication(ctx context.Context, actor Actor, id uuid.UUID, input CommunicationInput) (*RFQDetailDTO, error) {
	kind, err := enums.ParseCommunicationKind(input.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid communication kind")
	}
	direction := enums.CommunicationDirectionOutgoing
	if input.Direction != "" {
		parsed, err := enums.ParseCommunicationDirection(input.Direction)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid communication direction")
		}
		direction = parsed
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		comm := &models.RFQCommunication{
			RFQRecordID: rfq.ID,
			Kind:        kind,
			Direction:   direction,
			Message:     message,
			Author:      actor.Name,
		}
		if err := repo.AppendCommunication(ctx, comm); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append communication")
		}

		details := string(direction) + " " + string(kind)
		return s.logActivity(ctx, repo, rfq, actor, "communication_logged", &details)
	})
}

func (s *service) AddNote(ctx context.Context, actor Actor, id uuid.UUID, input NoteInput) (*RFQDetailDTO, error) {
	kind := enums.NoteKindInternal
	if input.Kind != "" {
		parsed, err := enums.ParseNoteKind(input.Kind)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid note kind")
		}
		kind = parsed
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	return s.withOwned(ctx, actor, id, func(repo *Repository, rfq *models.RFQ) error {
		note := &models.RFQNote{
			RFQRecordID: rfq.ID,
			Kind:        kind,
			Message:     message,
			Author:      actor.Name,
		}
		if err := repo.AppendNote(ctx, note); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append note")
		}

		details := "note " + string(kind)
		return s.logActivity(ctx, repo, rfq, actor, "note_added", &details)
	})
}

// ListActivities is read-only and does not log a "viewed" entry.
func (s *service) ListActivities(ctx context.Context, actor Actor, id uuid.UUID) (*ActivityLogDTO, error) {
	repo := NewRepository(s.db.DB())
	rfq, err := s.loadOwned(ctx, repo, id, actor)
	if err != nil {
		return nil, err
	}

	rows, err := repo.ListActivities(ctx, rfq.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list activities")
	}

	entries := make([]ActivityDTO, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, activityFromModel(row))
	}
	return &ActivityLogDTO{
		RFQID:        rfq.RFQID,
		CustomerName: rfq.CustomerName,
		PartNumber:   rfq.PartNumber,
		ActivityLog:  entries,
	}, nil
}

// Stats aggregates the caller's own RFQ set. Read-only.
func (s *service) Stats(ctx context.Context, actor Actor) (*Stats, error) {
	repo := NewRepository(s.db.DB())
	rows, err := repo.List(ctx, actor.ID, ListFilters{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rfqs for stats")
	}
	stats := computeStats(rows)
	return &stats, nil
}

// Overview aggregates across all sales users plus a per-owner breakdown.
func (s *service) Overview(ctx context.Context) (*ManagerOverview, error) {
	repo := NewRepository(s.db.DB())
	rows, err := repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rfqs for overview")
	}

	ownerIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for i := range rows {
		if !seen[rows[i].SalesUserID] {
			seen[rows[i].SalesUserID] = true
			ownerIDs = append(ownerIDs, rows[i].SalesUserID)
		}
	}
	names, err := repo.UserNames(ctx, ownerIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve owner names")
	}

	return &ManagerOverview{
		Stats:         computeStats(rows),
		BySalesperson: computeBreakdown(rows, names),
	}, nil
}

// withOwned runs fn inside a transaction after the ownership check and
// returns the refreshed detail DTO.
func (s *service) withOwned(ctx context.Context, actor Actor, id uuid.UUID, fn func(repo *Repository, rfq *models.RFQ) error) (*RFQDetailDTO, error) {
	var result *RFQDetailDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		rfq, err := s.loadOwned(ctx, repo, id, actor)
		if err != nil {
			return err
		}
		if err := fn(repo, rfq); err != nil {
			return err
		}
		result, err = s.loadDetail(ctx, repo, rfq.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadOwned is the single ownership gate used by every single-record
// operation. A mismatched owner fails before any state change.
func (s *service) loadOwned(ctx context.Context, repo *Repository, id uuid.UUID, actor Actor) (*models.RFQ, error) {
	rfq, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rfq not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rfq")
	}
	if rfq.SalesUserID != actor.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "rfq belongs to another sales user")
	}
	return rfq, nil
}

func (s *service) loadDetail(ctx context.Context, repo *Repository, id uuid.UUID) (*RFQDetailDTO, error) {
	full, err := repo.FindByIDWithChildren(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload rfq")
	}
	counts, err := repo.ChildCountsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count children")
	}
	return detailFromModel(full, counts[id]), nil
}

func (s *service) summarize(ctx context.Context, repo *Repository, rows []models.RFQ) ([]RFQSummaryDTO, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	counts, err := repo.ChildCountsFor(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count children")
	}

	out := make([]RFQSummaryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, summaryFromModel(&rows[i], counts[rows[i].ID]))
	}
	return out, nil
}

// recomputeCustomerQuote refreshes the derived price whenever an input
// changes. Delivery state survives recomputation.
func (s *service) recomputeCustomerQuote(rfq *models.RFQ) {
	if rfq.SupplierQuote == nil {
		return
	}
	quote := pricing.FinalFromFloat(*rfq.SupplierQuote, rfq.Margin, rfq.Quantity)
	rfq.CustomerQuote.PerUnit = quote.PerUnit
	rfq.CustomerQuote.Total = quote.Total
}

func (s *service) logActivity(ctx context.Context, repo *Repository, rfq *models.RFQ, actor Actor, action string, details *string) error {
	entry := &models.RFQActivity{
		RFQRecordID:  rfq.ID,
		Author:       actor.Name,
		Action:       action,
		Details:      details,
		CustomerName: rfq.CustomerName,
		PartNumber:   rfq.PartNumber,
	}
	if err := repo.AppendActivity(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append activity")
	}
	return nil
}

func (s *service) displayID(number int64) string {
	return fmt.Sprintf("%s-%0*d", s.cfg.DisplayIDPrefix, s.cfg.DisplayIDPad, number)
}
