package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/api/middleware"
	"github.com/quoteline/rfqtracker-backend/api/responses"
	"github.com/quoteline/rfqtracker-backend/api/validators"
	"github.com/quoteline/rfqtracker-backend/internal/rfqs"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
	pkgerrors "github.com/quoteline/rfqtracker-backend/pkg/errors"
	"github.com/quoteline/rfqtracker-backend/pkg/logger"
	"github.com/quoteline/rfqtracker-backend/pkg/pagination"
)

type marginRequest struct {
	Margin float64 `json:"margin" validate:"min=0"`
}

type stageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

type urgencyRequest struct {
	Urgency string `json:"urgency" validate:"required,oneof=low medium high urgent"`
}

type confidenceRequest struct {
	Confidence int `json:"confidence" validate:"min=0,max=100"`
}

func actorOrErr(r *http.Request) (rfqs.Actor, error) {
	actor := middleware.ActorFromContext(r.Context())
	if actor.ID == uuid.Nil {
		return rfqs.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return actor, nil
}

// CreateRFQ opens a new request for quote owned by the caller.
func CreateRFQ(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorOrErr(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rfqs.CreateRFQInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.Create(r.Context(), actor, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rfq)
	}
}

// ListRFQs returns the caller's RFQs with the basic filter knobs,
// bundled with their pipeline stats and identity.
func ListRFQs(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorOrErr(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := listFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), actor, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// stats cover the caller's whole set, not the filtered slice
		stats, err := svc.Stats(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfqs.RFQListDTO{
			RFQs:  rows,
			Stats: *stats,
			User:  rfqs.ActorDTO{ID: actor.ID, Name: actor.Name, Role: actor.Role},
		})
	}
}

// GetRFQ loads a single RFQ and records a viewed audit entry.
func GetRFQ(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// UpdateRFQ applies the generic mutable-field update.
func UpdateRFQ(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rfqs.UpdateRFQInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.Update(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// DeleteRFQ removes the RFQ and its children.
func DeleteRFQ(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "rfq deleted")
	}
}

// UpdateSupplierQuote records the supplier price and derives the
// customer quote.
func UpdateSupplierQuote(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rfqs.SupplierQuoteInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.RecordSupplierQuote(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// UpdateMargin sets the margin percent and recomputes the quote.
func UpdateMargin(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body marginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.UpdateMargin(r.Context(), actor, id, body.Margin)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// UpdateStage moves the RFQ along the fulfillment pipeline.
func UpdateStage(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body stageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stage, err := enums.ParseRFQStage(body.Stage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage"))
			return
		}

		rfq, err := svc.UpdateStage(r.Context(), actor, id, stage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// UpdateUrgency sets the urgency flag.
func UpdateUrgency(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body urgencyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.UpdateUrgency(r.Context(), actor, id, enums.Urgency(body.Urgency))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// UpdateConfidence sets the win-confidence score.
func UpdateConfidence(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body confidenceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.UpdateConfidence(r.Context(), actor, id, body.Confidence)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// CompleteRFQ closes out the RFQ as delivered.
func CompleteRFQ(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.MarkComplete(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// SendToCustomer marks the derived quote as sent and logs the outgoing
// email.
func SendToCustomer(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rfqs.SendToCustomerInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.SendToCustomer(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rfq)
	}
}

// AddCommunication logs a customer or supplier touchpoint.
func AddCommunication(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rfqs.CommunicationInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.AddCommunication(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rfq)
	}
}

// AddNote appends a free-form note.
func AddNote(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rfqs.NoteInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rfq, err := svc.AddNote(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rfq)
	}
}

// ListActivity returns the RFQ's audit trail, newest first.
func ListActivity(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, err := actorAndID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		log, err := svc.ListActivities(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, log)
	}
}

// RFQStats aggregates the caller's pipeline.
func RFQStats(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorOrErr(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

// ListByStage returns the caller's RFQs currently at one pipeline stage.
func ListByStage(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorOrErr(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stage, err := enums.ParseRFQStage(chi.URLParam(r, "stage"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage"))
			return
		}

		result, err := svc.ListByStage(r.Context(), actor, stage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdvancedSearch exposes the full filter surface as query parameters.
func AdvancedSearch(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorOrErr(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := advancedFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), actor, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// ManagerOverview aggregates across every sales user.
func ManagerOverview(svc rfqs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}

func actorAndID(r *http.Request) (rfqs.Actor, uuid.UUID, error) {
	actor, err := actorOrErr(r)
	if err != nil {
		return rfqs.Actor{}, uuid.Nil, err
	}
	id, err := validators.PathUUID(r, "id")
	if err != nil {
		return rfqs.Actor{}, uuid.Nil, err
	}
	return actor, id, nil
}

func listFiltersFromQuery(r *http.Request) (rfqs.ListFilters, error) {
	filters := rfqs.ListFilters{
		Search:  validators.SanitizeString(r.URL.Query().Get("search"), 200),
		SortBy:  r.URL.Query().Get("sort_by"),
		SortDir: r.URL.Query().Get("sort_dir"),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := enums.ParseRFQStatus(raw)
		if err != nil {
			return rfqs.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("stage"); raw != "" {
		stage, err := enums.ParseRFQStage(raw)
		if err != nil {
			return rfqs.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage")
		}
		filters.Stage = &stage
	}
	if raw := r.URL.Query().Get("urgency"); raw != "" {
		urgency, err := enums.ParseUrgency(raw)
		if err != nil {
			return rfqs.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency")
		}
		filters.Urgency = &urgency
	}

	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return rfqs.ListFilters{}, err
	}
	filters.Limit = limit

	return filters, nil
}

func advancedFiltersFromQuery(r *http.Request) (rfqs.ListFilters, error) {
	filters, err := listFiltersFromQuery(r)
	if err != nil {
		return rfqs.ListFilters{}, err
	}

	if raw := r.URL.Query().Get("confidence_band"); raw != "" {
		band, err := enums.ParseConfidenceBand(raw)
		if err != nil {
			return rfqs.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid confidence band")
		}
		filters.ConfidenceBand = &band
	}

	if filters.DateFrom, err = validators.OptionalQueryDate(r, "date_from"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.DateTo, err = validators.OptionalQueryDate(r, "date_to"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.QuantityMin, err = validators.OptionalQueryInt(r, "quantity_min"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.QuantityMax, err = validators.OptionalQueryInt(r, "quantity_max"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.MarginMin, err = validators.OptionalQueryFloat(r, "margin_min"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.MarginMax, err = validators.OptionalQueryFloat(r, "margin_max"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.ConfidenceMin, err = validators.OptionalQueryInt(r, "confidence_min"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.ConfidenceMax, err = validators.OptionalQueryInt(r, "confidence_max"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.HasSupplier, err = validators.OptionalQueryBool(r, "has_supplier_quote"); err != nil {
		return rfqs.ListFilters{}, err
	}
	if filters.HasCustomer, err = validators.OptionalQueryBool(r, "has_customer_quote"); err != nil {
		return rfqs.ListFilters{}, err
	}

	return filters, nil
}
