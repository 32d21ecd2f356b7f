package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/api/middleware"
	"github.com/quoteline/rfqtracker-backend/internal/rfqs"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
	pkgerrors "github.com/quoteline/rfqtracker-backend/pkg/errors"
)

type stubRFQService struct {
	detail      *rfqs.RFQDetailDTO
	list        []rfqs.RFQSummaryDTO
	activityLog *rfqs.ActivityLogDTO
	stats       *rfqs.Stats
	overview    *rfqs.ManagerOverview
	err         error
	lastActor   rfqs.Actor
	lastFilters rfqs.ListFilters
	lastStage   enums.RFQStage
	lastQuote   rfqs.SupplierQuoteInput
	lastComm    rfqs.CommunicationInput
}

func (s *stubRFQService) Create(ctx context.Context, actor rfqs.Actor, input rfqs.CreateRFQInput) (*rfqs.RFQDetailDTO, error) {
	s.lastActor = actor
	return s.detail, s.err
}

func (s *stubRFQService) Get(ctx context.Context, actor rfqs.Actor, id uuid.UUID) (*rfqs.RFQDetailDTO, error) {
	s.lastActor = actor
	return s.detail, s.err
}

func (s *stubRFQService) List(ctx context.Context, actor rfqs.Actor, filters rfqs.ListFilters) ([]rfqs.RFQSummaryDTO, error) {
	s.lastActor = actor
	s.lastFilters = filters
	return s.list, s.err
}

func (s *stubRFQService) ListByStage(ctx context.Context, actor rfqs.Actor, stage enums.RFQStage) (*rfqs.StageListDTO, error) {
	s.lastActor = actor
	s.lastStage = stage
	if s.err != nil {
		return nil, s.err
	}
	return &rfqs.StageListDTO{RFQs: s.list, Stage: stage, Count: len(s.list)}, nil
}

func (s *stubRFQService) Update(ctx context.Context, actor rfqs.Actor, id uuid.UUID, input rfqs.UpdateRFQInput) (*rfqs.RFQDetailDTO, error) {
	return s.detail, s.err
}

func (s *stubRFQService) Delete(ctx context.Context, actor rfqs.Actor, id uuid.UUID) error {
	return s.err
}

func (s *stubRFQService) RecordSupplierQuote(ctx context.Context, actor rfqs.Actor, id uuid.UUID, input rfqs.SupplierQuoteInput) (*rfqs.RFQDetailDTO, error) {
	s.lastQuote = input
	return s.detail, s.err
}

func (s *stubRFQService) UpdateMargin(ctx context.Context, actor rfqs.Actor, id uuid.UUID, margin float64) (*rfqs.RFQDetailDTO, error) {
	return s.detail, s.err
}

func (s *stubRFQService) UpdateStage(ctx context.Context, actor rfqs.Actor, id uuid.UUID, stage enums.RFQStage) (*rfqs.RFQDetailDTO, error) {
	s.lastStage = stage
	return s.detail, s.err
}

func (s *stubRFQService) SendToCustomer(ctx context.Context, actor rfqs.Actor, id uuid.UUID, input rfqs.SendToCustomerInput) (*rfqs.RFQDetailDTO, error) {
	return s.detail, s.err
}

func (s *stubRFQService) MarkComplete(ctx context.Context, actor rfqs.Actor, id uuid.UUID) (*rfqs.RFQDetailDTO, error) {
	return s.detail, s.err
}

func (s *stubRFQService) UpdateUrgency(ctx context.Context, actor rfqs.Actor, id uuid.UUID, urgency enums.Urgency) (*rfqs.RFQDetailDTO, error) {
	return s.detail, s.err
}

func (s *stubRFQService) UpdateConfidence(ctx context.Context, actor rfqs.Actor, id uuid.UUID, confidence int) (*rfqs.RFQDetailDTO, error) {
	return s.detail, s.err
}

func (s *stubRFQService) AddCommunication(ctx context.Context, actor rfqs.Actor, id uuid.UUID, input rfqs.CommunicationInput) (*rfqs.RFQDetailDTO, error) {
	s.lastComm = input
	return s.detail, s.err
}

func (s *stubRFQService) AddNote(ctx context.Context, actor rfqs.Actor, id uuid.UUID, input rfqs.NoteInput) (*rfqs.RFQDetailDTO, error) {
	return s.detail, s.err
}

func (s *stubRFQService) ListActivities(ctx context.Context, actor rfqs.Actor, id uuid.UUID) (*rfqs.ActivityLogDTO, error) {
	return s.activityLog, s.err
}

func (s *stubRFQService) Stats(ctx context.Context, actor rfqs.Actor) (*rfqs.Stats, error) {
	s.lastActor = actor
	if s.err != nil {
		return nil, s.err
	}
	if s.stats == nil {
		return &rfqs.Stats{}, nil
	}
	return s.stats, nil
}

func (s *stubRFQService) Overview(ctx context.Context) (*rfqs.ManagerOverview, error) {
	return s.overview, s.err
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	actor := rfqs.Actor{ID: uuid.New(), Name: "Dana", Role: enums.MemberRoleSales}
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateRFQSuccess(t *testing.T) {
	detail := &rfqs.RFQDetailDTO{}
	detail.RFQID = "RFQ-001"
	svc := &stubRFQService{detail: detail}
	handler := CreateRFQ(svc, nil)

	payload := []byte(`{
		"customer_name": "Acme Avionics",
		"customer_email": "buyer@acme.test",
		"part_number": "PCB-4417",
		"quantity": 500
	}`)
	req := authedRequest(http.MethodPost, "/api/v1/rfqs", payload)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data rfqs.RFQDetailDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RFQID != "RFQ-001" {
		t.Fatalf("expected RFQ-001 got %s", envelope.Data.RFQID)
	}
	if svc.lastActor.Name != "Dana" {
		t.Fatalf("expected actor threaded through, got %+v", svc.lastActor)
	}
}

func TestCreateRFQRejectsInvalidBody(t *testing.T) {
	handler := CreateRFQ(&stubRFQService{}, nil)

	req := authedRequest(http.MethodPost, "/api/v1/rfqs", []byte(`{"quantity": 0}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCreateRFQRequiresAuth(t *testing.T) {
	handler := CreateRFQ(&stubRFQService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rfqs", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestGetRFQForbiddenPassthrough(t *testing.T) {
	svc := &stubRFQService{err: pkgerrors.New(pkgerrors.CodeForbidden, "rfq belongs to another sales user")}
	handler := GetRFQ(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs/"+uuid.NewString(), nil)
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestGetRFQRejectsMalformedID(t *testing.T) {
	handler := GetRFQ(&stubRFQService{}, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs/not-a-uuid", nil)
	req = withURLParam(req, "id", "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestListRFQsParsesFilters(t *testing.T) {
	svc := &stubRFQService{list: []rfqs.RFQSummaryDTO{}}
	handler := ListRFQs(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs?status=new&urgency=high&search=acme&limit=25", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastFilters.Status == nil || *svc.lastFilters.Status != enums.RFQStatusNew {
		t.Fatalf("expected status filter, got %+v", svc.lastFilters)
	}
	if svc.lastFilters.Search != "acme" {
		t.Fatalf("expected search filter, got %q", svc.lastFilters.Search)
	}
	if svc.lastFilters.Limit != 25 {
		t.Fatalf("expected limit 25, got %d", svc.lastFilters.Limit)
	}
}

func TestListRFQsRejectsUnknownStatus(t *testing.T) {
	handler := ListRFQs(&stubRFQService{}, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs?status=paused", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUpdateStageParsesEnum(t *testing.T) {
	svc := &stubRFQService{detail: &rfqs.RFQDetailDTO{}}
	handler := UpdateStage(svc, nil)

	req := authedRequest(http.MethodPut, "/api/v1/rfqs/x/stage", []byte(`{"stage":"in_production"}`))
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastStage != enums.RFQStageInProduction {
		t.Fatalf("expected parsed stage, got %s", svc.lastStage)
	}
}

func TestUpdateStageRejectsUnknownStage(t *testing.T) {
	handler := UpdateStage(&stubRFQService{}, nil)

	req := authedRequest(http.MethodPut, "/api/v1/rfqs/x/stage", []byte(`{"stage":"warehouse"}`))
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestListByStageParsesPathParam(t *testing.T) {
	svc := &stubRFQService{list: []rfqs.RFQSummaryDTO{}}
	handler := ListByStage(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs/stage/shipped", nil)
	req = withURLParam(req, "stage", "shipped")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastStage != enums.RFQStageShipped {
		t.Fatalf("expected shipped stage, got %s", svc.lastStage)
	}
}

func TestAdvancedSearchParsesFullFilterSurface(t *testing.T) {
	svc := &stubRFQService{list: []rfqs.RFQSummaryDTO{}}
	handler := AdvancedSearch(svc, nil)

	req := authedRequest(http.MethodGet,
		"/api/v1/rfqs/search/advanced?confidence_band=high&quantity_min=100&margin_max=25.5&has_supplier_quote=true&date_from=2026-01-01", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	f := svc.lastFilters
	if f.ConfidenceBand == nil || *f.ConfidenceBand != enums.ConfidenceBandHigh {
		t.Fatalf("expected confidence band filter, got %+v", f)
	}
	if f.QuantityMin == nil || *f.QuantityMin != 100 {
		t.Fatalf("expected quantity_min filter, got %+v", f)
	}
	if f.MarginMax == nil || *f.MarginMax != 25.5 {
		t.Fatalf("expected margin_max filter, got %+v", f)
	}
	if f.HasSupplier == nil || !*f.HasSupplier {
		t.Fatalf("expected has_supplier_quote filter, got %+v", f)
	}
	if f.DateFrom == nil {
		t.Fatalf("expected date_from filter, got %+v", f)
	}
}

func TestManagerOverviewPassthrough(t *testing.T) {
	svc := &stubRFQService{overview: &rfqs.ManagerOverview{}}
	handler := ManagerOverview(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/manager/rfqs/overview", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestListRFQsBundlesStatsAndUser(t *testing.T) {
	svc := &stubRFQService{
		list:  []rfqs.RFQSummaryDTO{{RFQID: "RFQ-001"}},
		stats: &rfqs.Stats{Total: 4, Active: 3},
	}
	handler := ListRFQs(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data rfqs.RFQListDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.RFQs) != 1 || envelope.Data.RFQs[0].RFQID != "RFQ-001" {
		t.Fatalf("expected rfq rows, got %+v", envelope.Data.RFQs)
	}
	if envelope.Data.Stats.Total != 4 {
		t.Fatalf("expected stats bundled, got %+v", envelope.Data.Stats)
	}
	if envelope.Data.User.Name != "Dana" || envelope.Data.User.Role != enums.MemberRoleSales {
		t.Fatalf("expected caller identity bundled, got %+v", envelope.Data.User)
	}
}

func TestSupplierQuoteAcceptsNumberOrString(t *testing.T) {
	svc := &stubRFQService{detail: &rfqs.RFQDetailDTO{}}
	handler := UpdateSupplierQuote(svc, nil)

	for body, want := range map[string]rfqs.QuoteValue{
		`{"quote": 2.45}`:       "2.45",
		`{"quote": "$2.45/pc"}`: "$2.45/pc",
	} {
		req := authedRequest(http.MethodPut, "/api/v1/rfqs/x/supplier-quote", []byte(body))
		req = withURLParam(req, "id", uuid.NewString())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("body %s: expected 200 got %d: %s", body, rec.Code, rec.Body.String())
		}
		if svc.lastQuote.Quote != want {
			t.Fatalf("body %s: expected quote %q, got %q", body, want, svc.lastQuote.Quote)
		}
	}
}

func TestAddCommunicationReadsTypeField(t *testing.T) {
	svc := &stubRFQService{detail: &rfqs.RFQDetailDTO{}}
	handler := AddCommunication(svc, nil)

	req := authedRequest(http.MethodPost, "/api/v1/rfqs/x/communication",
		[]byte(`{"type":"phone","message":"customer called back"}`))
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastComm.Kind != "phone" {
		t.Fatalf("expected kind from type field, got %q", svc.lastComm.Kind)
	}
	if svc.lastComm.Direction != "" {
		t.Fatalf("expected direction left to the service default, got %q", svc.lastComm.Direction)
	}
}

func TestListByStageWrapsRowsWithCount(t *testing.T) {
	svc := &stubRFQService{list: []rfqs.RFQSummaryDTO{{RFQID: "RFQ-001"}, {RFQID: "RFQ-002"}}}
	handler := ListByStage(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs/stage/shipped", nil)
	req = withURLParam(req, "stage", "shipped")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data rfqs.StageListDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Stage != enums.RFQStageShipped {
		t.Fatalf("expected stage echoed, got %s", envelope.Data.Stage)
	}
	if envelope.Data.Count != 2 || len(envelope.Data.RFQs) != 2 {
		t.Fatalf("expected count 2, got %+v", envelope.Data)
	}
}

func TestListActivityCarriesRFQHeader(t *testing.T) {
	svc := &stubRFQService{activityLog: &rfqs.ActivityLogDTO{
		RFQID:        "RFQ-007",
		CustomerName: "Acme Avionics",
		PartNumber:   "PCB-4417",
		ActivityLog:  []rfqs.ActivityDTO{{Action: "created", FormattedTimestamp: "Jan 2, 2026 3:04 PM"}},
	}}
	handler := ListActivity(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/rfqs/x/activity", nil)
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data rfqs.ActivityLogDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RFQID != "RFQ-007" || envelope.Data.CustomerName != "Acme Avionics" || envelope.Data.PartNumber != "PCB-4417" {
		t.Fatalf("expected rfq header on activity payload, got %+v", envelope.Data)
	}
	if len(envelope.Data.ActivityLog) != 1 || envelope.Data.ActivityLog[0].FormattedTimestamp == "" {
		t.Fatalf("expected formatted entries, got %+v", envelope.Data.ActivityLog)
	}
}
