package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bricktickler.io/dossier/internal/api/middleware"
	"bricktickler.io/dossier/internal/domain"
	"bricktickler.io/dossier/internal/pkg/logger"
)

var loggerOnce sync.Once

const testIntakeSecret = "test-intake-secret"

// fakeIntake records the batches it receives.
type fakeIntake struct {
	calls   int
	items   []domain.ExoPayload
	created []uuid.UUID
	err     error
}

func (f *fakeIntake) IngestBatch(_ context.Context, items []domain.ExoPayload) ([]uuid.UUID, error) {
	f.calls++
	f.items = items
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

// fakeReview records the last action applied.
type fakeReview struct {
	lastAction string
	lastID     uuid.UUID
	state      string
	err        error
}

func (f *fakeReview) Approve(_ context.Context, id uuid.UUID, _ domain.Reviewer) (string, error) {
	f.lastAction, f.lastID = "APPROVE", id
	return f.state, f.err
}

func (f *fakeReview) Reject(_ context.Context, id uuid.UUID, _ domain.Reviewer) (string, error) {
	f.lastAction, f.lastID = "REJECT", id
	return f.state, f.err
}

func (f *fakeReview) MarkCured(_ context.Context, id uuid.UUID, _ domain.Reviewer) (string, error) {
	f.lastAction, f.lastID = "MARK_CURED", id
	return f.state, f.err
}

// fakeStaging serves canned records.
type fakeStaging struct {
	records    []domain.StagingRecord
	events     []domain.BlockEvent
	lastFilter domain.ListFilter
	getErr     error
}

func (f *fakeStaging) Get(_ context.Context, id uuid.UUID) (*domain.StagingRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, f.getErr
}

func (f *fakeStaging) List(_ context.Context, filter domain.ListFilter) ([]domain.StagingRecord, int, error) {
	f.lastFilter = filter
	return f.records, len(f.records), nil
}

func (f *fakeStaging) ListApproved(_ context.Context) ([]domain.StagingRecord, error) {
	return f.records, nil
}

func (f *fakeStaging) EventsForBlock(_ context.Context, _ uuid.UUID) ([]domain.BlockEvent, error) {
	return f.events, nil
}

// newTestRouter mounts the handler routes the way the application router
// does, minus auth, so each handler is exercised behind ErrorHandler.
func newTestRouter(s *Server) *gin.Engine {
	loggerOnce.Do(func() { _ = logger.Init("error", "json") })
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/exo/intake", s.IntakeBlocks)
	r.GET("/exo/staging", s.ListStaging)
	r.GET("/exo/staging/export", s.ExportApproved)
	r.PATCH("/exo/staging/:id", s.ReviewBlock)
	r.GET("/exo/staging/:id/events", s.ListBlockEvents)
	r.POST("/auth/login", s.Login)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

// validItemJSON is a minimal payload that passes intake validation.
func validItemJSON(idemKey string) string {
	return `{
		"idempotency_key": "` + idemKey + `",
		"external_ref": "EXO-TEST-001",
		"builder": {"name": "Mud Dauber Crew"},
		"timestamps": {"built_at": "2026-05-01T12:00:00Z"},
		"status": "poured",
		"metrics": {"co2_offset_lbs": 120.5},
		"materials": {
			"straw_bales": 4, "straw_ft3": 32.0,
			"hemp_hurd_bags": 2, "hemp_hurd_ft3": 8.0,
			"rubber_mulch_bags": 1, "rubber_mulch_ft3": 4.0,
			"mycelium_blocks": 0, "mycelium_ft3": 0,
			"type_s_lime_bags": 3, "type_s_lime_ft3": 6.0,
			"water_gal": 40.0,
			"rebar": {"count": 6, "gauge": "#4"}
		}
	}`
}

func sampleApprovedRecord(id uuid.UUID) domain.StagingRecord {
	ref := "EXO-EXPORT-7"
	method := "hand-packed"
	built := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
	reviewed := time.Date(2026, 4, 10, 16, 30, 0, 0, time.UTC)
	name := "site-manager"
	return domain.StagingRecord{
		ID:             id,
		IdempotencyKey: "export-" + id.String(),
		ExternalRef:    &ref,
		BuilderName:    "Mud Dauber Crew",
		BuiltAt:        built,
		Status:         domain.StatusCured,
		ReviewStatus:   domain.ReviewApproved,
		ReviewerName:   &name,
		ReviewedAt:     &reviewed,
		CO2OffsetLbs:   88,
		Method:         &method,
		CoreFill:       []byte(`{"type":"rubble","depth_in":12}`),
		Materials: []byte(`{"straw_bales":4,"straw_ft3":32,"hemp_hurd_bags":2,"hemp_hurd_ft3":8,` +
			`"rubber_mulch_bags":1,"rubber_mulch_ft3":4,"mycelium_blocks":0,"mycelium_ft3":0,` +
			`"type_s_lime_bags":3,"type_s_lime_ft3":6,"water_gal":40,"rebar":{"count":6,"gauge":"#4"}}`),
		PhotoURLs: []byte(`["https://cdn.example.com/p1.jpg"]`),
		CreatedAt: built,
		UpdatedAt: reviewed,
	}
}
