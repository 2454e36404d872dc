package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleStagingRecord(t *testing.T) StagingRecord {
	t.Helper()

	ref := "EXO-42"
	label := "east footing"
	lat, lng := 35.08, -106.65
	vol := 9.5
	builderID := uuid.New()

	return StagingRecord{
		ID:             uuid.New(),
		IdempotencyKey: "blk-42",
		ExternalRef:    &ref,
		BuilderID:      &builderID,
		BuilderName:    "Rosa Alvarez",
		LocationLabel:  &label,
		Latitude:       &lat,
		Longitude:      &lng,
		BuiltAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:         StatusCuring,
		ReviewStatus:   ReviewApproved,
		CO2OffsetLbs:   120.5,
		VolumeFt3:      &vol,
		CoreFill:       json.RawMessage(`{"mix":"hempcrete"}`),
		Materials: json.RawMessage(`{
			"straw_bales": 2, "straw_ft3": 14.0,
			"hemp_hurd_bags": 0, "hemp_hurd_ft3": 0,
			"rubber_mulch_bags": 1, "rubber_mulch_ft3": 3.5,
			"mycelium_blocks": 0, "mycelium_ft3": 0,
			"type_s_lime_bags": 4, "type_s_lime_ft3": 6.2,
			"water_gal": 50,
			"rebar": {"count": 4}
		}`),
		Batches:   json.RawMessage(`[{"n":1}]`),
		PhotoURLs: json.RawMessage(`["https://cdn.example/p1.jpg"]`),
	}
}

func TestWirePayloadRoundTripsThroughIntakeValidation(t *testing.T) {
	t.Parallel()

	rec := sampleStagingRecord(t)
	payload := rec.WirePayload()

	// The projection must itself be a valid intake submission.
	if err := payload.Validate(); err != nil {
		t.Fatalf("exported payload fails intake validation: %v", err)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal exported payload: %v", err)
	}
	items, err := ParseItems(encoded)
	if err != nil {
		t.Fatalf("re-ingesting exported payload: %v", err)
	}
	if items[0].IdempotencyKey != rec.IdempotencyKey {
		t.Fatalf("idempotency_key = %q, want %q", items[0].IdempotencyKey, rec.IdempotencyKey)
	}
}

func TestWirePayloadEmitsStructuredOpaqueFields(t *testing.T) {
	t.Parallel()

	rec := sampleStagingRecord(t)
	encoded, err := json.Marshal(rec.WirePayload())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Opaque columns come back as JSON structures, not storage strings.
	if _, ok := decoded["core_fill"].(map[string]any); !ok {
		t.Fatalf("core_fill = %T, want object", decoded["core_fill"])
	}
	if _, ok := decoded["materials"].(map[string]any); !ok {
		t.Fatalf("materials = %T, want object", decoded["materials"])
	}
	if _, ok := decoded["batches"].([]any); !ok {
		t.Fatalf("batches = %T, want array", decoded["batches"])
	}
	media, ok := decoded["media"].(map[string]any)
	if !ok {
		t.Fatalf("media = %T, want object", decoded["media"])
	}
	if _, ok := media["photo_urls"].([]any); !ok {
		t.Fatalf("photo_urls = %T, want array", media["photo_urls"])
	}
}

func TestWirePayloadOmitsAbsentMedia(t *testing.T) {
	t.Parallel()

	rec := sampleStagingRecord(t)
	rec.PhotoURLs = nil
	rec.DocURLs = nil

	if p := rec.WirePayload(); p.Media != nil {
		t.Fatalf("media = %+v, want nil", p.Media)
	}
}
