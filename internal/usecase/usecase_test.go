package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bricktickler.io/dossier/internal/domain"
)

func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string   { return &v }

// testPayload builds a valid submission with the given idempotency key
// and external ref (empty ref means none).
func testPayload(key, ref string) domain.ExoPayload {
	p := domain.ExoPayload{
		IdempotencyKey: key,
		Builder:        domain.Builder{Name: "Mud Dauber Crew"},
		Timestamps: domain.Timestamps{
			BuiltAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		Status:  domain.StatusPoured,
		Metrics: &domain.Metrics{CO2OffsetLbs: 120.5, VolumeFt3: f64Ptr(18)},
		Materials: domain.Materials{
			StrawBales:      intPtr(4),
			StrawFt3:        f64Ptr(32),
			HempHurdBags:    intPtr(2),
			HempHurdFt3:     f64Ptr(8),
			RubberMulchBags: intPtr(1),
			RubberMulchFt3:  f64Ptr(4),
			MyceliumBlocks:  intPtr(0),
			MyceliumFt3:     f64Ptr(0),
			TypeSLimeBags:   intPtr(3),
			TypeSLimeFt3:    f64Ptr(6),
			WaterGal:        f64Ptr(40),
			Rebar:           json.RawMessage(`{"count":6,"gauge":"#4"}`),
		},
		CoreFill: json.RawMessage(`{"type":"rubble","depth_in":12}`),
		Media: &domain.Media{
			PhotoURLs: []string{"https://cdn.example.com/p1.jpg"},
		},
	}
	if ref != "" {
		p.ExternalRef = strPtr(ref)
	}
	return p
}

func testReviewer() domain.Reviewer {
	id := uuid.New()
	return domain.Reviewer{ID: &id, Name: strPtr("site-manager")}
}
