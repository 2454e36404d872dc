package handlers

import (
	"time"

	"github.com/google/uuid"

	"bricktickler.io/dossier/internal/domain"
)

// StagingItem is the listing representation of a staging record: the
// intake wire shape plus identity and review bookkeeping.
type StagingItem struct {
	ID uuid.UUID `json:"id"`
	domain.ExoPayload
	ReviewStatus domain.ReviewStatus `json:"review_status"`
	ReviewerID   *uuid.UUID          `json:"reviewer_id,omitempty"`
	ReviewerName *string             `json:"reviewer_name,omitempty"`
	ReviewedAt   *time.Time          `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func stagingItemToAPI(rec *domain.StagingRecord) StagingItem {
	return StagingItem{
		ID:           rec.ID,
		ExoPayload:   rec.WirePayload(),
		ReviewStatus: rec.ReviewStatus,
		ReviewerID:   rec.ReviewerID,
		ReviewerName: rec.ReviewerName,
		ReviewedAt:   rec.ReviewedAt,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
