// Package domain defines the exo block model shared by intake, review,
// and export: staged records, canonical records, lifecycle events, and
// the wire payload builders submit.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the manager workflow state of a staged block.
// PENDING is the only state with outgoing transitions; APPROVED and
// REJECTED are terminal for the review dimension.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// BlockStatus is the physical cure lifecycle of a block. It is orthogonal
// to ReviewStatus and may change while review is still pending.
type BlockStatus string

const (
	StatusPoured    BlockStatus = "poured"
	StatusCuring    BlockStatus = "curing"
	StatusCured     BlockStatus = "cured"
	StatusInstalled BlockStatus = "installed"
	StatusDamaged   BlockStatus = "damaged"
	StatusRetired   BlockStatus = "retired"
)

// ReviewAction is a manager decision applied to a staged block.
type ReviewAction string

const (
	ActionApprove   ReviewAction = "APPROVE"
	ActionReject    ReviewAction = "REJECT"
	ActionMarkCured ReviewAction = "MARK_CURED"
)

// EventType discriminates lifecycle events in the audit trail.
type EventType string

const (
	EventIngest       EventType = "INGEST"
	EventReject       EventType = "REJECT"
	EventStatusChange EventType = "STATUS_CHANGE"
	EventApprove      EventType = "APPROVE"
)

// Event table tags. Promotion events are recorded against the final
// table; everything else against staging.
const (
	EventTableStaging = "staging"
	EventTableFinal   = "final"
)

// StagingRecord is one builder submission held for review. The canonical
// table shares the same column set minus the idempotency and review
// fields; promotion copies a StagingRecord verbatim.
type StagingRecord struct {
	ID             uuid.UUID
	IdempotencyKey string
	ExternalRef    *string

	BuilderID   *uuid.UUID
	BuilderName string
	OrgID       *uuid.UUID

	LocationLabel *string
	Latitude      *float64
	Longitude     *float64

	BuiltAt     time.Time
	CuredAt     *time.Time
	InstalledAt *time.Time

	Status BlockStatus

	ReviewStatus ReviewStatus
	ReviewerID   *uuid.UUID
	ReviewerName *string
	ReviewedAt   *time.Time

	CO2OffsetLbs float64
	VolumeFt3    *float64
	HeightIn     *float64
	TotalCostUSD *float64

	Method         *string
	CoreFill       json.RawMessage
	StructureNotes *string
	Materials      json.RawMessage
	Batches        json.RawMessage

	PhotoURLs json.RawMessage
	DocURLs   json.RawMessage

	Signature *string
	QRSlug    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockEvent is one append-only audit entry. Events reference a block by
// id but do not own it; they are never mutated or deleted.
type BlockEvent struct {
	ID        uuid.UUID       `json:"id"`
	BlockID   uuid.UUID       `json:"block_id"`
	TableName string          `json:"table_name"`
	EventType EventType       `json:"event_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Reviewer identifies the manager applying a review action. Both fields
// are optional on the wire and stamped onto the record as given.
type Reviewer struct {
	ID   *uuid.UUID
	Name *string
}

// WirePayload projects a staging record back into the intake wire shape.
// Opaque JSON columns pass through as structured values, so an exported
// item re-submitted to intake parses as a valid payload again.
func (r *StagingRecord) WirePayload() ExoPayload {
	p := ExoPayload{
		IdempotencyKey: r.IdempotencyKey,
		ExternalRef:    r.ExternalRef,
		Builder: Builder{
			ID:    r.BuilderID,
			Name:  r.BuilderName,
			OrgID: r.OrgID,
		},
		Location: &Location{
			Label:     r.LocationLabel,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		Timestamps: Timestamps{
			BuiltAt:     r.BuiltAt,
			CuredAt:     r.CuredAt,
			InstalledAt: r.InstalledAt,
		},
		Status: r.Status,
		Metrics: &Metrics{
			CO2OffsetLbs: r.CO2OffsetLbs,
			VolumeFt3:    r.VolumeFt3,
			HeightIn:     r.HeightIn,
			TotalCostUSD: r.TotalCostUSD,
		},
		Method:         r.Method,
		CoreFill:       r.CoreFill,
		StructureNotes: r.StructureNotes,
		Batches:        r.Batches,
		Signature:      r.Signature,
		QRSlug:         r.QRSlug,
	}

	if len(r.Materials) > 0 {
		// Materials round-trips through its structured form; a staging
		// row always carries it because intake requires it.
		_ = json.Unmarshal(r.Materials, &p.Materials)
	}

	media := Media{}
	if len(r.PhotoURLs) > 0 {
		_ = json.Unmarshal(r.PhotoURLs, &media.PhotoURLs)
	}
	if len(r.DocURLs) > 0 {
		_ = json.Unmarshal(r.DocURLs, &media.DocURLs)
	}
	if media.PhotoURLs != nil || media.DocURLs != nil {
		p.Media = &media
	}

	return p
}
