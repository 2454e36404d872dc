package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricktickler.io/dossier/internal/domain"
)

// IntakeWriter ingests validated builder submissions into the staging
// table. One transaction spans the whole batch: a failure on any item
// rolls back every insert, and retries are safe through the idempotency
// key.
type IntakeWriter struct {
	pool *pgxpool.Pool
}

// NewIntakeWriter creates an intake writer over the shared pool.
func NewIntakeWriter(pool *pgxpool.Pool) *IntakeWriter {
	return &IntakeWriter{pool: pool}
}

// IngestBatch stages each item in input order and returns the ids of the
// newly created records. An item whose idempotency key already exists is
// skipped silently: no row, no event, and no entry in the result. The
// conflict target is the unique key constraint, so two concurrent
// submissions of the same key serialize into one insert and one skip.
func (w *IntakeWriter) IngestBatch(ctx context.Context, items []domain.ExoPayload) ([]uuid.UUID, error) {
	if w.pool == nil {
		return nil, fmt.Errorf("intake writer is not initialized")
	}

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin intake tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := []uuid.UUID{}
	for i := range items {
		item := &items[i]
		id := newID()

		metrics := item.Metrics
		if metrics == nil {
			metrics = &domain.Metrics{}
		}

		var locLabel *string
		var lat, lng *float64
		if item.Location != nil {
			locLabel = item.Location.Label
			lat = item.Location.Latitude
			lng = item.Location.Longitude
		}

		materials, err := json.Marshal(item.Materials)
		if err != nil {
			return nil, fmt.Errorf("encode materials for key %q: %w", item.IdempotencyKey, err)
		}
		var photoURLs, docURLs []byte
		if item.Media != nil {
			if item.Media.PhotoURLs != nil {
				photoURLs, _ = json.Marshal(item.Media.PhotoURLs)
			}
			if item.Media.DocURLs != nil {
				docURLs, _ = json.Marshal(item.Media.DocURLs)
			}
		}

		tag, err := tx.Exec(ctx,
			`INSERT INTO exo_blocks_staging (
				id, idempotency_key, external_ref, builder_id, builder_name, org_id,
				location_label, latitude, longitude,
				built_at, cured_at, installed_at, status,
				co2_offset_lbs, volume_ft3, height_in, total_cost_usd,
				method, core_fill, structure_notes, materials, batches,
				photo_urls, doc_urls, signature, qr_slug,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9,
				$10, $11, $12, $13,
				$14, $15, $16, $17,
				$18, $19, $20, $21, $22,
				$23, $24, $25, $26,
				now(), now()
			) ON CONFLICT (idempotency_key) DO NOTHING`,
			id, item.IdempotencyKey, item.ExternalRef,
			item.Builder.ID, item.Builder.Name, item.Builder.OrgID,
			locLabel, lat, lng,
			item.Timestamps.BuiltAt, item.Timestamps.CuredAt, item.Timestamps.InstalledAt, item.Status,
			metrics.CO2OffsetLbs, metrics.VolumeFt3, metrics.HeightIn, metrics.TotalCostUSD,
			item.Method, item.CoreFill, item.StructureNotes, materials, item.Batches,
			photoURLs, docURLs, item.Signature, item.QRSlug,
		)
		if err != nil {
			return nil, fmt.Errorf("stage block for key %q: %w", item.IdempotencyKey, err)
		}
		if tag.RowsAffected() == 0 {
			// Known idempotency key: the earlier submission wins.
			continue
		}

		payload, _ := json.Marshal(map[string]domain.BlockStatus{"status": item.Status})
		if err := appendEvent(ctx, tx, id, domain.EventTableStaging, domain.EventIngest, payload); err != nil {
			return nil, err
		}
		created = append(created, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit intake tx: %w", err)
	}
	return created, nil
}
