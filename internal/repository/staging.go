// Package repository provides read access to the staging store and the
// event trail. State-changing SQL lives with the atomic writers in the
// usecase package.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricktickler.io/dossier/internal/domain"
	apperrors "bricktickler.io/dossier/internal/pkg/errors"
)

// stagingColumns is the scan order used by every staging query.
const stagingColumns = `
	id, idempotency_key, external_ref,
	builder_id, builder_name, org_id,
	location_label, latitude, longitude,
	built_at, cured_at, installed_at,
	status, review_status, reviewer_id, reviewer_name, reviewed_at,
	co2_offset_lbs, volume_ft3, height_in, total_cost_usd,
	method, core_fill, structure_notes, materials, batches,
	photo_urls, doc_urls, signature, qr_slug,
	created_at, updated_at`

// StagingRepository reads staging records and their events.
type StagingRepository struct {
	pool *pgxpool.Pool
}

// NewStagingRepository creates a repository over the shared pool.
func NewStagingRepository(pool *pgxpool.Pool) *StagingRepository {
	return &StagingRepository{pool: pool}
}

// Get returns one staging record by id.
func (r *StagingRepository) Get(ctx context.Context, id uuid.UUID) (*domain.StagingRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+stagingColumns+` FROM exo_blocks_staging WHERE id = $1`, id)
	rec, err := scanStagingRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBlockNotFoundf(id.String())
		}
		return nil, fmt.Errorf("get staging record %s: %w", id, err)
	}
	return rec, nil
}

// List returns one page of staging records ordered by creation time
// descending, plus the total count under the same filter.
func (r *StagingRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.StagingRecord, int, error) {
	filter.Normalize()

	where := "1=1"
	args := []any{}
	if filter.ReviewStatus != nil {
		args = append(args, *filter.ReviewStatus)
		where += fmt.Sprintf(" AND review_status = $%d", len(args))
	}
	if filter.ExternalRef != "" {
		args = append(args, filter.ExternalRef)
		where += fmt.Sprintf(" AND external_ref ILIKE '%%' || $%d || '%%'", len(args))
	}

	var total int
	countQuery := "SELECT count(*) FROM exo_blocks_staging WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count staging records: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM exo_blocks_staging WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		stagingColumns, where, len(args)-1, len(args),
	)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list staging records: %w", err)
	}
	defer rows.Close()

	records, err := collectStagingRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListApproved returns every approved staging record ordered by review
// time descending, for export.
func (r *StagingRepository) ListApproved(ctx context.Context) ([]domain.StagingRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+stagingColumns+` FROM exo_blocks_staging
		 WHERE review_status = $1 ORDER BY reviewed_at DESC`,
		domain.ReviewApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved records: %w", err)
	}
	defer rows.Close()
	return collectStagingRecords(rows)
}

// EventsForBlock returns the audit trail for one block in chronological
// order.
func (r *StagingRepository) EventsForBlock(ctx context.Context, blockID uuid.UUID) ([]domain.BlockEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, block_id, table_name, event_type, payload, created_at
		 FROM exo_block_events WHERE block_id = $1 ORDER BY created_at ASC`,
		blockID)
	if err != nil {
		return nil, fmt.Errorf("list events for block %s: %w", blockID, err)
	}
	defer rows.Close()

	events := []domain.BlockEvent{}
	for rows.Next() {
		var ev domain.BlockEvent
		if err := rows.Scan(&ev.ID, &ev.BlockID, &ev.TableName, &ev.EventType, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}

func collectStagingRecords(rows pgx.Rows) ([]domain.StagingRecord, error) {
	records := []domain.StagingRecord{}
	for rows.Next() {
		rec, err := scanStagingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staging row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staging rows: %w", err)
	}
	return records, nil
}

func scanStagingRecord(row pgx.Row) (*domain.StagingRecord, error) {
	var rec domain.StagingRecord
	err := row.Scan(
		&rec.ID, &rec.IdempotencyKey, &rec.ExternalRef,
		&rec.BuilderID, &rec.BuilderName, &rec.OrgID,
		&rec.LocationLabel, &rec.Latitude, &rec.Longitude,
		&rec.BuiltAt, &rec.CuredAt, &rec.InstalledAt,
		&rec.Status, &rec.ReviewStatus, &rec.ReviewerID, &rec.ReviewerName, &rec.ReviewedAt,
		&rec.CO2OffsetLbs, &rec.VolumeFt3, &rec.HeightIn, &rec.TotalCostUSD,
		&rec.Method, &rec.CoreFill, &rec.StructureNotes, &rec.Materials, &rec.Batches,
		&rec.PhotoURLs, &rec.DocURLs, &rec.Signature, &rec.QRSlug,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
