package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricktickler.io/dossier/internal/domain"
	apperrors "bricktickler.io/dossier/internal/pkg/errors"
)

// ReviewWriter applies manager decisions to staging records. Each action
// runs its update and its audit event in one transaction; approval
// additionally promotes the record into the canonical table.
//
// Actions are deliberately guard-free with respect to prior review state:
// the review dimension only ever records PENDING to APPROVED or REJECTED
// transitions, and re-running APPROVE cannot create a second canonical
// row because promotion is conflict-tolerant.
type ReviewWriter struct {
	pool *pgxpool.Pool
}

// NewReviewWriter creates a review writer over the shared pool.
func NewReviewWriter(pool *pgxpool.Pool) *ReviewWriter {
	return &ReviewWriter{pool: pool}
}

// Reject marks the record REJECTED with a reviewer stamp and appends a
// REJECT event. Returns the resulting review state.
func (w *ReviewWriter) Reject(ctx context.Context, id uuid.UUID, reviewer domain.Reviewer) (string, error) {
	err := w.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE exo_blocks_staging
			 SET review_status = $2, reviewer_id = $3, reviewer_name = $4,
			     reviewed_at = now(), updated_at = now()
			 WHERE id = $1`,
			id, domain.ReviewRejected, reviewer.ID, reviewer.Name)
		if err != nil {
			return fmt.Errorf("reject block %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrBlockNotFoundf(id.String())
		}
		return appendEvent(ctx, tx, id, domain.EventTableStaging, domain.EventReject, nil)
	})
	if err != nil {
		return "", err
	}
	return string(domain.ReviewRejected), nil
}

// MarkCured advances the cure lifecycle to 'cured' and appends a
// STATUS_CHANGE event. The review state is untouched: the cure lifecycle
// is orthogonal and may move while review is still pending.
func (w *ReviewWriter) MarkCured(ctx context.Context, id uuid.UUID, reviewer domain.Reviewer) (string, error) {
	err := w.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE exo_blocks_staging
			 SET status = $2, cured_at = now(), updated_at = now()
			 WHERE id = $1`,
			id, domain.StatusCured)
		if err != nil {
			return fmt.Errorf("mark block %s cured: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrBlockNotFoundf(id.String())
		}
		return appendEvent(ctx, tx, id, domain.EventTableStaging, domain.EventStatusChange, nil)
	})
	if err != nil {
		return "", err
	}
	return string(domain.StatusCured), nil
}

// Approve promotes the record into the canonical table, marks it
// APPROVED with a reviewer stamp, and appends an APPROVE event against
// the final table. All three effects commit or none do.
//
// Promotion inserts with ON CONFLICT DO NOTHING: a canonical record with
// the same external_ref (or a re-approval of the same id) leaves the
// existing row in place — first approval wins, and the duplicate is a
// success-shaped no-op rather than an error.
func (w *ReviewWriter) Approve(ctx context.Context, id uuid.UUID, reviewer domain.Reviewer) (string, error) {
	err := w.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE exo_blocks_staging
			 SET review_status = $2, reviewer_id = $3, reviewer_name = $4,
			     reviewed_at = now(), updated_at = now()
			 WHERE id = $1`,
			id, domain.ReviewApproved, reviewer.ID, reviewer.Name)
		if err != nil {
			return fmt.Errorf("approve block %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrBlockNotFoundf(id.String())
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO exo_blocks (
				id, external_ref, builder_id, builder_name, org_id,
				location_label, latitude, longitude,
				built_at, cured_at, installed_at, status,
				co2_offset_lbs, volume_ft3, height_in, total_cost_usd,
				method, core_fill, structure_notes, materials, batches,
				photo_urls, doc_urls, signature, qr_slug,
				created_at, updated_at
			)
			SELECT
				id, external_ref, builder_id, builder_name, org_id,
				location_label, latitude, longitude,
				built_at, cured_at, installed_at, status,
				co2_offset_lbs, volume_ft3, height_in, total_cost_usd,
				method, core_fill, structure_notes, materials, batches,
				photo_urls, doc_urls, signature, qr_slug,
				now(), now()
			FROM exo_blocks_staging WHERE id = $1
			ON CONFLICT DO NOTHING`,
			id); err != nil {
			return fmt.Errorf("promote block %s: %w", id, err)
		}

		return appendEvent(ctx, tx, id, domain.EventTableFinal, domain.EventApprove, nil)
	})
	if err != nil {
		return "", err
	}
	return string(domain.ReviewApproved), nil
}

func (w *ReviewWriter) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if w.pool == nil {
		return fmt.Errorf("review writer is not initialized")
	}
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin review tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit review tx: %w", err)
	}
	return nil
}
