// Package handlers implements the HTTP surface of the dossier service:
// signed builder intake, manager staging review, and export.
package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricktickler.io/dossier/internal/api/middleware"
	"bricktickler.io/dossier/internal/domain"
)

// IntakeService stages validated submissions.
type IntakeService interface {
	IngestBatch(ctx context.Context, items []domain.ExoPayload) ([]uuid.UUID, error)
}

// ReviewService applies manager decisions to staging records.
type ReviewService interface {
	Approve(ctx context.Context, id uuid.UUID, reviewer domain.Reviewer) (string, error)
	Reject(ctx context.Context, id uuid.UUID, reviewer domain.Reviewer) (string, error)
	MarkCured(ctx context.Context, id uuid.UUID, reviewer domain.Reviewer) (string, error)
}

// StagingReader reads staging records and their audit trail.
type StagingReader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.StagingRecord, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.StagingRecord, int, error)
	ListApproved(ctx context.Context) ([]domain.StagingRecord, error)
	EventsForBlock(ctx context.Context, blockID uuid.UUID) ([]domain.BlockEvent, error)
}

// Deps carries the dependencies the server needs, injected once at
// bootstrap. Secrets are read-only after startup.
type Deps struct {
	Pool    *pgxpool.Pool
	Intake  IntakeService
	Review  ReviewService
	Staging StagingReader

	IntakeSecret        []byte
	JWT                 middleware.JWTConfig
	ManagerUsername     string
	ManagerPasswordHash []byte
}

// Server holds the handler dependencies.
type Server struct {
	pool    *pgxpool.Pool
	intake  IntakeService
	review  ReviewService
	staging StagingReader

	intakeSecret        []byte
	jwtCfg              middleware.JWTConfig
	managerUsername     string
	managerPasswordHash []byte
}

// NewServer creates the handler server.
func NewServer(d Deps) *Server {
	return &Server{
		pool:                d.Pool,
		intake:              d.Intake,
		review:              d.Review,
		staging:             d.Staging,
		intakeSecret:        d.IntakeSecret,
		jwtCfg:              d.JWT,
		managerUsername:     d.ManagerUsername,
		managerPasswordHash: d.ManagerPasswordHash,
	}
}
