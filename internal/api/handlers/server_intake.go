package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bricktickler.io/dossier/internal/domain"
	apperrors "bricktickler.io/dossier/internal/pkg/errors"
	"bricktickler.io/dossier/internal/pkg/logger"
	"bricktickler.io/dossier/internal/signature"
)

// SignatureHeader carries the builder's MAC over the raw request body.
const SignatureHeader = "X-Signature"

// IntakeBlocks handles POST /exo/intake. Builders POST signed payloads:
// one object or an array. The MAC is verified over the exact raw bytes
// before anything is parsed; validation rejects the whole batch; staging
// is idempotent on idempotency_key.
func (s *Server) IntakeBlocks(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeIntakeFailed, "read request body", http.StatusBadRequest))
		return
	}

	if !signature.Verify(raw, c.GetHeader(SignatureHeader), s.intakeSecret) {
		_ = c.Error(apperrors.ErrInvalidSignaturef())
		return
	}

	items, err := domain.ParseItems(raw)
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, err.Error(), http.StatusBadRequest))
		return
	}

	created, err := s.intake.IngestBatch(c.Request.Context(), items)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.Info("Intake batch staged",
		zap.Int("submitted", len(items)),
		zap.Int("created", len(created)),
	)
	c.JSON(http.StatusCreated, gin.H{"created": created})
}
