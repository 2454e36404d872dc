package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bricktickler.io/dossier/internal/api/middleware"
	"bricktickler.io/dossier/internal/domain"
	apperrors "bricktickler.io/dossier/internal/pkg/errors"
	"bricktickler.io/dossier/internal/pkg/logger"
)

// reviewRequest is the PATCH /exo/staging/:id body. The action set is a
// closed enumeration; anything else fails binding before it reaches the
// review writer.
type reviewRequest struct {
	Action       domain.ReviewAction `json:"action" binding:"required,oneof=APPROVE REJECT MARK_CURED"`
	ReviewerID   *uuid.UUID          `json:"reviewer_id"`
	ReviewerName *string             `json:"reviewer_name"`
}

// ReviewBlock handles PATCH /exo/staging/:id. Approve promotes the
// record into the canonical table; reject and mark-cured update the
// staging row only. Every action appends one audit event.
func (s *Server) ReviewBlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequestField, "invalid block id"))
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "invalid review request", http.StatusBadRequest))
		return
	}

	reviewer := domain.Reviewer{ID: req.ReviewerID, Name: req.ReviewerName}
	ctx := c.Request.Context()

	var state string
	switch req.Action {
	case domain.ActionReject:
		state, err = s.review.Reject(ctx, id, reviewer)
	case domain.ActionMarkCured:
		state, err = s.review.MarkCured(ctx, id, reviewer)
	case domain.ActionApprove:
		state, err = s.review.Approve(ctx, id, reviewer)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.Info("Staging record reviewed",
		zap.String("block_id", id.String()),
		zap.String("action", string(req.Action)),
		zap.String("state", state),
		zap.String("reviewer", middleware.GetUsername(ctx)),
	)
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": state})
}
