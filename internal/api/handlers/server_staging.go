package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bricktickler.io/dossier/internal/domain"
	apperrors "bricktickler.io/dossier/internal/pkg/errors"
)

// ListStaging handles GET /exo/staging. Filters by review_status (exact)
// and external_ref (case-insensitive substring); paginates with
// limit/offset; the total is computed under the same filter regardless
// of the page.
func (s *Server) ListStaging(c *gin.Context) {
	filter := domain.ListFilter{
		ExternalRef: c.Query("external_ref"),
	}

	if rs := c.Query("review_status"); rs != "" {
		status := domain.ReviewStatus(rs)
		switch status {
		case domain.ReviewPending, domain.ReviewApproved, domain.ReviewRejected:
			filter.ReviewStatus = &status
		default:
			_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequestField, "invalid review_status"))
			return
		}
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit", domain.DefaultListLimit); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequestField, "invalid limit"))
		return
	}
	if filter.Offset, err = queryInt(c, "offset", 0); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequestField, "invalid offset"))
		return
	}
	filter.Normalize()

	records, total, err := s.staging.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]StagingItem, 0, len(records))
	for i := range records {
		items = append(items, stagingItemToAPI(&records[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
		"items":  items,
	})
}

// ListBlockEvents handles GET /exo/staging/:id/events — the audit trail
// of one staging record in chronological order.
func (s *Server) ListBlockEvents(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequestField, "invalid block id"))
		return
	}

	if _, err := s.staging.Get(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	events, err := s.staging.EventsForBlock(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": events})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
