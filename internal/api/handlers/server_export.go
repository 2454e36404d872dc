package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bricktickler.io/dossier/internal/domain"
)

// ExportApproved handles GET /exo/staging/export. Returns every approved
// staging record as a JSON array in the intake wire shape, newest review
// first — suitable for download or re-ingestion elsewhere. Read-only.
func (s *Server) ExportApproved(c *gin.Context) {
	records, err := s.staging.ListApproved(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]domain.ExoPayload, 0, len(records))
	for i := range records {
		items = append(items, records[i].WirePayload())
	}

	c.Header("Content-Disposition", `attachment; filename="dossier_dump.json"`)
	c.JSON(http.StatusOK, items)
}
