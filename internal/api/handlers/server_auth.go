package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bricktickler.io/dossier/internal/api/middleware"
	apperrors "bricktickler.io/dossier/internal/pkg/errors"
	"bricktickler.io/dossier/internal/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login. Valid manager credentials yield an
// HS256 session token carrying the manager role that the review
// endpoints require.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "invalid login request", http.StatusBadRequest))
		return
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.managerUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.managerPasswordHash, []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		logger.Warn("Login rejected", zap.String("username", req.Username))
		_ = c.Error(apperrors.Unauthorized(apperrors.CodeAuthFailed, "invalid credentials"))
		return
	}

	token, expiresAt, err := middleware.GenerateToken(s.jwtCfg, req.Username, req.Username, []string{middleware.RoleManager})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}
