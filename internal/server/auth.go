package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type verifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) VerifyCredentials(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.authSvc.Verify(c.Request.Context(), req.Username, req.Password); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"verified": true}})
}

type changePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.authSvc.ChangePassword(c.Request.Context(), req.Username, req.CurrentPassword, req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"changed": true}})
}
