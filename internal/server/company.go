package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	companydomain "github.com/motorbill/motorbill/internal/company/domain"
)

func (s *Server) GetCompany(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if errors.Is(err, companydomain.ErrNotFound) {
		// A fresh install has no profile yet; that is not a failure.
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCompany(c *gin.Context) {
	var req companydomain.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
