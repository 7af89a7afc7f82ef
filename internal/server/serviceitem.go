package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	serviceitemdomain "github.com/motorbill/motorbill/internal/serviceitem/domain"
)

type serviceItemRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultPrice int64  `json:"default_price_cents"`
	Active       *bool  `json:"active"`
}

func (s *Server) CreateServiceItem(c *gin.Context) {
	var req serviceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.serviceItemSvc.Create(c.Request.Context(), serviceitemdomain.CreateServiceItemRequest{
		Name:         req.Name,
		Description:  req.Description,
		DefaultPrice: req.DefaultPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateServiceItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	var req serviceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	resp, err := s.serviceItemSvc.Update(c.Request.Context(), serviceitemdomain.UpdateServiceItemRequest{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		DefaultPrice: req.DefaultPrice,
		Active:       active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteServiceItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := s.serviceItemSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetServiceItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	resp, err := s.serviceItemSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListServiceItems(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	resp, err := s.serviceItemSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
