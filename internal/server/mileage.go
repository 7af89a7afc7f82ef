package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	mileagedomain "github.com/motorbill/motorbill/internal/mileage/domain"
)

type recordMileageRequest struct {
	Mileage    int       `json:"mileage"`
	RecordedAt time.Time `json:"recorded_at"`
	Notes      string    `json:"notes"`
}

func (s *Server) RecordMileage(c *gin.Context) {
	vehicleID, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	var req recordMileageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	recordedAt := req.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.clock.Now()
	}
	id, err := s.mileageSvc.Record(c.Request.Context(), vehicleID, req.Mileage, recordedAt, mileagedomain.SourceManual, req.Notes)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"entry_id": id}})
}

// EditMileage runs the edit-lock policy. Locked and reverted outcomes are
// part of the 200 payload; the caller reverts its displayed value from
// revert_to rather than treating the response as a failure.
func (s *Server) EditMileage(c *gin.Context) {
	vehicleID, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	var req struct {
		Mileage int `json:"mileage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	outcome, err := s.mileageSvc.ApplyEditChange(c.Request.Context(), vehicleID, req.Mileage, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": outcome})
}

func (s *Server) ImportMileage(c *gin.Context) {
	vehicleID, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	var req recordMileageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RecordedAt.IsZero() {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	id, err := s.mileageSvc.Import(c.Request.Context(), vehicleID, req.Mileage, req.RecordedAt, req.Notes)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"entry_id": id}})
}

func (s *Server) ListMileage(c *gin.Context) {
	vehicleID, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	resp, err := s.mileageSvc.GetByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// LatestMileage returns the latest entry on or before an optional "at"
// timestamp or "day" date; with neither, now.
func (s *Server) LatestMileage(c *gin.Context) {
	vehicleID, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var entry *mileagedomain.MileageEntry
	switch {
	case c.Query("day") != "":
		day, perr := time.Parse("2006-01-02", c.Query("day"))
		if perr != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		entry, err = s.mileageSvc.GetLatestForDay(c.Request.Context(), vehicleID, day)
	case c.Query("at") != "":
		at, perr := time.Parse(time.RFC3339, c.Query("at"))
		if perr != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		entry, err = s.mileageSvc.GetLatestOnOrBefore(c.Request.Context(), vehicleID, at)
	default:
		entry, err = s.mileageSvc.GetLatestOnOrBefore(c.Request.Context(), vehicleID, s.clock.Now())
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entry})
}
