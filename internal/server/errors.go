package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motorbill/motorbill/internal/auth"
	companydomain "github.com/motorbill/motorbill/internal/company/domain"
	customerdomain "github.com/motorbill/motorbill/internal/customer/domain"
	invoicedomain "github.com/motorbill/motorbill/internal/invoice/domain"
	mileagedomain "github.com/motorbill/motorbill/internal/mileage/domain"
	serviceitemdomain "github.com/motorbill/motorbill/internal/serviceitem/domain"
	vehicledomain "github.com/motorbill/motorbill/internal/vehicle/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware turns errors attached to the context into a JSON
// response after the handler chain runs.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrEmptySearch),
		errors.Is(err, vehicledomain.ErrInsufficientIdentity),
		errors.Is(err, vehicledomain.ErrInvalidCustomer),
		errors.Is(err, vehicledomain.ErrInvalidID),
		errors.Is(err, mileagedomain.ErrMileageOutOfRange),
		errors.Is(err, mileagedomain.ErrVehicleRequired),
		errors.Is(err, invoicedomain.ErrInvalidCustomer),
		errors.Is(err, invoicedomain.ErrInvalidVehicle),
		errors.Is(err, invoicedomain.ErrNoLineItems),
		errors.Is(err, invoicedomain.ErrInvalidLineItem),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, serviceitemdomain.ErrInvalidName),
		errors.Is(err, serviceitemdomain.ErrInvalidPrice),
		errors.Is(err, serviceitemdomain.ErrInvalidID),
		errors.Is(err, companydomain.ErrInvalidName),
		errors.Is(err, companydomain.ErrInvalidRate),
		errors.Is(err, auth.ErrWeakPassword):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, vehicledomain.ErrDuplicateVehicle),
		errors.Is(err, invoicedomain.ErrDuplicateInvoice),
		errors.Is(err, invoicedomain.ErrDuplicateServicesNeedConfirm),
		errors.Is(err, mileagedomain.ErrMileageRegression):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, vehicledomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, serviceitemdomain.ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, mileagedomain.ErrNotFound):
		return true
	default:
		return false
	}
}
