package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/motorbill/motorbill/internal/auth"
	invoicedomain "github.com/motorbill/motorbill/internal/invoice/domain"
	mileagedomain "github.com/motorbill/motorbill/internal/mileage/domain"
	vehicledomain "github.com/motorbill/motorbill/internal/vehicle/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest, "validation_error"},
		{"mileage out of range", mileagedomain.ErrMileageOutOfRange, http.StatusBadRequest, "validation_error"},
		{"mileage regression", mileagedomain.ErrMileageRegression, http.StatusConflict, "conflict"},
		{"duplicate vehicle", vehicledomain.ErrDuplicateVehicle, http.StatusConflict, "conflict"},
		{"duplicate invoice", invoicedomain.ErrDuplicateInvoice, http.StatusConflict, "conflict"},
		{"advisory unconfirmed", invoicedomain.ErrDuplicateServicesNeedConfirm, http.StatusConflict, "conflict"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"not found", vehicledomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.typ, payload.Type)
		})
	}
}
