package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/travelpro/internal/report"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/contacts"
	"github.com/Domenick1991/travelpro/internal/service/drafts"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation),
		errors.Is(err, contacts.ErrValidation),
		errors.Is(err, drafts.ErrInvalidRequest),
		errors.Is(err, store.ErrMalformedDocument):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, contacts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrConfirmationRequired), errors.Is(err, contacts.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, report.ErrNothingToExport):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
