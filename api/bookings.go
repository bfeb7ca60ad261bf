package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/deadline"
	"github.com/Domenick1991/travelpro/internal/service/query"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	now     func() time.Time
}

type setStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

// bookingResponse adds the display-only deadline fields.
type bookingResponse struct {
	domain.Booking
	Overdue        bool `json:"overdue"`
	HoursRemaining int  `json:"hoursRemaining"`
}

func NewBookingHandler(service booking.BookingUseCase, now func() time.Time) *BookingHandler {
	if now == nil {
		now = time.Now
	}
	return &BookingHandler{service: service, now: now}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PATCH("/:id/status", h.setStatus)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) toResponse(b domain.Booking) bookingResponse {
	now := h.now()
	return bookingResponse{
		Booking:        b,
		Overdue:        deadline.IsOverdue(b, now),
		HoursRemaining: deadline.HoursRemaining(b, now),
	}
}

func (h *BookingHandler) list(c *gin.Context) {
	var criteria query.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := query.Filter(h.service.ListBookings(c.Request.Context()), criteria)
	out := make([]bookingResponse, 0, len(filtered))
	for _, b := range filtered {
		out = append(out, h.toResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(*created))
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*b))
}

func (h *BookingHandler) setStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*updated))
}

// delete expects ?confirm=true once the user has agreed.
func (h *BookingHandler) delete(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.service.DeleteBooking(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
