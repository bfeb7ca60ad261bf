package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/deadline"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service booking.BookingUseCase
	window  time.Duration
	now     func() time.Time
}

type urgentBooking struct {
	domain.Booking
	HoursRemaining int `json:"hoursRemaining"`
}

type dashboardResponse struct {
	Summary deadline.Summary `json:"summary"`
	Urgent  []urgentBooking  `json:"urgent"`
	Overdue []urgentBooking  `json:"overdue"`
}

func NewDashboardHandler(service booking.BookingUseCase, window time.Duration, now func() time.Time) *DashboardHandler {
	if window <= 0 {
		window = deadline.DefaultUrgentWindow
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{service: service, window: window, now: now}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard", h.dashboard)
	router.GET("/calendar", h.calendar)
}

func (h *DashboardHandler) dashboard(c *gin.Context) {
	now := h.now()
	bookings := h.service.ListBookings(c.Request.Context())

	urgent := deadline.UrgentBookings(bookings, now, h.window)
	out := dashboardResponse{
		Summary: deadline.Summarize(bookings, now, h.window),
		Urgent:  make([]urgentBooking, 0, len(urgent)),
		Overdue: make([]urgentBooking, 0),
	}
	for _, b := range urgent {
		out.Urgent = append(out.Urgent, urgentBooking{Booking: b, HoursRemaining: deadline.HoursRemaining(b, now)})
	}
	for _, b := range bookings {
		if b.Status.Active() && deadline.IsOverdue(b, now) {
			out.Overdue = append(out.Overdue, urgentBooking{Booking: b, HoursRemaining: deadline.HoursRemaining(b, now)})
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) calendar(c *gin.Context) {
	c.JSON(http.StatusOK, deadline.UpcomingEvents(h.service.ListBookings(c.Request.Context()), h.now()))
}
