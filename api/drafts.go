package api

import (
	"net/http"

	"github.com/Domenick1991/travelpro/internal/outbound"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/drafts"
	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	bookings booking.BookingUseCase
	session  *drafts.Session
}

type draftRequest struct {
	Type drafts.MessageType `json:"type" binding:"required"`
	Tone drafts.Tone        `json:"tone" binding:"required"`
}

type draftResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
	MailtoURL   string `json:"mailtoUrl,omitempty"`
}

func NewDraftHandler(bookings booking.BookingUseCase, session *drafts.Session) *DraftHandler {
	return &DraftHandler{bookings: bookings, session: session}
}

func (h *DraftHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings/:id/draft", h.draft)
	router.DELETE("/drafts", h.close)
}

func (h *DraftHandler) draft(c *gin.Context) {
	var body draftRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	req := drafts.Request{Booking: *b, Type: body.Type, Tone: body.Tone}
	if err := req.Validate(); err != nil {
		abortWithError(c, err)
		return
	}

	text, ok := h.session.Request(c.Request.Context(), req)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "draft superseded by a newer request"})
		return
	}

	resp := draftResponse{Message: text}
	if u, err := outbound.WhatsAppURL(outbound.FirstPassengerPhone(*b), text); err == nil {
		resp.WhatsAppURL = u
	}
	if u, err := outbound.MailtoURL(outbound.FirstPassengerEmail(*b), "Booking "+b.PNR, text); err == nil {
		resp.MailtoURL = u
	}
	c.JSON(http.StatusOK, resp)
}

// close drops any draft still being generated.
func (h *DraftHandler) close(c *gin.Context) {
	h.session.Close()
	c.Status(http.StatusNoContent)
}
