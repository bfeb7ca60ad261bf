package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/outbound"
	"github.com/Domenick1991/travelpro/internal/service/contacts"
	"github.com/gin-gonic/gin"
)

type ContactsHandler struct {
	service contacts.ContactsUseCase
}

func NewContactsHandler(service contacts.ContactsUseCase) *ContactsHandler {
	return &ContactsHandler{service: service}
}

func (h *ContactsHandler) Register(router *gin.RouterGroup) {
	router.GET("/clients", func(c *gin.Context) { c.JSON(http.StatusOK, h.service.Clients()) })
	router.POST("/clients", h.addClient)
	router.DELETE("/clients/:id", h.deleteWith(h.service.DeleteClient))
	router.GET("/clients/broadcast", h.broadcast)

	router.GET("/colleagues", func(c *gin.Context) { c.JSON(http.StatusOK, h.service.Colleagues()) })
	router.POST("/colleagues", h.addColleague)
	router.DELETE("/colleagues/:id", h.deleteWith(h.service.DeleteColleague))

	router.GET("/partners", func(c *gin.Context) { c.JSON(http.StatusOK, h.service.Partners()) })
	router.POST("/partners", h.addPartner)
	router.DELETE("/partners/:id", h.deleteWith(h.service.DeletePartner))

	router.GET("/profile", h.profile)
	router.PUT("/profile", h.saveProfile)

	router.GET("/suggestions", h.suggestions)
}

func (h *ContactsHandler) addClient(c *gin.Context) {
	var req domain.Client
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.AddClient(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContactsHandler) addColleague(c *gin.Context) {
	var req domain.Colleague
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.AddColleague(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContactsHandler) addPartner(c *gin.Context) {
	var req domain.CorporatePartner
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.AddPartner(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ContactsHandler) deleteWith(del func(ctx context.Context, id string, confirmed bool) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := del(c.Request.Context(), c.Param("id"), c.Query("confirm") == "true"); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *ContactsHandler) profile(c *gin.Context) {
	p := h.service.Profile()
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not set"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ContactsHandler) saveProfile(c *gin.Context) {
	var req domain.AgentProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.service.SaveProfile(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// broadcast returns one mailto link blind-copying every client.
func (h *ContactsHandler) broadcast(c *gin.Context) {
	emails := make([]string, 0)
	for _, client := range h.service.Clients() {
		emails = append(emails, client.Email)
	}

	sender := "TravelPro"
	if p := h.service.Profile(); p != nil && p.AgencyName != "" {
		sender = p.AgencyName
	}
	link, err := outbound.BroadcastURL(emails, "Announcement from "+sender)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no client emails found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mailtoUrl": link})
}

// suggestions completes the client name field of the booking form.
func (h *ContactsHandler) suggestions(c *gin.Context) {
	category := domain.BookingCategory(c.DefaultQuery("category", string(domain.CategoryClient)))
	c.JSON(http.StatusOK, h.service.Suggest(category, c.Query("q")))
}
