package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/travelpro/config"
	"github.com/Domenick1991/travelpro/internal/repository"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/contacts"
	"github.com/Domenick1991/travelpro/internal/service/drafts"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(context.Background(), repository.NewMemoryKV())
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	svc := Services{
		Bookings: booking.NewBookingService(st, booking.WithClock(now)),
		Contacts: contacts.NewContactsService(st),
		Backup:   st,
		Drafts:   drafts.NewSession(drafts.NewDraftService(nil)),
		Now:      now,
	}
	return NewRouter(config.Default(), svc)
}

func TestRouter_BookingLifecycle(t *testing.T) {
	router := newTestRouter(t)

	body := []byte(`{
		"clientName": "Sarah Amrani",
		"passengers": [{"name": "Sarah Amrani", "phone": "+212600112233"}],
		"route": "CMN-CDG",
		"tripType": "One-way",
		"departureDate": "2026-10-23T09:00:00Z",
		"pnr": "ABC123",
		"price": 3100,
		"ticketingDeadline": "2026-10-20T09:00:00Z"
	}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Pending", created.Status)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"urgent":1`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/bookings/"+created.ID+"/status", bytes.NewReader([]byte(`{"status":"Ticketed"}`))))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings/"+created.ID+"/draft", bytes.NewReader([]byte(`{"type":"status","tone":"friendly"}`))))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wa.me/212600112233")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/"+created.ID, nil))
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/"+created.ID+"?confirm=true", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig(nil)
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)

	restricted := corsConfig([]string{"http://localhost:5173"})
	assert.Equal(t, []string{"http://localhost:5173"}, restricted.AllowOrigins)
	assert.True(t, restricted.AllowCredentials)
}
