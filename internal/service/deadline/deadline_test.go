package deadline

import (
	"testing"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func booking(id string, status domain.BookingStatus, deadlineIn, departureIn time.Duration) domain.Booking {
	return domain.Booking{
		ID:                id,
		PNR:               "PNR" + id,
		Status:            status,
		TicketingDeadline: now.Add(deadlineIn),
		DepartureDate:     now.Add(departureIn),
		Price:             1000,
	}
}

func ids(bookings []domain.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestUrgentBookings_Window(t *testing.T) {
	bookings := []domain.Booking{
		booking("pending30h", domain.BookingStatusPending, 30*time.Hour, 100*time.Hour),
		booking("ticketed30h", domain.BookingStatusTicketed, 30*time.Hour, 100*time.Hour),
		booking("cancelled1h", domain.BookingStatusCancelled, time.Hour, 100*time.Hour),
		booking("expired2h", domain.BookingStatusExpired, 2*time.Hour, 100*time.Hour),
		booking("optioned48h", domain.BookingStatusOptioned, 48*time.Hour, 100*time.Hour),
		booking("pending49h", domain.BookingStatusPending, 49*time.Hour, 100*time.Hour),
		booking("pendingNow", domain.BookingStatusPending, 0, 100*time.Hour),
		booking("pendingPast", domain.BookingStatusPending, -time.Hour, 100*time.Hour),
	}

	urgent := UrgentBookings(bookings, now, DefaultUrgentWindow)

	assert.Equal(t, []string{"expired2h", "pending30h", "optioned48h"}, ids(urgent))
	for _, b := range urgent {
		assert.NotEqual(t, domain.BookingStatusTicketed, b.Status)
		assert.NotEqual(t, domain.BookingStatusCancelled, b.Status)
		left := b.TicketingDeadline.Sub(now)
		assert.True(t, left > 0 && left <= 48*time.Hour)
	}
}

func TestUrgent_ExpiredWithDeadlineAhead(t *testing.T) {
	expired := booking("e", domain.BookingStatusExpired, 10*time.Hour, 100*time.Hour)

	assert.True(t, Urgent(expired, now, DefaultUrgentWindow))
	assert.Len(t, UrgentBookings([]domain.Booking{expired}, now, DefaultUrgentWindow), 1)
	assert.Equal(t, 1, Summarize([]domain.Booking{expired}, now, DefaultUrgentWindow).Urgent)

	lapsed := booking("e", domain.BookingStatusExpired, -10*time.Hour, 100*time.Hour)
	assert.False(t, Urgent(lapsed, now, DefaultUrgentWindow))
}

func TestUrgentBookings_SortedByDeadline(t *testing.T) {
	bookings := []domain.Booking{
		booking("in10h", domain.BookingStatusPending, 10*time.Hour, 100*time.Hour),
		booking("in5h", domain.BookingStatusPending, 5*time.Hour, 100*time.Hour),
	}

	assert.Equal(t, []string{"in5h", "in10h"}, ids(UrgentBookings(bookings, now, DefaultUrgentWindow)))
}

func TestUrgentBookings_CustomWindowAndEmpty(t *testing.T) {
	bookings := []domain.Booking{booking("in30h", domain.BookingStatusPending, 30*time.Hour, 100*time.Hour)}

	assert.Empty(t, UrgentBookings(bookings, now, 24*time.Hour))
	assert.NotNil(t, UrgentBookings(nil, now, DefaultUrgentWindow))
}

func TestUpcomingEvents_OrderAndFilter(t *testing.T) {
	bookings := []domain.Booking{
		booking("a", domain.BookingStatusPending, 50*time.Hour, 10*time.Hour),
		booking("b", domain.BookingStatusTicketed, -5*time.Hour, 20*time.Hour),
		booking("c", domain.BookingStatusPending, 20*time.Hour, 20*time.Hour),
	}

	events := UpcomingEvents(bookings, now)

	require.Len(t, events, 5)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].At.Before(events[i-1].At), "events must be sorted")
	}
	assert.Equal(t, "a", events[0].Booking.ID)
	assert.Equal(t, EventTravel, events[0].Kind)

	// b travel, c travel and c deadline all fall at +20h: emission order wins
	assert.Equal(t, "b", events[1].Booking.ID)
	assert.Equal(t, "c", events[2].Booking.ID)
	assert.Equal(t, EventTravel, events[2].Kind)
	assert.Equal(t, "c", events[3].Booking.ID)
	assert.Equal(t, EventDeadline, events[3].Kind)

	assert.Equal(t, EventDeadline, events[4].Kind)
	assert.Equal(t, "a", events[4].Booking.ID)
}

func TestUpcomingEvents_IncludesNowExactly(t *testing.T) {
	events := UpcomingEvents([]domain.Booking{booking("a", domain.BookingStatusPending, 0, -time.Hour)}, now)
	require.Len(t, events, 1)
	assert.Equal(t, EventDeadline, events[0].Kind)
}

func TestUpcomingEvents_FarFutureIsEmpty(t *testing.T) {
	bookings := []domain.Booking{
		booking("a", domain.BookingStatusPending, 50*time.Hour, 10*time.Hour),
		booking("b", domain.BookingStatusPending, 5*time.Hour, 20*time.Hour),
	}
	farFuture := now.AddDate(100, 0, 0)

	assert.Empty(t, UpcomingEvents(bookings, farFuture))
}

func TestIsOverdue(t *testing.T) {
	assert.True(t, IsOverdue(booking("a", domain.BookingStatusPending, -time.Minute, 0), now))
	assert.True(t, IsOverdue(booking("a", domain.BookingStatusCancelled, -time.Minute, 0), now))
	assert.False(t, IsOverdue(booking("a", domain.BookingStatusTicketed, -time.Minute, 0), now))
	assert.False(t, IsOverdue(booking("a", domain.BookingStatusPending, 0, 0), now))
	assert.False(t, IsOverdue(booking("a", domain.BookingStatusPending, time.Hour, 0), now))
}

func TestHoursRemaining(t *testing.T) {
	assert.Equal(t, 29, HoursRemaining(booking("a", domain.BookingStatusPending, 29*time.Hour+59*time.Minute, 0), now))
	assert.Equal(t, 0, HoursRemaining(booking("a", domain.BookingStatusPending, 30*time.Minute, 0), now))
	assert.Equal(t, -1, HoursRemaining(booking("a", domain.BookingStatusPending, -30*time.Minute, 0), now))
	assert.Equal(t, -2, HoursRemaining(booking("a", domain.BookingStatusPending, -2*time.Hour, 0), now))
}

func TestSummarize(t *testing.T) {
	bookings := []domain.Booking{
		booking("p", domain.BookingStatusPending, 10*time.Hour, 0),
		booking("o", domain.BookingStatusOptioned, 100*time.Hour, 0),
		booking("t", domain.BookingStatusTicketed, 10*time.Hour, 0),
		booking("c", domain.BookingStatusCancelled, 10*time.Hour, 0),
		booking("e", domain.BookingStatusExpired, -10*time.Hour, 0),
	}
	bookings[2].Price = 2500.5

	s := Summarize(bookings, now, DefaultUrgentWindow)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Ticketed)
	assert.Equal(t, 2, s.Closed)
	assert.Equal(t, 1, s.Urgent)
	assert.InDelta(t, 4500.5, s.PipelineValue, 1e-9)
	assert.Equal(t, 1, s.ByStatus[domain.BookingStatusExpired])

	empty := Summarize(nil, now, DefaultUrgentWindow)
	assert.Zero(t, empty.Total)
	assert.Len(t, empty.ByStatus, 5)
}
