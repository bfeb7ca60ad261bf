// Package deadline derives the dashboard and calendar views from a booking
// list. Nothing here mutates bookings; in particular a booking past its
// ticketing deadline is never moved to Expired automatically.
package deadline

import (
	"sort"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
)

const DefaultUrgentWindow = 48 * time.Hour

type EventKind string

const (
	EventTravel   EventKind = "Travel"
	EventDeadline EventKind = "Deadline"
)

type Event struct {
	At      time.Time      `json:"at"`
	Kind    EventKind      `json:"kind"`
	Booking domain.Booking `json:"booking"`
}

// UpcomingEvents emits a Travel event at departure and a Deadline event at
// the ticketing deadline for every booking, keeps those not before now and
// sorts them by time. Ties keep emission order.
func UpcomingEvents(bookings []domain.Booking, now time.Time) []Event {
	events := make([]Event, 0, 2*len(bookings))
	for _, b := range bookings {
		events = append(events,
			Event{At: b.DepartureDate, Kind: EventTravel, Booking: b},
			Event{At: b.TicketingDeadline, Kind: EventDeadline, Booking: b},
		)
	}

	upcoming := events[:0]
	for _, e := range events {
		if !e.At.Before(now) {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].At.Before(upcoming[j].At)
	})
	return upcoming
}

// Urgent reports whether the deadline falls in (now, now+window] and the
// booking is neither ticketed nor cancelled. Expired is set by hand, so an
// Expired booking whose deadline is still ahead stays urgent.
func Urgent(b domain.Booking, now time.Time, window time.Duration) bool {
	if !canBeUrgent(b.Status) {
		return false
	}
	left := b.TicketingDeadline.Sub(now)
	return left > 0 && left <= window
}

// UrgentBookings returns the urgent bookings, earliest deadline first.
func UrgentBookings(bookings []domain.Booking, now time.Time, window time.Duration) []domain.Booking {
	urgent := make([]domain.Booking, 0)
	for _, b := range bookings {
		if Urgent(b, now, window) {
			urgent = append(urgent, b)
		}
	}
	sort.SliceStable(urgent, func(i, j int) bool {
		return urgent[i].TicketingDeadline.Before(urgent[j].TicketingDeadline)
	})
	return urgent
}

func canBeUrgent(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingStatusTicketed, domain.BookingStatusCancelled:
		return false
	}
	return true
}

// IsOverdue is display emphasis only.
func IsOverdue(b domain.Booking, now time.Time) bool {
	return b.TicketingDeadline.Before(now) && b.Status != domain.BookingStatusTicketed
}

// HoursRemaining is the whole number of hours until the deadline, rounded
// down. It is negative once the deadline has passed.
func HoursRemaining(b domain.Booking, now time.Time) int {
	left := b.TicketingDeadline.Sub(now)
	hours := int(left / time.Hour)
	if left < 0 && left%time.Hour != 0 {
		hours--
	}
	return hours
}

type Summary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Ticketed int `json:"ticketed"`
	Closed   int `json:"closed"`
	Urgent   int `json:"urgent"`
	// PipelineValue sums prices of bookings that are neither cancelled nor
	// expired. Currencies are not converted.
	PipelineValue float64                      `json:"pipelineValue"`
	ByStatus      map[domain.BookingStatus]int `json:"byStatus"`
}

func Summarize(bookings []domain.Booking, now time.Time, window time.Duration) Summary {
	summary := Summary{
		Total:    len(bookings),
		ByStatus: make(map[domain.BookingStatus]int, len(domain.BookingStatuses)),
	}
	for _, s := range domain.BookingStatuses {
		summary.ByStatus[s] = 0
	}

	for _, b := range bookings {
		summary.ByStatus[b.Status]++
		switch {
		case b.Status.Active():
			summary.Active++
		case b.Status == domain.BookingStatusTicketed:
			summary.Ticketed++
		case b.Status.Closed():
			summary.Closed++
		}
		if !b.Status.Closed() {
			summary.PipelineValue += b.Price
		}
		if Urgent(b, now, window) {
			summary.Urgent++
		}
	}
	return summary
}
