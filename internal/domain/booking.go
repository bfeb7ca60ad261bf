package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusOptioned  BookingStatus = "Optioned"
	BookingStatusTicketed  BookingStatus = "Ticketed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusExpired   BookingStatus = "Expired"
)

// BookingStatuses lists every status in display order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusOptioned,
	BookingStatusTicketed,
	BookingStatusCancelled,
	BookingStatusExpired,
}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active reports whether the booking is still being worked on.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusOptioned
}

// Closed reports whether the booking lapsed or was dropped.
func (s BookingStatus) Closed() bool {
	return s == BookingStatusExpired || s == BookingStatusCancelled
}

type BookingCategory string

const (
	CategoryClient    BookingCategory = "Client"
	CategoryColleague BookingCategory = "Colleague"
)

func (c BookingCategory) Valid() bool {
	return c == CategoryClient || c == CategoryColleague
}

type TripType string

const (
	TripOneWay    TripType = "One-way"
	TripRoundTrip TripType = "Round-trip"
)

func (t TripType) Valid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

type Passenger struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Booking is a held or issued airline reservation. The counterpart is
// referenced by ClientName only; there is no link to a Client record.
type Booking struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Category     BookingCategory `json:"category"`
	ClientName   string          `json:"clientName"`
	ClientDivers string          `json:"clientDivers,omitempty"`

	Passengers []Passenger `json:"passengers"`

	Route         string     `json:"route"`
	TripType      TripType   `json:"tripType"`
	DepartureDate time.Time  `json:"departureDate"`
	ReturnDate    *time.Time `json:"returnDate,omitempty"`
	Airline       string     `json:"airline"`

	Price             float64       `json:"price"`
	Currency          string        `json:"currency"`
	PNR               string        `json:"pnr"`
	TicketingDeadline time.Time     `json:"ticketingDeadline"`
	Status            BookingStatus `json:"status"`
	Conditions        string        `json:"conditions"`
}

// PassengerNames returns passenger names in booking order.
func (b Booking) PassengerNames() []string {
	names := make([]string, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		names = append(names, p.Name)
	}
	return names
}
