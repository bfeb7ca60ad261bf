package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/kafka"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/google/uuid"
)

var (
	ErrValidation           = errors.New("invalid booking")
	ErrNotFound             = errors.New("booking not found")
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string, confirmed bool) error
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context) []domain.Booking
}

// Store is the part of the entity store the lifecycle needs.
type Store interface {
	Bookings() []domain.Booking
	UpdateBookings(ctx context.Context, fn func([]domain.Booking) ([]domain.Booking, error)) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	store              Store
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	defaultCurrency    string
	strictReturnDate   bool
	now                func() time.Time
	newID              func() string
}

type CreateBookingInput struct {
	Category          domain.BookingCategory `json:"category"`
	ClientName        string                 `json:"clientName"`
	ClientDivers      string                 `json:"clientDivers"`
	Passengers        []domain.Passenger     `json:"passengers"`
	Route             string                 `json:"route"`
	TripType          domain.TripType        `json:"tripType"`
	DepartureDate     time.Time              `json:"departureDate"`
	ReturnDate        *time.Time             `json:"returnDate"`
	Airline           string                 `json:"airline"`
	Price             float64                `json:"price"`
	Currency          string                 `json:"currency"`
	PNR               string                 `json:"pnr"`
	TicketingDeadline time.Time              `json:"ticketingDeadline"`
	Status            domain.BookingStatus   `json:"status"`
	Conditions        string                 `json:"conditions"`
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithDefaultCurrency(currency string) BookingServiceOption {
	return func(s *BookingService) {
		if currency != "" {
			s.defaultCurrency = currency
		}
	}
}

// WithStrictReturnDate rejects round trips whose return precedes departure.
func WithStrictReturnDate(strict bool) BookingServiceOption {
	return func(s *BookingService) {
		s.strictReturnDate = strict
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) BookingServiceOption {
	return func(s *BookingService) {
		s.newID = newID
	}
}

func NewBookingService(st Store, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		store:           st,
		defaultCurrency: "MAD",
		now:             time.Now,
		newID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	booking := domain.Booking{
		ID:                s.newID(),
		CreatedAt:         s.now(),
		Category:          input.Category,
		ClientName:        strings.TrimSpace(input.ClientName),
		ClientDivers:      input.ClientDivers,
		Passengers:        append([]domain.Passenger(nil), input.Passengers...),
		Route:             strings.ToUpper(strings.TrimSpace(input.Route)),
		TripType:          input.TripType,
		DepartureDate:     input.DepartureDate,
		ReturnDate:        input.ReturnDate,
		Airline:           input.Airline,
		Price:             input.Price,
		Currency:          input.Currency,
		PNR:               strings.ToUpper(strings.TrimSpace(input.PNR)),
		TicketingDeadline: input.TicketingDeadline,
		Status:            input.Status,
		Conditions:        input.Conditions,
	}
	if booking.Category == "" {
		booking.Category = domain.CategoryClient
	}
	if booking.TripType == "" {
		booking.TripType = domain.TripRoundTrip
	}
	if booking.Currency == "" {
		booking.Currency = s.defaultCurrency
	}
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}

	err := s.store.UpdateBookings(ctx, func(bookings []domain.Booking) ([]domain.Booking, error) {
		return append(bookings, booking), nil
	})
	if err := s.persistResult(err, "create", booking.ID); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking, ""); err != nil {
		log.Printf("WARNING: Failed to publish booking_created event for booking %s: %v", booking.PNR, err)
	}
	return &booking, nil
}

func (s *BookingService) validate(input CreateBookingInput) error {
	if strings.TrimSpace(input.PNR) == "" {
		return fmt.Errorf("%w: pnr is required", ErrValidation)
	}
	if strings.TrimSpace(input.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if len(input.Passengers) == 0 {
		return fmt.Errorf("%w: at least one passenger is required", ErrValidation)
	}
	for i, p := range input.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: passenger %d has no name", ErrValidation, i+1)
		}
	}
	if input.Category != "" && !input.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, input.Category)
	}
	if input.TripType != "" && !input.TripType.Valid() {
		return fmt.Errorf("%w: unknown trip type %q", ErrValidation, input.TripType)
	}
	if input.Status != "" && !input.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if input.DepartureDate.IsZero() {
		return fmt.Errorf("%w: departure date is required", ErrValidation)
	}
	if input.TicketingDeadline.IsZero() {
		return fmt.Errorf("%w: ticketing deadline is required", ErrValidation)
	}
	if s.strictReturnDate && input.ReturnDate != nil && input.ReturnDate.Before(input.DepartureDate) {
		return fmt.Errorf("%w: return date is before departure date", ErrValidation)
	}
	return nil
}

// SetStatus overwrites the status. Every status can follow every other one.
func (s *BookingService) SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var (
		updated  domain.Booking
		previous domain.BookingStatus
	)
	err := s.store.UpdateBookings(ctx, func(bookings []domain.Booking) ([]domain.Booking, error) {
		i := indexOf(bookings, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		previous = bookings[i].Status
		bookings[i].Status = status
		updated = bookings[i]
		return bookings, nil
	})
	if err := s.persistResult(err, "set status of", id); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_status_changed", updated, previous); err != nil {
		log.Printf("WARNING: Failed to publish booking_status_changed event for booking %s: %v", updated.PNR, err)
	}
	return &updated, nil
}

// DeleteBooking removes the booking for good. The caller must have asked the
// user and pass confirmed=true.
func (s *BookingService) DeleteBooking(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	var removed domain.Booking
	err := s.store.UpdateBookings(ctx, func(bookings []domain.Booking) ([]domain.Booking, error) {
		i := indexOf(bookings, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		removed = bookings[i]
		return append(bookings[:i], bookings[i+1:]...), nil
	})
	if err := s.persistResult(err, "delete", id); err != nil {
		return err
	}

	if err := s.publish(ctx, "booking_deleted", removed, ""); err != nil {
		log.Printf("WARNING: Failed to publish booking_deleted event for booking %s: %v", removed.PNR, err)
	}
	return nil
}

func (s *BookingService) GetBooking(_ context.Context, id string) (*domain.Booking, error) {
	bookings := s.store.Bookings()
	i := indexOf(bookings, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &bookings[i], nil
}

func (s *BookingService) ListBookings(_ context.Context) []domain.Booking {
	return s.store.Bookings()
}

// persistResult turns a store error into the operation result. A failed
// write is only logged: the mutation already took effect in memory.
func (s *BookingService) persistResult(err error, op, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrPersist) {
		log.Printf("WARNING: %s booking %s not persisted: %v", op, id, err)
		return nil
	}
	return err
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking, previous domain.BookingStatus) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:              eventType,
		BookingID:         booking.ID,
		PNR:               booking.PNR,
		Category:          string(booking.Category),
		ClientName:        booking.ClientName,
		Status:            string(booking.Status),
		PreviousStatus:    string(previous),
		TicketingDeadline: booking.TicketingDeadline,
	}
	for _, p := range booking.Passengers {
		if event.Phone == "" {
			event.Phone = p.Phone
		}
		if event.Email == "" {
			event.Email = p.Email
		}
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

func indexOf(bookings []domain.Booking, id string) int {
	for i := range bookings {
		if bookings[i].ID == id {
			return i
		}
	}
	return -1
}

var _ BookingUseCase = (*BookingService)(nil)
