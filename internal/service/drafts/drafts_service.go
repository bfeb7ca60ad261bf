package drafts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
)

type MessageType string

const (
	MessageOffer    MessageType = "offer"
	MessageReminder MessageType = "reminder"
	MessageStatus   MessageType = "status"
)

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneUrgent       Tone = "urgent"
)

const (
	FallbackMessage = "Error generating message. Please check your connection or try again later."
	EmptyMessage    = "Could not generate message."
)

var ErrInvalidRequest = errors.New("invalid draft request")

// Generator is the remote text-generation model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Cache interface {
	GetDraft(ctx context.Context, key string) (string, bool, error)
	SetDraft(ctx context.Context, key, text string) error
}

type ProfileSource interface {
	Profile() *domain.AgentProfile
}

type Drafter interface {
	Draft(ctx context.Context, req Request) string
}

type Request struct {
	Booking domain.Booking
	Type    MessageType
	Tone    Tone
}

func (r Request) Validate() error {
	switch r.Type {
	case MessageOffer, MessageReminder, MessageStatus:
	default:
		return fmt.Errorf("%w: unknown message type %q", ErrInvalidRequest, r.Type)
	}
	switch r.Tone {
	case ToneProfessional, ToneFriendly, ToneUrgent:
	default:
		return fmt.Errorf("%w: unknown tone %q", ErrInvalidRequest, r.Tone)
	}
	return nil
}

type Service struct {
	generator Generator
	cache     Cache
	profiles  ProfileSource
	location  *time.Location
	timeout   time.Duration
}

type ServiceOption func(*Service)

func WithCache(cache Cache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithProfiles(profiles ProfileSource) ServiceOption {
	return func(s *Service) {
		s.profiles = profiles
	}
}

func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// NewDraftService accepts a nil generator: every draft is then the fallback
// message.
func NewDraftService(generator Generator, opts ...ServiceOption) *Service {
	s := &Service{
		generator: generator,
		location:  time.UTC,
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draft never fails: generation problems yield FallbackMessage. The agent
// signature is appended when a profile is set.
func (s *Service) Draft(ctx context.Context, req Request) string {
	text := s.generate(ctx, req)
	if s.profiles != nil {
		if p := s.profiles.Profile(); p != nil {
			text += Signature(*p)
		}
	}
	return text
}

func (s *Service) generate(ctx context.Context, req Request) string {
	if s.generator == nil {
		log.Printf("WARNING: text generation is not configured, using fallback for booking %s", req.Booking.PNR)
		return FallbackMessage
	}

	key := cacheKey(req)
	if s.cache != nil {
		if text, ok, err := s.cache.GetDraft(ctx, key); err == nil && ok {
			return text
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, BuildPrompt(req, s.location))
	if err != nil {
		log.Printf("WARNING: draft generation failed for booking %s: %v", req.Booking.PNR, err)
		return FallbackMessage
	}
	if strings.TrimSpace(text) == "" {
		return EmptyMessage
	}

	if s.cache != nil {
		if err := s.cache.SetDraft(ctx, key, text); err != nil {
			log.Printf("WARNING: failed to cache draft for booking %s: %v", req.Booking.PNR, err)
		}
	}
	return text
}

func Signature(p domain.AgentProfile) string {
	return fmt.Sprintf("\n\nBest regards,\n%s\n%s\n📞 %s\n📧 %s", p.Name, p.AgencyName, p.Phone, p.Email)
}

// cacheKey changes whenever the status does, so a status update never
// returns a stale draft.
func cacheKey(req Request) string {
	return fmt.Sprintf("%s:%s:%s:%s", req.Booking.ID, req.Booking.Status, req.Type, req.Tone)
}

func BuildPrompt(req Request, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	b := req.Booking

	returnInfo := ""
	if b.ReturnDate != nil {
		returnInfo = " - Return: " + b.ReturnDate.In(loc).Format("02/01/2006")
	}

	var sb strings.Builder
	sb.WriteString("You are a professional travel agent assistant.\n")
	fmt.Fprintf(&sb, "Write a short, clear %s message for a %s via WhatsApp or Email.\n\n", req.Type, b.Category)
	sb.WriteString("Context:\n")
	fmt.Fprintf(&sb, "Client/Contact: %s\n", b.ClientName)
	fmt.Fprintf(&sb, "Passengers: %s\n\n", strings.Join(b.PassengerNames(), ", "))
	sb.WriteString("Booking Details:\n")
	fmt.Fprintf(&sb, "PNR: %s\n", b.PNR)
	fmt.Fprintf(&sb, "Airline: %s\n", b.Airline)
	fmt.Fprintf(&sb, "Route: %s (%s)\n", b.Route, b.TripType)
	fmt.Fprintf(&sb, "Travel Date: %s%s\n", b.DepartureDate.In(loc).Format("02/01/2006"), returnInfo)
	fmt.Fprintf(&sb, "Price: %s %s\n", formatPrice(b.Price), b.Currency)
	fmt.Fprintf(&sb, "Deadline: %s\n", b.TicketingDeadline.In(loc).Format("02/01/2006 15:04"))
	fmt.Fprintf(&sb, "Status: %s\n\n", b.Status)
	sb.WriteString("Instructions:\n")
	fmt.Fprintf(&sb, "- Tone: %s\n", req.Tone)
	sb.WriteString("- Keep it concise and professional.\n")
	sb.WriteString("- Include the PNR and Deadline clearly.\n")
	sb.WriteString("- Do not use hashtags.\n")
	sb.WriteString("- Use Modern Standard Arabic if the client name sounds Arabic, otherwise use English/French based on common professional standards in Morocco.\n")
	return sb.String()
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

var _ Drafter = (*Service)(nil)
