package contacts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrValidation           = errors.New("invalid contact")
	ErrNotFound             = errors.New("contact not found")
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
)

type ContactsUseCase interface {
	Clients() []domain.Client
	Colleagues() []domain.Colleague
	Partners() []domain.CorporatePartner
	Profile() *domain.AgentProfile
	AddClient(ctx context.Context, c domain.Client) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string, confirmed bool) error
	AddColleague(ctx context.Context, c domain.Colleague) (*domain.Colleague, error)
	DeleteColleague(ctx context.Context, id string, confirmed bool) error
	AddPartner(ctx context.Context, p domain.CorporatePartner) (*domain.CorporatePartner, error)
	DeletePartner(ctx context.Context, id string, confirmed bool) error
	SaveProfile(ctx context.Context, p domain.AgentProfile) (*domain.AgentProfile, error)
	Suggest(category domain.BookingCategory, text string) []string
}

type Store interface {
	Clients() []domain.Client
	Colleagues() []domain.Colleague
	Partners() []domain.CorporatePartner
	Profile() *domain.AgentProfile
	UpdateClients(ctx context.Context, fn func([]domain.Client) ([]domain.Client, error)) error
	UpdateColleagues(ctx context.Context, fn func([]domain.Colleague) ([]domain.Colleague, error)) error
	UpdatePartners(ctx context.Context, fn func([]domain.CorporatePartner) ([]domain.CorporatePartner, error)) error
	SetProfile(ctx context.Context, profile domain.AgentProfile) error
}

type ContactsService struct {
	store    Store
	validate *validator.Validate
	newID    func() string
}

func NewContactsService(st Store) *ContactsService {
	return &ContactsService{
		store:    st,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		newID:    uuid.NewString,
	}
}

func (s *ContactsService) Clients() []domain.Client { return s.store.Clients() }

func (s *ContactsService) Colleagues() []domain.Colleague { return s.store.Colleagues() }

func (s *ContactsService) Partners() []domain.CorporatePartner { return s.store.Partners() }

func (s *ContactsService) Profile() *domain.AgentProfile { return s.store.Profile() }

func (s *ContactsService) AddClient(ctx context.Context, c domain.Client) (*domain.Client, error) {
	if err := s.check(&c); err != nil {
		return nil, err
	}
	if c.Role == "" {
		c.Role = domain.RoleClient
	}
	c.ID = s.newID()
	err := s.store.UpdateClients(ctx, func(cs []domain.Client) ([]domain.Client, error) {
		return append(cs, c), nil
	})
	if err := persistResult(err, "client", c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ContactsService) DeleteClient(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.store.UpdateClients(ctx, func(cs []domain.Client) ([]domain.Client, error) {
		return remove(cs, func(c domain.Client) bool { return c.ID == id })
	})
	return persistResult(err, "client", id)
}

func (s *ContactsService) AddColleague(ctx context.Context, c domain.Colleague) (*domain.Colleague, error) {
	if err := s.check(&c); err != nil {
		return nil, err
	}
	c.ID = s.newID()
	err := s.store.UpdateColleagues(ctx, func(cs []domain.Colleague) ([]domain.Colleague, error) {
		return append(cs, c), nil
	})
	if err := persistResult(err, "colleague", c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ContactsService) DeleteColleague(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.store.UpdateColleagues(ctx, func(cs []domain.Colleague) ([]domain.Colleague, error) {
		return remove(cs, func(c domain.Colleague) bool { return c.ID == id })
	})
	return persistResult(err, "colleague", id)
}

func (s *ContactsService) AddPartner(ctx context.Context, p domain.CorporatePartner) (*domain.CorporatePartner, error) {
	if err := s.check(&p); err != nil {
		return nil, err
	}
	p.ID = s.newID()
	err := s.store.UpdatePartners(ctx, func(ps []domain.CorporatePartner) ([]domain.CorporatePartner, error) {
		return append(ps, p), nil
	})
	if err := persistResult(err, "partner", p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ContactsService) DeletePartner(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.store.UpdatePartners(ctx, func(ps []domain.CorporatePartner) ([]domain.CorporatePartner, error) {
		return remove(ps, func(p domain.CorporatePartner) bool { return p.ID == id })
	})
	return persistResult(err, "partner", id)
}

func (s *ContactsService) SaveProfile(ctx context.Context, p domain.AgentProfile) (*domain.AgentProfile, error) {
	if err := s.check(&p); err != nil {
		return nil, err
	}
	if err := persistResult(s.store.SetProfile(ctx, p), "profile", p.Name); err != nil {
		return nil, err
	}
	return &p, nil
}

// Suggest lists counterpart names for the booking form. It only assists
// typing: a booking may name anyone.
func (s *ContactsService) Suggest(category domain.BookingCategory, text string) []string {
	needle := strings.ToLower(strings.TrimSpace(text))

	var names []string
	switch category {
	case domain.CategoryColleague:
		for _, c := range s.store.Colleagues() {
			names = append(names, c.Name)
		}
	default:
		for _, c := range s.store.Clients() {
			names = append(names, c.Name)
		}
	}

	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] || !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func (s *ContactsService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func remove[T any](items []T, match func(T) bool) ([]T, error) {
	for i, item := range items {
		if match(item) {
			return append(items[:i], items[i+1:]...), nil
		}
	}
	return nil, ErrNotFound
}

func persistResult(err error, kind, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrPersist) {
		log.Printf("WARNING: %s %s not persisted: %v", kind, id, err)
		return nil
	}
	return err
}

var _ ContactsUseCase = (*ContactsService)(nil)
