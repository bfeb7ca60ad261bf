// Package store owns the in-memory collections of the tracker. They are
// loaded once at startup and written back through a key-value repository
// after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/repository"
)

type Kind string

const (
	KindBookings   Kind = "travelpro_bookings"
	KindClients    Kind = "travelpro_clients"
	KindColleagues Kind = "travelpro_colleagues"
	KindPartners   Kind = "travelpro_partners"
	KindProfile    Kind = "travelpro_profile"
)

// ErrPersist marks a mutation that was applied in memory but could not be
// written to the repository.
var ErrPersist = errors.New("persist collection")

// Load returns the persisted collection, or an empty slice when the key was
// never written.
func Load[T any](ctx context.Context, kv repository.KVRepository, kind Kind) ([]T, error) {
	data, err := kv.Get(ctx, string(kind))
	if errors.Is(err, repository.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}

	items := []T{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func Save[T any](ctx context.Context, kv repository.KVRepository, kind Kind, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := kv.Put(ctx, string(kind), data); err != nil {
		return fmt.Errorf("%w %s: %v", ErrPersist, kind, err)
	}
	return nil
}

type Store struct {
	mu sync.Mutex
	kv repository.KVRepository

	bookings   []domain.Booking
	clients    []domain.Client
	colleagues []domain.Colleague
	partners   []domain.CorporatePartner
	profile    *domain.AgentProfile
}

// Open loads every collection from kv.
func Open(ctx context.Context, kv repository.KVRepository) (*Store, error) {
	s := &Store{kv: kv}

	var err error
	if s.bookings, err = Load[domain.Booking](ctx, kv, KindBookings); err != nil {
		return nil, err
	}
	if s.clients, err = Load[domain.Client](ctx, kv, KindClients); err != nil {
		return nil, err
	}
	if s.colleagues, err = Load[domain.Colleague](ctx, kv, KindColleagues); err != nil {
		return nil, err
	}
	if s.partners, err = Load[domain.CorporatePartner](ctx, kv, KindPartners); err != nil {
		return nil, err
	}
	if s.profile, err = loadProfile(ctx, kv); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBookings(s.bookings)
}

func (s *Store) Clients() []domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Client{}, s.clients...)
}

func (s *Store) Colleagues() []domain.Colleague {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Colleague{}, s.colleagues...)
}

func (s *Store) Partners() []domain.CorporatePartner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CorporatePartner{}, s.partners...)
}

func (s *Store) Profile() *domain.AgentProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// UpdateBookings hands fn a copy of the bookings and, if fn succeeds, makes
// its result the new collection and persists it.
func (s *Store) UpdateBookings(ctx context.Context, fn func([]domain.Booking) ([]domain.Booking, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(cloneBookings(s.bookings))
	if err != nil {
		return err
	}
	s.bookings = next
	return Save(ctx, s.kv, KindBookings, next)
}

func (s *Store) UpdateClients(ctx context.Context, fn func([]domain.Client) ([]domain.Client, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return update(ctx, s.kv, KindClients, &s.clients, fn)
}

func (s *Store) UpdateColleagues(ctx context.Context, fn func([]domain.Colleague) ([]domain.Colleague, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return update(ctx, s.kv, KindColleagues, &s.colleagues, fn)
}

func (s *Store) UpdatePartners(ctx context.Context, fn func([]domain.CorporatePartner) ([]domain.CorporatePartner, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return update(ctx, s.kv, KindPartners, &s.partners, fn)
}

func (s *Store) SetProfile(ctx context.Context, profile domain.AgentProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
	return saveProfile(ctx, s.kv, &profile)
}

func update[T any](ctx context.Context, kv repository.KVRepository, kind Kind, current *[]T, fn func([]T) ([]T, error)) error {
	next, err := fn(append([]T{}, (*current)...))
	if err != nil {
		return err
	}
	*current = next
	return Save(ctx, kv, kind, next)
}

func loadProfile(ctx context.Context, kv repository.KVRepository) (*domain.AgentProfile, error) {
	data, err := kv.Get(ctx, string(KindProfile))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KindProfile, err)
	}
	var profile *domain.AgentProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KindProfile, err)
	}
	return profile, nil
}

func saveProfile(ctx context.Context, kv repository.KVRepository, profile *domain.AgentProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KindProfile, err)
	}
	if err := kv.Put(ctx, string(KindProfile), data); err != nil {
		return fmt.Errorf("%w %s: %v", ErrPersist, KindProfile, err)
	}
	return nil
}

// cloneBookings copies the passenger slices too, so callers cannot reach
// into the canonical collection.
func cloneBookings(in []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, len(in))
	for i, b := range in {
		b.Passengers = append([]domain.Passenger(nil), b.Passengers...)
		if b.ReturnDate != nil {
			r := *b.ReturnDate
			b.ReturnDate = &r
		}
		out[i] = b
	}
	return out
}
