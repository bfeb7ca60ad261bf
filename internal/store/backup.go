package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
)

const DocumentVersion = "1.0.0"

var ErrMalformedDocument = errors.New("malformed backup document")

// Document is the single JSON file used for manual backup and restore.
type Document struct {
	Bookings   []domain.Booking          `json:"bookings"`
	Clients    []domain.Client           `json:"clients"`
	Colleagues []domain.Colleague        `json:"colleagues"`
	Partners   []domain.CorporatePartner `json:"partners"`
	Profile    *domain.AgentProfile      `json:"profile"`
	ExportDate time.Time                 `json:"exportDate"`
	Version    string                    `json:"version"`
}

// importDocument keeps every collection raw so that absent keys can be told
// apart from empty ones.
type importDocument struct {
	Bookings   json.RawMessage `json:"bookings"`
	Clients    json.RawMessage `json:"clients"`
	Colleagues json.RawMessage `json:"colleagues"`
	Partners   json.RawMessage `json:"partners"`
	Profile    json.RawMessage `json:"profile"`
}

func (s *Store) ExportAll(now time.Time) Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile *domain.AgentProfile
	if s.profile != nil {
		p := *s.profile
		profile = &p
	}
	return Document{
		Bookings:   cloneBookings(s.bookings),
		Clients:    append([]domain.Client{}, s.clients...),
		Colleagues: append([]domain.Colleague{}, s.colleagues...),
		Partners:   append([]domain.CorporatePartner{}, s.partners...),
		Profile:    profile,
		ExportDate: now.UTC(),
		Version:    DocumentVersion,
	}
}

// WriteExport writes the indented backup document to w.
func (s *Store) WriteExport(w io.Writer, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.ExportAll(now))
}

func BackupFileName(now time.Time) string {
	return fmt.Sprintf("TravelPro_Backup_%s.json", now.Format("2006-01-02"))
}

// ImportAll replaces every collection present in the document read from r.
// Nothing changes when the document cannot be read or decoded. A returned
// error wrapping ErrPersist means the import took effect in memory but at
// least one collection failed to save.
func (s *Store) ImportAll(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var raw *importDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: document is null", ErrMalformedDocument)
	}

	var (
		bookings   []domain.Booking
		clients    []domain.Client
		colleagues []domain.Colleague
		partners   []domain.CorporatePartner
		profile    *domain.AgentProfile
	)
	decoders := []struct {
		name string
		raw  json.RawMessage
		dst  any
	}{
		{"bookings", raw.Bookings, &bookings},
		{"clients", raw.Clients, &clients},
		{"colleagues", raw.Colleagues, &colleagues},
		{"partners", raw.Partners, &partners},
		{"profile", raw.Profile, &profile},
	}
	for _, d := range decoders {
		if !present(d.raw) {
			continue
		}
		if err := json.Unmarshal(d.raw, d.dst); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedDocument, d.name, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if present(raw.Bookings) {
		s.bookings = nonNil(bookings)
		errs = append(errs, Save(ctx, s.kv, KindBookings, s.bookings))
	}
	if present(raw.Clients) {
		s.clients = nonNil(clients)
		errs = append(errs, Save(ctx, s.kv, KindClients, s.clients))
	}
	if present(raw.Colleagues) {
		s.colleagues = nonNil(colleagues)
		errs = append(errs, Save(ctx, s.kv, KindColleagues, s.colleagues))
	}
	if present(raw.Partners) {
		s.partners = nonNil(partners)
		errs = append(errs, Save(ctx, s.kv, KindPartners, s.partners))
	}
	if present(raw.Profile) && profile != nil {
		s.profile = profile
		errs = append(errs, saveProfile(ctx, s.kv, profile))
	}
	return errors.Join(errs...)
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
