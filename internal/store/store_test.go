package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKV) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func sampleBooking(id, pnr string) domain.Booking {
	ret := now.Add(10 * 24 * time.Hour)
	return domain.Booking{
		ID:                id,
		CreatedAt:         now,
		Category:          domain.CategoryClient,
		ClientName:        "Sarah Amrani",
		Passengers:        []domain.Passenger{{Name: "Sarah Amrani", Phone: "+212600112233"}},
		Route:             "CMN-CDG-CMN",
		TripType:          domain.TripRoundTrip,
		DepartureDate:     now.Add(72 * time.Hour),
		ReturnDate:        &ret,
		Airline:           "AT",
		Price:             4200,
		Currency:          "MAD",
		PNR:               pnr,
		TicketingDeadline: now.Add(30 * time.Hour),
		Status:            domain.BookingStatusPending,
	}
}

func TestOpen_EmptyRepository(t *testing.T) {
	s, err := Open(context.Background(), repository.NewMemoryKV())
	require.NoError(t, err)

	assert.NotNil(t, s.Bookings())
	assert.Empty(t, s.Bookings())
	assert.Empty(t, s.Clients())
	assert.Empty(t, s.Colleagues())
	assert.Empty(t, s.Partners())
	assert.Nil(t, s.Profile())
}

func TestOpen_LoadError(t *testing.T) {
	kv := &MockKV{}
	kv.On("Get", mock.Anything, string(KindBookings)).Return(nil, errors.New("disk error")).Once()

	_, err := Open(context.Background(), kv)
	assert.ErrorContains(t, err, "load travelpro_bookings")
}

func TestUpdateBookings_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	s, err := Open(ctx, kv)
	require.NoError(t, err)

	err = s.UpdateBookings(ctx, func(bs []domain.Booking) ([]domain.Booking, error) {
		return append(bs, sampleBooking("b1", "ABC123")), nil
	})
	require.NoError(t, err)

	reopened, err := Open(ctx, kv)
	require.NoError(t, err)
	require.Len(t, reopened.Bookings(), 1)
	assert.Equal(t, "ABC123", reopened.Bookings()[0].PNR)
}

func TestUpdateBookings_FailedCallbackLeavesState(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, repository.NewMemoryKV())
	require.NoError(t, err)

	boom := errors.New("rejected")
	err = s.UpdateBookings(ctx, func(bs []domain.Booking) ([]domain.Booking, error) {
		return append(bs, sampleBooking("b1", "ABC123")), boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Bookings())
}

func TestUpdateBookings_PersistFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	kv := &MockKV{}
	kv.On("Get", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	kv.On("Put", mock.Anything, string(KindBookings), mock.Anything).Return(errors.New("quota exceeded")).Once()

	s, err := Open(ctx, kv)
	require.NoError(t, err)

	err = s.UpdateBookings(ctx, func(bs []domain.Booking) ([]domain.Booking, error) {
		return append(bs, sampleBooking("b1", "ABC123")), nil
	})
	assert.ErrorIs(t, err, ErrPersist)
	assert.Len(t, s.Bookings(), 1)
	kv.AssertExpectations(t)
}

func TestSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, repository.NewMemoryKV())
	require.NoError(t, err)
	require.NoError(t, s.UpdateBookings(ctx, func(bs []domain.Booking) ([]domain.Booking, error) {
		return append(bs, sampleBooking("b1", "ABC123")), nil
	}))

	snapshot := s.Bookings()
	snapshot[0].PNR = "CHANGED"
	snapshot[0].Passengers[0].Name = "Someone Else"

	assert.Equal(t, "ABC123", s.Bookings()[0].PNR)
	assert.Equal(t, "Sarah Amrani", s.Bookings()[0].Passengers[0].Name)
}

func TestContactCollections(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	s, err := Open(ctx, kv)
	require.NoError(t, err)

	require.NoError(t, s.UpdateClients(ctx, func(cs []domain.Client) ([]domain.Client, error) {
		return append(cs, domain.Client{ID: "c1", Name: "Karim Bennani", Phone: "+212661223344"}), nil
	}))
	require.NoError(t, s.UpdateColleagues(ctx, func(cs []domain.Colleague) ([]domain.Colleague, error) {
		return append(cs, domain.Colleague{ID: "col1", Name: "Mehdi Tazi", Phone: "+212661998877"}), nil
	}))
	require.NoError(t, s.UpdatePartners(ctx, func(ps []domain.CorporatePartner) ([]domain.CorporatePartner, error) {
		return append(ps, domain.CorporatePartner{ID: "p1", CompanyName: "TechSolutions", ContactPerson: "Omar Fassi"}), nil
	}))
	require.NoError(t, s.SetProfile(ctx, domain.AgentProfile{Name: "Agent", AgencyName: "TravelPro"}))

	reopened, err := Open(ctx, kv)
	require.NoError(t, err)
	assert.Len(t, reopened.Clients(), 1)
	assert.Len(t, reopened.Colleagues(), 1)
	assert.Len(t, reopened.Partners(), 1)
	require.NotNil(t, reopened.Profile())
	assert.Equal(t, "TravelPro", reopened.Profile().AgencyName)
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, repository.NewMemoryKV())
	require.NoError(t, err)
	require.NoError(t, s.UpdateBookings(ctx, func(bs []domain.Booking) ([]domain.Booking, error) {
		return append(bs, sampleBooking("b1", "ABC123"), sampleBooking("b2", "XYZ789")), nil
	}))
	require.NoError(t, s.UpdateClients(ctx, func(cs []domain.Client) ([]domain.Client, error) {
		return append(cs, domain.Client{ID: "c1", Name: "Sarah Amrani", Phone: "+212600112233", Language: "fr"}), nil
	}))
	require.NoError(t, s.SetProfile(ctx, domain.AgentProfile{Name: "Agent", AgencyName: "TravelPro"}))
	return s
}

func TestExportImport_RoundTrip(t *testing.T) {
	source := seededStore(t)

	var buf bytes.Buffer
	require.NoError(t, source.WriteExport(&buf, now))

	target, err := Open(context.Background(), repository.NewMemoryKV())
	require.NoError(t, err)
	require.NoError(t, target.ImportAll(context.Background(), &buf))

	var want, got bytes.Buffer
	require.NoError(t, source.WriteExport(&want, now))
	require.NoError(t, target.WriteExport(&got, now))
	assert.JSONEq(t, want.String(), got.String())
}

func TestExportAll_DocumentShape(t *testing.T) {
	s := seededStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.WriteExport(&buf, now))

	out := buf.String()
	for _, key := range []string{`"bookings"`, `"clients"`, `"colleagues"`, `"partners"`, `"profile"`, `"exportDate"`, `"version": "1.0.0"`} {
		assert.Contains(t, out, key)
	}
	assert.Equal(t, "TravelPro_Backup_2026-10-19.json", BackupFileName(now))
}

func TestImportAll_AbsentKeysUntouched(t *testing.T) {
	s := seededStore(t)

	err := s.ImportAll(context.Background(), strings.NewReader(`{"clients": [], "profile": null, "version": "1.0.0"}`))
	require.NoError(t, err)

	assert.Len(t, s.Bookings(), 2)
	assert.Empty(t, s.Clients())
	require.NotNil(t, s.Profile())
}

func TestImportAll_MalformedLeavesState(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"bookings": [`,
		"null document":  `null`,
		"array document": `[]`,
		"wrong type":     `{"clients": [], "bookings": "nope"}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s := seededStore(t)
			err := s.ImportAll(context.Background(), strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrMalformedDocument)
			assert.Len(t, s.Bookings(), 2)
			assert.Len(t, s.Clients(), 1)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failure") }

func TestImportAll_ReadFailure(t *testing.T) {
	s := seededStore(t)
	err := s.ImportAll(context.Background(), failingReader{})
	assert.ErrorIs(t, err, ErrMalformedDocument)
	assert.Len(t, s.Bookings(), 2)
}
