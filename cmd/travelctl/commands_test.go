package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/travelpro/config"
	"github.com/Domenick1991/travelpro/internal/domain"
	"github.com/Domenick1991/travelpro/internal/report"
	"github.com/Domenick1991/travelpro/internal/repository"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newEnv(t *testing.T, bookings ...domain.Booking) (*env, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, repository.NewMemoryKV())
	require.NoError(t, err)
	require.NoError(t, st.UpdateBookings(ctx, func(bs []domain.Booking) ([]domain.Booking, error) {
		return append(bs, bookings...), nil
	}))

	cfg := config.Default()
	cfg.Report.Timezone = "UTC"
	out := &bytes.Buffer{}
	return &env{ctx: ctx, cfg: cfg, store: st, out: out, now: func() time.Time { return now }}, out
}

func booking(id, pnr string, status domain.BookingStatus, deadlineIn time.Duration) domain.Booking {
	return domain.Booking{
		ID:                id,
		Category:          domain.CategoryClient,
		ClientName:        "Sarah Amrani",
		Passengers:        []domain.Passenger{{Name: "Sarah Amrani"}},
		Route:             "CMN-CDG",
		TripType:          domain.TripOneWay,
		DepartureDate:     now.Add(96 * time.Hour),
		Price:             3100,
		Currency:          "MAD",
		PNR:               pnr,
		TicketingDeadline: now.Add(deadlineIn),
		Status:            status,
	}
}

func TestRunExportImport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "backup.json")

	source, out := newEnv(t, booking("b1", "ABC123", domain.BookingStatusPending, 5*time.Hour))
	require.NoError(t, runExport(source, []string{"-o", file}))
	assert.Contains(t, out.String(), "wrote "+file)

	target, out := newEnv(t)
	require.NoError(t, runImport(target, []string{file}))
	assert.Contains(t, out.String(), "imported 1 bookings")
	require.Len(t, target.store.Bookings(), 1)
	assert.Equal(t, "ABC123", target.store.Bookings()[0].PNR)
}

func TestRunImport_Errors(t *testing.T) {
	e, _ := newEnv(t)
	assert.ErrorContains(t, runImport(e, nil), "usage")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1, 2]"), 0o600))
	assert.ErrorIs(t, runImport(e, []string{bad}), store.ErrMalformedDocument)
}

func TestRunReport(t *testing.T) {
	e, out := newEnv(t,
		booking("b1", "ABC123", domain.BookingStatusPending, 5*time.Hour),
		booking("b2", "TIX456", domain.BookingStatusTicketed, 5*time.Hour),
	)

	require.NoError(t, runReport(e, []string{"--format", "csv", "--status", "Ticketed", "-o", "-"}))
	records, err := csv.NewReader(out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, report.Columns, records[0])
	assert.Equal(t, "TIX456", records[1][0])

	out.Reset()
	require.NoError(t, runReport(e, nil))
	assert.Contains(t, out.String(), report.Title)
	assert.Contains(t, out.String(), "ABC123")

	assert.ErrorIs(t, runReport(e, []string{"--search", "nobody"}), report.ErrNothingToExport)
	assert.ErrorContains(t, runReport(e, []string{"--format", "pdf"}), "unknown report format")
}

func TestRunUrgent(t *testing.T) {
	e, out := newEnv(t,
		booking("b1", "SOON01", domain.BookingStatusOptioned, 5*time.Hour),
		booking("b2", "FAR002", domain.BookingStatusPending, 100*time.Hour),
	)

	require.NoError(t, runUrgent(e, nil))
	assert.Contains(t, out.String(), "SOON01")
	assert.Contains(t, out.String(), "5h")
	assert.NotContains(t, out.String(), "FAR002")

	out.Reset()
	require.NoError(t, runUrgent(e, []string{"--window", "200"}))
	assert.Contains(t, out.String(), "FAR002")

	out.Reset()
	require.NoError(t, runUrgent(e, []string{"-w", "1"}))
	assert.Contains(t, out.String(), "no urgent bookings")
}

func TestRunCalendar(t *testing.T) {
	e, out := newEnv(t, booking("b1", "ABC123", domain.BookingStatusPending, 5*time.Hour))

	require.NoError(t, runCalendar(e, []string{"-n", "1"}))
	assert.Contains(t, out.String(), "Deadline")
	assert.NotContains(t, out.String(), "Travel")

	empty, out := newEnv(t)
	require.NoError(t, runCalendar(empty, nil))
	assert.Contains(t, out.String(), "nothing upcoming")
}

func TestRunSummary(t *testing.T) {
	e, out := newEnv(t,
		booking("b1", "ABC123", domain.BookingStatusPending, 5*time.Hour),
		booking("b2", "XYZ789", domain.BookingStatusCancelled, 5*time.Hour),
	)

	require.NoError(t, runSummary(e, nil))
	assert.Contains(t, out.String(), "Pipeline")
	assert.Contains(t, out.String(), "3100.00")
}

func TestRun_UnknownCommand(t *testing.T) {
	assert.ErrorContains(t, run([]string{"fly"}), `unknown command "fly"`)
}
