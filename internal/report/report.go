// Package report turns a filtered booking list into the tabular booking
// report, and writes it as a spreadsheet, CSV or terminal table.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/travelpro/internal/domain"
)

const Title = "FLIGHT BOOKING REPORT"

var ErrNothingToExport = errors.New("no bookings to export")

// Columns is the fixed column order of the report.
var Columns = []string{
	"PNR", "STATUS", "CATEGORY", "CLIENT NAME", "NOTES", "PASSENGERS", "ROUTE", "AIRLINE",
	"DEPARTURE", "RETURN", "PRICE", "CURRENCY", "DEADLINE",
}

const priceColumn = 10

type Options struct {
	Location       *time.Location
	DateLayout     string
	DateTimeLayout string
	GeneratedAt    time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.DateLayout == "" {
		o.DateLayout = "02/01/2006"
	}
	if o.DateTimeLayout == "" {
		o.DateTimeLayout = "02/01/2006 15:04"
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now()
	}
	return o
}

type Row struct {
	Cells []string
	Price float64
}

type Report struct {
	Title       string
	GeneratedAt time.Time
	Columns     []string
	Rows        []Row

	location       *time.Location
	dateTimeLayout string
}

// Build makes one row per booking in the order given. An empty list is
// refused rather than producing a header-only report.
func Build(bookings []domain.Booking, opts Options) (*Report, error) {
	if len(bookings) == 0 {
		return nil, ErrNothingToExport
	}
	opts = opts.withDefaults()

	rows := make([]Row, 0, len(bookings))
	for _, b := range bookings {
		ret := "-"
		if b.ReturnDate != nil {
			ret = b.ReturnDate.In(opts.Location).Format(opts.DateLayout)
		}
		rows = append(rows, Row{
			Cells: []string{
				b.PNR,
				string(b.Status),
				string(b.Category),
				b.ClientName,
				b.ClientDivers,
				strings.Join(b.PassengerNames(), ", "),
				b.Route,
				b.Airline,
				b.DepartureDate.In(opts.Location).Format(opts.DateLayout),
				ret,
				strconv.FormatFloat(b.Price, 'f', -1, 64),
				b.Currency,
				b.TicketingDeadline.In(opts.Location).Format(opts.DateTimeLayout),
			},
			Price: b.Price,
		})
	}

	return &Report{
		Title:          Title,
		GeneratedAt:    opts.GeneratedAt,
		Columns:        append([]string(nil), Columns...),
		Rows:           rows,
		location:       opts.Location,
		dateTimeLayout: opts.DateTimeLayout,
	}, nil
}

func (r *Report) GeneratedLine() string {
	loc := r.location
	if loc == nil {
		loc = time.UTC
	}
	layout := r.dateTimeLayout
	if layout == "" {
		layout = "02/01/2006 15:04"
	}
	return fmt.Sprintf("Generated on: %s", r.GeneratedAt.In(loc).Format(layout))
}

// Records returns the header followed by the data rows.
func (r *Report) Records() [][]string {
	records := make([][]string, 0, len(r.Rows)+1)
	records = append(records, r.Columns)
	for _, row := range r.Rows {
		records = append(records, row.Cells)
	}
	return records
}

func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("TravelPro_Bookings_%s.%s", now.Format("2006-01-02"), ext)
}
