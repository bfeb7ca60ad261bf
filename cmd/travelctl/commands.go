package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Domenick1991/travelpro/internal/report"
	"github.com/Domenick1991/travelpro/internal/service/deadline"
	"github.com/Domenick1991/travelpro/internal/service/query"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/spf13/pflag"
)

// stdoutName makes a writer flag print to the terminal instead of a file.
const stdoutName = "-"

func runExport(e *env, args []string) error {
	now := e.now()
	var output string
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	fs.StringVarP(&output, "output", "o", store.BackupFileName(now), "file to write, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return writeTo(e, output, func(w io.Writer) error {
		return e.store.WriteExport(w, now)
	})
}

func runImport(e *env, args []string) error {
	fs := pflag.NewFlagSet("import", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: travelctl import <file>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	err = e.store.ImportAll(e.ctx, f)
	if errors.Is(err, store.ErrPersist) {
		log.Printf("WARNING: imported data not fully persisted: %v", err)
		err = nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "imported %d bookings from %s\n", len(e.store.Bookings()), fs.Arg(0))
	return nil
}

func runReport(e *env, args []string) error {
	now := e.now()
	var (
		format   string
		output   string
		criteria query.Criteria
	)
	fs := pflag.NewFlagSet("report", pflag.ContinueOnError)
	fs.StringVarP(&format, "format", "f", "table", "table, csv or xlsx")
	fs.StringVar(&criteria.Category, "category", query.All, "Client, Colleague or All")
	fs.StringVar(&criteria.Status, "status", query.All, "booking status or All")
	fs.StringVarP(&criteria.Search, "search", "s", "", "match PNR, client name or a passenger name")
	fs.StringVarP(&output, "output", "o", "", "file to write, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rep, err := report.Build(query.Filter(e.store.Bookings(), criteria), report.Options{
		Location:       e.cfg.Report.Location(),
		DateLayout:     e.cfg.Report.DateLayout,
		DateTimeLayout: e.cfg.Report.DateTimeLayout,
		GeneratedAt:    now,
	})
	if err != nil {
		return err
	}

	switch format {
	case "table":
		_, err := io.WriteString(e.out, rep.Table())
		return err
	case "csv", "xlsx":
		if output == "" {
			output = report.FileName(now, format)
		}
		return writeTo(e, output, func(w io.Writer) error {
			if format == "csv" {
				return rep.WriteCSV(w)
			}
			return rep.WriteXLSX(w)
		})
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func runUrgent(e *env, args []string) error {
	var hours int
	fs := pflag.NewFlagSet("urgent", pflag.ContinueOnError)
	fs.IntVarP(&hours, "window", "w", e.cfg.Booking.UrgentWindowHours, "hours ahead to look")
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := e.now()
	loc := e.cfg.Report.Location()
	urgent := deadline.UrgentBookings(e.store.Bookings(), now, time.Duration(hours)*time.Hour)
	if len(urgent) == 0 {
		fmt.Fprintln(e.out, "no urgent bookings")
		return nil
	}

	rows := make([][]string, 0, len(urgent))
	for _, b := range urgent {
		rows = append(rows, []string{
			b.PNR,
			b.ClientName,
			string(b.Status),
			b.TicketingDeadline.In(loc).Format(e.cfg.Report.DateTimeLayout),
			strconv.Itoa(deadline.HoursRemaining(b, now)) + "h",
		})
	}
	fmt.Fprintln(e.out, renderTable([]string{"PNR", "CLIENT", "STATUS", "DEADLINE", "LEFT"}, rows))
	return nil
}

func runCalendar(e *env, args []string) error {
	var limit int
	fs := pflag.NewFlagSet("calendar", pflag.ContinueOnError)
	fs.IntVarP(&limit, "limit", "n", 0, "show at most this many events, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	events := deadline.UpcomingEvents(e.store.Bookings(), e.now())
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	if len(events) == 0 {
		fmt.Fprintln(e.out, "nothing upcoming")
		return nil
	}

	loc := e.cfg.Report.Location()
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			ev.At.In(loc).Format(e.cfg.Report.DateTimeLayout),
			string(ev.Kind),
			ev.Booking.PNR,
			ev.Booking.ClientName,
			ev.Booking.Route,
		})
	}
	fmt.Fprintln(e.out, renderTable([]string{"WHEN", "EVENT", "PNR", "CLIENT", "ROUTE"}, rows))
	return nil
}

func runSummary(e *env, args []string) error {
	fs := pflag.NewFlagSet("summary", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := deadline.Summarize(e.store.Bookings(), e.now(), e.cfg.Booking.UrgentWindow())
	rows := [][]string{
		{"Total", strconv.Itoa(s.Total)},
		{"Active", strconv.Itoa(s.Active)},
		{"Ticketed", strconv.Itoa(s.Ticketed)},
		{"Closed", strconv.Itoa(s.Closed)},
		{"Urgent", strconv.Itoa(s.Urgent)},
		{"Pipeline", strconv.FormatFloat(s.PipelineValue, 'f', 2, 64)},
	}
	fmt.Fprintln(e.out, renderTable([]string{"", "BOOKINGS"}, rows))
	return nil
}

func writeTo(e *env, name string, write func(io.Writer) error) error {
	if name == stdoutName {
		return write(e.out)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "wrote %s\n", name)
	return nil
}
