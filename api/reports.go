package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/travelpro/internal/report"
	"github.com/Domenick1991/travelpro/internal/service/booking"
	"github.com/Domenick1991/travelpro/internal/service/query"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Backup is the whole-dataset export and restore surface of the store.
type Backup interface {
	WriteExport(w io.Writer, now time.Time) error
	ImportAll(ctx context.Context, r io.Reader) error
}

type ReportHandler struct {
	bookings booking.BookingUseCase
	backup   Backup
	options  report.Options
	now      func() time.Time
}

func NewReportHandler(bookings booking.BookingUseCase, backup Backup, options report.Options, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{bookings: bookings, backup: backup, options: options, now: now}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/reports", h.report)
	router.GET("/backup", h.export)
	router.POST("/backup", h.restore)
}

// report exports the bookings matching the list filters as a spreadsheet.
func (h *ReportHandler) report(c *gin.Context) {
	var criteria query.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := h.now()
	opts := h.options
	opts.GeneratedAt = now
	rep, err := report.Build(query.Filter(h.bookings.ListBookings(c.Request.Context()), criteria), opts)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var (
		buf         bytes.Buffer
		ext         string
		contentType string
	)
	switch format := c.DefaultQuery("format", "xlsx"); format {
	case "xlsx":
		ext, contentType = "xlsx", xlsxContentType
		err = rep.WriteXLSX(&buf)
	case "csv":
		ext, contentType = "csv", "text/csv; charset=utf-8"
		err = rep.WriteCSV(&buf)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown report format %q", format)})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	attachment(c, report.FileName(now, ext))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ReportHandler) export(c *gin.Context) {
	now := h.now()
	var buf bytes.Buffer
	if err := h.backup.WriteExport(&buf, now); err != nil {
		abortWithError(c, err)
		return
	}
	attachment(c, store.BackupFileName(now))
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

func (h *ReportHandler) restore(c *gin.Context) {
	err := h.backup.ImportAll(c.Request.Context(), c.Request.Body)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrPersist):
		log.Printf("WARNING: imported data not fully persisted: %v", err)
	default:
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}
