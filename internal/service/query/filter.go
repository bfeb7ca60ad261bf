package query

import (
	"strings"

	"github.com/Domenick1991/travelpro/internal/domain"
)

// All disables a category or status predicate.
const All = "All"

type Criteria struct {
	Category string `form:"category" json:"category"`
	Status   string `form:"status" json:"status"`
	Search   string `form:"q" json:"search"`
}

// Filter keeps bookings matching every predicate, in input order. The search
// text matches PNR, client name or route, case-insensitively.
func Filter(bookings []domain.Booking, c Criteria) []domain.Booking {
	needle := strings.ToLower(c.Search)

	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !matchesExact(c.Category, string(b.Category)) {
			continue
		}
		if !matchesExact(c.Status, string(b.Status)) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.PNR), needle) &&
			!strings.Contains(strings.ToLower(b.ClientName), needle) &&
			!strings.Contains(strings.ToLower(b.Route), needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesExact(want, got string) bool {
	return want == "" || want == All || want == got
}
