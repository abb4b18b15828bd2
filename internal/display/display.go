// Package display derives presentation-only fields from fetched records.
// Every function here is pure: inputs are never modified.
package display

import (
	"time"

	"github.com/karanch577/sneakerx-admin/internal/model"
)

// DateLayout renders dates as DD-MM-YYYY
const DateLayout = "02-01-2006"

// Stamped is implemented by every entity embedding model.Timestamps
type Stamped interface {
	Stamps() *model.Timestamps
}

// Formatter renders dates in a fixed location
type Formatter struct {
	Location *time.Location
}

// UTC formats in UTC
var UTC = Formatter{Location: time.UTC}

// Date renders an ISO-8601 timestamp. Missing or unparsable input renders
// as the empty string.
func (f Formatter) Date(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return ""
	}
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// FormatDates returns copies of records with the formatted date fields set
func FormatDates[T any, P interface {
	*T
	Stamped
}](f Formatter, records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	for i := range out {
		ts := P(&out[i]).Stamps()
		ts.FormattedCreatedAt = f.Date(ts.CreatedAt)
		ts.FormattedUpdatedAt = f.Date(ts.UpdatedAt)
	}
	return out
}

// DeriveOrders returns copies of orders with OrderBy and NoOfProducts set
func DeriveOrders(orders []model.Order) []model.Order {
	out := make([]model.Order, len(orders))
	copy(out, orders)
	for i := range out {
		out[i].OrderBy = ""
		if out[i].User != nil {
			out[i].OrderBy = out[i].User.Name
		}
		out[i].NoOfProducts = len(out[i].Products)
	}
	return out
}

// ReconcileSold returns a sold list covering every stocked size. Existing
// entries keep their quantity; missing sizes get a zero entry in stock order.
func ReconcileSold(p model.Product) []model.SizeQuantity {
	out := make([]model.SizeQuantity, 0, len(p.Sold)+len(p.Sizes))
	seen := make(map[string]bool, len(p.Sold))
	for _, s := range p.Sold {
		out = append(out, s)
		seen[s.Size] = true
	}
	for _, s := range p.Sizes {
		if !seen[s.Size] {
			out = append(out, model.SizeQuantity{Size: s.Size, Quantity: 0})
			seen[s.Size] = true
		}
	}
	return out
}
