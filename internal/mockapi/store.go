package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karanch577/sneakerx-admin/internal/model"
)

// timeLayout matches the ISO-8601 strings the real API emits
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type account struct {
	model.User
	passwordHash []byte
}

// Store is the in-memory state of the sandbox. Records keep insertion order.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	categories []model.Category
	coupons    []model.Coupon
	products   []model.Product
	orders     []model.Order
	accounts   []account
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) stamp() model.Timestamps {
	ts := s.now().UTC().Format(timeLayout)
	return model.Timestamps{CreatedAt: ts, UpdatedAt: ts}
}

func (s *Store) touch(t *model.Timestamps) {
	t.UpdatedAt = s.now().UTC().Format(timeLayout)
}

func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
}

func indexOf[T any](items []T, id string, idOf func(*T) string) int {
	for i := range items {
		if idOf(&items[i]) == id {
			return i
		}
	}
	return -1
}

func remove[T any](items []T, i int) []T {
	return append(items[:i:i], items[i+1:]...)
}

// paginate returns a copy of one page and the page count ceil(n/limit)
func paginate[T any](items []T, page, limit int) ([]T, int) {
	total := (len(items) + limit - 1) / limit
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}, total
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, total
}

func categoryID(c *model.Category) string { return c.ID }
func couponID(c *model.Coupon) string     { return c.ID }
func productID(p *model.Product) string   { return p.ID }
func orderID(o *model.Order) string       { return o.ID }
func accountID(a *account) string         { return a.ID }

func (s *Store) findAccountByEmail(email string) (account, bool) {
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return account{}, false
}

func (s *Store) users() []model.User {
	out := make([]model.User, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = a.User
	}
	return out
}

func (s *Store) productsInCategory(categoryID string) []model.Product {
	if categoryID == "" {
		return s.products
	}
	out := []model.Product{}
	for _, p := range s.products {
		if p.Collection.ID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// salesSince sums order amounts created at or after since. A zero since
// sums every order.
func (s *Store) salesSince(since time.Time) (float64, int) {
	var (
		total float64
		n     int
	)
	for _, o := range s.orders {
		created, err := time.Parse(time.RFC3339, o.CreatedAt)
		if err != nil {
			continue
		}
		if !since.IsZero() && created.Before(since) {
			continue
		}
		total += o.Amount
		n++
	}
	return total, n
}

func rangeStart(now time.Time, rng model.SalesRange) time.Time {
	switch rng {
	case model.SalesLast7Days:
		return now.AddDate(0, 0, -7)
	case model.SalesLast30Days:
		return now.AddDate(0, 0, -30)
	case model.SalesLast6Months:
		return now.AddDate(0, -6, 0)
	case model.SalesLast12Months:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Roles is the role vocabulary served by /user/role
var Roles = []string{model.RoleAdmin, "USER"}
