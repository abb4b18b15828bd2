// Package notify delivers the operator-facing notifications raised by list
// and mutation controllers.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Variant is the visual style of a notification
type Variant string

const (
	VariantSuccess     Variant = "dark"
	VariantDestructive Variant = "destructive"
)

// Notification is one toast
type Notification struct {
	Variant Variant   `json:"variant"`
	Title   string    `json:"title"`
	At      time.Time `json:"at"`
}

// Notifier receives notifications
type Notifier interface {
	Notify(n Notification)
}

// Success builds a success notification
func Success(title string) Notification {
	return Notification{Variant: VariantSuccess, Title: title, At: time.Now()}
}

// Failure builds a destructive notification
func Failure(title string) Notification {
	return Notification{Variant: VariantDestructive, Title: title, At: time.Now()}
}

// Discard drops every notification
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) {}

// LogNotifier writes notifications to a zap logger
type LogNotifier struct {
	Logger *zap.Logger
}

func (l LogNotifier) Notify(n Notification) {
	if n.Variant == VariantDestructive {
		l.Logger.Warn("Notification", zap.String("variant", string(n.Variant)), zap.String("title", n.Title))
		return
	}
	l.Logger.Info("Notification", zap.String("variant", string(n.Variant)), zap.String("title", n.Title))
}

// Feed keeps the most recent notifications in memory for the console to
// hand to its client
type Feed struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

// NewFeed keeps at most limit notifications, dropping the oldest
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{limit: limit}
}

func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]Notification(nil), f.items[over:]...)
	}
}

// Recent returns a copy of the retained notifications, oldest first
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Drain returns the retained notifications and empties the feed
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	if out == nil {
		out = []Notification{}
	}
	f.items = nil
	return out
}

// Multi fans a notification out to several notifiers
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, x := range m {
		x.Notify(n)
	}
}
