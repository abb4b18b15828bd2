// Package query implements the paginated list controller shared by every
// management screen, and the registry that refetches lists after writes.
package query

import (
	"context"
	"errors"
	"sync"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/notify"
	"github.com/karanch577/sneakerx-admin/prometheus"
	"go.uber.org/zap"
)

var (
	// ErrSuperseded is returned when a newer request was issued before the
	// response arrived. The response was discarded.
	ErrSuperseded = errors.New("query superseded by a newer request")
	// ErrClosed is returned once the list is closed
	ErrClosed = errors.New("query list closed")
)

// DefaultPageSize is the page size when none is configured
const DefaultPageSize = 10

// Fetcher loads one page. apiclient.Resource.List satisfies it.
type Fetcher[T any] func(ctx context.Context, page, limit int, filters map[string]string) (apiclient.Page[T], error)

// Option configures a List
type Option[T any] func(*List[T])

// WithPageSize sets the page size
func WithPageSize[T any](n int) Option[T] {
	return func(l *List[T]) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithTransform post-processes fetched items before they are stored
func WithTransform[T any](fn func([]T) []T) Option[T] {
	return func(l *List[T]) { l.transform = fn }
}

// WithNotifier reports fetch failures
func WithNotifier[T any](n notify.Notifier) Option[T] {
	return func(l *List[T]) { l.notifier = n }
}

// WithLogger sets the list logger
func WithLogger[T any](log *zap.Logger) Option[T] {
	return func(l *List[T]) { l.log = log }
}

// WithClient mounts the list on an invalidation registry until Close
func WithClient[T any](c *Client) Option[T] {
	return func(l *List[T]) { l.client = c }
}

// List is a paginated, filterable view of one resource. Only the response
// of the most recently issued request is ever applied.
type List[T any] struct {
	resource  string
	fetch     Fetcher[T]
	limit     int
	transform func([]T) []T
	notifier  notify.Notifier
	log       *zap.Logger
	client    *Client
	unmount   func()

	mu      sync.Mutex
	page    int
	filters Filters
	state   State[T]
	seq     uint64
	version uint64
	settled settled[T]
	closed  bool
	subs    map[int]func(State[T])
	nextSub int

	pubMu     sync.Mutex
	published uint64
}

// settled is the last applied response and the position it was fetched for
type settled[T any] struct {
	state   State[T]
	page    int
	filters Filters
}

// NewList creates an idle list positioned on page 1
func NewList[T any](resource string, fetch Fetcher[T], opts ...Option[T]) *List[T] {
	l := &List[T]{
		resource: resource,
		fetch:    fetch,
		limit:    DefaultPageSize,
		notifier: notify.Discard,
		log:      zap.NewNop(),
		page:     1,
		filters:  Filters{},
		subs:     map[int]func(State[T]){},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With(zap.String("resource", resource))
	l.state.Key = l.keyLocked()
	l.settled = settled[T]{state: l.state, page: l.page, filters: Filters{}}
	if l.client != nil {
		l.unmount = l.client.Mount(l)
	}
	return l
}

// Resource is the name the list is invalidated by
func (l *List[T]) Resource() string {
	return l.resource
}

// Load fetches the current page. Call it on mount.
func (l *List[T]) Load(ctx context.Context) error {
	return l.run(ctx)
}

// Refetch fetches the current page again
func (l *List[T]) Refetch(ctx context.Context) error {
	return l.run(ctx)
}

// GoTo moves to page, clamped to [1, TotalPages]. Moving to the current
// page does nothing.
func (l *List[T]) GoTo(ctx context.Context, page int) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	last := l.state.TotalPages
	if last < 1 {
		last = 1
	}
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	if page == l.page {
		l.mu.Unlock()
		return nil
	}
	l.page = page
	l.mu.Unlock()

	return l.run(ctx)
}

// Next moves one page forward
func (l *List[T]) Next(ctx context.Context) error {
	return l.GoTo(ctx, l.Page()+1)
}

// Prev moves one page back
func (l *List[T]) Prev(ctx context.Context) error {
	return l.GoTo(ctx, l.Page()-1)
}

// SetFilter sets or, for "" and "all", clears one filter and returns to
// page 1. Setting the value already in effect does nothing.
func (l *List[T]) SetFilter(ctx context.Context, key, value string) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	current, set := l.filters[key]
	reset := value == "" || value == FilterAll
	if (reset && !set) || (!reset && set && current == value) {
		l.mu.Unlock()
		return nil
	}
	if reset {
		delete(l.filters, key)
	} else {
		l.filters[key] = value
	}
	l.page = 1
	l.mu.Unlock()

	return l.run(ctx)
}

// Page is the current page
func (l *List[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// Filter returns the value of one filter, FilterAll when unset
func (l *List[T]) Filter(key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.filters[key]; ok {
		return v
	}
	return FilterAll
}

// State returns a snapshot
func (l *List[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Subscribe calls fn with every state transition, in order. fn must not
// call back into the list's fetching methods. The returned func
// unsubscribes.
func (l *List[T]) Subscribe(fn func(State[T])) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Close unmounts the list. Responses still in flight are discarded.
func (l *List[T]) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.subs = map[int]func(State[T]){}
	unmount := l.unmount
	l.mu.Unlock()

	if unmount != nil {
		unmount()
	}
}

func (l *List[T]) run(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.seq++
	seq := l.seq
	page, filters := l.page, l.filters.clone()
	key := l.keyLocked()

	l.state.Key = key
	l.state.Status = Loading
	l.state.Err = nil
	l.publishLocked()

	res, err := l.fetch(ctx, page, l.limit, filters)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		prometheus.RecordListQuery(l.resource, "discarded")
		l.log.Debug("Discarded response for closed list", zap.Int("page", page))
		return ErrClosed
	}
	if seq != l.seq {
		l.mu.Unlock()
		prometheus.RecordListQuery(l.resource, "superseded")
		l.log.Debug("Discarded superseded response", zap.Int("page", page), zap.Uint64("seq", seq))
		return ErrSuperseded
	}

	if abandoned(ctx, err) {
		l.page, l.filters = l.settled.page, l.settled.filters.clone()
		l.state = l.settled.state
		l.publishLocked()

		prometheus.RecordListQuery(l.resource, "discarded")
		l.log.Debug("Discarded abandoned request", zap.Int("page", page), zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return context.Canceled
	}

	if err != nil {
		l.state = State[T]{Key: key, Status: Failure, CurrentPage: page, TotalPages: l.state.TotalPages, Err: err}
		l.settle(page, filters)
		l.publishLocked()

		prometheus.RecordListQuery(l.resource, "failure")
		l.log.Warn("List query failed", zap.Int("page", page), zap.String("filters", key.Filters), zap.Error(err))
		l.notifier.Notify(notify.Failure(apiclient.Message(err)))
		return err
	}

	if last := max(res.TotalPages, 1); page > last {
		l.page = last
		l.mu.Unlock()

		prometheus.RecordListQuery(l.resource, "clamped")
		l.log.Debug("Page past the last page, refetching", zap.Int("page", page), zap.Int("total_pages", res.TotalPages))
		return l.run(ctx)
	}

	items := res.Items
	if items == nil {
		items = []T{}
	}
	if l.transform != nil {
		items = l.transform(items)
	}
	l.state = State[T]{Key: key, Status: Success, Items: items, CurrentPage: page, TotalPages: res.TotalPages}
	l.settle(page, filters)
	l.publishLocked()

	prometheus.RecordListQuery(l.resource, "success")
	l.log.Debug("List query succeeded", zap.Int("page", page), zap.Int("items", len(items)), zap.Int("total_pages", res.TotalPages))
	return nil
}

func (l *List[T]) settle(page int, filters Filters) {
	l.settled = settled[T]{state: l.state, page: page, filters: filters}
}

// abandoned reports whether err comes from the caller giving up on the
// request rather than from the API.
func abandoned(ctx context.Context, err error) bool {
	return err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled))
}

func (l *List[T]) keyLocked() Key {
	return Key{Resource: l.resource, Page: l.page, Filters: l.filters.String()}
}

func (l *List[T]) snapshotLocked() State[T] {
	s := l.state
	if s.Items != nil {
		s.Items = append([]T(nil), s.Items...)
	}
	return s
}

// publishLocked releases l.mu and delivers the current state to
// subscribers. Deliveries older than one already made are dropped, so
// subscribers never observe transitions out of order.
func (l *List[T]) publishLocked() {
	l.version++
	version := l.version
	snap := l.snapshotLocked()
	subs := make([]func(State[T]), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	l.pubMu.Lock()
	defer l.pubMu.Unlock()
	if version <= l.published {
		return
	}
	l.published = version
	for _, fn := range subs {
		fn(snap)
	}
}
