package dashboard

import (
	"context"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/display"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/mutation"
	"github.com/karanch577/sneakerx-admin/internal/notify"
	"github.com/karanch577/sneakerx-admin/internal/query"
	"github.com/karanch577/sneakerx-admin/internal/session"
	"go.uber.org/zap"
)

const (
	// DefaultPreviewSize is the page size of the overview lists
	DefaultPreviewSize = 6
	// optionsLimit bounds the category choices offered by product forms
	optionsLimit = 100
)

// Options tunes the screens
type Options struct {
	PageSize    int
	PreviewSize int
	Formatter   display.Formatter
}

// Change carries the id of an edited record with its new values
type Change[In any] struct {
	ID    string `json:"id"`
	Input In     `json:"input"`
}

// Dashboard holds every management screen of the console
type Dashboard struct {
	Categories *Categories
	Coupons    *Coupons
	Orders     *Orders
	Products   *Products
	Users      *Users
	Overview   *Overview
	Session    *Session
}

// env is what every screen is built from
type env struct {
	api      *apiclient.API
	queries  *query.Client
	notifier notify.Notifier
	log      *zap.Logger
	opts     Options
}

// New builds the screens. Lists are mounted on queries so writes refresh
// them; nothing is fetched until a screen is loaded.
func New(api *apiclient.API, guard *session.Guard, queries *query.Client, notifier notify.Notifier, log *zap.Logger, opts Options) *Dashboard {
	if notifier == nil {
		notifier = notify.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = query.DefaultPageSize
	}
	if opts.PreviewSize <= 0 {
		opts.PreviewSize = DefaultPreviewSize
	}
	if opts.Formatter.Location == nil {
		opts.Formatter = display.UTC
	}

	e := env{api: api, queries: queries, notifier: notifier, log: log, opts: opts}
	return &Dashboard{
		Categories: newCategories(e),
		Coupons:    newCoupons(e),
		Orders:     newOrders(e),
		Products:   newProducts(e),
		Users:      newUsers(e),
		Overview:   newOverview(e),
		Session:    newSession(e, guard),
	}
}

// Close unmounts every list
func (d *Dashboard) Close() {
	d.Categories.Screen.Close()
	d.Coupons.Screen.Close()
	d.Orders.Screen.Close()
	d.Products.Screen.Close()
	d.Users.Screen.Close()
	d.Overview.Products.Close()
	d.Overview.Users.Close()
}

func listOptions[T any](e env, size int, transform func([]T) []T) []query.Option[T] {
	return []query.Option[T]{
		query.WithPageSize[T](size),
		query.WithTransform(transform),
		query.WithNotifier[T](e.notifier),
		query.WithLogger[T](e.log),
		query.WithClient[T](e.queries),
	}
}

func mutate[In, Out any](e env, cfg mutation.Config[In, Out]) *mutation.Mutation[In, Out] {
	cfg.Invalidator = e.queries
	cfg.Notifier = e.notifier
	cfg.Logger = e.log
	return mutation.New(cfg)
}

// deleter removes a record by the clicked row's id and shows the server
// message
func deleter(e env, resource string, remove func(ctx context.Context, id string) (*model.Deleted, error)) *mutation.Mutation[string, *model.Deleted] {
	return mutate(e, mutation.Config[string, *model.Deleted]{
		Name:           resource + ".delete",
		Do:             remove,
		SuccessMessage: func(d *model.Deleted) string { return d.Message },
		Invalidates:    []string{resource},
	})
}

// fetchOne loads a single record for a detail view, notifying on failure
func fetchOne[T any](ctx context.Context, e env, resource, id string, get func(ctx context.Context, id string) (T, error)) (T, error) {
	v, err := get(ctx, id)
	if err != nil {
		e.log.Warn("Detail query failed", zap.String("resource", resource), zap.String("id", id), zap.Error(err))
		e.notifier.Notify(failure(err))
		return v, err
	}
	return v, nil
}

// formatOne formats the dates of a single record
func formatOne[T any, P interface {
	*T
	display.Stamped
}](f display.Formatter, v T) T {
	return display.FormatDates[T, P](f, []T{v})[0]
}

func createdAt(ts model.Timestamps) string { return ts.FormattedCreatedAt }
func updatedAt(ts model.Timestamps) string { return ts.FormattedUpdatedAt }

func failure(err error) notify.Notification {
	return notify.Failure(apiclient.Message(err))
}
