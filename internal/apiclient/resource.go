package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/karanch577/sneakerx-admin/internal/model"
)

// Endpoints describes how a resource maps onto the API. Path templates use
// ":id" for the record id. An empty path marks an unsupported operation.
type Endpoints struct {
	Resource     string
	List         string
	Get          string
	Create       string
	Update       string
	UpdateMethod string
	Delete       string
	ListKey      string
	ItemKey      string
}

// Page is one page of a list response. Pages are 1-based.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
}

// Resource is the typed CRUD surface of one API resource
type Resource[T any] struct {
	client *Client
	ep     Endpoints
}

// NewResource binds endpoints to a client
func NewResource[T any](c *Client, ep Endpoints) *Resource[T] {
	if ep.UpdateMethod == "" {
		ep.UpdateMethod = http.MethodPut
	}
	return &Resource[T]{client: c, ep: ep}
}

// Name is the resource name used for metrics and invalidation
func (r *Resource[T]) Name() string {
	return r.ep.Resource
}

// List fetches one page. Empty filter values are not sent.
func (r *Resource[T]) List(ctx context.Context, page, limit int, filters map[string]string) (Page[T], error) {
	if r.ep.List == "" {
		return Page[T]{}, ErrUnsupported
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	for k, v := range filters {
		if v != "" {
			q.Set(k, v)
		}
	}

	env, err := r.client.do(ctx, request{resource: r.ep.Resource, method: http.MethodGet, path: r.ep.List, query: q})
	if err != nil {
		return Page[T]{}, err
	}

	p := Page[T]{Items: []T{}}
	if err := env.decode(r.ep.ListKey, &p.Items); err != nil {
		return Page[T]{}, r.decodeErr(http.MethodGet, r.ep.List, err)
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if err := env.decode("currentPage", &p.CurrentPage); err != nil {
		return Page[T]{}, r.decodeErr(http.MethodGet, r.ep.List, err)
	}
	if err := env.decode("totalPage", &p.TotalPages); err != nil {
		return Page[T]{}, r.decodeErr(http.MethodGet, r.ep.List, err)
	}
	if p.CurrentPage == 0 {
		p.CurrentPage = page
	}
	return p, nil
}

// Get fetches one record
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if r.ep.Get == "" {
		return zero, ErrUnsupported
	}
	return r.item(ctx, request{method: http.MethodGet, path: withID(r.ep.Get, id)})
}

// Create posts a new record and returns it as stored
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T
	if r.ep.Create == "" {
		return zero, ErrUnsupported
	}
	return r.item(ctx, request{method: http.MethodPost, path: r.ep.Create, body: payload})
}

// Update replaces a record's editable fields
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var zero T
	if r.ep.Update == "" {
		return zero, ErrUnsupported
	}
	return r.item(ctx, request{method: r.ep.UpdateMethod, path: withID(r.ep.Update, id), body: payload})
}

// Remove deletes a record and returns the server acknowledgement
func (r *Resource[T]) Remove(ctx context.Context, id string) (*model.Deleted, error) {
	if r.ep.Delete == "" {
		return nil, ErrUnsupported
	}
	path := withID(r.ep.Delete, id)
	env, err := r.client.do(ctx, request{resource: r.ep.Resource, method: http.MethodDelete, path: path})
	if err != nil {
		return nil, err
	}
	return &model.Deleted{Success: true, Message: env.message()}, nil
}

func (r *Resource[T]) item(ctx context.Context, req request) (T, error) {
	var out T
	req.resource = r.ep.Resource
	env, err := r.client.do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := env.decode(r.ep.ItemKey, &out); err != nil {
		return out, r.decodeErr(req.method, req.path, err)
	}
	return out, nil
}

func (r *Resource[T]) decodeErr(method, path string, err error) error {
	return &Error{Kind: KindServer, Op: method + " " + path, Status: http.StatusOK, Err: err}
}

func withID(template, id string) string {
	return strings.ReplaceAll(template, ":id", url.PathEscape(id))
}
