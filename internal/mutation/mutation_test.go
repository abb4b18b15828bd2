package mutation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures effects in the order they happen
type recorder struct {
	events []string
	feed   *notify.Feed
}

func newRecorder() *recorder {
	return &recorder{feed: notify.NewFeed(10)}
}

func (r *recorder) Invalidate(_ context.Context, resources ...string) error {
	for _, res := range resources {
		r.events = append(r.events, "invalidate:"+res)
	}
	return nil
}

func (r *recorder) Notify(n notify.Notification) {
	r.events = append(r.events, "notify:"+n.Title)
	r.feed.Notify(n)
}

func addCategory(r *recorder, do func(context.Context, model.CategoryInput) (model.Category, error)) *Mutation[model.CategoryInput, model.Category] {
	return New(Config[model.CategoryInput, model.Category]{
		Name:     "category.create",
		Do:       do,
		Validate: model.CategoryInput.Validate,
		OnSuccess: func(model.Category) {
			r.events = append(r.events, "reset")
		},
		SuccessMessage: func(c model.Category) string { return c.Name + " successfully added" },
		Invalidates:    []string{"category"},
		Invalidator:    r,
		Notifier:       r,
	})
}

func TestExecute_SuccessOrder(t *testing.T) {
	r := newRecorder()
	var sent model.CategoryInput
	m := addCategory(r, func(_ context.Context, in model.CategoryInput) (model.Category, error) {
		sent = in
		return model.Category{ID: "c1", Name: in.Name}, nil
	})

	out, err := m.Execute(context.Background(), model.CategoryInput{Name: "Sneakers"})
	require.NoError(t, err)
	assert.Equal(t, "c1", out.ID)
	assert.Equal(t, "Sneakers", sent.Name)

	assert.Equal(t, []string{"reset", "invalidate:category", "notify:Sneakers successfully added"}, r.events)
	got := r.feed.Recent()
	require.Len(t, got, 1)
	assert.Equal(t, notify.VariantSuccess, got[0].Variant)
	assert.False(t, m.Pending())
}

func TestExecute_FailureNotifiesServerMessage(t *testing.T) {
	r := newRecorder()
	m := addCategory(r, func(context.Context, model.CategoryInput) (model.Category, error) {
		return model.Category{}, &apiclient.Error{Kind: apiclient.KindValidation, Status: 400, Message: "Category already exists"}
	})

	_, err := m.Execute(context.Background(), model.CategoryInput{Name: "Sneakers"})
	require.ErrorIs(t, err, apiclient.ErrValidation)

	assert.Equal(t, []string{"notify:Category already exists"}, r.events)
	assert.Equal(t, notify.VariantDestructive, r.feed.Recent()[0].Variant)
}

func TestExecute_FailureWithoutMessage(t *testing.T) {
	r := newRecorder()
	m := addCategory(r, func(context.Context, model.CategoryInput) (model.Category, error) {
		return model.Category{}, &apiclient.Error{Kind: apiclient.KindNetwork, Err: errors.New("connection refused")}
	})

	_, err := m.Execute(context.Background(), model.CategoryInput{Name: "Sneakers"})
	require.ErrorIs(t, err, apiclient.ErrNetwork)
	assert.Equal(t, []string{"notify:" + apiclient.GenericMessage}, r.events)
}

func TestExecute_ValidationSkipsCall(t *testing.T) {
	r := newRecorder()
	called := false
	m := addCategory(r, func(context.Context, model.CategoryInput) (model.Category, error) {
		called = true
		return model.Category{}, nil
	})

	_, err := m.Execute(context.Background(), model.CategoryInput{Name: "S"})
	require.ErrorIs(t, err, model.ErrTooShort)
	assert.False(t, called)
	assert.Equal(t, []string{"notify:name must be at least 2 characters"}, r.events)
}

func TestExecute_OneInFlight(t *testing.T) {
	r := newRecorder()
	release := make(chan struct{})
	started := make(chan struct{})
	m := addCategory(r, func(context.Context, model.CategoryInput) (model.Category, error) {
		close(started)
		<-release
		return model.Category{Name: "Sneakers"}, nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := m.Execute(context.Background(), model.CategoryInput{Name: "Sneakers"})
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("mutation did not start")
	}
	assert.True(t, m.Pending())

	_, err := m.Execute(context.Background(), model.CategoryInput{Name: "Sneakers"})
	assert.ErrorIs(t, err, ErrPending)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, m.Pending())
}

func TestExecute_NoMessageNoNotification(t *testing.T) {
	feed := notify.NewFeed(10)
	m := New(Config[string, string]{
		Name:           "noop",
		Do:             func(_ context.Context, in string) (string, error) { return in, nil },
		SuccessMessage: func(string) string { return "" },
		Notifier:       feed,
	})

	out, err := m.Execute(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x", out)
	assert.Empty(t, feed.Recent())
}
