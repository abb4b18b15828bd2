package dashboard

import (
	"context"
	"fmt"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/display"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/mutation"
	"github.com/karanch577/sneakerx-admin/internal/query"
)

// Users is the user screen
type Users struct {
	Screen *Screen[model.User]
	Form   *Form[model.UserInput]
	Add    *mutation.Mutation[model.UserInput, model.User]
	Update *mutation.Mutation[Change[model.UserInput], model.User]
	Delete *mutation.Mutation[string, *model.Deleted]

	e env
}

func newUsers(e env) *Users {
	res := e.api.Users
	u := &Users{
		Screen: userScreen(e, e.opts.PageSize),
		Form:   NewForm(model.UserInput{}),
		e:      e,
	}

	u.Add = mutate(e, mutation.Config[model.UserInput, model.User]{
		Name:     "user.create",
		Validate: model.UserInput.ValidateCreate,
		Do: func(ctx context.Context, in model.UserInput) (model.User, error) {
			return res.Create(ctx, in)
		},
		OnSuccess:      func(model.User) { u.Form.Reset() },
		SuccessMessage: func(out model.User) string { return fmt.Sprintf("%s successfully added", out.Name) },
		Invalidates:    []string{apiclient.ResourceUsers},
	})
	u.Update = mutate(e, mutation.Config[Change[model.UserInput], model.User]{
		Name:     "user.update",
		Validate: func(ch Change[model.UserInput]) error { return ch.Input.ValidateUpdate() },
		Do: func(ctx context.Context, ch Change[model.UserInput]) (model.User, error) {
			return res.Update(ctx, ch.ID, ch.Input)
		},
		SuccessMessage: func(out model.User) string { return fmt.Sprintf("%s updated successfully", out.Name) },
		Invalidates:    []string{apiclient.ResourceUsers},
	})
	u.Delete = deleter(e, apiclient.ResourceUsers, res.Remove)
	return u
}

func userScreen(e env, size int) *Screen[model.User] {
	res := e.api.Users
	format := func(items []model.User) []model.User {
		return display.FormatDates(e.opts.Formatter, items)
	}
	return &Screen[model.User]{
		List: query.NewList(res.Name(), res.List, listOptions(e, size, format)...),
		Columns: []Column[model.User]{
			{Header: "Name", Value: func(u model.User) string { return u.Name }},
			{Header: "Email", Value: func(u model.User) string { return u.Email }},
			{Header: "Role", Value: func(u model.User) string { return u.Role }},
			{Header: "Created At", Value: func(u model.User) string { return createdAt(u.Timestamps) }},
			{Header: "Updated At", Value: func(u model.User) string { return updatedAt(u.Timestamps) }},
		},
		ID: func(u model.User) string { return u.ID },
	}
}

// Roles lists the roles a user can be given
func (u *Users) Roles(ctx context.Context) ([]string, error) {
	roles, err := u.e.api.Users.Roles(ctx)
	if err != nil {
		u.e.notifier.Notify(failure(err))
		return nil, err
	}
	return roles, nil
}
