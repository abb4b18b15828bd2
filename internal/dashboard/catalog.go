package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/display"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/mutation"
	"github.com/karanch577/sneakerx-admin/internal/query"
)

// Categories is the category screen
type Categories struct {
	Screen *Screen[model.Category]
	Form   *Form[model.CategoryInput]
	Add    *mutation.Mutation[model.CategoryInput, model.Category]
	Update *mutation.Mutation[Change[model.CategoryInput], model.Category]
	Delete *mutation.Mutation[string, *model.Deleted]
}

func newCategories(e env) *Categories {
	res := e.api.Categories
	format := func(items []model.Category) []model.Category {
		return display.FormatDates(e.opts.Formatter, items)
	}

	c := &Categories{
		Screen: &Screen[model.Category]{
			List: query.NewList(res.Name(), res.List, listOptions(e, e.opts.PageSize, format)...),
			Columns: []Column[model.Category]{
				{Header: "Name", Value: func(c model.Category) string { return c.Name }},
				{Header: "Created At", Value: func(c model.Category) string { return createdAt(c.Timestamps) }},
				{Header: "Updated At", Value: func(c model.Category) string { return updatedAt(c.Timestamps) }},
			},
			ID: func(c model.Category) string { return c.ID },
		},
		Form: NewForm(model.CategoryInput{}),
	}

	c.Add = mutate(e, mutation.Config[model.CategoryInput, model.Category]{
		Name:     "category.create",
		Validate: model.CategoryInput.Validate,
		Do: func(ctx context.Context, in model.CategoryInput) (model.Category, error) {
			return res.Create(ctx, in)
		},
		OnSuccess:      func(model.Category) { c.Form.Reset() },
		SuccessMessage: func(out model.Category) string { return fmt.Sprintf("%s successfully added", out.Name) },
		Invalidates:    []string{apiclient.ResourceCategories},
	})
	c.Update = mutate(e, mutation.Config[Change[model.CategoryInput], model.Category]{
		Name:     "category.update",
		Validate: func(ch Change[model.CategoryInput]) error { return ch.Input.Validate() },
		Do: func(ctx context.Context, ch Change[model.CategoryInput]) (model.Category, error) {
			return res.Update(ctx, ch.ID, ch.Input)
		},
		SuccessMessage: func(out model.Category) string { return fmt.Sprintf("%s updated successfully", out.Name) },
		Invalidates:    []string{apiclient.ResourceCategories},
	})
	c.Delete = deleter(e, apiclient.ResourceCategories, res.Remove)
	return c
}

// Coupons is the coupon screen
type Coupons struct {
	Screen *Screen[model.Coupon]
	Form   *Form[model.CouponCreate]
	Add    *mutation.Mutation[model.CouponCreate, model.Coupon]
	Update *mutation.Mutation[Change[model.CouponUpdate], model.Coupon]
	Delete *mutation.Mutation[string, *model.Deleted]
}

func newCoupons(e env) *Coupons {
	res := e.api.Coupons
	format := func(items []model.Coupon) []model.Coupon {
		return display.FormatDates(e.opts.Formatter, items)
	}

	c := &Coupons{
		Screen: &Screen[model.Coupon]{
			List: query.NewList(res.Name(), res.List, listOptions(e, e.opts.PageSize, format)...),
			Columns: []Column[model.Coupon]{
				{Header: "Code", Value: func(c model.Coupon) string { return c.Code }},
				{Header: "Discount", Value: func(c model.Coupon) string { return strconv.Itoa(c.Discount) + "%" }},
				{Header: "Active", Value: func(c model.Coupon) string { return strconv.FormatBool(c.Active) }},
				{Header: "Created At", Value: func(c model.Coupon) string { return createdAt(c.Timestamps) }},
				{Header: "Updated At", Value: func(c model.Coupon) string { return updatedAt(c.Timestamps) }},
			},
			ID: func(c model.Coupon) string { return c.ID },
		},
		Form: NewForm(model.CouponCreate{}),
	}

	c.Add = mutate(e, mutation.Config[model.CouponCreate, model.Coupon]{
		Name:     "coupon.create",
		Validate: model.CouponCreate.Validate,
		Do: func(ctx context.Context, in model.CouponCreate) (model.Coupon, error) {
			return res.Create(ctx, in)
		},
		OnSuccess:      func(model.Coupon) { c.Form.Reset() },
		SuccessMessage: func(out model.Coupon) string { return fmt.Sprintf("%s successfully added", out.Code) },
		Invalidates:    []string{apiclient.ResourceCoupons},
	})
	c.Update = mutate(e, mutation.Config[Change[model.CouponUpdate], model.Coupon]{
		Name:     "coupon.update",
		Validate: func(ch Change[model.CouponUpdate]) error { return ch.Input.Validate() },
		Do: func(ctx context.Context, ch Change[model.CouponUpdate]) (model.Coupon, error) {
			return res.Update(ctx, ch.ID, ch.Input)
		},
		SuccessMessage: func(out model.Coupon) string { return fmt.Sprintf("%s updated successfully", out.Code) },
		Invalidates:    []string{apiclient.ResourceCoupons},
	})
	c.Delete = deleter(e, apiclient.ResourceCoupons, res.Remove)
	return c
}
