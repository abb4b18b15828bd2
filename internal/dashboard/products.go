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

// ProductUpdate edits a product and removes some of its photos. Current is
// the product as loaded into the edit form.
type ProductUpdate struct {
	ID           string
	Current      model.Product
	RemovePhotos []model.Photo
	Form         model.ProductForm
}

// Validate rejects removing every photo before the form rules are checked
func (u ProductUpdate) Validate() error {
	if err := model.CheckPhotoRemoval(u.Current, u.RemovePhotos); err != nil {
		return err
	}
	return u.Form.Validate()
}

// Products is the product screen
type Products struct {
	Screen *Screen[model.Product]
	Form   *Form[model.ProductForm]
	Add    *mutation.Mutation[model.ProductForm, model.Product]
	Update *mutation.Mutation[ProductUpdate, model.Product]
	Delete *mutation.Mutation[string, *model.Deleted]

	e env
}

func newProducts(e env) *Products {
	p := &Products{
		Screen: productScreen(e, e.opts.PageSize),
		Form:   NewForm(model.ProductForm{}),
		e:      e,
	}
	res := e.api.Products

	p.Add = mutate(e, mutation.Config[model.ProductForm, model.Product]{
		Name:     "product.create",
		Validate: model.ProductForm.Validate,
		Do: func(ctx context.Context, f model.ProductForm) (model.Product, error) {
			f.Sold = nil
			return res.Create(ctx, f)
		},
		OnSuccess:      func(model.Product) { p.Form.Reset() },
		SuccessMessage: func(out model.Product) string { return fmt.Sprintf("%s successfully added", out.Name) },
		Invalidates:    []string{apiclient.ResourceProducts},
	})
	p.Update = mutate(e, mutation.Config[ProductUpdate, model.Product]{
		Name:     "product.update",
		Validate: ProductUpdate.Validate,
		Do: func(ctx context.Context, u ProductUpdate) (model.Product, error) {
			if len(u.RemovePhotos) > 0 {
				if err := res.UpdatePhotos(ctx, u.ID, u.RemovePhotos); err != nil {
					return model.Product{}, err
				}
			}
			return res.Update(ctx, u.ID, u.Form)
		},
		SuccessMessage: func(out model.Product) string { return fmt.Sprintf("%s updated successfully", out.Name) },
		Invalidates:    []string{apiclient.ResourceProducts},
	})
	p.Delete = deleter(e, apiclient.ResourceProducts, res.Remove)
	return p
}

func productScreen(e env, size int) *Screen[model.Product] {
	res := e.api.Products
	format := func(items []model.Product) []model.Product {
		return display.FormatDates(e.opts.Formatter, items)
	}
	return &Screen[model.Product]{
		List: query.NewList(res.Name(), res.List, listOptions(e, size, format)...),
		Columns: []Column[model.Product]{
			{Header: "Name", Value: func(p model.Product) string { return p.Name }},
			{Header: "Price", Value: func(p model.Product) string { return strconv.Itoa(p.Price) }},
			{Header: "Selling Price", Value: func(p model.Product) string { return strconv.Itoa(p.SellingPrice) }},
			{Header: "Created At", Value: func(p model.Product) string { return createdAt(p.Timestamps) }},
			{Header: "Updated At", Value: func(p model.Product) string { return updatedAt(p.Timestamps) }},
		},
		ID: func(p model.Product) string { return p.ID },
	}
}

// FilterByCategory narrows the list to one category. "all" or "" clears
// the filter.
func (p *Products) FilterByCategory(ctx context.Context, categoryID string) error {
	return p.Screen.List.SetFilter(ctx, apiclient.ProductCategoryFilter, categoryID)
}

// Categories lists the categories a product can be filed under
func (p *Products) Categories(ctx context.Context) ([]model.Category, error) {
	page, err := p.e.api.Categories.List(ctx, 1, optionsLimit, nil)
	if err != nil {
		p.e.notifier.Notify(failure(err))
		return nil, err
	}
	return page.Items, nil
}

// Detail loads one product
func (p *Products) Detail(ctx context.Context, id string) (model.Product, error) {
	product, err := fetchOne(ctx, p.e, apiclient.ResourceProducts, id, p.e.api.Products.Get)
	if err != nil {
		return model.Product{}, err
	}
	return formatOne(p.e.opts.Formatter, product), nil
}

// EditForm loads a product and the form prefilled from it. The sold list
// covers every stocked size.
func (p *Products) EditForm(ctx context.Context, id string) (model.Product, model.ProductForm, error) {
	product, err := p.Detail(ctx, id)
	if err != nil {
		return model.Product{}, model.ProductForm{}, err
	}
	return product, FormFromProduct(product), nil
}

// FormFromProduct fills a product form with the product's current values
func FormFromProduct(p model.Product) model.ProductForm {
	sizes := make([]model.SizeQuantity, len(p.Sizes))
	for i, s := range p.Sizes {
		sizes[i] = model.SizeQuantity{Size: s.Size, Quantity: s.Quantity}
	}
	return model.ProductForm{
		Name:         p.Name,
		Price:        p.Price,
		SellingPrice: p.SellingPrice,
		CollectionID: p.Collection.ID,
		Description:  p.Description,
		ColourShown:  p.ColourShown,
		Style:        p.Style,
		Sizes:        sizes,
		Sold:         display.ReconcileSold(p),
	}
}
