package dashboard

import (
	"context"
	"strconv"
	"sync"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/display"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/internal/mutation"
	"github.com/karanch577/sneakerx-admin/internal/query"
	"go.uber.org/zap"
)

// OrderLine is one line item with the product it refers to. Product is nil
// when the product could not be loaded.
type OrderLine struct {
	Item    model.OrderedProduct `json:"item"`
	Product *model.Product       `json:"product,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// OrderDetail is an order with its line products resolved
type OrderDetail struct {
	Order model.Order `json:"order"`
	Lines []OrderLine `json:"lines"`
}

// Orders is the order screen
type Orders struct {
	Screen *Screen[model.Order]
	Update *mutation.Mutation[Change[model.OrderUpdate], model.Order]
	Delete *mutation.Mutation[string, *model.Deleted]

	e env
}

func newOrders(e env) *Orders {
	res := e.api.Orders
	derive := func(items []model.Order) []model.Order {
		return display.DeriveOrders(display.FormatDates(e.opts.Formatter, items))
	}

	o := &Orders{
		Screen: &Screen[model.Order]{
			List: query.NewList(res.Name(), res.List, listOptions(e, e.opts.PageSize, derive)...),
			Columns: []Column[model.Order]{
				{Header: "Order By", Value: func(o model.Order) string { return o.OrderBy }},
				{Header: "No of Products", Value: func(o model.Order) string { return strconv.Itoa(o.NoOfProducts) }},
				{Header: "Order Status", Value: func(o model.Order) string { return string(o.Status) }},
				{Header: "Amount", Value: func(o model.Order) string { return strconv.FormatFloat(o.Amount, 'f', -1, 64) }},
				{Header: "Transaction Status", Value: func(o model.Order) string { return o.TransactionStatus }},
				{Header: "Transaction Id", Value: func(o model.Order) string { return o.TransactionID }},
				{Header: "Created At", Value: func(o model.Order) string { return createdAt(o.Timestamps) }},
				{Header: "Updated At", Value: func(o model.Order) string { return updatedAt(o.Timestamps) }},
			},
			ID: func(o model.Order) string { return o.ID },
		},
		e: e,
	}

	o.Update = mutate(e, mutation.Config[Change[model.OrderUpdate], model.Order]{
		Name:     "order.update",
		Validate: func(ch Change[model.OrderUpdate]) error { return ch.Input.Validate() },
		Do: func(ctx context.Context, ch Change[model.OrderUpdate]) (model.Order, error) {
			return res.Update(ctx, ch.ID, ch.Input)
		},
		SuccessMessage: func(model.Order) string { return "order updated successfully" },
		Invalidates:    []string{apiclient.ResourceOrders},
	})
	o.Delete = deleter(e, apiclient.ResourceOrders, res.Remove)
	return o
}

// Detail loads an order and the product of every line. A line whose
// product fails to load keeps the error text instead.
func (o *Orders) Detail(ctx context.Context, id string) (OrderDetail, error) {
	order, err := fetchOne(ctx, o.e, apiclient.ResourceOrders, id, o.e.api.Orders.Get)
	if err != nil {
		return OrderDetail{}, err
	}
	order = display.DeriveOrders([]model.Order{formatOne(o.e.opts.Formatter, order)})[0]

	lines := make([]OrderLine, len(order.Products))
	var wg sync.WaitGroup
	for i, item := range order.Products {
		lines[i].Item = item
		wg.Add(1)
		go func(line *OrderLine) {
			defer wg.Done()
			p, err := o.e.api.Products.Get(ctx, line.Item.ProductID)
			if err != nil {
				o.e.log.Warn("Order line product failed to load",
					zap.String("order_id", id), zap.String("product_id", line.Item.ProductID), zap.Error(err))
				line.Error = apiclient.Message(err)
				return
			}
			line.Product = &p
		}(&lines[i])
	}
	wg.Wait()

	return OrderDetail{Order: order, Lines: lines}, nil
}
