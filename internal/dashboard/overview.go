package dashboard

import (
	"context"
	"errors"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"go.uber.org/zap"
)

// ErrUnknownRange rejects a sales range outside the fixed set
var ErrUnknownRange = errors.New("unknown sales range")

// SalesSummary is the overall total and the total of one range
type SalesSummary struct {
	Overall model.Sales      `json:"overall"`
	Range   model.SalesRange `json:"range"`
	InRange model.Sales      `json:"inRange"`
}

// Overview is the dashboard home: sales totals and short product and
// user lists
type Overview struct {
	Products *Screen[model.Product]
	Users    *Screen[model.User]

	e env
}

func newOverview(e env) *Overview {
	return &Overview{
		Products: productScreen(e, e.opts.PreviewSize),
		Users:    userScreen(e, e.opts.PreviewSize),
		e:        e,
	}
}

// Sales loads the overall total and the total of rng, the first range
// when rng is empty
func (o *Overview) Sales(ctx context.Context, rng model.SalesRange) (SalesSummary, error) {
	if rng == "" {
		rng = model.SalesRanges[0]
	}
	if !rng.Valid() {
		return SalesSummary{}, ErrUnknownRange
	}

	orders := o.e.api.Orders
	overall, err := orders.TotalSales(ctx, "")
	if err != nil {
		return SalesSummary{}, o.salesFailed(rng, err)
	}
	inRange, err := orders.TotalSales(ctx, rng)
	if err != nil {
		return SalesSummary{}, o.salesFailed(rng, err)
	}
	return SalesSummary{Overall: overall, Range: rng, InRange: inRange}, nil
}

func (o *Overview) salesFailed(rng model.SalesRange, err error) error {
	o.e.log.Warn("Total sales query failed", zap.String("range", string(rng)), zap.Error(err))
	o.e.notifier.Notify(failure(err))
	return err
}
