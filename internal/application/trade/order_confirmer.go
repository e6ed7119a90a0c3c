package trade

import (
	"context"

	"github.com/erp/reseller/internal/domain/trade"
)

// OrderConfirmer performs the sales-side confirmation of an order. The
// commission engine runs its own checks before it and confirms the
// commission only after it succeeds.
type OrderConfirmer interface {
	ConfirmOrder(ctx context.Context, order *trade.SalesOrder) error
}

// OrderConfirmerFunc adapts a function to OrderConfirmer
type OrderConfirmerFunc func(ctx context.Context, order *trade.SalesOrder) error

// ConfirmOrder calls f
func (f OrderConfirmerFunc) ConfirmOrder(ctx context.Context, order *trade.SalesOrder) error {
	return f(ctx, order)
}

// AggregateOrderConfirmer confirms the order aggregate itself
type AggregateOrderConfirmer struct{}

// ConfirmOrder moves the order into the confirmed sales state
func (AggregateOrderConfirmer) ConfirmOrder(_ context.Context, order *trade.SalesOrder) error {
	return order.Confirm()
}
