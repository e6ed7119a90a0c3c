package trade

import (
	"context"
	"fmt"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/trade"
	"github.com/erp/reseller/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CommissionLifecycleHandler turns commission events into an audit log and
// status-transition metrics.
type CommissionLifecycleHandler struct {
	metrics *telemetry.CommissionMetrics
	logger  *zap.Logger
}

// NewCommissionLifecycleHandler creates the handler. metrics may be nil.
func NewCommissionLifecycleHandler(metrics *telemetry.CommissionMetrics, logger *zap.Logger) *CommissionLifecycleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommissionLifecycleHandler{metrics: metrics, logger: logger}
}

// EventTypes returns the commission event types
func (h *CommissionLifecycleHandler) EventTypes() []string {
	return []string{
		trade.EventTypeCommissionConfirmed,
		trade.EventTypeCommissionInvoiced,
		trade.EventTypeCommissionPaid,
		trade.EventTypeCommissionReset,
	}
}

// Handle processes one commission event
func (h *CommissionLifecycleHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var (
		payload  trade.CommissionEvent
		previous trade.CommissionStatus
	)
	switch e := event.(type) {
	case *trade.CommissionConfirmedEvent:
		payload = e.CommissionEvent
	case *trade.CommissionInvoicedEvent:
		payload = e.CommissionEvent
		h.metrics.RecordInvoiced(ctx, e.TenantID().String(), e.CommissionAmount)
	case *trade.CommissionPaidEvent:
		payload = e.CommissionEvent
	case *trade.CommissionResetEvent:
		payload = e.CommissionEvent
		previous = e.PreviousStatus
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	h.metrics.RecordStatusChange(ctx, payload.Status.String())

	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("tenant_id", event.TenantID().String()),
		zap.String("order_id", payload.OrderID.String()),
		zap.String("order_number", payload.OrderNumber),
		zap.String("commission_status", payload.Status.String()),
		zap.String("commission_amount", payload.CommissionAmount.String()),
	}
	if payload.InvoiceID != nil {
		fields = append(fields, zap.String("invoice_id", payload.InvoiceID.String()))
	}
	if previous != "" {
		fields = append(fields, zap.String("previous_status", previous.String()))
	}

	if previous.HasInvoice() {
		h.logger.Warn("invoiced commission reset", fields...)
		return nil
	}
	h.logger.Info("commission status changed", fields...)
	return nil
}

var _ shared.EventHandler = (*CommissionLifecycleHandler)(nil)
