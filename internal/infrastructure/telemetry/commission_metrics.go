package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// CommissionMetrics records the commission lifecycle: operations, their
// outcome, and the amounts that reach the ledger.
type CommissionMetrics struct {
	operations        *Counter
	operationDuration *Histogram
	invoicedAmount    *FloatCounter
	statusChanges     *Counter
}

// NewCommissionMetrics creates the commission instruments on meter
func NewCommissionMetrics(meter metric.Meter) (*CommissionMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	cm := &CommissionMetrics{}
	var err error

	if cm.operations, err = NewCounter(meter,
		"reseller_commission_operations_total",
		"Commission operations by name and outcome",
		"{operations}",
	); err != nil {
		return nil, err
	}

	if cm.operationDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "reseller_commission_operation_duration_seconds",
		Description: "Duration of commission operations",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	}); err != nil {
		return nil, err
	}

	if cm.invoicedAmount, err = NewFloatCounter(meter,
		"reseller_commission_invoiced_amount_total",
		"Sum of commission amounts invoiced to principals",
		"{currency}",
	); err != nil {
		return nil, err
	}

	if cm.statusChanges, err = NewCounter(meter,
		"reseller_commission_status_changes_total",
		"Commission status transitions by target status",
		"{transitions}",
	); err != nil {
		return nil, err
	}

	return cm, nil
}

// RecordOperation records one operation with its outcome. Domain failures are
// labelled with their error code.
func (m *CommissionMetrics) RecordOperation(ctx context.Context, operation string, started time.Time, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{AttrOperation.String(operation)}
	var domainErr *shared.DomainError
	switch {
	case err == nil:
		attrs = append(attrs, AttrOutcome.String("success"))
	case errors.As(err, &domainErr):
		attrs = append(attrs, AttrOutcome.String("rejected"), AttrErrorCode.String(domainErr.Code))
	default:
		attrs = append(attrs, AttrOutcome.String("error"))
	}

	m.operations.Inc(ctx, attrs...)
	m.operationDuration.RecordDuration(ctx, time.Since(started), AttrOperation.String(operation))
}

// RecordInvoiced adds an invoiced commission amount
func (m *CommissionMetrics) RecordInvoiced(ctx context.Context, tenantID string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.invoicedAmount.Add(ctx, amount.InexactFloat64(), AttrTenantID.String(tenantID))
}

// RecordStatusChange counts a transition into status
func (m *CommissionMetrics) RecordStatusChange(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.statusChanges.Inc(ctx, AttrCommissionStatus.String(status))
}
