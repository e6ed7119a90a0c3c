package trade

import (
	"context"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/infrastructure/logger"
	"go.uber.org/zap"
)

type eventSource interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// publishEvents hands the pending events of each source to publisher and
// clears them. Publishing happens after the state is stored, so a failure
// is logged and never undoes the operation.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, sources ...eventSource) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		events := src.GetDomainEvents()
		src.ClearDomainEvents()
		if publisher == nil || len(events) == 0 {
			continue
		}
		if err := publisher.Publish(ctx, events...); err != nil {
			logger.L(ctx).Warn("failed to publish domain events",
				zap.Int("events", len(events)),
				zap.Error(err),
			)
		}
	}
}
