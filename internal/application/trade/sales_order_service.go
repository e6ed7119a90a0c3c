package trade

import (
	"context"

	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/trade"
	"github.com/erp/reseller/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderService handles the sales side of orders: creation, pricing,
// lookup and cancellation. Commission terms go through CommissionService.
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(orderRepo trade.SalesOrderRepository) *SalesOrderService {
	return &SalesOrderService{orderRepo: orderRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft sales order
func (s *SalesOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrOrderNumber, req.OrderNumber,
	)

	exists, err := s.orderRepo.ExistsByOrderNumber(ctx, tenantID, req.OrderNumber)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Sales order with this number already exists")
	}

	order, err := trade.NewSalesOrder(tenantID, req.OrderNumber, req.CustomerID, req.CustomerName)
	if err != nil {
		return nil, err
	}

	tax := decimal.Zero
	if req.AmountTax != nil {
		tax = *req.AmountTax
	}
	if err := order.SetAmounts(req.AmountUntaxed, tax); err != nil {
		return nil, err
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}
	order.SetAgentSale(req.IsAgentSale)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves a sales order by its order number
func (s *SalesOrderService) GetByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, tenantID uuid.UUID, filter SalesOrderListFilter) ([]SalesOrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CommissionStatus != "" {
		domainFilter.Filters["commission_status"] = filter.CommissionStatus
	}
	if filter.IsAgentSale != nil {
		domainFilter.Filters["is_agent_sale"] = *filter.IsAgentSale
	}
	if filter.AgentID != nil {
		domainFilter.Filters["agent_id"] = *filter.AgentID
	}
	if filter.PrincipalID != nil {
		domainFilter.Filters["principal_id"] = *filter.PrincipalID
	}

	orders, total, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSalesOrderResponses(orders), total, nil
}

// SetAmounts reprices a draft order; the commission amount follows
func (s *SalesOrderService) SetAmounts(ctx context.Context, tenantID, orderID uuid.UUID, req SetAmountRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	tax := order.AmountTax
	if req.AmountTax != nil {
		tax = *req.AmountTax
	}
	if err := order.SetAmounts(req.AmountUntaxed, tax); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order
func (s *SalesOrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}
