package handler

import (
	tradeapp "github.com/erp/reseller/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesOrderHandler handles sales order and commission API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService      *tradeapp.SalesOrderService
	commissionService *tradeapp.CommissionService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.SalesOrderService, commissionService *tradeapp.CommissionService) *SalesOrderHandler {
	return &SalesOrderHandler{
		orderService:      orderService,
		commissionService: commissionService,
	}
}

// SalesOrderListQuery is the query string of the sales order list. Party IDs
// arrive as strings and are parsed once validated.
type SalesOrderListQuery struct {
	Search           string `form:"search"`
	Status           string `form:"status" binding:"omitempty,oneof=draft sale cancel"`
	CommissionStatus string `form:"commission_status" binding:"omitempty,oneof=draft confirmed invoiced paid"`
	IsAgentSale      *bool  `form:"is_agent_sale"`
	AgentID          string `form:"agent_id" binding:"omitempty,uuid"`
	PrincipalID      string `form:"principal_id" binding:"omitempty,uuid"`
	Page             int    `form:"page" binding:"omitempty,min=1"`
	PageSize         int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy          string `form:"order_by"`
	OrderDir         string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (q SalesOrderListQuery) toFilter() tradeapp.SalesOrderListFilter {
	filter := tradeapp.SalesOrderListFilter{
		Search:           q.Search,
		Status:           q.Status,
		CommissionStatus: q.CommissionStatus,
		IsAgentSale:      q.IsAgentSale,
		Page:             q.Page,
		PageSize:         q.PageSize,
		OrderBy:          q.OrderBy,
		OrderDir:         q.OrderDir,
	}
	if id, err := uuid.Parse(q.AgentID); err == nil {
		filter.AgentID = &id
	}
	if id, err := uuid.Parse(q.PrincipalID); err == nil {
		filter.PrincipalID = &id
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return filter
}

// Create godoc
// @Summary      Create a sales order
// @Description  Create a draft sales order, optionally flagged as an agent sale
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body tradeapp.CreateSalesOrderRequest true "Sales order creation request"
// @Success      201 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req tradeapp.CreateSalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get sales order by ID
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @Summary      List sales orders
// @Description  Paginated list filtered by order state, commission state and parties
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Order number or customer name"
// @Param        status query string false "Order status" Enums(draft, sale, cancel)
// @Param        commission_status query string false "Commission status" Enums(draft, confirmed, invoiced, paid)
// @Param        is_agent_sale query bool false "Agent sales only"
// @Param        agent_id query string false "Agent ID" format(uuid)
// @Param        principal_id query string false "Principal ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]tradeapp.SalesOrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var query SalesOrderListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	filter := query.toFilter()

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// SetAmount godoc
// @Summary      Reprice a draft order
// @Description  The stored commission amount is recomputed from the new untaxed amount
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Param        request body tradeapp.SetAmountRequest true "Amounts"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/amount [put]
func (h *SalesOrderHandler) SetAmount(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req tradeapp.SetAmountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.SetAmounts(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel godoc
// @Summary      Cancel a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SetAgentSale godoc
// @Summary      Toggle the agent-sale flag
// @Description  Clearing the flag resets agent, principal, rate and commission state,
// @Description  including an invoiced commission whose invoice reference is dropped.
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Param        request body tradeapp.SetAgentSaleRequest true "Flag"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/agent-sale [put]
func (h *SalesOrderHandler) SetAgentSale(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req tradeapp.SetAgentSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.commissionService.ToggleAgentSale(c.Request.Context(), tenantID, orderID, *req.IsAgentSale)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SelectAgent godoc
// @Summary      Select the agent of an order
// @Description  A positive agent rate is copied onto the order; a zero rate keeps the order's rate.
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Param        request body tradeapp.SelectPartyRequest true "Agent"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/agent [put]
func (h *SalesOrderHandler) SelectAgent(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req tradeapp.SelectPartyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.commissionService.SelectAgent(c.Request.Context(), tenantID, orderID, req.PartyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SelectPrincipal godoc
// @Summary      Select the principal of an order
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Param        request body tradeapp.SelectPartyRequest true "Principal"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/principal [put]
func (h *SalesOrderHandler) SelectPrincipal(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req tradeapp.SelectPartyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.commissionService.SelectPrincipal(c.Request.Context(), tenantID, orderID, req.PartyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SetCommissionRate godoc
// @Summary      Set the commission rate of an order
// @Description  The rate is a percentage in [0, 100]
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Param        request body tradeapp.SetCommissionRateRequest true "Rate"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/commission-rate [put]
func (h *SalesOrderHandler) SetCommissionRate(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req tradeapp.SetCommissionRateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.commissionService.SetCommissionRate(c.Request.Context(), tenantID, orderID, req.CommissionRate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Confirm godoc
// @Summary      Confirm a sales order
// @Description  Agent sales need an agent, a principal and a positive rate; the
// @Description  commission moves to confirmed once the order is confirmed.
// @Tags         commissions
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/confirm [post]
func (h *SalesOrderHandler) Confirm(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	order, err := h.commissionService.ConfirmOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CreateCommissionInvoice godoc
// @Summary      Invoice the commission of an order
// @Description  Creates and posts a one-line invoice to the principal for the
// @Description  commission amount. Supports the Idempotency-Key header.
// @Tags         commissions
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        Idempotency-Key header string false "Client retry key"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      201 {object} dto.Response{data=tradeapp.CommissionInvoiceResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/commission-invoice [post]
func (h *SalesOrderHandler) CreateCommissionInvoice(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	result, err := h.commissionService.CreateCommissionInvoice(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// MarkCommissionPaid godoc
// @Summary      Mark an invoiced commission as paid
// @Tags         commissions
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/commission-paid [post]
func (h *SalesOrderHandler) MarkCommissionPaid(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	order, err := h.commissionService.MarkCommissionPaid(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
