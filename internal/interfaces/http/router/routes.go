package router

import (
	"github.com/erp/reseller/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the endpoint groups of the reseller API
type Handlers struct {
	Party      *handler.PartyHandler
	SalesOrder *handler.SalesOrderHandler
	Finance    *handler.FinanceHandler
}

// RouteMiddleware holds middleware attached to individual routes
type RouteMiddleware struct {
	// Idempotency guards the write that issues a commission document
	Idempotency gin.HandlerFunc
}

// PartnerRoutes builds the party directory routes
func PartnerRoutes(h *handler.PartyHandler) *DomainGroup {
	partners := NewDomainGroup("partner", "/partners")
	partners.Group("parties", "/parties").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update)
	return partners
}

// TradeRoutes builds the sales order and commission routes
func TradeRoutes(orders *handler.SalesOrderHandler, finance *handler.FinanceHandler, mw RouteMiddleware) *DomainGroup {
	invoice := []gin.HandlerFunc{orders.CreateCommissionInvoice}
	if mw.Idempotency != nil {
		invoice = append([]gin.HandlerFunc{mw.Idempotency}, invoice...)
	}

	trade := NewDomainGroup("trade", "/trade")
	trade.Group("sales-orders", "/sales-orders").
		POST("", orders.Create).
		GET("", orders.List).
		GET("/:id", orders.GetByID).
		PUT("/:id/amount", orders.SetAmount).
		PUT("/:id/agent-sale", orders.SetAgentSale).
		PUT("/:id/agent", orders.SelectAgent).
		PUT("/:id/principal", orders.SelectPrincipal).
		PUT("/:id/commission-rate", orders.SetCommissionRate).
		POST("/:id/confirm", orders.Confirm).
		POST("/:id/cancel", orders.Cancel).
		POST("/:id/commission-invoice", invoice...).
		POST("/:id/commission-paid", orders.MarkCommissionPaid).
		GET("/:id/invoices", finance.ListOrderInvoices)
	return trade
}

// FinanceRoutes builds the chart of accounts and invoice routes
func FinanceRoutes(h *handler.FinanceHandler) *DomainGroup {
	finance := NewDomainGroup("finance", "/finance")
	finance.Group("accounts", "/accounts").
		POST("", h.CreateAccount).
		GET("", h.ListAccounts).
		GET("/:id", h.GetAccount).
		POST("/:id/deprecate", h.DeprecateAccount)
	finance.Group("commission-invoices", "/commission-invoices").
		GET("/:id", h.GetCommissionInvoice)
	return finance
}

// RegisterAPI registers every domain group of the reseller API on r
func RegisterAPI(r *Router, h Handlers, mw RouteMiddleware) *Router {
	return r.
		Register(PartnerRoutes(h.Party)).
		Register(TradeRoutes(h.SalesOrder, h.Finance, mw)).
		Register(FinanceRoutes(h.Finance))
}
