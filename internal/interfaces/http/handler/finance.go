package handler

import (
	financeapp "github.com/erp/reseller/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// FinanceHandler handles the chart of accounts and commission invoice endpoints
type FinanceHandler struct {
	BaseHandler
	accountService *financeapp.AccountService
	ledgerService  *financeapp.LedgerService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(accountService *financeapp.AccountService, ledgerService *financeapp.LedgerService) *FinanceHandler {
	return &FinanceHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

// CreateAccount godoc
// @Summary      Create an account
// @Description  Accounts whose code starts with 41, or of category income, can receive commission revenue
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body financeapp.CreateAccountRequest true "Account"
// @Success      201 {object} dto.Response{data=financeapp.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/accounts [post]
func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}
	var req financeapp.CreateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// GetAccount godoc
// @Summary      Get account by ID
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.AccountResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/accounts/{id} [get]
func (h *FinanceHandler) GetAccount(c *gin.Context) {
	tenantID, accountID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// ListAccounts godoc
// @Summary      List accounts
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Code or name"
// @Param        category query string false "Category" Enums(asset, liability, equity, income, expense)
// @Param        deprecated query bool false "Deprecated flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]financeapp.AccountResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/accounts [get]
func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}
	var filter financeapp.AccountListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	accounts, total, err := h.accountService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, accounts, total, filter.Page, filter.PageSize)
}

// DeprecateAccount godoc
// @Summary      Deprecate an account
// @Description  Deprecated accounts are skipped by the revenue account lookup
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.AccountResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/accounts/{id}/deprecate [post]
func (h *FinanceHandler) DeprecateAccount(c *gin.Context) {
	tenantID, accountID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	account, err := h.accountService.Deprecate(c.Request.Context(), tenantID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// GetCommissionInvoice godoc
// @Summary      Get a commission invoice
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/commission-invoices/{id} [get]
func (h *FinanceHandler) GetCommissionInvoice(c *gin.Context) {
	tenantID, invoiceID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	invoice, err := h.ledgerService.GetInvoice(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// ListOrderInvoices godoc
// @Summary      List the invoices issued for a sales order
// @Tags         finance
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Sales Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]financeapp.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /trade/sales-orders/{id}/invoices [get]
func (h *FinanceHandler) ListOrderInvoices(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	invoices, err := h.ledgerService.ListInvoicesByOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}
