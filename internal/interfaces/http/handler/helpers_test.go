package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	financeapp "github.com/erp/reseller/internal/application/finance"
	partnerapp "github.com/erp/reseller/internal/application/partner"
	tradeapp "github.com/erp/reseller/internal/application/trade"
	"github.com/erp/reseller/internal/infrastructure/persistence"
	"github.com/erp/reseller/internal/interfaces/http/middleware"
	"github.com/erp/reseller/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testServer wires the real services over an in-memory database
type testServer struct {
	t        *testing.T
	engine   *gin.Engine
	tenantID uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewSQLiteDB(t)

	partyRepo := persistence.NewGormPartyRepository(db)
	orderRepo := persistence.NewGormSalesOrderRepository(db)
	accountRepo := persistence.NewGormAccountRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)

	partyService := partnerapp.NewPartyService(partyRepo)
	accountService := financeapp.NewAccountService(accountRepo)
	ledgerService := financeapp.NewLedgerService(accountRepo, invoiceRepo)
	orderService := tradeapp.NewSalesOrderService(orderRepo)
	commissionService := tradeapp.NewCommissionService(
		orderRepo, partyRepo, persistence.NewGormTransactionScope(db), ledgerService,
	)

	partyHandler := NewPartyHandler(partyService)
	orderHandler := NewSalesOrderHandler(orderService, commissionService)
	financeHandler := NewFinanceHandler(accountService, ledgerService)
	systemHandler := NewSystemHandler("test", persistence.NewDatabaseFromGorm(db))

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.TenantMiddleware())
	engine.GET("/health", systemHandler.Health)

	api := engine.Group("/api/v1")
	parties := api.Group("/partners/parties")
	parties.POST("", partyHandler.Create)
	parties.GET("", partyHandler.List)
	parties.GET("/:id", partyHandler.GetByID)
	parties.PUT("/:id", partyHandler.Update)

	orders := api.Group("/trade/sales-orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.GetByID)
	orders.PUT("/:id/amount", orderHandler.SetAmount)
	orders.PUT("/:id/agent-sale", orderHandler.SetAgentSale)
	orders.PUT("/:id/agent", orderHandler.SelectAgent)
	orders.PUT("/:id/principal", orderHandler.SelectPrincipal)
	orders.PUT("/:id/commission-rate", orderHandler.SetCommissionRate)
	orders.POST("/:id/confirm", orderHandler.Confirm)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.POST("/:id/commission-invoice", orderHandler.CreateCommissionInvoice)
	orders.POST("/:id/commission-paid", orderHandler.MarkCommissionPaid)
	orders.GET("/:id/invoices", financeHandler.ListOrderInvoices)

	accounts := api.Group("/finance/accounts")
	accounts.POST("", financeHandler.CreateAccount)
	accounts.GET("", financeHandler.ListAccounts)
	accounts.GET("/:id", financeHandler.GetAccount)
	accounts.POST("/:id/deprecate", financeHandler.DeprecateAccount)
	api.GET("/finance/commission-invoices/:id", financeHandler.GetCommissionInvoice)

	return &testServer{t: t, engine: engine, tenantID: uuid.New()}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	return testutil.Do(s.t, s.engine, testutil.Request{
		Method:   method,
		Path:     path,
		TenantID: s.tenantID,
		Body:     body,
	})
}

// mustCreate posts body and decodes the created resource
func mustCreate[T any](s *testServer, path string, body any) T {
	s.t.Helper()
	w := s.do(http.MethodPost, path, body)
	testutil.RequireStatus(s.t, w, http.StatusCreated)
	env := testutil.Decode[T](s.t, w)
	require.True(s.t, env.Success)
	return env.Data
}

// mustOK sends the request and decodes a 200 response
func mustOK[T any](s *testServer, method, path string, body any) T {
	s.t.Helper()
	w := s.do(method, path, body)
	testutil.RequireStatus(s.t, w, http.StatusOK)
	return testutil.Decode[T](s.t, w).Data
}
