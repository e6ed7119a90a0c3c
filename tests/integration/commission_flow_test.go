//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	financeapp "github.com/erp/reseller/internal/application/finance"
	partnerapp "github.com/erp/reseller/internal/application/partner"
	tradeapp "github.com/erp/reseller/internal/application/trade"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commissionStack struct {
	db         *TestDB
	parties    *partnerapp.PartyService
	orders     *tradeapp.SalesOrderService
	accounts   *financeapp.AccountService
	ledger     *financeapp.LedgerService
	commission *tradeapp.CommissionService
}

func newCommissionStack(t *testing.T) *commissionStack {
	tdb := NewTestDB(t)

	partyRepo := persistence.NewGormPartyRepository(tdb.DB)
	orderRepo := persistence.NewGormSalesOrderRepository(tdb.DB)
	accountRepo := persistence.NewGormAccountRepository(tdb.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(tdb.DB)
	ledger := financeapp.NewLedgerService(accountRepo, invoiceRepo)

	return &commissionStack{
		db:         tdb,
		parties:    partnerapp.NewPartyService(partyRepo),
		orders:     tradeapp.NewSalesOrderService(orderRepo),
		accounts:   financeapp.NewAccountService(accountRepo),
		ledger:     ledger,
		commission: tradeapp.NewCommissionService(orderRepo, partyRepo, persistence.NewGormTransactionScope(tdb.DB), ledger),
	}
}

// agentOrder creates an agent, a principal, a revenue account and a draft
// agent-sale order of 100 with both parties assigned.
func (s *commissionStack) agentOrder(t *testing.T, ctx context.Context, tenantID uuid.UUID, number string) (order *tradeapp.SalesOrderResponse, agent, principal *partnerapp.PartyResponse) {
	t.Helper()

	rate := decimal.NewFromInt(10)
	agent, err := s.parties.Create(ctx, tenantID, partnerapp.CreatePartyRequest{
		Code: "AG-" + number, Name: "Acme Agency", IsAgent: true, CommissionRate: &rate,
	})
	require.NoError(t, err)
	principal, err = s.parties.Create(ctx, tenantID, partnerapp.CreatePartyRequest{
		Code: "PR-" + number, Name: "Big Vendor", IsPrincipal: true,
	})
	require.NoError(t, err)

	if _, err := s.accounts.Create(ctx, tenantID, financeapp.CreateAccountRequest{
		Code: "4100", Name: "Commission revenue", Category: "income",
	}); err != nil {
		require.True(t, errors.Is(err, shared.ErrAlreadyExists), "unexpected error: %v", err)
	}

	order, err = s.orders.Create(ctx, tenantID, tradeapp.CreateSalesOrderRequest{
		OrderNumber:   number,
		CustomerID:    uuid.New(),
		CustomerName:  "Walk-in",
		AmountUntaxed: decimal.NewFromInt(100),
		IsAgentSale:   true,
	})
	require.NoError(t, err)

	_, err = s.commission.SelectAgent(ctx, tenantID, order.ID, agent.ID)
	require.NoError(t, err)
	order, err = s.commission.SelectPrincipal(ctx, tenantID, order.ID, principal.ID)
	require.NoError(t, err)
	return order, agent, principal
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestCommissionLifecycle_Postgres(t *testing.T) {
	s := newCommissionStack(t)
	ctx := context.Background()
	tenantID := uuid.New()

	order, agent, principal := s.agentOrder(t, ctx, tenantID, "SO-1001")
	assert.Equal(t, "10", order.CommissionRate.String())

	order, err := s.commission.ConfirmOrder(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "sale", order.Status)
	assert.Equal(t, "confirmed", order.CommissionStatus)
	assert.True(t, order.CommissionAmount.Equal(decimal.NewFromInt(10)))

	result, err := s.commission.CreateCommissionInvoice(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^CINV-\d{8}-\d{5}$`, result.DocumentNumber)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(10)))

	invoice, err := s.ledger.GetInvoice(ctx, tenantID, result.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, invoice.PartnerID)
	assert.Equal(t, "SO-1001", invoice.InvoiceOrigin)
	assert.Equal(t, "posted", invoice.Status)
	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "Commission - SO-1001 - "+agent.Name, invoice.Lines[0].Description)
	assert.Equal(t, "4100", invoice.Lines[0].AccountCode)

	_, err = s.commission.CreateCommissionInvoice(ctx, tenantID, order.ID)
	requireCode(t, err, "INVOICE_ALREADY_EXISTS")

	order, err = s.commission.MarkCommissionPaid(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", order.CommissionStatus)
	require.NotNil(t, order.CommissionInvoiceID)
	assert.Equal(t, result.DocumentID, *order.CommissionInvoiceID)

	invoices, err := s.ledger.ListInvoicesByOrder(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
}

func TestCommissionInvoice_NoRevenueAccountRollsBack(t *testing.T) {
	s := newCommissionStack(t)
	ctx := context.Background()
	tenantID := uuid.New()

	order, _, _ := s.agentOrder(t, ctx, tenantID, "SO-2001")
	_, err := s.commission.ConfirmOrder(ctx, tenantID, order.ID)
	require.NoError(t, err)

	require.NoError(t, s.db.DB.Exec("DELETE FROM accounts WHERE tenant_id = ?", tenantID).Error)

	_, err = s.commission.CreateCommissionInvoice(ctx, tenantID, order.ID)
	requireCode(t, err, "NO_REVENUE_ACCOUNT")

	var count int64
	require.NoError(t, s.db.DB.Table("invoices").Where("tenant_id = ?", tenantID).Count(&count).Error)
	assert.Zero(t, count)

	reloaded, err := s.orders.GetByID(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", reloaded.CommissionStatus)
	assert.Nil(t, reloaded.CommissionInvoiceID)
}

func TestCommissionInvoice_ConcurrentRequestsIssueOneDocument(t *testing.T) {
	s := newCommissionStack(t)
	ctx := context.Background()
	tenantID := uuid.New()

	order, _, _ := s.agentOrder(t, ctx, tenantID, "SO-3001")
	_, err := s.commission.ConfirmOrder(ctx, tenantID, order.ID)
	require.NoError(t, err)

	const workers = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.commission.CreateCommissionInvoice(ctx, tenantID, order.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, s.db.DB.Table("invoices").Where("tenant_id = ?", tenantID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	reloaded, err := s.orders.GetByID(ctx, tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoiced", reloaded.CommissionStatus)
}

func TestCommissionInvoice_ConcurrentOrdersGetDistinctNumbers(t *testing.T) {
	s := newCommissionStack(t)
	ctx := context.Background()
	tenantID := uuid.New()

	const orders = 4
	ids := make([]uuid.UUID, orders)
	for i := range ids {
		order, _, _ := s.agentOrder(t, ctx, tenantID, fmt.Sprintf("SO-400%d", i))
		_, err := s.commission.ConfirmOrder(ctx, tenantID, order.ID)
		require.NoError(t, err)
		ids[i] = order.ID
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool)
		errs    []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(orderID uuid.UUID) {
			defer wg.Done()
			result, err := s.commission.CreateCommissionInvoice(ctx, tenantID, orderID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers[result.DocumentNumber] = true
		}(id)
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Len(t, numbers, orders)
}

func TestCommission_TenantIsolation(t *testing.T) {
	s := newCommissionStack(t)
	ctx := context.Background()
	tenantA, tenantB := uuid.New(), uuid.New()

	order, agent, _ := s.agentOrder(t, ctx, tenantA, "SO-4001")

	_, err := s.orders.GetByID(ctx, tenantB, order.ID)
	requireCode(t, err, "NOT_FOUND")

	// A party of another tenant cannot be selected
	other, err := s.orders.Create(ctx, tenantB, tradeapp.CreateSalesOrderRequest{
		OrderNumber: "SO-4001", CustomerID: uuid.New(), CustomerName: "Walk-in", IsAgentSale: true,
	})
	require.NoError(t, err)
	_, err = s.commission.SelectAgent(ctx, tenantB, other.ID, agent.ID)
	requireCode(t, err, "NOT_FOUND")
}
