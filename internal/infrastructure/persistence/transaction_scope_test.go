package persistence

import (
	"context"
	"errors"
	"testing"

	apptrade "github.com/erp/reseller/internal/application/trade"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits all writes", func(t *testing.T) {
		db := setupTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()
		order := newTestOrder(t, tenantID, "SO-0001")
		inv := newTestInvoice(t, db, tenantID, &order.ID, "4100")

		err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
			if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
				return err
			}
			return repos.InvoiceRepo().Save(ctx, inv)
		})
		require.NoError(t, err)

		_, err = NewGormSalesOrderRepository(db).FindByIDForTenant(ctx, tenantID, order.ID)
		assert.NoError(t, err)
		_, err = NewGormInvoiceRepository(db).FindByIDForTenant(ctx, tenantID, inv.ID)
		assert.NoError(t, err)
	})

	t.Run("error rolls back every write", func(t *testing.T) {
		db := setupTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()
		order := newTestOrder(t, tenantID, "SO-0002")
		inv := newTestInvoice(t, db, tenantID, &order.ID, "4100")
		boom := errors.New("ledger rejected the document")

		err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
			if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
				return err
			}
			if err := repos.InvoiceRepo().Save(ctx, inv); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewGormSalesOrderRepository(db).FindByIDForTenant(ctx, tenantID, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = NewGormInvoiceRepository(db).FindByIDForTenant(ctx, tenantID, inv.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("account lookup sees rows written in the same transaction", func(t *testing.T) {
		db := setupTestDB(t)
		scope := NewGormTransactionScope(db)
		tenantID := uuid.New()

		err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
			accounts := repos.AccountRepo().(*GormAccountRepository)
			seedAccount(t, accounts, tenantID, "4150", "income", false)
			account, err := repos.AccountRepo().FindFirstActiveByCodePrefix(ctx, tenantID, "41")
			if err != nil {
				return err
			}
			assert.Equal(t, "4150", account.Code)
			return nil
		})
		require.NoError(t, err)
	})
}
