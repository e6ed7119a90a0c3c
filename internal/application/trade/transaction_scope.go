package trade

import (
	"context"

	"github.com/erp/reseller/internal/domain/finance"
	"github.com/erp/reseller/internal/domain/trade"
)

// TransactionScope runs commission operations atomically. Every repository
// handed to fn shares one database transaction, committed when fn returns nil.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the repositories a commission
// operation touches, all bound to the same transaction.
type TransactionalRepositories interface {
	SalesOrderRepo() trade.SalesOrderRepository
	AccountRepo() finance.AccountRepository
	InvoiceRepo() finance.InvoiceRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used in tests and where transactions are not available.
type NoOpTransactionScope struct {
	orderRepo   trade.SalesOrderRepository
	accountRepo finance.AccountRepository
	invoiceRepo finance.InvoiceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orderRepo trade.SalesOrderRepository,
	accountRepo finance.AccountRepository,
	invoiceRepo finance.InvoiceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SalesOrderRepo returns the sales order repository
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository { return s.orderRepo }

// AccountRepo returns the account repository
func (s *NoOpTransactionScope) AccountRepo() finance.AccountRepository { return s.accountRepo }

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() finance.InvoiceRepository { return s.invoiceRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
