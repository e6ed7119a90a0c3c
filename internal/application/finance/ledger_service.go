package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/reseller/internal/domain/finance"
	"github.com/erp/reseller/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// RevenueAccountPolicy configures where commission revenue is booked
type RevenueAccountPolicy struct {
	CodePrefix string
	Category   finance.AccountCategory
}

// LedgerService creates and posts financial documents. It does not publish
// the events it raises; the caller publishes them once its transaction commits.
type LedgerService struct {
	accountRepo finance.AccountRepository
	invoiceRepo finance.InvoiceRepository
	policy      RevenueAccountPolicy
}

// NewLedgerService creates a new LedgerService with the default revenue policy
func NewLedgerService(accountRepo finance.AccountRepository, invoiceRepo finance.InvoiceRepository) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
		policy: RevenueAccountPolicy{
			CodePrefix: finance.DefaultRevenueCodePrefix,
			Category:   finance.AccountCategoryIncome,
		},
	}
}

// SetRevenueAccountPolicy overrides the revenue account lookup. Empty fields keep their current value.
func (s *LedgerService) SetRevenueAccountPolicy(policy RevenueAccountPolicy) {
	if policy.CodePrefix != "" {
		s.policy.CodePrefix = policy.CodePrefix
	}
	if policy.Category != "" {
		s.policy.Category = policy.Category
	}
}

// WithRepositories returns a copy bound to the given repositories, typically
// the ones of an open transaction.
func (s *LedgerService) WithRepositories(accountRepo finance.AccountRepository, invoiceRepo finance.InvoiceRepository) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
		policy:      s.policy,
	}
}

// ResolveRevenueAccount returns the account commission revenue is booked to.
// It fails with NO_REVENUE_ACCOUNT when the chart has no candidate.
func (s *LedgerService) ResolveRevenueAccount(ctx context.Context, tenantID uuid.UUID) (*finance.Account, error) {
	resolver := finance.NewRevenueAccountResolver(s.accountRepo)
	resolver.CodePrefix = s.policy.CodePrefix
	resolver.Category = s.policy.Category
	return resolver.Resolve(ctx, tenantID)
}

// PostInvoice creates the document described by draft, posts it and stores it
func (s *LedgerService) PostInvoice(ctx context.Context, tenantID uuid.UUID, draft finance.InvoiceDraft) (*finance.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "post_invoice")
	defer span.End()

	// the number's day and the document date come from the same value
	if draft.InvoiceDate.IsZero() {
		draft.InvoiceDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx, tenantID, draft.InvoiceDate)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("generate invoice number: %w", err)
	}

	invoice, err := finance.NewInvoice(tenantID, number, draft)
	if err != nil {
		return nil, err
	}
	if err := invoice.Post(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, invoice.ID.String(),
		telemetry.SpanAttrAmount, invoice.AmountTotal.String(),
	)
	return invoice, nil
}

// GetInvoice retrieves an invoice with its lines
func (s *LedgerService) GetInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ListInvoicesByOrder returns the documents issued for a sales order
func (s *LedgerService) ListInvoicesByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindBySourceOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses, nil
}
