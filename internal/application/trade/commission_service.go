package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	financeapp "github.com/erp/reseller/internal/application/finance"
	"github.com/erp/reseller/internal/domain/finance"
	"github.com/erp/reseller/internal/domain/partner"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/erp/reseller/internal/domain/trade"
	"github.com/erp/reseller/internal/infrastructure/logger"
	"github.com/erp/reseller/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultInvoiceDescription is the line description layout of a commission
// invoice; the verbs receive the order number and the agent name.
const DefaultInvoiceDescription = "Commission - %s - %s"

// Operation names reported to metrics
const (
	OpToggleAgentSale   = "toggle_agent_sale"
	OpSelectAgent       = "select_agent"
	OpSelectPrincipal   = "select_principal"
	OpSetCommissionRate = "set_commission_rate"
	OpConfirmOrder      = "confirm_order"
	OpCreateInvoice     = "create_commission_invoice"
	OpMarkPaid          = "mark_commission_paid"
)

// CommissionService drives the commission lifecycle of agent sales:
// terms, confirmation, invoicing to the principal and settlement.
type CommissionService struct {
	orderRepo      trade.SalesOrderRepository
	partyRepo      partner.PartyRepository
	txScope        TransactionScope
	ledger         *financeapp.LedgerService
	confirmer      OrderConfirmer
	metrics        *telemetry.CommissionMetrics
	eventPublisher shared.EventPublisher
	description    string
	printer        *message.Printer
	now            func() time.Time
}

// CommissionServiceOption configures a CommissionService
type CommissionServiceOption func(*CommissionService)

// WithOrderConfirmer replaces the default AggregateOrderConfirmer
func WithOrderConfirmer(confirmer OrderConfirmer) CommissionServiceOption {
	return func(s *CommissionService) {
		if confirmer != nil {
			s.confirmer = confirmer
		}
	}
}

// WithCommissionMetrics records operation outcomes on m
func WithCommissionMetrics(m *telemetry.CommissionMetrics) CommissionServiceOption {
	return func(s *CommissionService) { s.metrics = m }
}

// WithInvoiceDescription overrides DefaultInvoiceDescription
func WithInvoiceDescription(layout string) CommissionServiceOption {
	return func(s *CommissionService) {
		if layout != "" {
			s.description = layout
		}
	}
}

// WithClock sets the clock used for invoice dates
func WithClock(now func() time.Time) CommissionServiceOption {
	return func(s *CommissionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(
	orderRepo trade.SalesOrderRepository,
	partyRepo partner.PartyRepository,
	txScope TransactionScope,
	ledger *financeapp.LedgerService,
	opts ...CommissionServiceOption,
) *CommissionService {
	s := &CommissionService{
		orderRepo:   orderRepo,
		partyRepo:   partyRepo,
		txScope:     txScope,
		ledger:      ledger,
		confirmer:   AggregateOrderConfirmer{},
		description: DefaultInvoiceDescription,
		printer:     message.NewPrinter(language.English),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEventPublisher sets the event publisher for commission events
func (s *CommissionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ToggleAgentSale sets or clears the agent-sale flag. Clearing it on an
// invoiced order is allowed: the terms and the invoice reference are wiped
// and the issued document stays in the ledger.
func (s *CommissionService) ToggleAgentSale(ctx context.Context, tenantID, orderID uuid.UUID, isAgentSale bool) (resp *SalesOrderResponse, err error) {
	defer s.record(ctx, OpToggleAgentSale, time.Now(), &err)

	return s.updateTerms(ctx, tenantID, orderID, OpToggleAgentSale, func(order *trade.SalesOrder) error {
		if !isAgentSale && order.CommissionStatus.HasInvoice() {
			logger.L(ctx).Warn("agent sale cleared on an invoiced commission, invoice reference discarded",
				zap.String("order_id", order.ID.String()),
				zap.String("order_number", order.OrderNumber),
				zap.String("commission_status", order.CommissionStatus.String()),
				zap.Stringp("invoice_id", uuidString(order.CommissionInvoiceID)),
			)
		}
		order.SetAgentSale(isAgentSale)
		return nil
	})
}

// SelectAgent assigns the agent. The agent's positive default rate is copied
// into the order; a zero default leaves the order's rate unchanged.
func (s *CommissionService) SelectAgent(ctx context.Context, tenantID, orderID, agentID uuid.UUID) (resp *SalesOrderResponse, err error) {
	defer s.record(ctx, OpSelectAgent, time.Now(), &err)

	agent, err := s.findParty(ctx, tenantID, agentID)
	if err != nil {
		return nil, err
	}
	return s.updateTerms(ctx, tenantID, orderID, OpSelectAgent, func(order *trade.SalesOrder) error {
		return order.SelectAgent(agent)
	})
}

// SelectPrincipal assigns the principal that will be invoiced for the commission
func (s *CommissionService) SelectPrincipal(ctx context.Context, tenantID, orderID, principalID uuid.UUID) (resp *SalesOrderResponse, err error) {
	defer s.record(ctx, OpSelectPrincipal, time.Now(), &err)

	principal, err := s.findParty(ctx, tenantID, principalID)
	if err != nil {
		return nil, err
	}
	return s.updateTerms(ctx, tenantID, orderID, OpSelectPrincipal, func(order *trade.SalesOrder) error {
		return order.SelectPrincipal(principal)
	})
}

// SetCommissionRate sets the order's rate, bounded to [0, 100]
func (s *CommissionService) SetCommissionRate(ctx context.Context, tenantID, orderID uuid.UUID, rate decimal.Decimal) (resp *SalesOrderResponse, err error) {
	defer s.record(ctx, OpSetCommissionRate, time.Now(), &err)

	return s.updateTerms(ctx, tenantID, orderID, OpSetCommissionRate, func(order *trade.SalesOrder) error {
		return order.SetCommissionRate(valueobject.NewPercentage(rate))
	})
}

// ConfirmOrder checks the agent-sale preconditions (agent, principal,
// positive rate), delegates to the OrderConfirmer and then confirms the
// commission, all in one transaction.
func (s *CommissionService) ConfirmOrder(ctx context.Context, tenantID, orderID uuid.UUID) (resp *SalesOrderResponse, err error) {
	defer s.record(ctx, OpConfirmOrder, time.Now(), &err)

	ctx, span := telemetry.StartServiceSpan(ctx, "commission", OpConfirmOrder)
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrOrderID, orderID.String(),
	)

	var order *trade.SalesOrder
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var findErr error
		order, findErr = repos.SalesOrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if findErr != nil {
			return findErr
		}
		if err := order.CheckConfirmable(); err != nil {
			return err
		}
		if err := s.confirmer.ConfirmOrder(ctx, order); err != nil {
			return err
		}
		if err := order.ConfirmCommission(); err != nil {
			return err
		}
		return repos.SalesOrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrCommissionStatus, order.CommissionStatus.String())
	publishEvents(ctx, s.eventPublisher, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// CreateCommissionInvoice issues the commission document to the principal.
// Every precondition is checked before any side effect; the document, its
// posting and the order update commit together.
func (s *CommissionService) CreateCommissionInvoice(ctx context.Context, tenantID, orderID uuid.UUID) (result *CommissionInvoiceResult, err error) {
	defer s.record(ctx, OpCreateInvoice, time.Now(), &err)

	ctx, span := telemetry.StartServiceSpan(ctx, "commission", OpCreateInvoice)
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrOrderID, orderID.String(),
	)

	var (
		order   *trade.SalesOrder
		invoice *finance.Invoice
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		order, txErr = repos.SalesOrderRepo().FindByIDForTenant(ctx, tenantID, orderID)
		if txErr != nil {
			return txErr
		}
		if err := order.CheckCommissionInvoiceable(); err != nil {
			return err
		}

		ledger := s.ledger.WithRepositories(repos.AccountRepo(), repos.InvoiceRepo())
		account, err := ledger.ResolveRevenueAccount(ctx, tenantID)
		if err != nil {
			return err
		}
		telemetry.SetAttributes(span, telemetry.SpanAttrAccountCode, account.Code)

		invoice, err = ledger.PostInvoice(ctx, tenantID, s.buildDraft(ctx, order, account))
		if err != nil {
			return err
		}
		if err := order.AttachCommissionInvoice(invoice.ID, invoice.AmountTotal); err != nil {
			return err
		}
		return repos.SalesOrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, invoice.ID.String(),
		telemetry.SpanAttrAmount, invoice.AmountTotal.String(),
	)
	publishEvents(ctx, s.eventPublisher, order, invoice)

	logger.L(ctx).Info("commission invoice created",
		zap.String("order_number", order.OrderNumber),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", invoice.AmountTotal.String()),
	)

	return &CommissionInvoiceResult{
		DocumentID:     invoice.ID,
		DocumentNumber: invoice.InvoiceNumber,
		DisplayName:    s.displayName(invoice),
		Total:          invoice.AmountTotal,
		Model:          CommissionInvoiceModel,
		View:           CommissionInvoiceView,
	}, nil
}

// MarkCommissionPaid settles an invoiced commission
func (s *CommissionService) MarkCommissionPaid(ctx context.Context, tenantID, orderID uuid.UUID) (resp *SalesOrderResponse, err error) {
	defer s.record(ctx, OpMarkPaid, time.Now(), &err)

	return s.updateTerms(ctx, tenantID, orderID, OpMarkPaid, func(order *trade.SalesOrder) error {
		return order.MarkCommissionPaid()
	})
}

func (s *CommissionService) updateTerms(ctx context.Context, tenantID, orderID uuid.UUID, op string, mutate func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "commission", op)
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrOrderID, orderID.String(),
	)

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := mutate(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

func (s *CommissionService) findParty(ctx context.Context, tenantID, partyID uuid.UUID) (*partner.Party, error) {
	party, err := s.partyRepo.FindByIDForTenant(ctx, tenantID, partyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Party not found")
		}
		return nil, err
	}
	return party, nil
}

// buildDraft names the agent as it is currently recorded in the directory,
// falling back to the name captured on the order.
func (s *CommissionService) buildDraft(ctx context.Context, order *trade.SalesOrder, account *finance.Account) finance.InvoiceDraft {
	agentName := order.AgentName
	if agent, err := s.partyRepo.FindByIDForTenant(ctx, order.TenantID, *order.AgentID); err == nil {
		agentName = agent.Name
	}

	orderID := order.ID
	return finance.InvoiceDraft{
		Type:          finance.InvoiceTypeOutInvoice,
		PartnerID:     *order.PrincipalID,
		PartnerName:   order.PrincipalName,
		InvoiceOrigin: order.OrderNumber,
		SourceOrderID: &orderID,
		InvoiceDate:   s.now().UTC().Truncate(24 * time.Hour),
		Lines: []finance.InvoiceLineInput{{
			Description: fmt.Sprintf(s.description, order.OrderNumber, agentName),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   order.CommissionAmount,
			Account:     account,
		}},
	}
}

func (s *CommissionService) displayName(invoice *finance.Invoice) string {
	return s.printer.Sprintf("%s (%v)", invoice.InvoiceNumber,
		number.Decimal(invoice.AmountTotal.InexactFloat64(), number.Scale(2)))
}

func (s *CommissionService) record(ctx context.Context, op string, started time.Time, err *error) {
	s.metrics.RecordOperation(ctx, op, started, *err)
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}
