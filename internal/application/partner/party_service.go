package partner

import (
	"context"
	"strings"

	"github.com/erp/reseller/internal/domain/partner"
	"github.com/erp/reseller/internal/domain/shared"
	"github.com/erp/reseller/internal/domain/shared/valueobject"
	"github.com/erp/reseller/internal/infrastructure/logger"
	"github.com/erp/reseller/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartyService manages the party directory that agents and principals are picked from
type PartyService struct {
	partyRepo      partner.PartyRepository
	eventPublisher shared.EventPublisher
	defaultRate    *valueobject.Percentage
}

// NewPartyService creates a new PartyService
func NewPartyService(partyRepo partner.PartyRepository) *PartyService {
	return &PartyService{partyRepo: partyRepo}
}

// SetEventPublisher sets the event publisher for party events
func (s *PartyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetDefaultRate overrides the rate given to parties created without one
func (s *PartyService) SetDefaultRate(rate valueobject.Percentage) {
	s.defaultRate = &rate
}

// Create adds a party. The commission rate is validated against the
// principal flag before anything is stored.
func (s *PartyService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePartyRequest) (*PartyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "party", "create")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrTenantID, tenantID.String())

	exists, err := s.partyRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(strings.TrimSpace(req.Code)))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Party with this code already exists")
	}

	var opts []partner.PartyOption
	if req.IsAgent {
		opts = append(opts, partner.WithAgentRole())
	}
	if req.IsPrincipal {
		opts = append(opts, partner.WithPrincipalRole())
	}
	switch {
	case req.CommissionRate != nil:
		opts = append(opts, partner.WithCommissionRate(valueobject.NewPercentage(*req.CommissionRate)))
	case s.defaultRate != nil:
		opts = append(opts, partner.WithCommissionRate(*s.defaultRate))
	}

	party, err := partner.NewParty(tenantID, req.Code, req.Name, opts...)
	if err != nil {
		return nil, err
	}

	if err := s.partyRepo.Save(ctx, party); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publish(ctx, party)

	telemetry.SetAttributes(span, telemetry.SpanAttrPartyID, party.ID.String())
	response := ToPartyResponse(party)
	return &response, nil
}

// GetByID retrieves a party by ID
func (s *PartyService) GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*PartyResponse, error) {
	party, err := s.partyRepo.FindByIDForTenant(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}
	response := ToPartyResponse(party)
	return &response, nil
}

// List returns a page of the directory, optionally only agents or only principals
func (s *PartyService) List(ctx context.Context, tenantID uuid.UUID, filter PartyListFilter) ([]PartyResponse, int64, error) {
	role := partner.PartyRole(filter.Role)
	if !role.IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_ROLE", "Role must be agent or principal")
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}

	parties, total, err := s.partyRepo.FindAllForTenant(ctx, tenantID, role, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPartyResponses(parties), total, nil
}

// Update applies a partial update. The resulting rate and principal flag are
// validated together so a request that drops the principal role and fixes
// the rate in the same call succeeds.
func (s *PartyService) Update(ctx context.Context, tenantID, partyID uuid.UUID, req UpdatePartyRequest) (*PartyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "party", "update")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrPartyID, partyID.String(),
	)

	party, err := s.partyRepo.FindByIDForTenant(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := party.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	isAgent, isPrincipal := party.IsAgent, party.IsPrincipal
	if req.IsAgent != nil {
		isAgent = *req.IsAgent
	}
	if req.IsPrincipal != nil {
		isPrincipal = *req.IsPrincipal
	}
	rate := party.CommissionRate
	if req.CommissionRate != nil {
		rate = valueobject.NewPercentage(*req.CommissionRate)
	}
	if err := partner.ValidateCommissionRate(rate, isPrincipal); err != nil {
		return nil, err
	}

	if isPrincipal {
		if err := party.SetRoles(isAgent, isPrincipal); err != nil {
			return nil, err
		}
		if err := party.SetCommissionRate(rate); err != nil {
			return nil, err
		}
	} else {
		if err := party.SetCommissionRate(rate); err != nil {
			return nil, err
		}
		if err := party.SetRoles(isAgent, isPrincipal); err != nil {
			return nil, err
		}
	}

	if err := s.partyRepo.SaveWithLock(ctx, party); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publish(ctx, party)

	response := ToPartyResponse(party)
	return &response, nil
}

func (s *PartyService) publish(ctx context.Context, party *partner.Party) {
	if s.eventPublisher == nil {
		party.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, party.GetDomainEvents()...); err != nil {
		logger.L(ctx).Warn("failed to publish party events",
			zap.String("party_id", party.ID.String()),
			zap.Error(err),
		)
	}
	party.ClearDomainEvents()
}
