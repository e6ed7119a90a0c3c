package handler

import (
	partnerapp "github.com/erp/reseller/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartyHandler handles the party directory endpoints
type PartyHandler struct {
	BaseHandler
	partyService *partnerapp.PartyService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partyService *partnerapp.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// Create godoc
// @Summary      Create a party
// @Description  The commission rate defaults to 10 and must lie in [0, 100] unless the party is a principal
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body partnerapp.CreatePartyRequest true "Party"
// @Success      201 {object} dto.Response{data=partnerapp.PartyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partners/parties [post]
func (h *PartyHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}
	var req partnerapp.CreatePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	party, err := h.partyService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, party)
}

// GetByID godoc
// @Summary      Get party by ID
// @Tags         parties
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Party ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.PartyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partners/parties/{id} [get]
func (h *PartyHandler) GetByID(c *gin.Context) {
	tenantID, partyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	party, err := h.partyService.GetByID(c.Request.Context(), tenantID, partyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

// List godoc
// @Summary      List parties
// @Description  role=agent or role=principal narrows the list for the order pickers
// @Tags         parties
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        search query string false "Code or name"
// @Param        role query string false "Role" Enums(agent, principal)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]partnerapp.PartyResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partners/parties [get]
func (h *PartyHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}
	var filter partnerapp.PartyListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	parties, total, err := h.partyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, parties, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a party
// @Description  Omitted fields are unchanged. The rate is re-validated against the resulting principal flag.
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Party ID" format(uuid)
// @Param        request body partnerapp.UpdatePartyRequest true "Changes"
// @Success      200 {object} dto.Response{data=partnerapp.PartyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /partners/parties/{id} [put]
func (h *PartyHandler) Update(c *gin.Context) {
	tenantID, partyID, ok := h.tenantAndID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdatePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	party, err := h.partyService.Update(c.Request.Context(), tenantID, partyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}
