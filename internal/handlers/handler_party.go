package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type partyHandler struct {
	partyService portssvc.PartySvcFacade
	today        func() time.Time
}

func newPartyHandler(ps portssvc.PartySvcFacade, today func() time.Time) *partyHandler {
	return &partyHandler{partyService: ps, today: today}
}

// registerPartyRoutes registers routes for customers and suppliers.
func registerPartyRoutes(rg *gin.RouterGroup, ps portssvc.PartySvcFacade, today func() time.Time) {
	h := newPartyHandler(ps, today)

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:partyID", h.getParty)
		parties.PUT("/:partyID", h.updateParty)
		parties.DELETE("/:partyID", h.deleteParty)
		parties.GET("/:partyID/statement", h.getStatement)
	}
}

// createParty godoc
// @Summary Create a party
// @Tags parties
// @Accept json
// @Produce json
// @Param party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} domain.Party
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	party, err := h.partyService.CreateParty(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create party")
		return
	}
	c.JSON(http.StatusCreated, party)
}

// listParties godoc
// @Summary List parties
// @Tags parties
// @Produce json
// @Param partyType query string false "customer or supplier"
// @Param search query string false "Matches name or tax number"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListPartiesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	var params dto.ListPartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	filter := domain.PartyFilter{Search: params.Search}
	if params.PartyType != "" {
		pt := domain.PartyType(params.PartyType)
		filter.PartyType = &pt
	}
	parties, err := h.partyService.ListParties(c.Request.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list parties")
		return
	}
	c.JSON(http.StatusOK, dto.ListPartiesResponse{Parties: parties})
}

// getParty godoc
// @Summary Get a party
// @Tags parties
// @Produce json
// @Param partyID path string true "Party ID"
// @Success 200 {object} domain.Party
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parties/{partyID} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	party, err := h.partyService.GetPartyByID(c.Request.Context(), c.Param("partyID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve party")
		return
	}
	c.JSON(http.StatusOK, party)
}

// updateParty godoc
// @Summary Update a party
// @Tags parties
// @Accept json
// @Produce json
// @Param partyID path string true "Party ID"
// @Param party body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} domain.Party
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parties/{partyID} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	party, err := h.partyService.UpdateParty(c.Request.Context(), c.Param("partyID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update party")
		return
	}
	c.JSON(http.StatusOK, party)
}

// deleteParty godoc
// @Summary Delete a party
// @Description Parties still referenced by documents cannot be deleted.
// @Tags parties
// @Param partyID path string true "Party ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Party has documents"
// @Security BearerAuth
// @Router /parties/{partyID} [delete]
func (h *partyHandler) deleteParty(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.partyService.DeleteParty(c.Request.Context(), c.Param("partyID"), userID); err != nil {
		respondError(c, err, "Failed to delete party")
		return
	}
	c.Status(http.StatusNoContent)
}

// getStatement godoc
// @Summary Get a party's statement
// @Description All documents of the party with totals per status and currency.
// @Tags parties
// @Produce json
// @Param partyID path string true "Party ID"
// @Success 200 {object} dto.PartyStatementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /parties/{partyID}/statement [get]
func (h *partyHandler) getStatement(c *gin.Context) {
	statement, err := h.partyService.GetPartyStatement(c.Request.Context(), c.Param("partyID"))
	if err != nil {
		respondError(c, err, "Failed to build party statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyStatementResponse(statement, h.today()))
}
