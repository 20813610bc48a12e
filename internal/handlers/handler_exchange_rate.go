package handlers

import (
	"net/http"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.getRates)
		exchangeRates.GET("/convert", h.convert)
	}
}

// getRates godoc
// @Summary Get current exchange rates
// @Description Returns the central bank's current rates against TRY. When the bank cannot be reached the last stored table is returned with stale set.
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.RateTableResponse
// @Failure 503 {object} ErrorResponse "No rates available"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	table, err := h.exchangeRateService.GetRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Uses selling rates with TRY as the pivot currency.
// @Tags exchange rates
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} domain.Conversion
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "No rates available"
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		respondError(c, apperrors.NewValidationError("amount must be a decimal number"), "Invalid query parameters")
		return
	}
	conversion, err := h.exchangeRateService.Convert(c.Request.Context(), amount, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, conversion)
}
