package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type creditHandler struct {
	creditService    portssvc.CreditSvcFacade
	reportingService portssvc.ReportingService
	today            func() time.Time
}

func newCreditHandler(cs portssvc.CreditSvcFacade, rs portssvc.ReportingService, today func() time.Time) *creditHandler {
	return &creditHandler{creditService: cs, reportingService: rs, today: today}
}

// registerCreditRoutes registers routes for credits and their installments.
func registerCreditRoutes(rg *gin.RouterGroup, cs portssvc.CreditSvcFacade, rs portssvc.ReportingService, today func() time.Time) {
	h := newCreditHandler(cs, rs, today)

	credits := rg.Group("/credits")
	{
		credits.POST("", h.createCredit)
		credits.GET("", h.listCredits)
		credits.POST("/preview", h.previewSchedule)
		credits.GET("/:creditID", h.getCredit)
		credits.DELETE("/:creditID", h.deleteCredit)
		credits.GET("/:creditID/summary", h.getSummary)
		credits.GET("/:creditID/schedule.xlsx", h.exportSchedule)
		credits.POST("/:creditID/installments/:installmentID/pay", h.payInstallment)
		credits.POST("/:creditID/installments/:installmentID/unpay", h.unpayInstallment)
	}
}

// writeWorkbook renders a workbook into memory first so a failure can still answer with JSON.
func writeWorkbook(c *gin.Context, fileName string, render func(w *bytes.Buffer) error, fallback string) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		respondError(c, err, fallback)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// createCredit godoc
// @Summary Create a credit
// @Description Generates the installment schedule and stores the credit together with it.
// @Tags credits
// @Accept json
// @Produce json
// @Param credit body dto.CreateCreditRequest true "Credit terms"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits [post]
func (h *creditHandler) createCredit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	credit, err := h.creditService.CreateCredit(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create credit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit, h.today()))
}

// listCredits godoc
// @Summary List credits
// @Tags credits
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.CreditResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	var params dto.ListCreditsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	credits, err := h.creditService.ListCredits(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list credits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCreditResponse(credits, h.today()))
}

// previewSchedule godoc
// @Summary Preview an installment schedule
// @Description Runs the schedule generator without saving anything.
// @Tags credits
// @Accept json
// @Produce json
// @Param terms body dto.SchedulePreviewRequest true "Loan terms"
// @Success 200 {object} dto.SchedulePreviewResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits/preview [post]
func (h *creditHandler) previewSchedule(c *gin.Context) {
	var req dto.SchedulePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	schedule, err := h.creditService.PreviewSchedule(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to generate schedule")
		return
	}
	c.JSON(http.StatusOK, dto.ToSchedulePreviewResponse(req.Principal, *schedule, h.today()))
}

// getCredit godoc
// @Summary Get a credit with its installments
// @Tags credits
// @Produce json
// @Param creditID path string true "Credit ID"
// @Success 200 {object} dto.CreditResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits/{creditID} [get]
func (h *creditHandler) getCredit(c *gin.Context) {
	credit, err := h.creditService.GetCreditByID(c.Request.Context(), c.Param("creditID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve credit")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditResponse(credit, h.today()))
}

// deleteCredit godoc
// @Summary Delete a credit and its installments
// @Tags credits
// @Param creditID path string true "Credit ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits/{creditID} [delete]
func (h *creditHandler) deleteCredit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.creditService.DeleteCredit(c.Request.Context(), c.Param("creditID"), userID); err != nil {
		respondError(c, err, "Failed to delete credit")
		return
	}
	c.Status(http.StatusNoContent)
}

// getSummary godoc
// @Summary Get a credit's repayment summary
// @Tags credits
// @Produce json
// @Param creditID path string true "Credit ID"
// @Success 200 {object} domain.CreditSummary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits/{creditID}/summary [get]
func (h *creditHandler) getSummary(c *gin.Context) {
	summary, err := h.creditService.GetCreditSummary(c.Request.Context(), c.Param("creditID"))
	if err != nil {
		respondError(c, err, "Failed to summarize credit")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// exportSchedule godoc
// @Summary Download a credit's installment table
// @Tags credits
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param creditID path string true "Credit ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credits/{creditID}/schedule.xlsx [get]
func (h *creditHandler) exportSchedule(c *gin.Context) {
	creditID := c.Param("creditID")
	writeWorkbook(c, "credit-"+creditID+".xlsx", func(w *bytes.Buffer) error {
		return h.reportingService.ExportCreditSchedule(c.Request.Context(), creditID, w)
	}, "Failed to export credit schedule")
}

// payInstallment godoc
// @Summary Mark an installment paid
// @Tags credits
// @Accept json
// @Produce json
// @Param creditID path string true "Credit ID"
// @Param installmentID path string true "Installment ID"
// @Param payment body dto.PayInstallmentRequest false "Paid amount and date"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Installment already paid"
// @Security BearerAuth
// @Router /credits/{creditID}/installments/{installmentID}/pay [post]
func (h *creditHandler) payInstallment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.PayInstallmentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request format", err)
			return
		}
	}
	inst, err := h.creditService.PayInstallment(c.Request.Context(), c.Param("creditID"), c.Param("installmentID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to pay installment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(*inst, h.today()))
}

// unpayInstallment godoc
// @Summary Revert an installment to pending
// @Tags credits
// @Produce json
// @Param creditID path string true "Credit ID"
// @Param installmentID path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Installment is not paid"
// @Security BearerAuth
// @Router /credits/{creditID}/installments/{installmentID}/unpay [post]
func (h *creditHandler) unpayInstallment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inst, err := h.creditService.UnpayInstallment(c.Request.Context(), c.Param("creditID"), c.Param("installmentID"), userID)
	if err != nil {
		respondError(c, err, "Failed to revert installment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(*inst, h.today()))
}
