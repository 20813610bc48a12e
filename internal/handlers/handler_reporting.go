package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles aggregate reports over documents.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	today            func() time.Time
}

func newReportingHandler(rs portssvc.ReportingService, today func() time.Time) *reportingHandler {
	return &reportingHandler{reportingService: rs, today: today}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService, today func() time.Time) {
	h := newReportingHandler(rs, today)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/by-party", h.getByParty)
		reports.GET("/upcoming", h.getUpcoming)
		reports.GET("/monthly", h.getMonthly)
		reports.GET("/documents.xlsx", h.exportDocuments)
	}
}

func (h *reportingHandler) bindFilter(c *gin.Context) (domain.DocumentFilter, bool) {
	var params dto.ReportFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return domain.DocumentFilter{}, false
	}
	filter, err := documentFilter(params.Status, "", "", params.PartyID, params.DueFrom, params.DueTo, "")
	if err != nil {
		respondError(c, err, "Invalid query parameters")
		return domain.DocumentFilter{}, false
	}
	return filter, true
}

// getSummary godoc
// @Summary Totals by status and currency
// @Description Groups documents by status and currency. The TRY total is best effort and omitted when rates are unavailable.
// @Tags reports
// @Produce json
// @Param dueFrom query string false "Due on or after (YYYY-MM-DD)"
// @Param dueTo query string false "Due on or before (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Param partyID query string false "Party ID"
// @Success 200 {object} domain.SummaryReport
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	report, err := h.reportingService.Summary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to build summary report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getByParty godoc
// @Summary Open totals by party
// @Tags reports
// @Produce json
// @Param dueFrom query string false "Due on or after (YYYY-MM-DD)"
// @Param dueTo query string false "Due on or before (YYYY-MM-DD)"
// @Param partyID query string false "Party ID"
// @Success 200 {array} domain.PartySummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/by-party [get]
func (h *reportingHandler) getByParty(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	summaries, err := h.reportingService.ByParty(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to build party report")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// getUpcoming godoc
// @Summary Documents coming due
// @Description Open documents due within the given number of days, plus the ones already overdue.
// @Tags reports
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} domain.UpcomingReport
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/upcoming [get]
func (h *reportingHandler) getUpcoming(c *gin.Context) {
	var params dto.UpcomingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	report, err := h.reportingService.Upcoming(c.Request.Context(), params.Days)
	if err != nil {
		respondError(c, err, "Failed to build upcoming report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getMonthly godoc
// @Summary Due totals per month
// @Tags reports
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {array} domain.MonthlyDue
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthly(c *gin.Context) {
	var params dto.MonthlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	year := params.Year
	if year == 0 {
		year = h.today().Year()
	}
	months, err := h.reportingService.Monthly(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to build monthly report")
		return
	}
	c.JSON(http.StatusOK, months)
}

// exportDocuments godoc
// @Summary Download documents as a workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param dueFrom query string false "Due on or after (YYYY-MM-DD)"
// @Param dueTo query string false "Due on or before (YYYY-MM-DD)"
// @Param status query string false "Status filter"
// @Param partyID query string false "Party ID"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/documents.xlsx [get]
func (h *reportingHandler) exportDocuments(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	fileName := "documents-" + h.today().Format(dateLayout) + ".xlsx"
	writeWorkbook(c, fileName, func(w *bytes.Buffer) error {
		return h.reportingService.ExportDocuments(c.Request.Context(), filter, w)
	}, "Failed to export documents")
}
