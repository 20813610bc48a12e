package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/SscSPs/cek_senet_app/internal/middleware"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// maxImportSize bounds uploaded import workbooks.
const maxImportSize = 10 << 20

// documentHandler handles HTTP requests for checks and promissory notes.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	posthogClient   *utils.PosthogClientWrapper
	today           func() time.Time
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, posthogClient *utils.PosthogClientWrapper, today func() time.Time) *documentHandler {
	return &documentHandler{documentService: ds, posthogClient: posthogClient, today: today}
}

// registerDocumentRoutes registers all document-related routes.
func registerDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, posthogClient *utils.PosthogClientWrapper, today func() time.Time) {
	h := newDocumentHandler(ds, posthogClient, today)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.POST("/bulk-transitions", h.bulkTransition)
		documents.POST("/import", h.importDocuments)
		documents.GET("/:documentID", h.getDocument)
		documents.PUT("/:documentID", h.updateDocument)
		documents.DELETE("/:documentID", h.deleteDocument)
		documents.POST("/:documentID/transitions", h.transitionDocument)
		documents.GET("/:documentID/history", h.getHistory)
		documents.GET("/:documentID/allowed-transitions", h.getAllowedTransitions)
	}
}

// documentFilter turns list query parameters into a domain filter, rejecting unknown enum values.
func documentFilter(status, documentType, direction, partyID, dueFrom, dueTo, search string) (domain.DocumentFilter, error) {
	var f domain.DocumentFilter
	if status != "" {
		s := domain.DocumentStatus(strings.ToLower(status))
		if !s.IsValid() {
			return f, apperrors.NewValidationError("unknown status " + status)
		}
		f.Status = &s
	}
	if documentType != "" {
		t := domain.DocumentType(strings.ToLower(documentType))
		if !t.IsValid() {
			return f, apperrors.NewValidationError("unknown document type " + documentType)
		}
		f.DocumentType = &t
	}
	if direction != "" {
		d := domain.DocumentDirection(strings.ToLower(direction))
		if !d.IsValid() {
			return f, apperrors.NewValidationError("unknown direction " + direction)
		}
		f.Direction = &d
	}
	if partyID != "" {
		f.PartyID = &partyID
	}
	var err error
	if f.DueFrom, err = parseDateQuery(dueFrom); err != nil {
		return f, err
	}
	if f.DueTo, err = parseDateQuery(dueTo); err != nil {
		return f, err
	}
	if f.DueFrom != nil && f.DueTo != nil && f.DueTo.Before(*f.DueFrom) {
		return f, apperrors.NewValidationError("dueTo cannot be before dueFrom")
	}
	f.Search = strings.TrimSpace(search)
	return f, nil
}

// createDocument godoc
// @Summary Record a new check or note
// @Description New documents always start in the portfolio status.
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Document number already exists"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	doc, err := h.documentService.CreateDocument(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc, h.today()))
}

// listDocuments godoc
// @Summary List documents
// @Description Lists documents ordered by due date, with filters and token-based pagination.
// @Tags documents
// @Produce json
// @Param status query string false "Status filter"
// @Param documentType query string false "check or note"
// @Param direction query string false "received or issued"
// @Param partyID query string false "Party ID"
// @Param dueFrom query string false "Due on or after (YYYY-MM-DD)"
// @Param dueTo query string false "Due on or before (YYYY-MM-DD)"
// @Param search query string false "Matches number, issuer, bank or party name"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	filter, err := documentFilter(params.Status, params.DocumentType, params.Direction, params.PartyID, params.DueFrom, params.DueTo, params.Search)
	if err != nil {
		respondError(c, err, "Invalid query parameters")
		return
	}
	docs, next, err := h.documentService.ListDocuments(c.Request.Context(), filter, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentResponse(docs, next, h.today()))
}

// getDocument godoc
// @Summary Get a document
// @Description Returns the document with its full status history.
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, h.today()))
}

// updateDocument godoc
// @Summary Update a document
// @Description Edits the non-status fields. Collected and bounced documents cannot be edited.
// @Tags documents
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Document is in a terminal status"
// @Security BearerAuth
// @Router /documents/{documentID} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	doc, err := h.documentService.UpdateDocument(c.Request.Context(), c.Param("documentID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, h.today()))
}

// deleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Param documentID path string true "Document ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("documentID"), userID); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}

// transitionDocument godoc
// @Summary Change a document's status
// @Tags documents
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param transition body dto.TransitionRequest true "Target status"
// @Success 200 {object} domain.TransitionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Status changed concurrently"
// @Failure 422 {object} ErrorResponse "Transition not allowed"
// @Security BearerAuth
// @Router /documents/{documentID}/transitions [post]
func (h *documentHandler) transitionDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	result, err := h.documentService.TransitionDocument(c.Request.Context(), c.Param("documentID"), req.Status, req.Description, userID)
	if err != nil {
		respondError(c, err, "Failed to change document status")
		return
	}
	middleware.PosthogEvent(c, h.posthogClient, "document_status_changed", map[string]any{
		"from_status": string(result.HistoryEntry.FromStatus),
		"to_status":   string(result.NewStatus),
	})
	c.JSON(http.StatusOK, result)
}

// bulkTransition godoc
// @Summary Change the status of many documents
// @Description Each document is processed independently; failures are reported per document and do not stop the others.
// @Tags documents
// @Accept json
// @Produce json
// @Param transition body dto.BulkTransitionRequest true "Documents and target status"
// @Success 200 {object} domain.BulkTransitionResult
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/bulk-transitions [post]
func (h *documentHandler) bulkTransition(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.BulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	result, err := h.documentService.BulkTransition(c.Request.Context(), req.DocumentIDs, req.Status, req.Description, userID)
	if err != nil {
		respondError(c, err, "Failed to change document statuses")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bulk transition finished",
		slog.Int("succeeded", result.Succeeded), slog.Int("failed", len(result.Failures)))
	c.JSON(http.StatusOK, result)
}

// importDocuments godoc
// @Summary Import documents from a workbook
// @Description Reads the first sheet of an xlsx upload, skipping the header row. Rows that fail are reported and skipped.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/import [post]
func (h *documentHandler) importDocuments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "Workbook upload required in field 'file'", err)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "Could not read upload", err)
		return
	}
	defer f.Close()

	result, err := h.documentService.ImportDocuments(c.Request.Context(), f, userID)
	if err != nil {
		respondError(c, err, "Failed to import documents")
		return
	}
	c.JSON(http.StatusOK, result)
}

// getHistory godoc
// @Summary Get a document's status history
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {array} domain.StatusHistoryEntry
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/history [get]
func (h *documentHandler) getHistory(c *gin.Context) {
	history, err := h.documentService.GetDocumentHistory(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// getAllowedTransitions godoc
// @Summary List the statuses a document can move to
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.AllowedTransitionsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/allowed-transitions [get]
func (h *documentHandler) getAllowedTransitions(c *gin.Context) {
	documentID := c.Param("documentID")
	current, allowed, err := h.documentService.GetAllowedTransitions(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to retrieve allowed transitions")
		return
	}
	c.JSON(http.StatusOK, dto.AllowedTransitionsResponse{
		DocumentID:      documentID,
		CurrentStatus:   current,
		AllowedStatuses: allowed,
	})
}
