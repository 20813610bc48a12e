package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/handlers"
	"github.com/SscSPs/cek_senet_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockDocuments    *MockDocumentService
	mockRates        *MockExchangeRateService
	mockReporting    *MockReportingService
	jwtSecret        string
	requestingUserID string
}

// generateTestToken creates a signed JWT for the given user.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cst-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.requestingUserID = uuid.NewString()

	suite.mockDocuments = new(MockDocumentService)
	suite.mockRates = new(MockExchangeRateService)
	suite.mockReporting = new(MockReportingService)

	cfg := &config.Config{
		IsProduction:   true,
		Location:       time.UTC,
		JWTSecret:      suite.jwtSecret,
		LoginRateLimit: "1000-S",
		APIRateLimit:   "1000-S",
	}
	services := &portssvc.ServiceContainer{
		Document:     suite.mockDocuments,
		ExchangeRate: suite.mockRates,
		Reporting:    suite.mockReporting,
	}
	err := handlers.RegisterRoutes(suite.router, cfg, services, nil)
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.requestingUserID))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth_NoAuth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDocuments.AssertNotCalled(suite.T(), "ListDocuments")
}

func (suite *HandlerTestSuite) TestListDocuments_PassesFilter() {
	docID := uuid.NewString()
	past := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)
	docs := []domain.Document{{
		DocumentID:     docID,
		DocumentType:   domain.DocumentTypeCheck,
		DocumentNumber: "CHK-1",
		Amount:         decimal.NewFromInt(1500),
		CurrencyCode:   "TRY",
		DueDate:        past,
		Direction:      domain.DirectionReceived,
		Status:         domain.StatusPortfolio,
	}}
	next := "next-page"

	suite.mockDocuments.On("ListDocuments",
		mock.Anything,
		mock.MatchedBy(func(f domain.DocumentFilter) bool {
			return f.Status != nil && *f.Status == domain.StatusPortfolio &&
				f.DueFrom != nil && f.DueFrom.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				f.DueTo == nil && f.Search == "acme"
		}),
		20,
		(*string)(nil),
	).Return(docs, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents?status=portfolio&dueFrom=2020-01-01&search=acme", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal("next-page", body["nextToken"])
	listed := body["documents"].([]any)
	suite.Len(listed, 1)
	first := listed[0].(map[string]any)
	suite.Equal(docID, first["documentID"])
	suite.Equal(true, first["isOverdue"])
	suite.mockDocuments.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListDocuments_RejectsUnknownStatus() {
	w := suite.do(http.MethodGet, "/api/v1/documents?status=lost", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("validation", suite.decode(w)["code"])
	suite.mockDocuments.AssertNotCalled(suite.T(), "ListDocuments")
}

func (suite *HandlerTestSuite) TestListDocuments_RejectsBadDate() {
	w := suite.do(http.MethodGet, "/api/v1/documents?dueTo=15.01.2026", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetDocument_NotFound() {
	docID := uuid.NewString()
	suite.mockDocuments.On("GetDocumentByID", mock.Anything, docID).
		Return(nil, apperrors.NewNotFoundError("document "+docID+" not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/"+docID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("not_found", suite.decode(w)["code"])
}

func (suite *HandlerTestSuite) TestTransitionDocument_Success() {
	docID := uuid.NewString()
	result := &domain.TransitionResult{
		DocumentID: docID,
		NewStatus:  domain.StatusAtBank,
		HistoryEntry: domain.StatusHistoryEntry{
			HistoryID:   uuid.NewString(),
			DocumentID:  docID,
			FromStatus:  domain.StatusPortfolio,
			ToStatus:    domain.StatusAtBank,
			Description: "deposited",
			ActorID:     suite.requestingUserID,
		},
	}
	suite.mockDocuments.On("TransitionDocument", mock.Anything, docID, domain.StatusAtBank, "deposited", suite.requestingUserID).
		Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents/"+docID+"/transitions", map[string]string{
		"status":      "at_bank",
		"description": "deposited",
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("at_bank", suite.decode(w)["newStatus"])
	suite.mockDocuments.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTransitionDocument_TerminalState() {
	docID := uuid.NewString()
	suite.mockDocuments.On("TransitionDocument", mock.Anything, docID, domain.StatusAtBank, "", suite.requestingUserID).
		Return(nil, apperrors.NewTerminalStateError("collected", "at_bank")).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents/"+docID+"/transitions", map[string]string{"status": "at_bank"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("terminal_state", suite.decode(w)["code"])
}

func (suite *HandlerTestSuite) TestTransitionDocument_MissingStatus() {
	w := suite.do(http.MethodPost, "/api/v1/documents/"+uuid.NewString()+"/transitions", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDocuments.AssertNotCalled(suite.T(), "TransitionDocument")
}

func (suite *HandlerTestSuite) TestBulkTransition_ReportsFailures() {
	ok, missing := uuid.NewString(), uuid.NewString()
	result := &domain.BulkTransitionResult{
		Succeeded: 1,
		Results:   []domain.TransitionResult{{DocumentID: ok, NewStatus: domain.StatusBounced}},
		Failures:  []domain.BulkTransitionFailure{{DocumentID: missing, Code: "not_found", Error: "document not found"}},
	}
	suite.mockDocuments.On("BulkTransition", mock.Anything, []string{ok, missing}, domain.StatusBounced, "", suite.requestingUserID).
		Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents/bulk-transitions", map[string]any{
		"documentIDs": []string{ok, missing},
		"status":      "bounced",
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.EqualValues(1, body["succeeded"])
	suite.Len(body["failures"].([]any), 1)
}

func (suite *HandlerTestSuite) TestAllowedTransitions() {
	docID := uuid.NewString()
	suite.mockDocuments.On("GetAllowedTransitions", mock.Anything, docID).
		Return(domain.StatusAtBank, []domain.DocumentStatus{domain.StatusBounced, domain.StatusCollected}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/"+docID+"/allowed-transitions", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("at_bank", body["currentStatus"])
	suite.Equal([]any{"bounced", "collected"}, body["allowedStatuses"])
}

func (suite *HandlerTestSuite) TestConvert_Success() {
	amount := decimal.RequireFromString("100.50")
	conversion := &domain.Conversion{
		Amount:       amount,
		FromCurrency: "USD",
		ToCurrency:   "TRY",
		Rate:         decimal.RequireFromString("34.5"),
		Result:       decimal.RequireFromString("3467.25"),
	}
	suite.mockRates.On("Convert", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	}), "USD", "TRY").Return(conversion, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=100.50&from=USD&to=TRY", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("3467.25", suite.decode(w)["result"])
}

func (suite *HandlerTestSuite) TestConvert_InvalidAmount() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=lots&from=USD&to=TRY", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "Convert")
}

func (suite *HandlerTestSuite) TestGetRates_Unavailable() {
	suite.mockRates.On("GetRates", mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusServiceUnavailable, "no exchange rates available", apperrors.ErrUnavailable)).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestMonthly_DefaultsToCurrentYear() {
	year := time.Now().UTC().Year()
	suite.mockReporting.On("Monthly", mock.Anything, year).Return([]domain.MonthlyDue{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/monthly", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestExportDocuments_WritesWorkbook() {
	suite.mockReporting.On("ExportDocuments", mock.Anything, mock.Anything, mock.Anything).
		Return(func(w io.Writer) error {
			_, err := w.Write([]byte("PK-fake-workbook"))
			return err
		}).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/documents.xlsx?status=portfolio", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment")
	suite.Equal("PK-fake-workbook", w.Body.String())
}

func (suite *HandlerTestSuite) TestExportDocuments_FailureIsJSON() {
	suite.mockReporting.On("ExportDocuments", mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.NewAppError(http.StatusInternalServerError, "failed to list documents", io.ErrUnexpectedEOF)).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/documents.xlsx", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := suite.decode(w)
	suite.Equal("internal", body["code"])
	suite.NotContains(body["error"], "EOF")
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
