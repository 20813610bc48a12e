package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/core/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PartyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo *MockPartyRepository
	mockDocRepo   *MockDocumentRepository
	service       portssvc.PartySvcFacade
	ctx           context.Context
	userID        string
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.service = services.NewPartyService(suite.mockPartyRepo, suite.mockDocRepo)
	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}

func (suite *PartyServiceTestSuite) TestCreateParty() {
	suite.mockPartyRepo.On("SaveParty", suite.ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "Acme Ltd" && p.IsActive && p.PartyType == domain.PartyTypeSupplier && p.CreatedBy == suite.userID
	})).Return(nil).Once()

	party, err := suite.service.CreateParty(suite.ctx, dto.CreatePartyRequest{Name: " Acme Ltd ", PartyType: domain.PartyTypeSupplier}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(party.PartyID)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateParty_Validation() {
	_, err := suite.service.CreateParty(suite.ctx, dto.CreatePartyRequest{Name: "  ", PartyType: domain.PartyTypeCustomer}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateParty(suite.ctx, dto.CreatePartyRequest{Name: "X", PartyType: "bank"}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestDeleteParty_BlockedWhileReferenced() {
	partyID := uuid.NewString()
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, partyID).Return(&domain.Party{PartyID: partyID, Name: "Acme"}, nil).Once()
	suite.mockDocRepo.On("CountDocumentsByParty", suite.ctx, partyID).Return(3, nil).Once()

	err := suite.service.DeleteParty(suite.ctx, partyID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "DeleteParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestDeleteParty_Unreferenced() {
	partyID := uuid.NewString()
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, partyID).Return(&domain.Party{PartyID: partyID, Name: "Acme"}, nil).Once()
	suite.mockDocRepo.On("CountDocumentsByParty", suite.ctx, partyID).Return(0, nil).Once()
	suite.mockPartyRepo.On("DeleteParty", suite.ctx, partyID).Return(nil).Once()

	suite.NoError(suite.service.DeleteParty(suite.ctx, partyID, suite.userID))
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestUpdateParty_PartialFields() {
	partyID := uuid.NewString()
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, partyID).
		Return(&domain.Party{PartyID: partyID, Name: "Old", PartyType: domain.PartyTypeCustomer, Phone: "555", IsActive: true}, nil).Once()
	suite.mockPartyRepo.On("UpdateParty", suite.ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "New" && p.Phone == "555" && !p.IsActive && p.LastUpdatedBy == suite.userID
	})).Return(nil).Once()
	name, inactive := "New", false

	party, err := suite.service.UpdateParty(suite.ctx, partyID, dto.UpdatePartyRequest{Name: &name, IsActive: &inactive}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("New", party.Name)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestGetPartyStatement() {
	partyID := uuid.NewString()
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, partyID).Return(&domain.Party{PartyID: partyID, Name: "Acme"}, nil).Once()
	docs := []domain.Document{
		{DocumentID: "1", Status: domain.StatusCollected, CurrencyCode: "TRY", Amount: decimal.NewFromInt(100)},
		{DocumentID: "2", Status: domain.StatusPortfolio, CurrencyCode: "TRY", Amount: decimal.NewFromInt(50)},
		{DocumentID: "3", Status: domain.StatusPortfolio, CurrencyCode: "TRY", Amount: decimal.NewFromInt(25)},
		{DocumentID: "4", Status: domain.StatusPortfolio, CurrencyCode: "USD", Amount: decimal.NewFromInt(10)},
	}
	suite.mockDocRepo.On("FindAllDocuments", suite.ctx, domain.DocumentFilter{PartyID: &partyID}).Return(docs, nil).Once()

	st, err := suite.service.GetPartyStatement(suite.ctx, partyID)

	suite.Require().NoError(err)
	suite.Len(st.Documents, 4)
	suite.Require().Len(st.Totals, 3)
	suite.Equal(domain.StatusPortfolio, st.Totals[0].Status)
	suite.Equal("TRY", st.Totals[0].CurrencyCode)
	suite.Equal(2, st.Totals[0].Count)
	suite.True(decimal.NewFromInt(75).Equal(st.Totals[0].TotalAmount))
	suite.Equal("USD", st.Totals[1].CurrencyCode)
	suite.Equal(domain.StatusCollected, st.Totals[2].Status)
}

func (suite *PartyServiceTestSuite) TestGetPartyByID_NotFound() {
	suite.mockPartyRepo.On("FindPartyByID", suite.ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetPartyByID(suite.ctx, "nope")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}
