package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SubJournalServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	rules     domain.LedgerRules
	mockRepo  *MockSubJournalRepository
	conflicts *countingRecorder
	service   portssvc.SubJournalSvcFacade
}

func (suite *SubJournalServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.rules = domain.DefaultLedgerRules()
	suite.mockRepo = new(MockSubJournalRepository)
	suite.conflicts = newCountingRecorder()
	suite.service = services.NewSubJournalService(suite.mockRepo, services.WithConflictRecorder(suite.conflicts))
}

func (suite *SubJournalServiceTestSuite) message(ops messages.OpFlags, data map[string]any) *messages.SubJournal {
	msg, err := messages.SubJournalFromMap(data, ops|messages.FlagValidate, &suite.rules)
	suite.Require().NoError(err)
	return msg
}

func (suite *SubJournalServiceTestSuite) storedJournal() *domain.SubJournal {
	id := uuid.NewString()
	return &domain.SubJournal{
		SubJournalUUID: id,
		Code:           "SALES",
		Revision:       time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		Names:          []domain.LedgerName{{OwnerUUID: id, Language: "en", Name: "Sales"}},
	}
}

func (suite *SubJournalServiceTestSuite) TestAddSubJournal() {
	msg := suite.message(messages.OpAdd, map[string]any{
		"code":  "sales",
		"names": []any{map[string]any{"name": "Sales"}},
	})
	created := &domain.SubJournal{SubJournalUUID: uuid.NewString(), Code: "SALES"}
	suite.mockRepo.On("CreateSubJournal", suite.ctx, mock.MatchedBy(func(j domain.SubJournal) bool {
		return j.Code == "SALES"
	})).Return(created, nil).Once()

	got, err := suite.service.Run(suite.ctx, msg)

	suite.Require().NoError(err)
	suite.Require().Len(got.Names, 1)
	suite.Equal("Sales", got.Names[0].Name)
	suite.Equal(created.SubJournalUUID, got.Names[0].OwnerUUID)
}

func (suite *SubJournalServiceTestSuite) TestUpdateSubJournal_ChangesName() {
	stored := suite.storedJournal()
	msg := suite.message(messages.OpUpdate, map[string]any{
		"code":     "SALES",
		"revision": stored.RevisionHash(),
		"names": []any{
			map[string]any{"name": "Revenue"},
			map[string]any{"name": "Ventes", "language": "fr"},
		},
	})
	suite.mockRepo.On("FindSubJournal", suite.ctx, domain.LookupKey{Code: "SALES"}).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSubJournal", suite.ctx, stored).Return(nil).Once()

	got, err := suite.service.UpdateSubJournal(suite.ctx, msg)

	suite.Require().NoError(err)
	suite.Require().Len(got.Names, 2)
	suite.Equal(domain.LedgerName{OwnerUUID: stored.SubJournalUUID, Language: "en", Name: "Revenue"}, got.Names[0])
	suite.Equal("fr", got.Names[1].Language)
}

func (suite *SubJournalServiceTestSuite) TestUpdateSubJournal_StaleRevision() {
	stored := suite.storedJournal()
	msg := suite.message(messages.OpUpdate, map[string]any{"code": "SALES", "revision": "0000"})
	suite.mockRepo.On("FindSubJournal", suite.ctx, mock.Anything).Return(stored, nil).Once()

	_, err := suite.service.UpdateSubJournal(suite.ctx, msg)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(1, suite.conflicts.counts["sub_journal"])
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSubJournal", mock.Anything, mock.Anything)
}

func (suite *SubJournalServiceTestSuite) TestDeleteSubJournal() {
	stored := suite.storedJournal()
	msg := suite.message(messages.OpDelete, map[string]any{"uuid": stored.SubJournalUUID, "revision": stored.RevisionHash()})
	suite.mockRepo.On("FindSubJournal", suite.ctx, domain.LookupKey{UUID: stored.SubJournalUUID}).Return(stored, nil).Once()
	suite.mockRepo.On("DeleteSubJournal", suite.ctx, stored).Return(nil).Once()

	got, err := suite.service.Run(suite.ctx, msg)

	suite.Require().NoError(err)
	suite.Nil(got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SubJournalServiceTestSuite) TestGetSubJournal_RepositoryFailure() {
	msg := suite.message(messages.OpRetrieve, map[string]any{"code": "SALES"})
	suite.mockRepo.On("FindSubJournal", suite.ctx, mock.Anything).
		Return(nil, apperrors.NewAppError("failed to query sub-journal", nil)).Once()

	_, err := suite.service.GetSubJournal(suite.ctx, msg)

	suite.Equal(apperrors.KindSystemError, apperrors.KindOf(err))
}

func TestSubJournalService(t *testing.T) {
	suite.Run(t, new(SubJournalServiceTestSuite))
}
