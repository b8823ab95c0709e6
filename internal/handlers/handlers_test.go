package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/handlers"
	"github.com/SscSPs/ledger_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RulesSvc ---
type MockRulesSvc struct {
	mock.Mock
}

func (m *MockRulesSvc) GetRules(ctx context.Context) (*domain.LedgerRules, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRules), args.Error(1)
}

func (m *MockRulesSvc) InitLedger(ctx context.Context, rules domain.LedgerRules) (*domain.LedgerRules, error) {
	args := m.Called(ctx, rules)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRules), args.Error(1)
}

// --- Mock ReferenceService ---
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) GetReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalReference), args.Error(1)
}

func (m *MockReferenceService) QueryReferences(ctx context.Context, msg *messages.Reference, limit int, nextToken *string) ([]domain.JournalReference, *string, error) {
	args := m.Called(ctx, msg, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.JournalReference), next, args.Error(2)
}

func (m *MockReferenceService) Lookup(ctx context.Context, msg *messages.Reference) (*messages.Reference, error) {
	args := m.Called(ctx, msg)
	if fill, ok := args.Get(0).(func(*messages.Reference) *messages.Reference); ok {
		return fill(msg), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messages.Reference), args.Error(1)
}

func (m *MockReferenceService) AddReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalReference), args.Error(1)
}

func (m *MockReferenceService) UpdateReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalReference), args.Error(1)
}

func (m *MockReferenceService) DeleteReference(ctx context.Context, msg *messages.Reference) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockReferenceService) Run(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalReference), args.Error(1)
}

// --- Mock SubJournalService ---
type MockSubJournalService struct {
	mock.Mock
}

func (m *MockSubJournalService) GetSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockSubJournalService) AddSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockSubJournalService) UpdateSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockSubJournalService) DeleteSubJournal(ctx context.Context, msg *messages.SubJournal) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockSubJournalService) Run(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockSubJournalService) result(args mock.Arguments) (*domain.SubJournal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubJournal), args.Error(1)
}

// --- Mock DomainService ---
type MockDomainService struct {
	mock.Mock
}

func (m *MockDomainService) GetDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockDomainService) AddDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockDomainService) UpdateDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockDomainService) DeleteDomain(ctx context.Context, msg *messages.Domain) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockDomainService) Run(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	return m.result(m.Called(ctx, msg))
}

func (m *MockDomainService) result(args mock.Arguments) (*domain.LedgerDomain, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerDomain), args.Error(1)
}

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router         *gin.Engine
	rules          domain.LedgerRules
	mockRules      *MockRulesSvc
	mockReference  *MockReferenceService
	mockSubJournal *MockSubJournalService
	mockDomain     *MockDomainService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.rules = domain.DefaultLedgerRules()
	suite.mockRules = new(MockRulesSvc)
	suite.mockReference = new(MockReferenceService)
	suite.mockSubJournal = new(MockSubJournalService)
	suite.mockDomain = new(MockDomainService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{LedgerRules: domain.DefaultLedgerRules()}, &portssvc.ServiceContainer{
		Rules:      suite.mockRules,
		Reference:  suite.mockReference,
		SubJournal: suite.mockSubJournal,
		Domain:     suite.mockDomain,
	})
}

func (suite *HandlersTestSuite) initialized() {
	rules := suite.rules
	suite.mockRules.On("GetRules", mock.Anything).Return(&rules, nil)
}

func (suite *HandlersTestSuite) post(path string, body string) (*httptest.ResponseRecorder, map[string]any) {
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	return suite.serve(req)
}

func (suite *HandlersTestSuite) serve(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	var payload map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func storedReference(code string) *domain.JournalReference {
	return &domain.JournalReference{
		JournalReferenceUUID: uuid.NewString(),
		DomainUUID:           uuid.NewString(),
		Code:                 code,
		Revision:             time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestAddReference() {
	suite.initialized()
	ref := storedReference("C1")
	suite.mockReference.On("Run", mock.Anything, mock.MatchedBy(func(msg *messages.Reference) bool {
		return msg.Code == "C1" && msg.Domain != nil && msg.Domain.Code == "MAIN" &&
			msg.OpFlags().Operation() == messages.OpAdd
	})).Return(ref, nil).Once()

	w, body := suite.post("/api/v1/references/add", `{"code":"c1"}`)

	suite.Equal(http.StatusCreated, w.Code)
	got := body["reference"].(map[string]any)
	suite.Equal("C1", got["code"])
	suite.Equal(ref.JournalReferenceUUID, got["uuid"])
	suite.Equal(ref.RevisionHash(), got["revision"])
	suite.NotContains(got, "extra")
	suite.mockReference.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestNumericCodeIsKept() {
	suite.initialized()
	suite.mockReference.On("Run", mock.Anything, mock.MatchedBy(func(msg *messages.Reference) bool {
		return msg.Code == "100200300400500600"
	})).Return(storedReference("100200300400500600"), nil).Once()

	w, _ := suite.post("/api/v1/references/get", `{"code":100200300400500600}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReference.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestReference_LedgerNotInitialized() {
	suite.mockRules.On("GetRules", mock.Anything).Return(nil, nil).Once()

	w, body := suite.post("/api/v1/references/add", `{"code":"C1"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BAD_REQUEST", body["kind"])
	suite.Equal([]any{"Ledger has not been initialized."}, body["errors"])
	suite.mockReference.AssertNotCalled(suite.T(), "Run", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestReference_UnknownOperation() {
	w, body := suite.post("/api/v1/references/purge", `{}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BAD_REQUEST", body["kind"])
}

func (suite *HandlersTestSuite) TestReference_MalformedBody() {
	w, body := suite.post("/api/v1/references/add", `["not", "an", "object"]`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BAD_REQUEST", body["kind"])
}

func (suite *HandlersTestSuite) TestUpdateReference_Conflict() {
	suite.initialized()
	suite.mockReference.On("Run", mock.Anything, mock.Anything).
		Return(nil, apperrors.New(apperrors.KindConflict, "Entity has been modified since it was last read; fetch it again and resubmit.")).Once()

	w, body := suite.post("/api/v1/references/update", `{"code":"C1","extra":"x","revision":"stale"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("CONFLICT", body["kind"])
}

func (suite *HandlersTestSuite) TestUpdateReference_MissingRevision() {
	suite.initialized()

	w, body := suite.post("/api/v1/references/update", `{"code":"C1","extra":"x"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(body["errors"], "A revision code is required.")
}

func (suite *HandlersTestSuite) TestDeleteReference() {
	suite.initialized()
	suite.mockReference.On("Run", mock.Anything, mock.Anything).Return(nil, nil).Once()

	w, body := suite.post("/api/v1/references/delete", `{"code":"C1","revision":"abc"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, body["success"])
}

func (suite *HandlersTestSuite) TestQueryReferences() {
	suite.initialized()
	page := []domain.JournalReference{*storedReference("A"), *storedReference("B")}
	suite.mockReference.On("QueryReferences", mock.Anything, mock.Anything, 2, (*string)(nil)).
		Return(page, "token-1", nil).Once()

	w, body := suite.post("/api/v1/references/query?limit=2", `{"domain":"MAIN"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Len(body["references"], 2)
	suite.Equal("token-1", body["nextToken"])
}

func (suite *HandlersTestSuite) TestQueryReferences_PassesToken() {
	suite.initialized()
	suite.mockReference.On("QueryReferences", mock.Anything, mock.Anything, 0, mock.MatchedBy(func(token *string) bool {
		return token != nil && *token == "abc"
	})).Return([]domain.JournalReference{}, nil, nil).Once()

	w, body := suite.post("/api/v1/references/query?nextToken=abc", ``)

	suite.Equal(http.StatusOK, w.Code)
	suite.Empty(body["references"])
	suite.NotContains(body, "nextToken")
}

func (suite *HandlersTestSuite) TestLookupReference() {
	suite.initialized()
	id := uuid.NewString()
	suite.mockReference.On("Lookup", mock.Anything, mock.Anything).
		Return(func(msg *messages.Reference) *messages.Reference {
			msg.UUID = id
			return msg
		}, nil).Once()

	w, body := suite.post("/api/v1/references/lookup", `{"code":"C1"}`)

	suite.Equal(http.StatusOK, w.Code)
	got := body["reference"].(map[string]any)
	suite.Equal(id, got["uuid"])
	suite.Equal("C1", got["code"])
	suite.mockReference.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestSystemErrorIsHidden() {
	suite.initialized()
	suite.mockReference.On("Run", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError("failed to query reference", errors.New("connection refused"))).Once()

	w, body := suite.post("/api/v1/references/get", `{"code":"C1"}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("SYSTEM_ERROR", body["kind"])
	suite.Equal([]any{"An internal error occurred."}, body["errors"])
}

func (suite *HandlersTestSuite) TestAddDomain() {
	suite.initialized()
	d := &domain.LedgerDomain{
		DomainUUID: uuid.NewString(),
		Code:       "EU",
		Names:      []domain.LedgerName{{Language: "en", Name: "Europe"}},
	}
	suite.mockDomain.On("Run", mock.Anything, mock.MatchedBy(func(msg *messages.Domain) bool {
		return msg.Code == "EU" && msg.Names["en"] != nil
	})).Return(d, nil).Once()

	w, body := suite.post("/api/v1/domains/add", `{"code":"eu","names":[{"name":"Europe"}]}`)

	suite.Equal(http.StatusCreated, w.Code)
	got := body["domain"].(map[string]any)
	suite.Equal("EU", got["code"])
	suite.Equal([]any{map[string]any{"language": "en", "name": "Europe"}}, got["names"])
}

func (suite *HandlersTestSuite) TestAddDomain_RequiresName() {
	suite.initialized()

	w, body := suite.post("/api/v1/domains/add", `{"code":"EU"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BAD_REQUEST", body["kind"])
}

func (suite *HandlersTestSuite) TestDeleteDefaultDomain() {
	suite.initialized()
	suite.mockDomain.On("Run", mock.Anything, mock.Anything).
		Return(nil, apperrors.New(apperrors.KindRuleViolation, "The default domain MAIN cannot be deleted.")).Once()

	w, body := suite.post("/api/v1/domains/delete", `{"code":"MAIN","revision":"abc"}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("RULE_VIOLATION", body["kind"])
}

func (suite *HandlersTestSuite) TestGetSubJournal_NotFound() {
	suite.initialized()
	suite.mockSubJournal.On("Run", mock.Anything, mock.Anything).
		Return(nil, apperrors.New(apperrors.KindNotFound, "Sub-journal SALES not found.")).Once()

	w, body := suite.post("/api/v1/journals/get", `{"code":"SALES"}`)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal([]any{"Sub-journal SALES not found."}, body["errors"])
}

func (suite *HandlersTestSuite) TestAddSubJournal() {
	suite.initialized()
	journal := &domain.SubJournal{SubJournalUUID: uuid.NewString(), Code: "SALES"}
	suite.mockSubJournal.On("Run", mock.Anything, mock.Anything).Return(journal, nil).Once()

	w, body := suite.post("/api/v1/journals/add", `{"code":"sales","names":[{"name":"Sales"}]}`)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("SALES", body["journal"].(map[string]any)["code"])
}

func (suite *HandlersTestSuite) TestInitLedger() {
	initialized := suite.rules
	initialized.Domain.Default = "BOOKS"
	initialized.Language.Default = "fr"
	suite.mockRules.On("InitLedger", mock.Anything, initialized).Return(&initialized, nil).Once()

	w, body := suite.post("/api/v1/ledger/init", `{"defaultDomain":"BOOKS","defaultLanguage":"fr"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("BOOKS", body["rules"].(map[string]any)["defaultDomain"])
	suite.mockRules.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestInitLedger_InvalidRequest() {
	w, body := suite.post("/api/v1/ledger/init", `{"defaultLanguage":"fr"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BAD_REQUEST", body["kind"])
	suite.mockRules.AssertNotCalled(suite.T(), "InitLedger", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestGetRules_Uninitialized() {
	suite.mockRules.On("GetRules", mock.Anything).Return(nil, nil).Once()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/ledger/rules", nil)

	w, body := suite.serve(req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", body["kind"])
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
