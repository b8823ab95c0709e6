package services_test

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalReferenceRepository ---
type MockJournalReferenceRepository struct {
	mock.Mock
}

var _ portsrepo.JournalReferenceRepositoryFacade = (*MockJournalReferenceRepository)(nil)

func (m *MockJournalReferenceRepository) FindJournalReference(ctx context.Context, key domain.LookupKey) (*domain.JournalReference, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalReference), args.Error(1)
}

func (m *MockJournalReferenceRepository) ListJournalReferences(ctx context.Context, domainUUID string, limit int, nextToken *string) ([]domain.JournalReference, *string, error) {
	args := m.Called(ctx, domainUUID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.JournalReference), next, args.Error(2)
}

func (m *MockJournalReferenceRepository) CreateJournalReference(ctx context.Context, ref domain.JournalReference) (*domain.JournalReference, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalReference), args.Error(1)
}

func (m *MockJournalReferenceRepository) UpdateJournalReference(ctx context.Context, ref *domain.JournalReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockJournalReferenceRepository) DeleteJournalReference(ctx context.Context, ref *domain.JournalReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// --- Mock LedgerDomainRepository ---
type MockLedgerDomainRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerDomainRepositoryFacade = (*MockLedgerDomainRepository)(nil)

func (m *MockLedgerDomainRepository) FindLedgerDomain(ctx context.Context, key domain.LookupKey) (*domain.LedgerDomain, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerDomain), args.Error(1)
}

func (m *MockLedgerDomainRepository) CreateLedgerDomain(ctx context.Context, d domain.LedgerDomain, names portsrepo.NameSync) (*domain.LedgerDomain, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	created := args.Get(0).(*domain.LedgerDomain)
	if err := applySync(ctx, created, names); err != nil {
		return nil, err
	}
	return created, args.Error(1)
}

func (m *MockLedgerDomainRepository) UpdateLedgerDomain(ctx context.Context, d *domain.LedgerDomain, names portsrepo.NameSync) error {
	args := m.Called(ctx, d)
	if err := args.Error(0); err != nil {
		return err
	}
	return applySync(ctx, d, names)
}

func (m *MockLedgerDomainRepository) DeleteLedgerDomain(ctx context.Context, d *domain.LedgerDomain) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// --- Mock SubJournalRepository ---
type MockSubJournalRepository struct {
	mock.Mock
}

var _ portsrepo.SubJournalRepositoryFacade = (*MockSubJournalRepository)(nil)

func (m *MockSubJournalRepository) FindSubJournal(ctx context.Context, key domain.LookupKey) (*domain.SubJournal, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubJournal), args.Error(1)
}

func (m *MockSubJournalRepository) CreateSubJournal(ctx context.Context, journal domain.SubJournal, names portsrepo.NameSync) (*domain.SubJournal, error) {
	args := m.Called(ctx, journal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	created := args.Get(0).(*domain.SubJournal)
	if err := applySync(ctx, created, names); err != nil {
		return nil, err
	}
	return created, args.Error(1)
}

func (m *MockSubJournalRepository) UpdateSubJournal(ctx context.Context, journal *domain.SubJournal, names portsrepo.NameSync) error {
	args := m.Called(ctx, journal)
	if err := args.Error(0); err != nil {
		return err
	}
	return applySync(ctx, journal, names)
}

func (m *MockSubJournalRepository) DeleteSubJournal(ctx context.Context, journal *domain.SubJournal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

// --- Mock LedgerRulesRepository ---
type MockLedgerRulesRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRulesRepository = (*MockLedgerRulesRepository)(nil)

func (m *MockLedgerRulesRepository) GetLedgerRules(ctx context.Context) (*domain.LedgerRules, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRules), args.Error(1)
}

func (m *MockLedgerRulesRepository) SaveLedgerRules(ctx context.Context, rules domain.LedgerRules) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

// --- Mock RulesCache ---
type MockRulesCache struct {
	mock.Mock
}

var _ cache.RulesCache = (*MockRulesCache)(nil)

func (m *MockRulesCache) GetRules(ctx context.Context) (*domain.LedgerRules, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerRules), args.Error(1)
}

func (m *MockRulesCache) SetRules(ctx context.Context, rules domain.LedgerRules) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockRulesCache) InvalidateRules(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock RulesSvc ---
type MockRulesSvc struct {
	mock.Mock
}

var _ portssvc.RulesSvc = (*MockRulesSvc)(nil)

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

// --- Conflict recorder ---
type countingRecorder struct {
	counts map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{counts: map[string]int{}}
}

func (r *countingRecorder) RecordConflict(entity string) {
	r.counts[entity]++
}

// memoryNameStore applies name writes to an in-memory slice.
type memoryNameStore struct {
	names []domain.LedgerName
}

var _ messages.NameStore = (*memoryNameStore)(nil)

func (s *memoryNameStore) InsertName(_ context.Context, name domain.LedgerName) error {
	s.names = append(s.names, name)
	return nil
}

func (s *memoryNameStore) UpdateName(_ context.Context, name domain.LedgerName) error {
	for i := range s.names {
		if s.names[i].Language == name.Language {
			s.names[i] = name
		}
	}
	return nil
}

func (s *memoryNameStore) DeleteName(_ context.Context, _ string, language string) error {
	kept := s.names[:0]
	for _, n := range s.names {
		if n.Language != language {
			kept = append(kept, n)
		}
	}
	s.names = kept
	return nil
}

// applySync runs sync the way a repository would and stores the resulting names on owner.
func applySync(ctx context.Context, owner domain.NameOwner, sync portsrepo.NameSync) error {
	if sync == nil {
		return nil
	}
	store := &memoryNameStore{names: append([]domain.LedgerName(nil), owner.NameList()...)}
	if err := sync(ctx, owner, store); err != nil {
		return err
	}
	switch o := owner.(type) {
	case *domain.SubJournal:
		o.Names = store.names
	case *domain.LedgerDomain:
		o.Names = store.names
	}
	return nil
}
