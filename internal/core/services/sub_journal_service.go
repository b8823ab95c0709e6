package services

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
)

const subJournalEntity = "sub_journal"

// subJournalService implements the SubJournalSvcFacade interface
type subJournalService struct {
	BaseService
	subJournalRepo portsrepo.SubJournalRepositoryFacade
}

// NewSubJournalService creates a new sub-journal service.
func NewSubJournalService(subJournalRepo portsrepo.SubJournalRepositoryFacade, opts ...Option) portssvc.SubJournalSvcFacade {
	return &subJournalService{
		BaseService:    newBaseService(opts),
		subJournalRepo: subJournalRepo,
	}
}

var _ portssvc.SubJournalSvcFacade = (*subJournalService)(nil)

func (s *subJournalService) Run(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	switch msg.OpFlags().Operation() {
	case messages.OpAdd:
		return s.AddSubJournal(ctx, msg)
	case messages.OpRetrieve:
		return s.GetSubJournal(ctx, msg)
	case messages.OpUpdate:
		return s.UpdateSubJournal(ctx, msg)
	case messages.OpDelete:
		return nil, s.DeleteSubJournal(ctx, msg)
	}
	return nil, apperrors.New(apperrors.KindBadRequest,
		i18n.T("Operation %s is not supported for sub-journals.", msg.OpFlags().String()))
}

func (s *subJournalService) GetSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	key, err := domain.NewLookupKey("", msg.UUID, msg.Code)
	if err != nil {
		return nil, err
	}
	journal, err := s.subJournalRepo.FindSubJournal(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find sub-journal", "key", key.Describe())
		}
		return nil, notFound(err, "Sub-journal %s not found.", key.Describe())
	}
	return journal, nil
}

// AddSubJournal creates the sub-journal together with its names.
func (s *subJournalService) AddSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	journal, err := s.subJournalRepo.CreateSubJournal(ctx, domain.SubJournal{
		Code:  msg.Code,
		Extra: msg.Extra,
	}, nameSync(msg.Names))
	if err != nil {
		s.observeWrite(ctx, subJournalEntity, err, "Failed to create sub-journal")
		return nil, err
	}
	s.LogInfo(ctx, "Sub-journal created", "sub_journal_uuid", journal.SubJournalUUID, "code", journal.Code)
	return journal, nil
}

func (s *subJournalService) UpdateSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error) {
	journal, err := s.GetSubJournal(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevision(ctx, subJournalEntity, journal, msg.Revision); err != nil {
		return nil, err
	}
	if msg.ToCode != "" {
		journal.Code = msg.ToCode
	}
	if msg.Extra != nil {
		journal.Extra = msg.Extra
	}
	if err := s.subJournalRepo.UpdateSubJournal(ctx, journal, nameSync(msg.Names)); err != nil {
		s.observeWrite(ctx, subJournalEntity, err, "Failed to update sub-journal")
		return nil, err
	}
	return journal, nil
}

func (s *subJournalService) DeleteSubJournal(ctx context.Context, msg *messages.SubJournal) error {
	journal, err := s.GetSubJournal(ctx, msg)
	if err != nil {
		return err
	}
	if err := s.checkRevision(ctx, subJournalEntity, journal, msg.Revision); err != nil {
		return err
	}
	if err := s.subJournalRepo.DeleteSubJournal(ctx, journal); err != nil {
		s.observeWrite(ctx, subJournalEntity, err, "Failed to delete sub-journal")
		return err
	}
	s.LogInfo(ctx, "Sub-journal deleted", "sub_journal_uuid", journal.SubJournalUUID)
	return nil
}
