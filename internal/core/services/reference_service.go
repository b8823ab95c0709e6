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

const referenceEntity = "reference"

// referenceService implements the ReferenceSvcFacade interface
type referenceService struct {
	BaseService
	referenceRepo portsrepo.JournalReferenceRepositoryFacade
	domainRepo    portsrepo.LedgerDomainReader
	rules         portssvc.RulesSvc
}

// NewReferenceService creates a new reference service with the provided dependencies
func NewReferenceService(
	referenceRepo portsrepo.JournalReferenceRepositoryFacade,
	domainRepo portsrepo.LedgerDomainReader,
	rules portssvc.RulesSvc,
	opts ...Option,
) portssvc.ReferenceSvcFacade {
	return &referenceService{
		BaseService:   newBaseService(opts),
		referenceRepo: referenceRepo,
		domainRepo:    domainRepo,
		rules:         rules,
	}
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

// Run dispatches on the message's primary operation.
func (s *referenceService) Run(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	switch msg.OpFlags().Operation() {
	case messages.OpAdd:
		return s.AddReference(ctx, msg)
	case messages.OpRetrieve:
		return s.GetReference(ctx, msg)
	case messages.OpUpdate:
		return s.UpdateReference(ctx, msg)
	case messages.OpDelete:
		return nil, s.DeleteReference(ctx, msg)
	}
	return nil, apperrors.New(apperrors.KindBadRequest,
		i18n.T("Operation %s is not supported for references.", msg.OpFlags().String()))
}

// resolveDomainUUID returns the domain UUID named by the message, looking the
// domain up by code when no UUID was given.
func (s *referenceService) resolveDomainUUID(ctx context.Context, msg *messages.Reference) (string, error) {
	if msg.Domain == nil {
		return "", apperrors.New(apperrors.KindBadRequest, i18n.T("Reference has no domain."))
	}
	if msg.Domain.UUID != "" {
		return msg.Domain.UUID, nil
	}
	d, err := s.domainRepo.FindLedgerDomain(ctx, domain.LookupKey{Code: msg.Domain.Code})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.New(apperrors.KindBadRequest, i18n.T("Domain %s does not exist.", msg.Domain.Code))
		}
		s.LogError(ctx, err, "Failed to resolve domain", "domain_code", msg.Domain.Code)
		return "", err
	}
	return d.DomainUUID, nil
}

// find locates the reference within its domain.
func (s *referenceService) find(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	domainUUID, err := s.resolveDomainUUID(ctx, msg)
	if err != nil {
		return nil, err
	}
	key, err := domain.NewLookupKey(domainUUID, msg.UUID, msg.Code)
	if err != nil {
		return nil, err
	}
	ref, err := s.referenceRepo.FindJournalReference(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reference", "key", key.Describe())
		}
		return nil, notFound(err, "Reference %s not found.", key.Describe())
	}
	return ref, nil
}

func (s *referenceService) GetReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	return s.find(ctx, msg)
}

// AddReference creates the reference from the message's fillable fields.
func (s *referenceService) AddReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	domainUUID, err := s.resolveDomainUUID(ctx, msg)
	if err != nil {
		return nil, err
	}
	ref, err := s.referenceRepo.CreateJournalReference(ctx, domain.JournalReference{
		DomainUUID: domainUUID,
		Code:       msg.Code,
		Extra:      msg.Extra,
	})
	if err != nil {
		s.observeWrite(ctx, referenceEntity, err, "Failed to create reference")
		return nil, err
	}
	s.LogInfo(ctx, "Reference created", "reference_uuid", ref.JournalReferenceUUID, "code", ref.Code)
	return ref, nil
}

// UpdateReference applies toCode and extra once the supplied revision matches.
func (s *referenceService) UpdateReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error) {
	ref, err := s.find(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevision(ctx, referenceEntity, ref, msg.Revision); err != nil {
		return nil, err
	}
	if msg.ToCode != "" {
		ref.Code = msg.ToCode
	}
	if msg.Extra != nil {
		ref.Extra = msg.Extra
	}
	if err := s.referenceRepo.UpdateJournalReference(ctx, ref); err != nil {
		s.observeWrite(ctx, referenceEntity, err, "Failed to update reference")
		return nil, err
	}
	return ref, nil
}

func (s *referenceService) DeleteReference(ctx context.Context, msg *messages.Reference) error {
	ref, err := s.find(ctx, msg)
	if err != nil {
		return err
	}
	if err := s.checkRevision(ctx, referenceEntity, ref, msg.Revision); err != nil {
		return err
	}
	if err := s.referenceRepo.DeleteJournalReference(ctx, ref); err != nil {
		s.observeWrite(ctx, referenceEntity, err, "Failed to delete reference")
		return err
	}
	s.LogInfo(ctx, "Reference deleted", "reference_uuid", ref.JournalReferenceUUID)
	return nil
}

// QueryReferences lists the references of the message's domain. A zero limit
// uses the ledger page size.
func (s *referenceService) QueryReferences(ctx context.Context, msg *messages.Reference, limit int, nextToken *string) ([]domain.JournalReference, *string, error) {
	domainUUID, err := s.resolveDomainUUID(ctx, msg)
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		rules, err := s.rules.GetRules(ctx)
		if err != nil {
			return nil, nil, err
		}
		limit = domain.DefaultLedgerRules().PageSize
		if rules != nil {
			limit = rules.PageSize
		}
	}
	refs, next, err := s.referenceRepo.ListJournalReferences(ctx, domainUUID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list references", "domain_uuid", domainUUID)
		return nil, nil, err
	}
	if refs == nil {
		refs = []domain.JournalReference{}
	}
	return refs, next, nil
}

// Lookup verifies that the reference exists, filling in its UUID if missing.
func (s *referenceService) Lookup(ctx context.Context, msg *messages.Reference) (*messages.Reference, error) {
	ref, err := s.find(ctx, msg)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			code := msg.Code
			if code == "" {
				code = "[undefined]"
			}
			return nil, apperrors.New(apperrors.KindBadRequest, i18n.T("Reference %s does not exist.", code))
		}
		return nil, err
	}
	if msg.UUID == "" {
		msg.UUID = ref.JournalReferenceUUID
	}
	return msg, nil
}
