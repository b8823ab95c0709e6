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

const domainEntity = "domain"

// domainService implements the DomainSvcFacade interface
type domainService struct {
	BaseService
	domainRepo portsrepo.LedgerDomainRepositoryFacade
	rules      portssvc.RulesSvc
}

// NewDomainService creates a new domain service.
func NewDomainService(domainRepo portsrepo.LedgerDomainRepositoryFacade, rules portssvc.RulesSvc, opts ...Option) portssvc.DomainSvcFacade {
	return &domainService{
		BaseService: newBaseService(opts),
		domainRepo:  domainRepo,
		rules:       rules,
	}
}

var _ portssvc.DomainSvcFacade = (*domainService)(nil)

func (s *domainService) Run(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	switch msg.OpFlags().Operation() {
	case messages.OpAdd:
		return s.AddDomain(ctx, msg)
	case messages.OpRetrieve:
		return s.GetDomain(ctx, msg)
	case messages.OpUpdate:
		return s.UpdateDomain(ctx, msg)
	case messages.OpDelete:
		return nil, s.DeleteDomain(ctx, msg)
	}
	return nil, apperrors.New(apperrors.KindBadRequest,
		i18n.T("Operation %s is not supported for domains.", msg.OpFlags().String()))
}

func (s *domainService) GetDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	key, err := domain.NewLookupKey("", msg.UUID, msg.Code)
	if err != nil {
		return nil, err
	}
	d, err := s.domainRepo.FindLedgerDomain(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find domain", "key", key.Describe())
		}
		return nil, notFound(err, "Domain %s not found.", key.Describe())
	}
	return d, nil
}

func (s *domainService) AddDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	d := domain.LedgerDomain{
		Code:            msg.Code,
		CurrencyDefault: msg.CurrencyDefault,
		Extra:           msg.Extra,
	}
	if msg.SubJournals != nil {
		d.SubJournals = *msg.SubJournals
	}
	created, err := s.domainRepo.CreateLedgerDomain(ctx, d, nameSync(msg.Names))
	if err != nil {
		s.observeWrite(ctx, domainEntity, err, "Failed to create domain")
		return nil, err
	}
	s.LogInfo(ctx, "Domain created", "domain_uuid", created.DomainUUID, "code", created.Code)
	return created, nil
}

func (s *domainService) UpdateDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error) {
	d, err := s.GetDomain(ctx, msg)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevision(ctx, domainEntity, d, msg.Revision); err != nil {
		return nil, err
	}
	if msg.ToCode != "" {
		if err := s.guardDefault(ctx, d, "renamed"); err != nil {
			return nil, err
		}
		d.Code = msg.ToCode
	}
	if msg.CurrencyDefault != "" {
		d.CurrencyDefault = msg.CurrencyDefault
	}
	if msg.SubJournals != nil {
		d.SubJournals = *msg.SubJournals
	}
	if msg.Extra != nil {
		d.Extra = msg.Extra
	}
	if err := s.domainRepo.UpdateLedgerDomain(ctx, d, nameSync(msg.Names)); err != nil {
		s.observeWrite(ctx, domainEntity, err, "Failed to update domain")
		return nil, err
	}
	return d, nil
}

func (s *domainService) DeleteDomain(ctx context.Context, msg *messages.Domain) error {
	d, err := s.GetDomain(ctx, msg)
	if err != nil {
		return err
	}
	if err := s.checkRevision(ctx, domainEntity, d, msg.Revision); err != nil {
		return err
	}
	if err := s.guardDefault(ctx, d, "deleted"); err != nil {
		return err
	}
	if err := s.domainRepo.DeleteLedgerDomain(ctx, d); err != nil {
		s.observeWrite(ctx, domainEntity, err, "Failed to delete domain")
		return err
	}
	s.LogInfo(ctx, "Domain deleted", "domain_uuid", d.DomainUUID)
	return nil
}

// guardDefault refuses to rename or delete the ledger's default domain.
func (s *domainService) guardDefault(ctx context.Context, d *domain.LedgerDomain, action string) error {
	rules, err := s.rules.GetRules(ctx)
	if err != nil {
		return err
	}
	if rules != nil && rules.Domain.Default == d.Code {
		return apperrors.New(apperrors.KindRuleViolation,
			i18n.T("The default domain %s cannot be %s.", d.Code, action))
	}
	return nil
}
