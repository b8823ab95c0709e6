package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/platform/cache"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	"github.com/go-playground/validator/v10"
)

// rulesService implements the RulesSvc interface
type rulesService struct {
	BaseService
	rulesRepo  portsrepo.LedgerRulesRepository
	domainRepo portsrepo.LedgerDomainRepositoryFacade
	cache      cache.RulesCache
	validate   *validator.Validate
}

// NewRulesService creates a rules service. A nil rulesCache disables caching.
func NewRulesService(
	rulesRepo portsrepo.LedgerRulesRepository,
	domainRepo portsrepo.LedgerDomainRepositoryFacade,
	rulesCache cache.RulesCache,
	opts ...Option,
) portssvc.RulesSvc {
	if rulesCache == nil {
		rulesCache = cache.NoopRulesCache{}
	}
	return &rulesService{
		BaseService: newBaseService(opts),
		rulesRepo:   rulesRepo,
		domainRepo:  domainRepo,
		cache:       rulesCache,
		validate:    validator.New(),
	}
}

var _ portssvc.RulesSvc = (*rulesService)(nil)

// GetRules reads through the cache. Cache failures are logged and bypassed.
func (s *rulesService) GetRules(ctx context.Context) (*domain.LedgerRules, error) {
	rules, err := s.cache.GetRules(ctx)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.LogError(ctx, err, "Failed to read cached ledger rules")
	}

	rules, err = s.rulesRepo.GetLedgerRules(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to load ledger rules")
		return nil, err
	}
	if err := s.cache.SetRules(ctx, *rules); err != nil {
		s.LogError(ctx, err, "Failed to cache ledger rules")
	}
	return rules, nil
}

// InitLedger validates and stores rules, then makes sure the default domain exists.
func (s *rulesService) InitLedger(ctx context.Context, rules domain.LedgerRules) (*domain.LedgerRules, error) {
	if err := s.validateRules(&rules); err != nil {
		return nil, err
	}
	if err := s.rulesRepo.SaveLedgerRules(ctx, rules); err != nil {
		s.LogError(ctx, err, "Failed to save ledger rules")
		return nil, err
	}
	if err := s.cache.InvalidateRules(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate cached ledger rules")
	}
	if err := s.ensureDefaultDomain(ctx, &rules); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Ledger initialized", "default_domain", rules.Domain.Default)
	return &rules, nil
}

// validateRules checks struct constraints and normalizes rules in place.
func (s *rulesService) validateRules(rules *domain.LedgerRules) error {
	var problems []string
	if err := s.validate.Struct(rules); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.Wrap(apperrors.KindBadRequest, err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, i18n.T("Rule %s failed on %s.", fe.Tag(), fe.Namespace()))
		}
	}
	if rules.Codes.Uppercase {
		rules.Domain.Default = strings.ToUpper(rules.Domain.Default)
	}
	re, err := regexp.Compile(rules.Codes.Pattern)
	if err != nil {
		problems = append(problems, i18n.T("Code pattern %s is not a valid expression.", rules.Codes.Pattern))
	} else if rules.Domain.Default != "" && !re.MatchString(rules.Domain.Default) {
		// The default domain is created and looked up like any other domain code.
		problems = append(problems, i18n.T("Default domain %s does not match the code pattern %s.",
			rules.Domain.Default, rules.Codes.Pattern))
	}
	if len(problems) != 0 {
		return apperrors.New(apperrors.KindBadRequest, problems...)
	}
	if language, err := i18n.ParseLanguage(rules.Language.Default); err == nil {
		rules.Language.Default = language
	}
	return nil
}

// ensureDefaultDomain creates the default domain, named after its code in the
// default language, unless it already exists.
func (s *rulesService) ensureDefaultDomain(ctx context.Context, rules *domain.LedgerRules) error {
	code := rules.Domain.Default
	_, err := s.domainRepo.FindLedgerDomain(ctx, domain.LookupKey{Code: code})
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up default domain", "code", code)
		return err
	}

	name := messages.NewName(code, rules.Language.Default, "")
	if err := name.Validate(messages.OpAdd, rules); err != nil {
		return err
	}
	_, err = s.domainRepo.CreateLedgerDomain(ctx, domain.LedgerDomain{Code: code},
		nameSync(map[string]*messages.Name{name.Language: name}))
	if err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		s.observeWrite(ctx, domainEntity, err, "Failed to create default domain")
		return err
	}
	return nil
}
