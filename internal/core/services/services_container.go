package services

import (
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/platform/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, rulesCache cache.RulesCache, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rules come first; message validation and the other services consult them.
	container.Rules = NewRulesService(repos.RulesRepo, repos.DomainRepo, rulesCache, opts...)

	container.Reference = NewReferenceService(repos.ReferenceRepo, repos.DomainRepo, container.Rules, opts...)
	container.SubJournal = NewSubJournalService(repos.SubJournalRepo, opts...)
	container.Domain = NewDomainService(repos.DomainRepo, container.Rules, opts...)

	return container
}
