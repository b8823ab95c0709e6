package dto

import (
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

// QueryReferencesParams defines query parameters for listing references.
type QueryReferencesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	NextToken string `form:"nextToken"`
}

// InitLedgerRequest defines the ledger-wide rules set by `ledger init`.
type InitLedgerRequest struct {
	DefaultDomain   string `json:"defaultDomain" binding:"required"`
	DefaultLanguage string `json:"defaultLanguage" binding:"required,max=35,bcp47_language_tag"`
	CodePattern     string `json:"codePattern"`
	CodeUppercase   *bool  `json:"codeUppercase"`
	PageSize        int    `json:"pageSize" binding:"omitempty,min=1,max=1000"`
}

// ToLedgerRules fills unset request fields from defaults.
func (r InitLedgerRequest) ToLedgerRules(defaults domain.LedgerRules) domain.LedgerRules {
	rules := defaults
	rules.Domain.Default = r.DefaultDomain
	rules.Language.Default = r.DefaultLanguage
	if r.CodePattern != "" {
		rules.Codes.Pattern = r.CodePattern
	}
	if r.CodeUppercase != nil {
		rules.Codes.Uppercase = *r.CodeUppercase
	}
	if r.PageSize != 0 {
		rules.PageSize = r.PageSize
	}
	return rules
}

// NameResponse is one localized name.
type NameResponse struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// ReferenceResponse defines the data returned for a journal reference.
type ReferenceResponse struct {
	UUID       string    `json:"uuid"`
	Code       string    `json:"code"`
	DomainUUID string    `json:"domainUuid"`
	Extra      *string   `json:"extra,omitempty"`
	Revision   string    `json:"revision"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SubJournalResponse defines the data returned for a sub-journal.
type SubJournalResponse struct {
	UUID      string         `json:"uuid"`
	Code      string         `json:"code"`
	Extra     *string        `json:"extra,omitempty"`
	Names     []NameResponse `json:"names,omitempty"`
	Revision  string         `json:"revision"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// DomainResponse defines the data returned for a ledger domain.
type DomainResponse struct {
	UUID            string         `json:"uuid"`
	Code            string         `json:"code"`
	CurrencyDefault string         `json:"currencyDefault,omitempty"`
	SubJournals     bool           `json:"subJournals"`
	Extra           *string        `json:"extra,omitempty"`
	Names           []NameResponse `json:"names,omitempty"`
	Revision        string         `json:"revision"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ListReferencesResponse wraps one page of references.
type ListReferencesResponse struct {
	References []ReferenceResponse `json:"references"`
	NextToken  *string             `json:"nextToken,omitempty"`
}

// RulesResponse defines the data returned for the ledger rules.
type RulesResponse struct {
	DefaultDomain   string `json:"defaultDomain"`
	DefaultLanguage string `json:"defaultLanguage"`
	CodePattern     string `json:"codePattern"`
	CodeUppercase   bool   `json:"codeUppercase"`
	PageSize        int    `json:"pageSize"`
}

// ToReferenceResponse converts a domain.JournalReference to ReferenceResponse DTO
func ToReferenceResponse(ref *domain.JournalReference) ReferenceResponse {
	return ReferenceResponse{
		UUID:       ref.JournalReferenceUUID,
		Code:       ref.Code,
		DomainUUID: ref.DomainUUID,
		Extra:      ref.Extra,
		Revision:   ref.RevisionHash(),
		CreatedAt:  ref.CreatedAt,
		UpdatedAt:  ref.UpdatedAt,
	}
}

// ToListReferencesResponse converts a page of references.
func ToListReferencesResponse(refs []domain.JournalReference, nextToken *string) ListReferencesResponse {
	res := ListReferencesResponse{
		References: make([]ReferenceResponse, len(refs)),
		NextToken:  nextToken,
	}
	for i := range refs {
		res.References[i] = ToReferenceResponse(&refs[i])
	}
	return res
}

// ToSubJournalResponse converts a domain.SubJournal to SubJournalResponse DTO
func ToSubJournalResponse(journal *domain.SubJournal) SubJournalResponse {
	return SubJournalResponse{
		UUID:      journal.SubJournalUUID,
		Code:      journal.Code,
		Extra:     journal.Extra,
		Names:     toNameResponses(journal.Names),
		Revision:  journal.RevisionHash(),
		CreatedAt: journal.CreatedAt,
		UpdatedAt: journal.UpdatedAt,
	}
}

// ToDomainResponse converts a domain.LedgerDomain to DomainResponse DTO
func ToDomainResponse(d *domain.LedgerDomain) DomainResponse {
	return DomainResponse{
		UUID:            d.DomainUUID,
		Code:            d.Code,
		CurrencyDefault: d.CurrencyDefault,
		SubJournals:     d.SubJournals,
		Extra:           d.Extra,
		Names:           toNameResponses(d.Names),
		Revision:        d.RevisionHash(),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToRulesResponse converts domain.LedgerRules to RulesResponse DTO
func ToRulesResponse(rules *domain.LedgerRules) RulesResponse {
	return RulesResponse{
		DefaultDomain:   rules.Domain.Default,
		DefaultLanguage: rules.Language.Default,
		CodePattern:     rules.Codes.Pattern,
		CodeUppercase:   rules.Codes.Uppercase,
		PageSize:        rules.PageSize,
	}
}

func toNameResponses(names []domain.LedgerName) []NameResponse {
	if len(names) == 0 {
		return nil
	}
	res := make([]NameResponse, len(names))
	for i, n := range names {
		res[i] = NameResponse{Language: n.Language, Name: n.Name}
	}
	return res
}
