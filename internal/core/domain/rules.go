package domain

// CodeRules controls the shape of business codes.
type CodeRules struct {
	Pattern   string `json:"pattern" validate:"required"`
	Uppercase bool   `json:"uppercase"`
}

// DomainRules holds domain related defaults.
type DomainRules struct {
	Default string `json:"default" validate:"required"`
}

// LanguageRules holds language related defaults.
type LanguageRules struct {
	Default string `json:"default" validate:"required,max=35,bcp47_language_tag"`
}

// LedgerRules is the ledger-wide configuration consulted by message validation.
// It is passed explicitly into every validation call.
type LedgerRules struct {
	Domain   DomainRules   `json:"domain"`
	Language LanguageRules `json:"language"`
	Codes    CodeRules     `json:"codes"`
	PageSize int           `json:"pageSize" validate:"min=1,max=1000"`
}

// DefaultLedgerRules returns the rules used when nothing is configured.
func DefaultLedgerRules() LedgerRules {
	return LedgerRules{
		Domain:   DomainRules{Default: "MAIN"},
		Language: LanguageRules{Default: "en"},
		Codes:    CodeRules{Pattern: `^[A-Za-z0-9][A-Za-z0-9._\-]*$`, Uppercase: true},
		PageSize: 25,
	}
}
