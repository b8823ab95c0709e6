package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRulesRepository struct {
	BaseRepository
}

func newPgxLedgerRulesRepository(pool *pgxpool.Pool) portsrepo.LedgerRulesRepository {
	return &PgxLedgerRulesRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRulesRepository = (*PgxLedgerRulesRepository)(nil)

func (r *PgxLedgerRulesRepository) GetLedgerRules(ctx context.Context) (*domain.LedgerRules, error) {
	var raw []byte
	err := r.Pool.QueryRow(ctx, `SELECT rules FROM ledger_rules WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError("failed to load ledger rules", err)
	}
	var rules domain.LedgerRules
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, apperrors.NewAppError("stored ledger rules are not valid JSON", err)
	}
	return &rules, nil
}

// SaveLedgerRules replaces the single rules document.
func (r *PgxLedgerRulesRepository) SaveLedgerRules(ctx context.Context, rules domain.LedgerRules) error {
	raw, err := json.Marshal(rules)
	if err != nil {
		return apperrors.NewAppError("failed to encode ledger rules", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO ledger_rules (id, rules) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET rules = EXCLUDED.rules, updated_at = now()`, raw)
	if err != nil {
		return apperrors.NewAppError("failed to save ledger rules", err)
	}
	return nil
}
