package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/models"
	"github.com/SscSPs/ledger_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerDomainRepository struct {
	BaseRepository
}

// newPgxLedgerDomainRepository creates a new repository for ledger domains.
func newPgxLedgerDomainRepository(pool *pgxpool.Pool) portsrepo.LedgerDomainRepositoryWithTx {
	return &PgxLedgerDomainRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerDomainRepositoryWithTx = (*PgxLedgerDomainRepository)(nil)

const ledgerDomainColumns = `
	domain_uuid, code, currency_default, sub_journals, extra, revision, created_at, updated_at
`

func (r *PgxLedgerDomainRepository) FindLedgerDomain(ctx context.Context, key domain.LookupKey) (*domain.LedgerDomain, error) {
	query := `SELECT` + ledgerDomainColumns + `FROM ledger_domains WHERE code = $1`
	arg := key.Code
	if key.ByUUID() {
		query = `SELECT` + ledgerDomainColumns + `FROM ledger_domains WHERE domain_uuid = $1`
		arg = key.UUID
	}
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError("failed to query domain", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerDomain])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError("failed to collect domain row", err)
	}
	names, err := (&pgxNameStore{q: r.Pool}).list(ctx, row.DomainUUID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainLedgerDomain(row, names)
	return &d, nil
}

func (r *PgxLedgerDomainRepository) CreateLedgerDomain(ctx context.Context, d domain.LedgerDomain, sync portsrepo.NameSync) (*domain.LedgerDomain, error) {
	var created domain.LedgerDomain
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO ledger_domains (code, currency_default, sub_journals, extra)
			VALUES ($1, $2, $3, $4)
			RETURNING`+ledgerDomainColumns, d.Code, d.CurrencyDefault, d.SubJournals, d.Extra)
		if err != nil {
			return mapWriteError(err, "domain "+d.Code)
		}
		row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerDomain])
		if err != nil {
			return mapWriteError(err, "domain "+d.Code)
		}
		created = mapping.ToDomainLedgerDomain(row, nil)
		names, err := syncNames(ctx, tx, &created, sync)
		if err != nil {
			return err
		}
		created.Names = mapping.ToDomainLedgerNameSlice(names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLedgerDomain writes the row guarded by d.Revision and syncs names in
// the same transaction.
func (r *PgxLedgerDomainRepository) UpdateLedgerDomain(ctx context.Context, d *domain.LedgerDomain, sync portsrepo.NameSync) error {
	var (
		revision, updatedAt time.Time
		names               []models.LedgerName
	)
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE ledger_domains
			SET code = $1, currency_default = $2, sub_journals = $3, extra = $4,
				revision = clock_timestamp(), updated_at = now()
			WHERE domain_uuid = $5 AND revision = $6
			RETURNING revision, updated_at`,
			d.Code, d.CurrencyDefault, d.SubJournals, d.Extra, d.DomainUUID, d.Revision,
		).Scan(&revision, &updatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return revisionConflict("domain " + d.Code)
			}
			return mapWriteError(err, "domain "+d.Code)
		}
		names, err = syncNames(ctx, tx, d, sync)
		return err
	})
	if err != nil {
		return err
	}
	d.Revision = revision
	d.UpdatedAt = updatedAt
	d.Names = mapping.ToDomainLedgerNameSlice(names)
	d.ClearRevisionCache()
	return nil
}

// DeleteLedgerDomain removes a domain that no reference points at.
func (r *PgxLedgerDomainRepository) DeleteLedgerDomain(ctx context.Context, d *domain.LedgerDomain) error {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM ledger_domains WHERE domain_uuid = $1 AND revision = $2`,
			d.DomainUUID, d.Revision)
		if err != nil {
			return mapWriteError(err, "domain "+d.Code)
		}
		if tag.RowsAffected() == 0 {
			return revisionConflict("domain " + d.Code)
		}
		return (&pgxNameStore{q: tx}).deleteAll(ctx, d.DomainUUID)
	})
	if err != nil {
		return err
	}
	d.ClearRevisionCache()
	return nil
}
