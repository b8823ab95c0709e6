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

type PgxSubJournalRepository struct {
	BaseRepository
}

// newPgxSubJournalRepository creates a new repository for sub-journals.
func newPgxSubJournalRepository(pool *pgxpool.Pool) portsrepo.SubJournalRepositoryWithTx {
	return &PgxSubJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SubJournalRepositoryWithTx = (*PgxSubJournalRepository)(nil)

const subJournalColumns = `
	sub_journal_uuid, code, extra, revision, created_at, updated_at
`

// FindSubJournal looks a sub-journal up by UUID, else by code.
func (r *PgxSubJournalRepository) FindSubJournal(ctx context.Context, key domain.LookupKey) (*domain.SubJournal, error) {
	query := `SELECT` + subJournalColumns + `FROM sub_journals WHERE code = $1`
	arg := key.Code
	if key.ByUUID() {
		query = `SELECT` + subJournalColumns + `FROM sub_journals WHERE sub_journal_uuid = $1`
		arg = key.UUID
	}
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError("failed to query sub-journal", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SubJournal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError("failed to collect sub-journal row", err)
	}
	names, err := (&pgxNameStore{q: r.Pool}).list(ctx, row.SubJournalUUID)
	if err != nil {
		return nil, err
	}
	journal := mapping.ToDomainSubJournal(row, names)
	return &journal, nil
}

// CreateSubJournal inserts the sub-journal and its names in one transaction.
func (r *PgxSubJournalRepository) CreateSubJournal(ctx context.Context, journal domain.SubJournal, sync portsrepo.NameSync) (*domain.SubJournal, error) {
	var created domain.SubJournal
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO sub_journals (code, extra)
			VALUES ($1, $2)
			RETURNING`+subJournalColumns, journal.Code, journal.Extra)
		if err != nil {
			return mapWriteError(err, "sub-journal "+journal.Code)
		}
		row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SubJournal])
		if err != nil {
			return mapWriteError(err, "sub-journal "+journal.Code)
		}
		created = mapping.ToDomainSubJournal(row, nil)
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

// UpdateSubJournal writes the row guarded by journal.Revision, then applies
// name changes. A conflict rolls back the name changes too.
func (r *PgxSubJournalRepository) UpdateSubJournal(ctx context.Context, journal *domain.SubJournal, sync portsrepo.NameSync) error {
	var (
		revision, updatedAt time.Time
		names               []models.LedgerName
	)
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE sub_journals
			SET code = $1, extra = $2, revision = clock_timestamp(), updated_at = now()
			WHERE sub_journal_uuid = $3 AND revision = $4
			RETURNING revision, updated_at`,
			journal.Code, journal.Extra, journal.SubJournalUUID, journal.Revision,
		).Scan(&revision, &updatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return revisionConflict("sub-journal " + journal.Code)
			}
			return mapWriteError(err, "sub-journal "+journal.Code)
		}
		names, err = syncNames(ctx, tx, journal, sync)
		return err
	})
	if err != nil {
		return err
	}
	journal.Revision = revision
	journal.UpdatedAt = updatedAt
	journal.Names = mapping.ToDomainLedgerNameSlice(names)
	journal.ClearRevisionCache()
	return nil
}

// DeleteSubJournal removes the sub-journal and its names.
func (r *PgxSubJournalRepository) DeleteSubJournal(ctx context.Context, journal *domain.SubJournal) error {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM sub_journals WHERE sub_journal_uuid = $1 AND revision = $2`,
			journal.SubJournalUUID, journal.Revision)
		if err != nil {
			return mapWriteError(err, "sub-journal "+journal.Code)
		}
		if tag.RowsAffected() == 0 {
			return revisionConflict("sub-journal " + journal.Code)
		}
		return (&pgxNameStore{q: tx}).deleteAll(ctx, journal.SubJournalUUID)
	})
	if err != nil {
		return err
	}
	journal.ClearRevisionCache()
	return nil
}
