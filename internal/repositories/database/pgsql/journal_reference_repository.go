package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/models"
	"github.com/SscSPs/ledger_service/internal/utils/mapping"
	"github.com/SscSPs/ledger_service/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalReferenceRepository struct {
	BaseRepository
}

// newPgxJournalReferenceRepository creates a new repository for journal references.
func newPgxJournalReferenceRepository(pool *pgxpool.Pool) portsrepo.JournalReferenceRepositoryFacade {
	return &PgxJournalReferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalReferenceRepositoryFacade = (*PgxJournalReferenceRepository)(nil)

const journalReferenceColumns = `
	journal_reference_uuid, domain_uuid, code, extra, revision, created_at, updated_at
`

var FULL_JOURNAL_REFERENCE_SELECT_QUERY = `SELECT` + journalReferenceColumns + `FROM journal_references `

func (r *PgxJournalReferenceRepository) getJournalReferences(ctx context.Context, filterQuery string, args ...any) ([]models.JournalReference, error) {
	rows, err := r.Pool.Query(ctx, FULL_JOURNAL_REFERENCE_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError("failed to query journal references", err)
	}
	defer rows.Close()
	refs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalReference])
	if err != nil {
		return nil, apperrors.NewAppError("failed to collect journal reference rows", err)
	}
	return refs, nil
}

// FindJournalReference always scopes by domain; within the domain the UUID is
// preferred over the code.
func (r *PgxJournalReferenceRepository) FindJournalReference(ctx context.Context, key domain.LookupKey) (*domain.JournalReference, error) {
	filter := "WHERE domain_uuid = $1 AND code = $2"
	arg := key.Code
	if key.ByUUID() {
		filter = "WHERE domain_uuid = $1 AND journal_reference_uuid = $2"
		arg = key.UUID
	}
	refs, err := r.getJournalReferences(ctx, filter, key.DomainUUID, arg)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	ref := mapping.ToDomainJournalReference(refs[0])
	return &ref, nil
}

// ListJournalReferences pages through a domain's references by code.
func (r *PgxJournalReferenceRepository) ListJournalReferences(ctx context.Context, domainUUID string, limit int, nextToken *string) ([]domain.JournalReference, *string, error) {
	filter := "WHERE domain_uuid = $1 "
	args := []any{domainUUID}
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeKeysetToken(*nextToken, 1)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.KindBadRequest, err)
		}
		filter += "AND code > $2 "
		args = append(args, fields[0])
	}
	// One extra row tells us whether another page exists.
	filter += fmt.Sprintf("ORDER BY code LIMIT %d", limit+1)

	refs, err := r.getJournalReferences(ctx, filter, args...)
	if err != nil {
		return nil, nil, err
	}
	var next *string
	if len(refs) > limit {
		refs = refs[:limit]
		token := pagination.EncodeKeysetToken(refs[limit-1].Code)
		next = &token
	}
	return mapping.ToDomainJournalReferenceSlice(refs), next, nil
}

// CreateJournalReference inserts the reference and returns it as stored.
func (r *PgxJournalReferenceRepository) CreateJournalReference(ctx context.Context, ref domain.JournalReference) (*domain.JournalReference, error) {
	query := `
		INSERT INTO journal_references (domain_uuid, code, extra)
		VALUES ($1, $2, $3)
		RETURNING` + journalReferenceColumns
	rows, err := r.Pool.Query(ctx, query, ref.DomainUUID, ref.Code, ref.Extra)
	if err != nil {
		return nil, mapWriteError(err, "reference "+ref.Code)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalReference])
	if err != nil {
		return nil, mapWriteError(err, "reference "+ref.Code)
	}
	result := mapping.ToDomainJournalReference(created)
	return &result, nil
}

// UpdateJournalReference writes code and extra, guarded by the revision the
// caller read. On success ref carries the new revision and its cached hash is cleared.
func (r *PgxJournalReferenceRepository) UpdateJournalReference(ctx context.Context, ref *domain.JournalReference) error {
	query := `
		UPDATE journal_references
		SET code = $1, extra = $2, revision = clock_timestamp(), updated_at = now()
		WHERE journal_reference_uuid = $3 AND revision = $4
		RETURNING revision, updated_at`
	err := r.Pool.QueryRow(ctx, query, ref.Code, ref.Extra, ref.JournalReferenceUUID, ref.Revision).
		Scan(&ref.Revision, &ref.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return revisionConflict("reference " + ref.Code)
		}
		return mapWriteError(err, "reference "+ref.Code)
	}
	ref.ClearRevisionCache()
	return nil
}

// DeleteJournalReference removes the reference if it is still at ref.Revision.
func (r *PgxJournalReferenceRepository) DeleteJournalReference(ctx context.Context, ref *domain.JournalReference) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM journal_references WHERE journal_reference_uuid = $1 AND revision = $2`,
		ref.JournalReferenceUUID, ref.Revision)
	if err != nil {
		return mapWriteError(err, "reference "+ref.Code)
	}
	if tag.RowsAffected() == 0 {
		return revisionConflict("reference " + ref.Code)
	}
	ref.ClearRevisionCache()
	return nil
}
