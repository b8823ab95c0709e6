package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_service/internal/models"
	"github.com/jackc/pgx/v5"
)

// pgxNameStore writes localized names through q, usually an open transaction.
type pgxNameStore struct {
	q querier
}

var _ messages.NameStore = (*pgxNameStore)(nil)

func (s *pgxNameStore) InsertName(ctx context.Context, name domain.LedgerName) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO ledger_names (owner_uuid, language, name) VALUES ($1, $2, $3)`,
		name.OwnerUUID, name.Language, name.Name)
	if err != nil {
		return mapWriteError(err, "name in "+name.Language)
	}
	return nil
}

func (s *pgxNameStore) UpdateName(ctx context.Context, name domain.LedgerName) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE ledger_names SET name = $1, updated_at = now() WHERE owner_uuid = $2 AND language = $3`,
		name.Name, name.OwnerUUID, name.Language)
	if err != nil {
		return mapWriteError(err, "name in "+name.Language)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("name in " + name.Language + " not found")
	}
	return nil
}

func (s *pgxNameStore) DeleteName(ctx context.Context, ownerUUID string, language string) error {
	_, err := s.q.Exec(ctx,
		`DELETE FROM ledger_names WHERE owner_uuid = $1 AND language = $2`, ownerUUID, language)
	if err != nil {
		return apperrors.NewAppError("failed to delete name in "+language, err)
	}
	return nil
}

func (s *pgxNameStore) deleteAll(ctx context.Context, ownerUUID string) error {
	_, err := s.q.Exec(ctx, `DELETE FROM ledger_names WHERE owner_uuid = $1`, ownerUUID)
	if err != nil {
		return apperrors.NewAppError("failed to delete names", err)
	}
	return nil
}

// list returns the names of an owner ordered by language.
func (s *pgxNameStore) list(ctx context.Context, ownerUUID string) ([]models.LedgerName, error) {
	rows, err := s.q.Query(ctx, `
		SELECT owner_uuid, language, name, created_at, updated_at
		FROM ledger_names
		WHERE owner_uuid = $1
		ORDER BY language`, ownerUUID)
	if err != nil {
		return nil, apperrors.NewAppError("failed to query names", err)
	}
	defer rows.Close()
	names, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerName])
	if err != nil {
		return nil, apperrors.NewAppError("failed to collect name rows", err)
	}
	return names, nil
}

// syncNames runs sync against owner inside tx, then reloads the owner's names.
func syncNames(ctx context.Context, tx pgx.Tx, owner domain.NameOwner, sync portsrepo.NameSync) ([]models.LedgerName, error) {
	store := &pgxNameStore{q: tx}
	if sync != nil {
		if err := sync(ctx, owner, store); err != nil {
			return nil, err
		}
	}
	return store.list(ctx, owner.OwnerUUID())
}
