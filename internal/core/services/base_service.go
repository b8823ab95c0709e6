package services

import (
	"context"
	"errors"
	"sort"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	"github.com/rs/zerolog"
)

// ConflictRecorder is notified of every revision conflict.
type ConflictRecorder interface {
	RecordConflict(entity string)
}

type noopConflictRecorder struct{}

func (noopConflictRecorder) RecordConflict(string) {}

// BaseService provides common functionality for all services
type BaseService struct {
	conflicts ConflictRecorder
}

// Option configures the BaseService of any service.
type Option func(*BaseService)

// WithConflictRecorder reports revision conflicts to r.
func WithConflictRecorder(r ConflictRecorder) Option {
	return func(s *BaseService) {
		s.conflicts = r
	}
}

func newBaseService(opts []Option) BaseService {
	base := BaseService{conflicts: noopConflictRecorder{}}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// GetLogger gets the request logger from context, falling back to the global logger.
func (s *BaseService) GetLogger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	s.GetLogger(ctx).Error().Err(err).Fields(keyvals).Msg(msg)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info().Fields(keyvals).Msg(msg)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug().Fields(keyvals).Msg(msg)
}

// checkRevision compares the supplied revision with the entity's current one.
func (s *BaseService) checkRevision(ctx context.Context, entity string, e domain.Revisioned, supplied string) error {
	err := domain.CheckRevision(e, supplied)
	if err != nil && errors.Is(err, apperrors.ErrConflict) {
		s.conflicts.RecordConflict(entity)
		s.LogInfo(ctx, "Revision conflict", "entity", entity)
	}
	return err
}

// observeWrite counts conflicts surfaced by the storage revision guard and
// logs unexpected failures.
func (s *BaseService) observeWrite(ctx context.Context, entity string, err error, msg string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindConflict:
		s.conflicts.RecordConflict(entity)
		s.LogInfo(ctx, "Revision conflict on save", "entity", entity)
	case apperrors.KindSystemError:
		s.LogError(ctx, err, msg, "entity", entity)
	}
}

// nameSync applies names in language order.
func nameSync(names map[string]*messages.Name) func(ctx context.Context, owner domain.NameOwner, store messages.NameStore) error {
	languages := make([]string, 0, len(names))
	for language := range names {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	return func(ctx context.Context, owner domain.NameOwner, store messages.NameStore) error {
		for _, language := range languages {
			if err := names[language].ApplyTo(ctx, owner, store); err != nil {
				return err
			}
		}
		return nil
	}
}

// notFound converts a repository not-found into a ledger error naming what was sought.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.New(apperrors.KindNotFound, i18n.T(format, args...))
	}
	return err
}
