package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindBadRequest:    http.StatusBadRequest,
	apperrors.KindRuleViolation: http.StatusUnprocessableEntity,
	apperrors.KindInvalidData:   http.StatusBadRequest,
	apperrors.KindConflict:      http.StatusConflict,
	apperrors.KindNotFound:      http.StatusNotFound,
	apperrors.KindDuplicate:     http.StatusConflict,
	apperrors.KindRateLimited:   http.StatusTooManyRequests,
	apperrors.KindSystemError:   http.StatusInternalServerError,
}

// writeError renders err as {kind, errors}. System error details are logged,
// not returned.
func writeError(c *gin.Context, logger *zerolog.Logger, err error) {
	kind := apperrors.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	messages := apperrors.MessagesOf(err)
	if kind == apperrors.KindSystemError {
		logger.Error().Err(err).Msg("Request failed")
		messages = []string{i18n.T("An internal error occurred.")}
	} else {
		logger.Warn().Str("kind", string(kind)).Strs("errors", messages).Msg("Request rejected")
	}
	c.JSON(status, gin.H{"kind": kind, "errors": messages})
}

// bindBody decodes the request body into a generic map. Numbers stay
// json.Number; an empty body yields an empty map.
func bindBody(c *gin.Context) (map[string]any, error) {
	data := map[string]any{}
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return data, nil
		}
		return nil, apperrors.Wrap(apperrors.KindBadRequest, err,
			i18n.T("Request body must be a JSON object."))
	}
	return data, nil
}
