package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the ledger-wide rules.
type ledgerHandler struct {
	rulesService portssvc.RulesSvc
	defaults     domain.LedgerRules
}

func newLedgerHandler(rulesService portssvc.RulesSvc, defaults domain.LedgerRules) *ledgerHandler {
	return &ledgerHandler{rulesService: rulesService, defaults: defaults}
}

func registerLedgerRoutes(rg *gin.RouterGroup, rulesService portssvc.RulesSvc, defaults domain.LedgerRules) {
	h := newLedgerHandler(rulesService, defaults)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/init", h.initLedger)
		ledger.GET("/rules", h.getRules)
	}
}

// initLedger godoc
// @Summary Initialize the ledger
// @Description Stores the ledger rules and creates the default domain. Fields left out come from configuration.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   rules body dto.InitLedgerRequest true "Ledger rules"
// @Success 200 {object} map[string]dto.RulesResponse
// @Failure 400 {object} map[string]any "Invalid request format or rules"
// @Failure 500 {object} map[string]any "Internal error"
// @Router /ledger/init [post]
func (h *ledgerHandler) initLedger(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.InitLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, logger, apperrors.Wrap(apperrors.KindBadRequest, err,
			i18n.T("Invalid request format: %s", err.Error())))
		return
	}

	rules, err := h.rulesService.InitLedger(ctx, req.ToLedgerRules(h.defaults))
	if err != nil {
		writeError(c, logger, err)
		return
	}
	logger.Info().Str("default_domain", rules.Domain.Default).Msg("Ledger initialized")
	c.JSON(http.StatusOK, gin.H{"rules": dto.ToRulesResponse(rules)})
}

// getRules godoc
// @Summary Get the ledger rules
// @Description Retrieves the ledger-wide defaults used to validate requests
// @Tags ledger
// @Produce  json
// @Success 200 {object} map[string]dto.RulesResponse
// @Failure 404 {object} map[string]any "Ledger has not been initialized"
// @Failure 500 {object} map[string]any "Internal error"
// @Router /ledger/rules [get]
func (h *ledgerHandler) getRules(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	rules, err := h.rulesService.GetRules(ctx)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	if rules == nil {
		writeError(c, logger, apperrors.New(apperrors.KindNotFound, i18n.T("Ledger has not been initialized.")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": dto.ToRulesResponse(rules)})
}
