package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/messages"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

const lookupOperation = "lookup"

// referenceHandler handles HTTP requests related to journal references.
type referenceHandler struct {
	referenceService portssvc.ReferenceSvcFacade
	rulesService     portssvc.RulesSvc
}

// newReferenceHandler creates a new referenceHandler.
func newReferenceHandler(rs portssvc.ReferenceSvcFacade, rules portssvc.RulesSvc) *referenceHandler {
	return &referenceHandler{
		referenceService: rs,
		rulesService:     rules,
	}
}

// registerReferenceRoutes registers routes related to journal references.
func registerReferenceRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvcFacade, rulesService portssvc.RulesSvc) {
	h := newReferenceHandler(referenceService, rulesService)

	references := rg.Group("/references")
	{
		references.POST("/:operation", h.run)
	}
}

// run godoc
// @Summary Run an operation on a journal reference
// @Description Adds, retrieves, updates, deletes, lists or looks up a reference to an external entity.
// @Description References are scoped by domain; the default domain is used when none is given.
// @Tags references
// @Accept  json
// @Produce  json
// @Param   operation path string true "Operation" Enums(add, get, update, delete, query, lookup)
// @Param   limit query int false "Page size for query"
// @Param   nextToken query string false "Token from the previous page for query"
// @Param   reference body object true "code, uuid, domain, extra, revision (update/delete), toCode (update)"
// @Success 200 {object} map[string]dto.ReferenceResponse
// @Success 201 {object} map[string]dto.ReferenceResponse "Reference added"
// @Failure 400 {object} map[string]any "Malformed request or unknown operation"
// @Failure 404 {object} map[string]any "Reference not found"
// @Failure 409 {object} map[string]any "Revision conflict or duplicate code"
// @Failure 422 {object} map[string]any "Ledger rule violation"
// @Failure 500 {object} map[string]any "Internal error"
// @Router /references/{operation} [post]
func (h *referenceHandler) run(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	opName := c.Param("operation")
	lookup := opName == lookupOperation
	if lookup {
		opName = "get"
	}
	op, err := messages.ParseOperation(opName)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	data, err := bindBody(c)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	rules, err := h.rulesService.GetRules(ctx)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	msg, err := messages.ReferenceFromMap(data, op|messages.FlagValidate, rules)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	switch {
	case lookup:
		h.lookup(c, msg)
	case op == messages.OpQuery:
		h.query(c, msg)
	default:
		h.perform(c, msg)
	}
}

func (h *referenceHandler) perform(c *gin.Context, msg *messages.Reference) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	op := msg.OpFlags().Operation()

	ref, err := h.referenceService.Run(ctx, msg)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	if op == messages.OpDelete {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	status := http.StatusOK
	if op == messages.OpAdd {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"reference": dto.ToReferenceResponse(ref)})
}

func (h *referenceHandler) query(c *gin.Context, msg *messages.Reference) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var params dto.QueryReferencesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeError(c, logger, apperrors.Wrap(apperrors.KindBadRequest, err, err.Error()))
		return
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	refs, next, err := h.referenceService.QueryReferences(ctx, msg, params.Limit, nextToken)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	logger.Debug().Int("count", len(refs)).Msg("References listed")
	c.JSON(http.StatusOK, dto.ToListReferencesResponse(refs, next))
}

func (h *referenceHandler) lookup(c *gin.Context, msg *messages.Reference) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	found, err := h.referenceService.Lookup(ctx, msg)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reference": gin.H{
		"uuid":   found.UUID,
		"code":   found.Code,
		"domain": found.Domain,
	}})
}
