package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_service/internal/core/messages"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// subJournalHandler handles HTTP requests related to sub-journals.
type subJournalHandler struct {
	subJournalService portssvc.SubJournalSvcFacade
	rulesService      portssvc.RulesSvc
}

func newSubJournalHandler(ss portssvc.SubJournalSvcFacade, rules portssvc.RulesSvc) *subJournalHandler {
	return &subJournalHandler{
		subJournalService: ss,
		rulesService:      rules,
	}
}

// registerSubJournalRoutes registers routes related to sub-journals.
func registerSubJournalRoutes(rg *gin.RouterGroup, subJournalService portssvc.SubJournalSvcFacade, rulesService portssvc.RulesSvc) {
	h := newSubJournalHandler(subJournalService, rulesService)

	journals := rg.Group("/journals")
	{
		journals.POST("/:operation", h.run)
	}
}

// run godoc
// @Summary Run an operation on a sub-journal
// @Description Adds, retrieves, updates or deletes a sub-journal together with its localized names.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   operation path string true "Operation" Enums(add, get, update, delete)
// @Param   journal body object true "code, uuid, extra, names, revision (update/delete), toCode (update)"
// @Success 200 {object} map[string]dto.SubJournalResponse
// @Success 201 {object} map[string]dto.SubJournalResponse "Sub-journal added"
// @Failure 400 {object} map[string]any "Malformed request or unknown operation"
// @Failure 404 {object} map[string]any "Sub-journal not found"
// @Failure 409 {object} map[string]any "Revision conflict or duplicate code"
// @Failure 422 {object} map[string]any "Ledger rule violation"
// @Failure 500 {object} map[string]any "Internal error"
// @Router /journals/{operation} [post]
func (h *subJournalHandler) run(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	op, err := messages.ParseOperation(c.Param("operation"))
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
	msg, err := messages.SubJournalFromMap(data, op|messages.FlagValidate, rules)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	journal, err := h.subJournalService.Run(ctx, msg)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	switch op {
	case messages.OpDelete:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case messages.OpAdd:
		c.JSON(http.StatusCreated, gin.H{"journal": dto.ToSubJournalResponse(journal)})
	default:
		c.JSON(http.StatusOK, gin.H{"journal": dto.ToSubJournalResponse(journal)})
	}
}
