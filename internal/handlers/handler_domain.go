package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_service/internal/core/messages"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// domainHandler handles HTTP requests related to ledger domains.
type domainHandler struct {
	domainService portssvc.DomainSvcFacade
	rulesService  portssvc.RulesSvc
}

func newDomainHandler(ds portssvc.DomainSvcFacade, rules portssvc.RulesSvc) *domainHandler {
	return &domainHandler{
		domainService: ds,
		rulesService:  rules,
	}
}

func registerDomainRoutes(rg *gin.RouterGroup, domainService portssvc.DomainSvcFacade, rulesService portssvc.RulesSvc) {
	h := newDomainHandler(domainService, rulesService)

	domains := rg.Group("/domains")
	{
		domains.POST("/:operation", h.run)
	}
}

// run godoc
// @Summary Run an operation on a ledger domain
// @Description Adds, retrieves, updates or deletes a domain. The default domain cannot be renamed or deleted.
// @Tags domains
// @Accept  json
// @Produce  json
// @Param   operation path string true "Operation" Enums(add, get, update, delete)
// @Param   domain body object true "code, uuid, currencyDefault, subJournals, extra, names, revision (update/delete), toCode (update)"
// @Success 200 {object} map[string]dto.DomainResponse
// @Success 201 {object} map[string]dto.DomainResponse "Domain added"
// @Failure 400 {object} map[string]any "Malformed request or unknown operation"
// @Failure 404 {object} map[string]any "Domain not found"
// @Failure 409 {object} map[string]any "Revision conflict or duplicate code"
// @Failure 422 {object} map[string]any "Ledger rule violation"
// @Failure 500 {object} map[string]any "Internal error"
// @Router /domains/{operation} [post]
func (h *domainHandler) run(c *gin.Context) {
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
	msg, err := messages.DomainFromMap(data, op|messages.FlagValidate, rules)
	if err != nil {
		writeError(c, logger, err)
		return
	}

	d, err := h.domainService.Run(ctx, msg)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	switch op {
	case messages.OpDelete:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case messages.OpAdd:
		c.JSON(http.StatusCreated, gin.H{"domain": dto.ToDomainResponse(d)})
	default:
		c.JSON(http.StatusOK, gin.H{"domain": dto.ToDomainResponse(d)})
	}
}
