package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/request"
	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/response"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type AccountingService interface {
	Summary(ctx context.Context) (service.SoliSummary, error)
	EstimateBudget(ctx context.Context, counts map[uint]int, costs domain.FixedCosts) (domain.BudgetEstimate, error)
}

type AccountingHandler struct {
	svc AccountingService
}

func NewAccountingHandler(svc AccountingService) *AccountingHandler {
	return &AccountingHandler{
		svc: svc,
	}
}

// HandleGetSoliSummary godoc
// @Summary      Solidarity pool overview
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Success      200  {object}  service.SoliSummary
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/accounting/soli [get]
func (h *AccountingHandler) HandleGetSoliSummary(ctx *gin.Context) {
	summary, err := h.svc.Summary(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSoliSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleEstimateBudget godoc
// @Summary      Run the budget what-if calculator
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        request  body      request.BudgetRequest true "request body"
// @Success      200      {object}  domain.BudgetEstimate
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/budget [post]
func (h *AccountingHandler) HandleEstimateBudget(ctx *gin.Context) {
	var req request.BudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	estimate, err := h.svc.EstimateBudget(ctx.Request.Context(), req.SpotCounts, req.FixedCosts)
	if err != nil {
		err = fmt.Errorf("v1.HandleEstimateBudget -> h.svc.EstimateBudget -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, estimate)
}
