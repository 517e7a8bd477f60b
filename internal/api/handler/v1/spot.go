package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/request"
	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/response"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type SpotService interface {
	List(ctx context.Context) ([]domain.SpotType, error)
	Get(ctx context.Context, id uint) (domain.SpotType, error)
	Create(ctx context.Context, spot domain.SpotType) (domain.SpotType, error)
	Update(ctx context.Context, id uint, update service.SpotUpdate) (domain.SpotType, error)
	Delete(ctx context.Context, id uint) error
}

type SpotHandler struct {
	svc SpotService
}

func NewSpotHandler(svc SpotService) *SpotHandler {
	return &SpotHandler{
		svc: svc,
	}
}

// HandleListSpots godoc
// @Summary      List spot types with current occupancy
// @Security     BearerAuth
// @Tags         spots
// @Produce      json
// @Success      200  {array}   domain.SpotType
// @Failure      500  {object}  response.Err
// @Router       /spots [get]
func (h *SpotHandler) HandleListSpots(ctx *gin.Context) {
	spots, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSpots -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, spots)
}

// HandleCreateSpot godoc
// @Summary      Create a spot type
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        request  body      request.CreateSpotRequest true "request body"
// @Success      201      {object}  domain.SpotType
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/spots [post]
func (h *SpotHandler) HandleCreateSpot(ctx *gin.Context) {
	var req request.CreateSpotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), domain.SpotType{
		Name:        req.Name,
		Price:       req.Price,
		Limit:       req.Limit,
		Description: req.Description,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSpot -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateSpot godoc
// @Summary      Update a spot type
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        spotID   path      int                       true  "spot type id"
// @Param        request  body      request.UpdateSpotRequest true  "request body"
// @Success      200      {object}  domain.SpotType
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/spots/{spotID} [put]
func (h *SpotHandler) HandleUpdateSpot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "spotID")
	if !ok {
		return
	}

	var req request.UpdateSpotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, service.SpotUpdate{
		Name:        req.Name,
		Price:       req.Price,
		Limit:       req.Limit,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrSpotNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSpotNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateSpot -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteSpot godoc
// @Summary      Delete an empty spot type
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        spotID  path      int  true  "spot type id"
// @Success      204     "No Content"
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/spots/{spotID} [delete]
func (h *SpotHandler) HandleDeleteSpot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "spotID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrSpotNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSpotNotFound))
		case errors.Is(err, service.ErrSpotNotEmpty):
			response.RenderErr(ctx, response.ErrConflict(service.ErrSpotNotEmpty))
		default:
			err = fmt.Errorf("v1.HandleDeleteSpot -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
