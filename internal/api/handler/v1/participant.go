package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/request"
	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/response"
	"github.com/schoenfeld/sfpr-api/internal/api/middleware"
	"github.com/schoenfeld/sfpr-api/internal/config"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type ParticipantService interface {
	Get(ctx context.Context, id uint) (domain.Participant, error)
	List(ctx context.Context) ([]domain.Participant, error)
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	Update(ctx context.Context, id uint, update service.ParticipantUpdate) (domain.Participant, error)
	Delete(ctx context.Context, id uint) error
	UpdatePassword(ctx context.Context, id uint, password string) (domain.Participant, error)
}

type ParticipantHandler struct {
	conf *config.APIConfig
	svc  ParticipantService
}

func NewParticipantHandler(conf *config.APIConfig, svc ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the authenticated participant
// @Security     BearerAuth
// @Tags         participants
// @Produce      json
// @Success      200  {object}  response.Participant
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
func (h *ParticipantHandler) HandleGetMe(ctx *gin.Context) {
	h.renderParticipant(ctx, ctx.GetUint(middleware.CtxKeyUserID))
}

// HandleUpdateMe godoc
// @Summary      Update the authenticated participant
// @Security     BearerAuth
// @Tags         participants
// @Produce      json
// @Param        request  body      request.UpdateParticipantRequest true "request body"
// @Success      200      {object}  response.Participant
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me [put]
func (h *ParticipantHandler) HandleUpdateMe(ctx *gin.Context) {
	var req request.UpdateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// Role, login name and the payment record are admin-only fields.
	req.Type = nil
	req.Username = nil
	req.AmountPaid = nil

	h.update(ctx, ctx.GetUint(middleware.CtxKeyUserID), req)
}

// HandleUpdateMyPassword godoc
// @Summary      Change the authenticated participant's password
// @Security     BearerAuth
// @Tags         participants
// @Produce      json
// @Param        request  body      request.UpdatePasswordRequest true "request body"
// @Success      200      {object}  response.Participant
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me/password [put]
func (h *ParticipantHandler) HandleUpdateMyPassword(ctx *gin.Context) {
	h.updatePassword(ctx, ctx.GetUint(middleware.CtxKeyUserID))
}

// HandleListParticipants godoc
// @Summary      List all participants
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Success      200  {array}   response.Participant
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users [get]
func (h *ParticipantHandler) HandleListParticipants(ctx *gin.Context) {
	participants, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipants -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipants(participants, h.conf.SoliDiscount))
}

// HandleGetParticipant godoc
// @Summary      Get a participant by id
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        userID  path      int  true  "participant id"
// @Success      200     {object}  response.Participant
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/users/{userID} [get]
func (h *ParticipantHandler) HandleGetParticipant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "userID")
	if !ok {
		return
	}

	h.renderParticipant(ctx, id)
}

// HandleCreateParticipant godoc
// @Summary      Seed a participant row for later signup
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        request  body      request.CreateParticipantRequest true "request body"
// @Success      201      {object}  response.Participant
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/users [post]
func (h *ParticipantHandler) HandleCreateParticipant(ctx *gin.Context) {
	var req request.CreateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant := domain.Participant{
		Username:   &req.Username,
		Nickname:   req.Nickname,
		SoliAmount: req.SoliAmount,
	}
	if req.FullName != "" {
		participant.FullName = &req.FullName
	}
	if req.Phone != "" {
		participant.Phone = &req.Phone
	}

	created, err := h.svc.Create(ctx.Request.Context(), participant)
	if err != nil {
		if errors.Is(err, service.ErrParticipantExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateParticipant -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewParticipant(created, h.conf.SoliDiscount))
}

// HandleUpdateParticipant godoc
// @Summary      Update any participant
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        userID   path      int                              true  "participant id"
// @Param        request  body      request.UpdateParticipantRequest true  "request body"
// @Success      200      {object}  response.Participant
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/users/{userID} [put]
func (h *ParticipantHandler) HandleUpdateParticipant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "userID")
	if !ok {
		return
	}

	var req request.UpdateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.update(ctx, id, req)
}

// HandleDeleteParticipant godoc
// @Summary      Delete a participant
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        userID  path      int  true  "participant id"
// @Success      204     "No Content"
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /admin/users/{userID} [delete]
func (h *ParticipantHandler) HandleDeleteParticipant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "userID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
		case errors.Is(err, service.ErrProtectedAccount):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrProtectedAccount.Error()))
		default:
			err = fmt.Errorf("v1.HandleDeleteParticipant -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpdateParticipantPassword godoc
// @Summary      Set a participant's password
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        userID   path      int                           true  "participant id"
// @Param        request  body      request.UpdatePasswordRequest true  "request body"
// @Success      200      {object}  response.Participant
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/users/{userID}/password [put]
func (h *ParticipantHandler) HandleUpdateParticipantPassword(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "userID")
	if !ok {
		return
	}

	h.updatePassword(ctx, id)
}

func (h *ParticipantHandler) renderParticipant(ctx *gin.Context, id uint) {
	participant, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}

		err = fmt.Errorf("v1.renderParticipant -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipant(participant, h.conf.SoliDiscount))
}

func (h *ParticipantHandler) update(ctx *gin.Context, id uint, req request.UpdateParticipantRequest) {
	updated, err := h.svc.Update(ctx.Request.Context(), id, service.ParticipantUpdate{
		Username:    req.Username,
		Nickname:    req.Nickname,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Type:        req.Type,
		AmountPaid:  req.AmountPaid,
		SoliAmount:  req.SoliAmount,
		TakesSoli:   req.TakesSoli,
		DonatesSoli: req.DonatesSoli,
		SpotTypeID:  req.SpotTypeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
		case errors.Is(err, service.ErrSpotNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSpotNotFound))
		case errors.Is(err, service.ErrSpotFull):
			response.RenderErr(ctx, response.ErrConflict(service.ErrSpotFull))
		case errors.Is(err, service.ErrSoliConflict):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSoliConflict))
		default:
			err = fmt.Errorf("v1.update -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipant(updated, h.conf.SoliDiscount))
}

func (h *ParticipantHandler) updatePassword(ctx *gin.Context, id uint) {
	var req request.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdatePassword(ctx.Request.Context(), id, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
			return
		}

		err = fmt.Errorf("v1.updatePassword -> h.svc.UpdatePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewParticipant(updated, h.conf.SoliDiscount))
}

// parseIDParam reads a positive integer path parameter and renders a 400 on
// failure.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw)))
		return 0, false
	}
	return uint(id), true
}
