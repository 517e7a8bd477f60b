package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/request"
	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/response"
	"github.com/schoenfeld/sfpr-api/internal/api/middleware"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type ShiftService interface {
	List(ctx context.Context) ([]domain.Shift, error)
	Get(ctx context.Context, id uint) (domain.Shift, error)
	Create(ctx context.Context, shift domain.Shift) (domain.Shift, error)
	Update(ctx context.Context, id uint, update service.ShiftUpdate) (domain.Shift, error)
	Delete(ctx context.Context, id uint) error
	Join(ctx context.Context, shiftID, participantID uint) (domain.Shift, error)
	Leave(ctx context.Context, shiftID, participantID uint) (domain.Shift, error)
	ImportCSV(ctx context.Context, r io.Reader) ([]domain.Shift, error)
}

type ShiftHandler struct {
	svc ShiftService
}

func NewShiftHandler(svc ShiftService) *ShiftHandler {
	return &ShiftHandler{
		svc: svc,
	}
}

// HandleListShifts godoc
// @Summary      List shifts in roster order
// @Security     BearerAuth
// @Tags         shifts
// @Produce      json
// @Success      200  {array}   response.Shift
// @Failure      500  {object}  response.Err
// @Router       /shifts [get]
func (h *ShiftHandler) HandleListShifts(ctx *gin.Context) {
	shifts, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListShifts -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewShifts(shifts))
}

// HandleJoinShift godoc
// @Summary      Join a shift
// @Security     BearerAuth
// @Tags         shifts
// @Produce      json
// @Param        shiftID  path      int  true  "shift id"
// @Success      200      {object}  response.Shift
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /shifts/{shiftID}/join [post]
func (h *ShiftHandler) HandleJoinShift(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "shiftID")
	if !ok {
		return
	}

	shift, err := h.svc.Join(ctx.Request.Context(), id, ctx.GetUint(middleware.CtxKeyUserID))
	if err != nil {
		h.renderMembershipErr(ctx, "HandleJoinShift", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewShift(shift))
}

// HandleLeaveShift godoc
// @Summary      Leave a shift
// @Security     BearerAuth
// @Tags         shifts
// @Produce      json
// @Param        shiftID  path      int  true  "shift id"
// @Success      200      {object}  response.Shift
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /shifts/{shiftID}/join [delete]
func (h *ShiftHandler) HandleLeaveShift(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "shiftID")
	if !ok {
		return
	}

	shift, err := h.svc.Leave(ctx.Request.Context(), id, ctx.GetUint(middleware.CtxKeyUserID))
	if err != nil {
		h.renderMembershipErr(ctx, "HandleLeaveShift", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewShift(shift))
}

// HandleCreateShift godoc
// @Summary      Create a shift
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        request  body      request.CreateShiftRequest true "request body"
// @Success      201      {object}  response.Shift
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/shifts [post]
func (h *ShiftHandler) HandleCreateShift(ctx *gin.Context) {
	var req request.CreateShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateShift -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewShift(created))
}

// HandleUpdateShift godoc
// @Summary      Update a shift
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        shiftID  path      int                        true  "shift id"
// @Param        request  body      request.UpdateShiftRequest true  "request body"
// @Success      200      {object}  response.Shift
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/shifts/{shiftID} [put]
func (h *ShiftHandler) HandleUpdateShift(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "shiftID")
	if !ok {
		return
	}

	var req request.UpdateShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	update := service.ShiftUpdate{
		Name:        req.Name,
		Description: req.Description,
		HeadCount:   req.HeadCount,
		Points:      req.Points,
	}
	if req.Day != nil {
		day := domain.Day(*req.Day)
		update.Day = &day
	}
	if req.StartTime != nil {
		start, err := parseStartTime(*req.StartTime)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		update.StartTime = &start
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, service.ErrShiftNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrShiftNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateShift -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewShift(updated))
}

// HandleDeleteShift godoc
// @Summary      Delete an empty shift
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        shiftID  path      int  true  "shift id"
// @Success      204      "No Content"
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/shifts/{shiftID} [delete]
func (h *ShiftHandler) HandleDeleteShift(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "shiftID")
	if !ok {
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrShiftNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrShiftNotFound))
		case errors.Is(err, service.ErrShiftNotEmpty):
			response.RenderErr(ctx, response.ErrConflict(service.ErrShiftNotEmpty))
		default:
			err = fmt.Errorf("v1.HandleDeleteShift -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddShiftParticipant godoc
// @Summary      Add a participant to a shift
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        shiftID  path      int  true  "shift id"
// @Param        userID   path      int  true  "participant id"
// @Success      200      {object}  response.Shift
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/shifts/{shiftID}/users/{userID} [post]
func (h *ShiftHandler) HandleAddShiftParticipant(ctx *gin.Context) {
	shiftID, ok := parseIDParam(ctx, "shiftID")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userID")
	if !ok {
		return
	}

	shift, err := h.svc.Join(ctx.Request.Context(), shiftID, userID)
	if err != nil {
		h.renderMembershipErr(ctx, "HandleAddShiftParticipant", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewShift(shift))
}

// HandleRemoveShiftParticipant godoc
// @Summary      Remove a participant from a shift
// @Security     BearerAuth
// @Tags         admin
// @Produce      json
// @Param        shiftID  path      int  true  "shift id"
// @Param        userID   path      int  true  "participant id"
// @Success      200      {object}  response.Shift
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/shifts/{shiftID}/users/{userID} [delete]
func (h *ShiftHandler) HandleRemoveShiftParticipant(ctx *gin.Context) {
	shiftID, ok := parseIDParam(ctx, "shiftID")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userID")
	if !ok {
		return
	}

	shift, err := h.svc.Leave(ctx.Request.Context(), shiftID, userID)
	if err != nil {
		h.renderMembershipErr(ctx, "HandleRemoveShiftParticipant", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewShift(shift))
}

// HandleImportShifts godoc
// @Summary      Import a shift plan from CSV
// @Security     BearerAuth
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "csv file with columns day, starttime, name, description, headcount, points"
// @Success      201   {array}   response.Shift
// @Failure      400   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /admin/shifts/import [post]
func (h *ShiftHandler) HandleImportShifts(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("missing csv file: %w", err)))
		return
	}
	defer file.Close()

	created, err := h.svc.ImportCSV(ctx.Request.Context(), file)
	if err != nil {
		// Parse errors carry line numbers so the admin can fix the file.
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewShifts(created))
}

func parseStartTime(s string) (time.Time, error) {
	start, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad startTime %q", s)
	}
	return start, nil
}

func (h *ShiftHandler) renderMembershipErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrShiftNotFound))
	case errors.Is(err, service.ErrParticipantNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrParticipantNotFound))
	case errors.Is(err, service.ErrShiftFull):
		response.RenderErr(ctx, response.ErrConflict(service.ErrShiftFull))
	case errors.Is(err, service.ErrAlreadyMember):
		response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyMember))
	case errors.Is(err, service.ErrNotMember):
		response.RenderErr(ctx, response.ErrConflict(service.ErrNotMember))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
