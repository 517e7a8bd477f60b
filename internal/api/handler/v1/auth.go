package v1

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/request"
	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/response"
	"github.com/schoenfeld/sfpr-api/internal/config"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/pkg/jwthelper"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, participant domain.Participant, password string) (domain.Participant, error)
	Login(ctx context.Context, username, password string) (domain.Participant, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

var errWrongSitePassword = errors.New("wrong site password")

// HandleSignup godoc
// @Summary      Register a participant
// @Tags         auth
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   response.Participant
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// The site password is a single shared secret from the invitation
	// mail, not a per-user credential.
	if subtle.ConstantTimeCompare([]byte(req.SitePassword), []byte(h.conf.SitePassword)) != 1 {
		response.RenderErr(ctx, response.ErrBadRequest(errWrongSitePassword))
		return
	}

	participant := domain.Participant{
		Username: &req.Username,
		Nickname: req.Nickname,
	}
	if req.FullName != "" {
		participant.FullName = &req.FullName
	}
	if req.Phone != "" {
		participant.Phone = &req.Phone
	}

	created, err := h.svc.Signup(ctx.Request.Context(), participant, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrParticipantExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantExists))
			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewParticipant(created, h.conf.SoliDiscount))
}

// HandleLogin godoc
// @Summary      Login a participant
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participant, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), participant.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:       token,
		Participant: response.NewParticipant(participant, h.conf.SoliDiscount),
	})
}
