package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoenfeld/sfpr-api/internal/api/handler/v1/response"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/pkg/jwthelper"
)

// CtxKeyUserID is the gin context key the authenticated participant's id
// is stored under.
const CtxKeyUserID = "userID"

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT checks the Bearer token and puts the participant id into the
// request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("missing bearer token"))
			return
		}

		claims, err := jwthelper.ParseToken([]byte(a.signingKey), token, ctx.Request.UserAgent())
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid token"))
			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Next()
	}
}

// ParticipantGetter is the slice of the participant service the admin
// guard needs.
type ParticipantGetter interface {
	Get(ctx context.Context, id uint) (domain.Participant, error)
}

// RequireAdmin rejects requests whose authenticated participant is not an
// organizer. Must run after VerifyJWT.
func RequireAdmin(svc ParticipantGetter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint(CtxKeyUserID)
		if userID == 0 {
			response.RenderErr(ctx, response.ErrUnauthorized("missing bearer token"))
			return
		}

		participant, err := svc.Get(ctx.Request.Context(), userID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("unknown participant"))
			return
		}
		if !participant.IsAdmin() {
			response.RenderErr(ctx, response.ErrForbidden("admin access required"))
			return
		}

		ctx.Next()
	}
}
