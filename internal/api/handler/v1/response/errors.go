package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error envelope every non-2xx response uses.
type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`

	err error
}

func (e *Err) Error() string {
	return e.Msg
}

// RenderErr logs the underlying error and writes the envelope. Internal
// errors are masked so database details never leak to the client.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.err != nil {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Int("status", err.StatusCode),
			zap.Error(err.err),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
		err:        err,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        "wrong credentials",
		err:        err,
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        msg,
	}
}

func ErrForbidden(msg string) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Msg:        msg,
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Msg:        err.Error(),
		err:        err,
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Msg:        err.Error(),
		err:        err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        "internal server error",
		err:        err,
	}
}
