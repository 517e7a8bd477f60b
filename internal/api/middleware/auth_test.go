package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-key"

func newProtectedRouter(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append([]gin.HandlerFunc{NewAuthenticator(testSigningKey).VerifyJWT()}, extra...)
	handlers = append(handlers, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"userID": ctx.GetUint(CtxKeyUserID)})
	})
	router.GET("/protected", handlers...)

	return router
}

func TestVerifyJWT(t *testing.T) {
	router := newProtectedRouter(t)

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, "test-agent")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "test-agent")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"userID":7`)
}

func TestVerifyJWTMissingToken(t *testing.T) {
	router := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestVerifyJWTWrongUserAgent(t *testing.T) {
	router := newProtectedRouter(t)

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, "test-agent")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "someone-else")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

type fakeGetter struct {
	participant domain.Participant
}

func (f *fakeGetter) Get(_ context.Context, _ uint) (domain.Participant, error) {
	return f.participant, nil
}

func TestRequireAdmin(t *testing.T) {
	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 7, "test-agent")
	require.NoError(t, err)

	tests := []struct {
		name     string
		pType    string
		wantCode int
	}{
		{name: "admin passes", pType: domain.TypeAdmin, wantCode: http.StatusOK},
		{name: "regular rejected", pType: domain.TypeRegular, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := &fakeGetter{participant: domain.Participant{ID: 7, Type: tt.pType}}
			router := newProtectedRouter(t, RequireAdmin(getter))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("User-Agent", "test-agent")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
