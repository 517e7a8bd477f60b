package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoenfeld/sfpr-api/internal/config"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type fakeAuthService struct {
	signupErr error
	loginErr  error
}

func (f *fakeAuthService) Signup(_ context.Context, p domain.Participant, _ string) (domain.Participant, error) {
	if f.signupErr != nil {
		return domain.Participant{}, f.signupErr
	}
	p.ID = 1
	p.IsActivated = true
	p.Type = domain.TypeRegular
	return p, nil
}

func (f *fakeAuthService) Login(_ context.Context, username, _ string) (domain.Participant, error) {
	if f.loginErr != nil {
		return domain.Participant{}, f.loginErr
	}
	return domain.Participant{ID: 1, Username: &username, Nickname: "anna"}, nil
}

func testAPIConfig() *config.APIConfig {
	return &config.APIConfig{
		Environment:   "test",
		JWTSigningKey: "test-key",
		SitePassword:  "geheim",
		SoliDiscount:  25,
	}
}

func newAuthRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(testAPIConfig(), svc)
	router.POST("/auth/signup", handler.HandleSignup)
	router.POST("/auth/login", handler.HandleLogin)
	return router
}

func TestHandleSignup(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svc      *fakeAuthService
		wantCode int
	}{
		{
			name: "created",
			body: `{"username":"anna@example.com","password":"sommer2026","confirmPassword":"sommer2026",
				"nickname":"anna","sitePassword":"geheim"}`,
			svc:      &fakeAuthService{},
			wantCode: http.StatusCreated,
		},
		{
			name: "wrong site password",
			body: `{"username":"anna@example.com","password":"sommer2026","confirmPassword":"sommer2026",
				"nickname":"anna","sitePassword":"falsch"}`,
			svc:      &fakeAuthService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "weak password",
			body: `{"username":"anna@example.com","password":"short","confirmPassword":"short",
				"nickname":"anna","sitePassword":"geheim"}`,
			svc:      &fakeAuthService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "username taken",
			body: `{"username":"anna@example.com","password":"sommer2026","confirmPassword":"sommer2026",
				"nickname":"anna","sitePassword":"geheim"}`,
			svc:      &fakeAuthService{signupErr: service.ErrParticipantExists},
			wantCode: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandleLogin(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"anna@example.com","password":"sommer2026"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"token"`)
}

func TestHandleLoginWrongCredentials(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{loginErr: service.ErrWrongPassword})

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"anna@example.com","password":"falsch123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
