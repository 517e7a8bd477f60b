package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoenfeld/sfpr-api/internal/api/middleware"
	"github.com/schoenfeld/sfpr-api/internal/domain"
	"github.com/schoenfeld/sfpr-api/internal/service"
)

type fakeParticipantService struct {
	participant domain.Participant
	updateErr   error
	deleteErr   error
	lastUpdate  service.ParticipantUpdate
}

func (f *fakeParticipantService) Get(_ context.Context, id uint) (domain.Participant, error) {
	if id != f.participant.ID {
		return domain.Participant{}, service.ErrParticipantNotFound
	}
	return f.participant, nil
}

func (f *fakeParticipantService) List(_ context.Context) ([]domain.Participant, error) {
	return []domain.Participant{f.participant}, nil
}

func (f *fakeParticipantService) Create(_ context.Context, p domain.Participant) (domain.Participant, error) {
	p.ID = 2
	return p, nil
}

func (f *fakeParticipantService) Update(_ context.Context, id uint, update service.ParticipantUpdate) (domain.Participant, error) {
	if f.updateErr != nil {
		return domain.Participant{}, f.updateErr
	}
	f.lastUpdate = update
	return f.participant, nil
}

func (f *fakeParticipantService) Delete(_ context.Context, id uint) error {
	return f.deleteErr
}

func (f *fakeParticipantService) UpdatePassword(_ context.Context, _ uint, _ string) (domain.Participant, error) {
	return f.participant, nil
}

func newParticipantRouter(svc ParticipantService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.CtxKeyUserID, uint(1))
	})
	handler := NewParticipantHandler(testAPIConfig(), svc)
	router.GET("/users/me", handler.HandleGetMe)
	router.PUT("/users/me", handler.HandleUpdateMe)
	router.DELETE("/admin/users/:userID", handler.HandleDeleteParticipant)
	return router
}

func TestHandleGetMe(t *testing.T) {
	price := uint16(40)
	spotID := uint(3)
	svc := &fakeParticipantService{participant: domain.Participant{
		ID:         1,
		Nickname:   "anna",
		TakesSoli:  true,
		AmountPaid: 5,
		SpotTypeID: &spotID,
		SpotType:   &domain.SpotType{ID: spotID, Name: "Zelt", Price: price, Limit: 10},
	}}
	router := newParticipantRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var got struct {
		AmountToPay float32 `json:"amountToPay"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	// 40 + 0 - 25 - 5
	assert.Equal(t, float32(10), got.AmountToPay)
}

func TestHandleUpdateMeStripsAdminFields(t *testing.T) {
	svc := &fakeParticipantService{participant: domain.Participant{ID: 1, Nickname: "anna"}}
	router := newParticipantRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/users/me",
		strings.NewReader(`{"nickname":"anna2","type":"admin","username":"other@example.com","amountPaid":500}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	// Role escalation, login changes and marking oneself paid must all be
	// ignored on the self-service route.
	assert.Nil(t, svc.lastUpdate.Type)
	assert.Nil(t, svc.lastUpdate.Username)
	assert.Nil(t, svc.lastUpdate.AmountPaid)
	require.NotNil(t, svc.lastUpdate.Nickname)
	assert.Equal(t, "anna2", *svc.lastUpdate.Nickname)
}

func TestHandleUpdateMeSoliConflict(t *testing.T) {
	svc := &fakeParticipantService{
		participant: domain.Participant{ID: 1, Nickname: "anna"},
		updateErr:   service.ErrSoliConflict,
	}
	router := newParticipantRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/users/me",
		strings.NewReader(`{"soliAmount":10,"takesSoli":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleUpdateMeSpotFull(t *testing.T) {
	svc := &fakeParticipantService{
		participant: domain.Participant{ID: 1, Nickname: "anna"},
		updateErr:   service.ErrSpotFull,
	}
	router := newParticipantRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/users/me",
		strings.NewReader(`{"spotTypeId":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHandleDeleteProtectedParticipant(t *testing.T) {
	svc := &fakeParticipantService{
		participant: domain.Participant{ID: 1, Nickname: "orga"},
		deleteErr:   service.ErrProtectedAccount,
	}
	router := newParticipantRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
