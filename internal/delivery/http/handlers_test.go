package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"steam-analysis/internal/domain"
	"steam-analysis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) Submit(ctx context.Context, description string) error {
	args := m.Called(ctx, description)
	return args.Error(0)
}

func (m *mockController) SelectGame(gameID int) error {
	args := m.Called(gameID)
	return args.Error(0)
}

func (m *mockController) Display() service.DisplayModel {
	args := m.Called()
	return args.Get(0).(service.DisplayModel)
}

func setupRouter(controller AnalysisController, ws http.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(controller, ws, zap.NewNop()).RegisterRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	router := setupRouter(&mockController{}, nil)

	w := doJSON(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAnalyze(t *testing.T) {
	loading := service.DisplayModel{Status: domain.StatusLoading, Prompt: "idea", HasSubmitted: true}

	testCases := []struct {
		name       string
		body       string
		setup      func(m *mockController)
		wantStatus int
		wantCode   string
	}{
		{
			name: "accepted",
			body: `{"description":"idea"}`,
			setup: func(m *mockController) {
				m.On("Submit", mock.Anything, "idea").Return(nil).Once()
				m.On("Display").Return(loading).Once()
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "empty description",
			body: `{"description":"   "}`,
			setup: func(m *mockController) {
				m.On("Submit", mock.Anything, "   ").Return(domain.ErrEmptyInput).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrCodeEmptyInput,
		},
		{
			name: "request already in flight",
			body: `{"description":"another"}`,
			setup: func(m *mockController) {
				m.On("Submit", mock.Anything, "another").Return(domain.ErrRequestInFlight).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   domain.ErrCodeRequestInFlight,
		},
		{
			name:       "invalid json",
			body:       `{"description":`,
			setup:      func(m *mockController) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrCodeBadRequest,
		},
		{
			name: "unexpected error",
			body: `{"description":"idea"}`,
			setup: func(m *mockController) {
				m.On("Submit", mock.Anything, "idea").Return(fmt.Errorf("something broke")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   domain.ErrCodeInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &mockController{}
			tc.setup(m)
			router := setupRouter(m, nil)

			w := doJSON(router, http.MethodPost, "/api/analyze", tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decodeError(t, w).Code)
			} else {
				var got service.DisplayModel
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, loading, got)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestGetState(t *testing.T) {
	m := &mockController{}
	m.On("Display").Return(service.DisplayModel{
		Status:       domain.StatusError,
		Error:        domain.UserFacingErrorMessage,
		HasSubmitted: true,
	}).Once()
	router := setupRouter(m, nil)

	w := doJSON(router, http.MethodGet, "/api/state", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var got service.DisplayModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusError, got.Status)
	assert.Equal(t, domain.UserFacingErrorMessage, got.Error)
	m.AssertExpectations(t)
}

func TestSelectGame(t *testing.T) {
	t.Run("Selects game", func(t *testing.T) {
		m := &mockController{}
		m.On("SelectGame", 2).Return(nil).Once()
		m.On("Display").Return(service.DisplayModel{Status: domain.StatusSuccess}).Once()
		router := setupRouter(m, nil)

		w := doJSON(router, http.MethodPut, "/api/selection", `{"game_id":2}`)

		assert.Equal(t, http.StatusOK, w.Code)
		m.AssertExpectations(t)
	})

	t.Run("Game id zero is valid", func(t *testing.T) {
		m := &mockController{}
		m.On("SelectGame", 0).Return(nil).Once()
		m.On("Display").Return(service.DisplayModel{Status: domain.StatusSuccess}).Once()
		router := setupRouter(m, nil)

		w := doJSON(router, http.MethodPut, "/api/selection", `{"game_id":0}`)

		assert.Equal(t, http.StatusOK, w.Code)
		m.AssertExpectations(t)
	})

	t.Run("Missing game id", func(t *testing.T) {
		m := &mockController{}
		router := setupRouter(m, nil)

		w := doJSON(router, http.MethodPut, "/api/selection", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domain.ErrCodeBadRequest, decodeError(t, w).Code)
		m.AssertNotCalled(t, "SelectGame", mock.Anything)
	})

	t.Run("No result yet", func(t *testing.T) {
		m := &mockController{}
		m.On("SelectGame", 1).Return(domain.ErrNoResult).Once()
		router := setupRouter(m, nil)

		w := doJSON(router, http.MethodPut, "/api/selection", `{"game_id":1}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, domain.ErrCodeNoResult, decodeError(t, w).Code)
	})
}

func TestWebsocketRoute(t *testing.T) {
	called := false
	ws := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusSwitchingProtocols)
	})

	router := setupRouter(&mockController{}, ws)
	w := doJSON(router, http.MethodGet, "/ws", "")

	assert.True(t, called)
	assert.Equal(t, http.StatusSwitchingProtocols, w.Code)

	router = setupRouter(&mockController{}, nil)
	w = doJSON(router, http.MethodGet, "/ws", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
