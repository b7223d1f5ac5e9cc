package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cvillegar/Odontologia/internal/logger"
	"github.com/cvillegar/Odontologia/internal/middleware"
	"github.com/cvillegar/Odontologia/internal/store"
	"github.com/cvillegar/Odontologia/internal/utils"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	h      *Handler
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost

	repo := store.NewRepository(store.NewCSVBackend(t.TempDir()))
	require.Empty(t, repo.Load(context.Background()))

	h := NewHandler(repo, nil, utils.NewTokenIssuer("test-secret", time.Hour),
		middleware.NewMetrics(), "57", logger.Discard().WithComponent("handlers"))
	h.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local) }

	r := gin.New()
	r.Use(h.Metrics.Middleware())
	h.Routes(r)

	s := &testServer{t: t, router: r, h: h}
	s.token = s.login()
	return s
}

func (s *testServer) login() string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/register", map[string]any{
		"nombre": "Dra. Villegas", "email": "dra@example.com", "password": "supersecret",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/auth/login", map[string]any{"email": "dra@example.com", "password": "supersecret"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// do sends body as JSON, authenticated once a token is known.
func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) decode(w *httptest.ResponseRecorder, v any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *testServer) registerAna() {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/patients", map[string]any{
		"cedula": "123", "nombre": "Ana Gomez", "telefono": "300 123 4567", "email": "ana@example.com",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
}
