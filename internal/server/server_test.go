package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"adoptnest/internal/config"
	"adoptnest/internal/database"
	"adoptnest/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// unreachableDB opens a pool that can never connect. Only routes that fail
// before touching the database are exercised with it.
func unreachableDB(t *testing.T) database.Service {
	t.Helper()
	db, err := database.New(config.DatabaseConfig{Host: "127.0.0.1", Port: "1", User: "x", Password: "x", Database: "x"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "production",
			AllowedOrigins: []string{"https://adoptnest-client.onrender.com"},
		},
		JWT:       config.JWTConfig{Secret: "test-secret"},
		RateLimit: config.RateLimitConfig{Requests: 2, Window: time.Minute},
	}
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestRouter_GuardsAndHealth(t *testing.T) {
	router := NewRouter(testConfig(), zap.NewNop(), unreachableDB(t), nil, nil)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"health reports db down", http.MethodGet, "/health", "", http.StatusServiceUnavailable},
		{"submission needs auth", http.MethodPost, "/api/pets/add", "", http.StatusUnauthorized},
		{"moderation needs admin", http.MethodPost, "/api/pets/admin/validate/" + uuid.NewString(), token(t, domain.RoleUser), http.StatusForbidden},
		{"admin lists need admin", http.MethodGet, "/api/pets/admin/pending", token(t, domain.RoleUser), http.StatusForbidden},
		{"banner upload needs admin", http.MethodPost, "/api/admin/add-banner", token(t, domain.RoleUser), http.StatusForbidden},
		{"profile needs auth", http.MethodGet, "/api/user/profile", "", http.StatusUnauthorized},
		{"malformed pet id", http.MethodGet, "/api/ui/pet/abc", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestRouter_RateLimitsCredentialEndpoints(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	router := NewRouter(testConfig(), zap.NewNop(), unreachableDB(t), nil, redisClient)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
		req.RemoteAddr = "10.1.1.1:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
	assert.True(t, mr.Exists("ratelimit:auth:ip:10.1.1.1"))
}

func TestRouter_CORS(t *testing.T) {
	router := NewRouter(testConfig(), zap.NewNop(), unreachableDB(t), nil, nil)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/pets/all", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://adoptnest-client.onrender.com")
	assert.Equal(t, "https://adoptnest-client.onrender.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight("https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewServer_WrapsRouter(t *testing.T) {
	srv := NewServer(testConfig(), zap.NewNop(), unreachableDB(t), nil, nil)
	assert.Equal(t, ":0", srv.Addr)
	require.NotNil(t, srv.Handler)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ui/pet/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
