package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/auth"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-32-characters"

func init() {
	gin.SetMode(gin.TestMode)
}

func issue(t *testing.T, issuer *auth.TokenIssuer, id uint, role string) string {
	t.Helper()
	token, err := issuer.Issue(&models.User{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c), "admin": IsAdmin(c)})
	})
	router.GET("/test", handlers...)
	return router
}

func perform(router http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	expired := auth.NewTokenIssuer(testSecret, -time.Hour)
	router := newRouter(JWTAuth(issuer))

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUserID float64
	}{
		{name: "missing header", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", expectedStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + issue(t, expired, 5, models.RoleUser), expectedStatus: http.StatusUnauthorized},
		{name: "valid bearer", header: "Bearer " + issue(t, issuer, 5, models.RoleUser), expectedStatus: http.StatusOK, expectedUserID: 5},
		{name: "valid token scheme", header: "Token " + issue(t, issuer, 6, models.RoleUser), expectedStatus: http.StatusOK, expectedUserID: 6},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, tt.header)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedUserID, body["user_id"])
			} else {
				assert.Equal(t, models.ErrUnauthorized, body["code"])
			}
		})
	}
}

func TestOptionalJWTAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	router := newRouter(OptionalJWTAuth(issuer))

	w := perform(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"admin":false}`, w.Body.String())

	w = perform(router, "Bearer "+issue(t, issuer, 9, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":9,"admin":true}`, w.Body.String())

	w = perform(router, "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	router := newRouter(JWTAuth(issuer), RequireRole(models.RoleAdmin))

	w := perform(router, "Bearer "+issue(t, issuer, 1, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrForbidden)

	w = perform(router, "Bearer "+issue(t, issuer, 1, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)

	// Without JWTAuth in front the caller is anonymous
	w = perform(newRouter(RequireRole(models.RoleAdmin)), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	router := newRouter(RequestID(), RequestLogger(logger), Metrics())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "/test", entry["route"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])

	w = perform(router, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestMetricsHandler(t *testing.T) {
	router := gin.New()
	router.Use(Metrics())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", MetricsHandler())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `foodgram_http_requests_total{method="GET",route="/ping",status="200"}`))
}
