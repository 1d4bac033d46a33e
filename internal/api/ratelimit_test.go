package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	router := gin.New()
	router.GET("/api/ping", RateLimit(limit, window, logger), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func performFrom(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	router := newRateLimitedRouter(2, time.Minute)

	assert.Equal(t, http.StatusOK, performFrom(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, performFrom(router, "10.0.0.1").Code)

	w := performFrom(router, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimitIsPerClient(t *testing.T) {
	router := newRateLimitedRouter(1, time.Minute)

	assert.Equal(t, http.StatusOK, performFrom(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, performFrom(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, performFrom(router, "10.0.0.2").Code)
}

func TestRateLimitWindowExpires(t *testing.T) {
	router := newRateLimitedRouter(1, 30*time.Millisecond)

	assert.Equal(t, http.StatusOK, performFrom(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, performFrom(router, "10.0.0.1").Code)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, http.StatusOK, performFrom(router, "10.0.0.1").Code)
}
