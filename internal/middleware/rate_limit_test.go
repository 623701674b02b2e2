package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitByEmployee_LimitsPerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("employee_id", "emp-1") })
	r.POST("/clock-in", RateLimitByEmployee(1, 1), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/clock-in", nil))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/clock-in", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimitByEmployee_SkipsAnonymousRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/clock-in", RateLimitByEmployee(1, 1), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clock-in", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}
