package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestOptionalUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		header string
		want   string
	}{
		{"", DemoUser},
		{"  ", DemoUser},
		{"user-42", "user-42"},
	}
	for _, tt := range tests {
		r := gin.New()
		r.Use(OptionalUser())
		var got string
		r.GET("/", func(c *gin.Context) { got = UserID(c) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-Id", tt.header)
		r.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, tt.want, got)
	}
}
