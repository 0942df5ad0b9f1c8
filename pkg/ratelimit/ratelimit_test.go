package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/api/v1/auth/login", RateLimitTypeAuth},
		{"/api/v1/events/:eventId/check-in/lookup", RateLimitTypeScan},
		{"/api/v1/events/:eventId/check-out/submit", RateLimitTypeSubmit},
		{"/api/v1/events/:eventId/voucher-campaigns/:campaignId", RateLimitTypeAdmin},
		{"/api/v1/uploads/images", RateLimitTypeAdmin},
		{"/api/v1/marketplace/events/:slug", RateLimitTypePublic},
		{"/api/v1/stations/:stationId/preferences", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		if got := getRateLimitType(tt.path); got != tt.want {
			t.Errorf("getRateLimitType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsAllowedWithoutRedis(t *testing.T) {
	rl := NewRateLimiter(nil, &Config{Enabled: true, WindowDuration: time.Minute, ScanRequests: 5})

	result, err := rl.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeScan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed || result.Limit != 5 || result.Remaining != 5 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:1234", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.1:1234", "198.51.100.2"},
		{"garbage header", map[string]string{"X-Forwarded-For": "nope"}, "10.0.0.9:1234", "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			if got := getClientIP(c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
