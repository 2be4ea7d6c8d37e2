package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimited(limit float64, burst int, ttl time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewRateLimitPerIP(limit, burst, 100, ttl))
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
	return r
}

func hit(r *gin.Engine, addr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = addr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitPerIP_Basic(t *testing.T) {
	r := newLimited(1, 1, time.Hour)

	// first request
	if code := hit(r, "1.2.3.4:12345"); code != 200 {
		t.Fatalf("want 200, got %d", code)
	}
	// second one right away
	if code := hit(r, "1.2.3.4:12345"); code != 429 {
		t.Fatalf("want 429, got %d", code)
	}
}

func TestRateLimitPerIP_DifferentHosts(t *testing.T) {
	r := newLimited(1, 1, time.Hour)

	if code := hit(r, "10.0.0.1:1111"); code != 200 {
		t.Fatalf("host A first request must pass, got %d", code)
	}
	if code := hit(r, "10.0.0.2:2222"); code != 200 {
		t.Fatalf("host B first request must pass independently, got %d", code)
	}
	if code := hit(r, "10.0.0.1:3333"); code != 429 {
		t.Fatalf("host A from another port shares its bucket, got %d", code)
	}
}

func TestRateLimitPerIP_TTL_Evicts(t *testing.T) {
	ttl := 20 * time.Millisecond
	r := newLimited(1, 1, ttl)

	if code := hit(r, "127.0.0.1:5555"); code != 200 {
		t.Fatalf("first req want 200 got %d", code)
	}
	if code := hit(r, "127.0.0.1:5555"); code != 429 {
		t.Fatalf("second immediate req want 429 got %d", code)
	}
	time.Sleep(ttl + 30*time.Millisecond)
	if code := hit(r, "127.0.0.1:5555"); code != 200 {
		t.Fatalf("after TTL want 200 got %d", code)
	}
}
