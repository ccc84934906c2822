package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("real_ip"))
	})

	t.Run("cloudflare header wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("CF-Connecting-IP", "203.0.113.9")
		req.Header.Set("X-Forwarded-For", "198.51.100.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "203.0.113.9", w.Body.String())
	})

	t.Run("left-most forwarded entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "198.51.100.1", w.Body.String())
	})

	t.Run("garbage header ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("CF-Connecting-IP", "not-an-ip")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "not-an-ip", w.Body.String())
	})
}

func TestRequestIDUnique(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	get := func() string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w.Body.String()
	}

	a, b := get(), get()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRateLimitNoRedisFailsOpen(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

// fixedCountHook answers the limiter's script with a fixed window
// counter and its TTL lookup with a fixed expiry, so the over-limit
// branch runs without a live Redis.
type fixedCountHook struct {
	count int64
}

func (h *fixedCountHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *fixedCountHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		switch c := cmd.(type) {
		case *redis.Cmd:
			c.SetVal(h.count)
		case *redis.DurationCmd:
			c.SetVal(30 * time.Second)
		}
		return nil
	}
}

func (h *fixedCountHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRateLimitHeaders(t *testing.T) {
	newRouter := func(count int64, max int) *gin.Engine {
		rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		rdb.AddHook(&fixedCountHook{count: count})
		r := gin.New()
		r.GET("/", RateLimit(rdb, max, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(1, 2).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("over limit remaining clamps to zero", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(5, 2).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
	})
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()

	cases := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"192.168.0.7", true},
		{"203.0.113.9", false},
		{"not-an-ip", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("real_ip", tc.ip)
		assert.Equal(t, tc.want, allow(c), "ip %s", tc.ip)
	}
}

func TestKeyFuncs(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/signup", nil)
	c.Set("real_ip", "203.0.113.9")

	assert.Equal(t, "rl:ip:203.0.113.9", KeyByIP()(c))
	assert.Contains(t, KeyByIPAndPath()(c), "203.0.113.9")

	anon := KeyByUserID()(c)
	assert.Contains(t, anon, "anon")

	c.Set(CtxUserIDKey, "user-1")
	assert.Equal(t, "rl:user:user-1", KeyByUserID()(c))
}
