package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/zevina/internal/auth"
)

const (
	ClientCookie = "zevina_client"
	ClientHeader = "X-Zevina-Client"

	ctxNamespace = "namespace"
	ctxIdentity  = "identity"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientMiddleware resolves the client namespace of the request, minting a
// new one (and its cookie) for a first-time browser.
func ClientMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ns := c.GetHeader(ClientHeader)
		if ns == "" {
			ns, _ = c.Cookie(ClientCookie)
		}
		if _, err := uuid.Parse(ns); err != nil {
			ns = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, ns, clientCookieMaxAge, "/", "", false, true)
		}
		c.Set(ctxNamespace, ns)
		c.Next()
	}
}

func namespace(c *gin.Context) string {
	return c.GetString(ctxNamespace)
}

// RequireSession only lets logged in clients through. The identity is
// stored on the context for the handlers.
func (e *Env) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		mgr, err := auth.Open(c.Request.Context(), e.Storage(namespace(c)), e.Log)
		if err != nil {
			e.Log.Error("Loading session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}
		id, ok := mgr.Current()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please log in first."})
			return
		}
		c.Set(ctxIdentity, id)
		c.Next()
	}
}

// SecurityHeadersMiddleware adds basic, sensible security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "same-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; connect-src 'self' ws: wss:")
		c.Next()
	}
}

// ZapLogger logs one line per request.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", namespace(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("Request failed", fields...)
			return
		}
		log.Info("Request", fields...)
	}
}

// --- Rate Limiter ---

// ClientRateLimiter keeps one token bucket per client namespace.
type ClientRateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
}

func NewClientRateLimiter(r rate.Limit, b int) *ClientRateLimiter {
	return &ClientRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		rps:      r,
		burst:    b,
	}
}

func (rl *ClientRateLimiter) GetLimiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, exists := rl.visitors[client]
	if !exists {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[client] = limiter
	}
	return limiter
}

// Sweep forgets clients whose bucket has refilled; they start over with a
// fresh limiter next time.
func (rl *ClientRateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := time.Now()
	for client, v := range rl.visitors {
		if v.TokensAt(now) >= float64(rl.burst) {
			delete(rl.visitors, client)
		}
	}
}

// RunSweeper calls Sweep every interval until ctx is done.
func (rl *ClientRateLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep()
		}
	}
}

func RateLimitMiddleware(limiter *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(namespace(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please wait."})
			return
		}
		c.Next()
	}
}
