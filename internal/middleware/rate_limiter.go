package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana tracks request counts per IP within a sliding window.
type ventana struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

type ipLimiter struct {
	entries map[string]*ventana
	mu      sync.Mutex
}

func (l *ipLimiter) entry(ip string) *ventana {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[ip]
	if !ok {
		e = &ventana{}
		l.entries[ip] = e
	}
	return e
}

func (l *ipLimiter) allow(ip string, limit int, window time.Duration) bool {
	e := l.entry(ip)
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	if now.After(e.windowEnd) {
		e.count = 0
		e.windowEnd = now.Add(window)
	}
	e.count++
	return e.count <= limit
}

func (l *ipLimiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, e := range l.entries {
		e.mu.Lock()
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
		e.mu.Unlock()
	}
	return purged
}

var (
	loginLimiter = &ipLimiter{entries: make(map[string]*ventana)}
	apiLimiter   = &ipLimiter{entries: make(map[string]*ventana)}
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loginLimiter.allow(c.ClientIP(), 20, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose sliding-window rate limiter per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !apiLimiter.allow(c.ClientIP(), limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// Expired windows are purged periodically so IPs that never return don't
// accumulate in memory.
const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			purgedLogin := loginLimiter.purge(now)
			purgedAPI := apiLimiter.purge(now)
			if purgedLogin > 0 || purgedAPI > 0 {
				log.Debug().
					Int("login_entries_purged", purgedLogin).
					Int("api_entries_purged", purgedAPI).
					Msg("rate limiter maps purged")
			}
		}
	}()
}
