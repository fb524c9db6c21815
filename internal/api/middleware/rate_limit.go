package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SlotOptimizer/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, повторите позже"

// RateLimitMetrics счётчик отклонённых запросов
type RateLimitMetrics interface {
	IncRateLimited(route string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	metrics RateLimitMetrics
	logger  Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter создает ограничитель: requestsPerSecond в среднем и burst подряд
func NewRateLimiter(requestsPerSecond float64, burst int, metrics RateLimitMetrics, logger Logger) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		metrics:  metrics,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// Middleware возвращает 429, когда клиент исчерпал лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.limiter(ip).Allow() {
			route := routeTemplate(r)
			l.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, route, ip)
			l.metrics.IncRateLimited(route)
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Real-IP"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
