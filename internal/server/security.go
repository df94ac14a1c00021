package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/MathCatch_Go/internal/clock"
	"github.com/osse101/MathCatch_Go/internal/logger"
)

// AuthMiddleware validates the API key on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ipWindow counts events for one IP inside a fixed window
type ipWindow struct {
	start      time.Time
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector tracks per-IP request rates and failed logins.
// Tracked IPs are bounded; idle ones age out after one window.
type SuspiciousActivityDetector struct {
	mu      sync.Mutex
	windows *expirable.LRU[string, *ipWindow]
	clock   clock.Clock
}

// NewSuspiciousActivityDetector creates a detector. clk may be nil.
func NewSuspiciousActivityDetector(clk clock.Clock) *SuspiciousActivityDetector {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &SuspiciousActivityDetector{
		windows: expirable.NewLRU[string, *ipWindow](DetectorTrackedIPs, nil, DetectorWindow),
		clock:   clk,
	}
}

// window returns ip's current window, starting a new one when the last has elapsed.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) window(ip string) *ipWindow {
	now := s.clock.Now()
	w, ok := s.windows.Get(ip)
	if !ok || now.Sub(w.start) > DetectorWindow {
		w = &ipWindow{start: now}
		s.windows.Add(ip, w)
	}
	return w
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.failedAuth++
	if w.failedAuth >= DetectorFailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.failedAuth)
	}
}

// RecordRequest counts a request and returns false once ip exceeds the window's limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.requests++
	if w.requests > DetectorMaxRequests {
		if w.requests%DetectorLogEvery == 0 {
			slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", w.requests)
		}
		return false
	}
	return true
}

// counts returns ip's counters in the current window
func (s *SuspiciousActivityDetector) counts(ip string) (requests, failedAuth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.windows.Peek(ip); ok {
		return w.requests, w.failedAuth
	}
	return 0, 0
}

// RateLimitMiddleware rejects clients that exceed the detector's request rate
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// X-Forwarded-For is only trusted when the direct peer is a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// rightmost hop is the one our proxy saw
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
