package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// AuthMiddleware rejects requests outside PublicPaths that do not carry the API key
func AuthMiddleware(apiKey string, proxies *TrustedProxies, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			// constant time so the key cannot be guessed byte by byte
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := proxies.ClientIP(r)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					LogFieldRemoteAddr, r.RemoteAddr,
					LogFieldPath, r.URL.Path,
					LogFieldHasKey, providedKey != "",
					LogFieldIP, ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
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

// ActivityLimits configures the per-IP detector
type ActivityLimits struct {
	Window          time.Duration
	MaxRequests     int // requests per window before blocking
	FailedAuthAlert int // failed auths per window before alerting
}

// DefaultActivityLimits returns the production thresholds
func DefaultActivityLimits() ActivityLimits {
	return ActivityLimits{
		Window:          DefaultActivityWindow,
		MaxRequests:     DefaultMaxRequests,
		FailedAuthAlert: DefaultFailedAuthAlert,
	}
}

// SuspiciousActivityDetector counts requests and failed authentications per client IP
// over a fixed window, alerting and blocking past the configured limits.
type SuspiciousActivityDetector struct {
	limits ActivityLimits
	now    func() time.Time

	mu               sync.Mutex
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	windowStart      time.Time
}

// NewSuspiciousActivityDetector creates a detector with the given limits
func NewSuspiciousActivityDetector(limits ActivityLimits) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		limits:           limits,
		now:              time.Now,
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		windowStart:      time.Now(),
	}
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuthByIP[ip]++

	if n := s.failedAuthByIP[ip]; n >= s.limits.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, LogFieldIP, ip, LogFieldCount, n)
	}
}

// RecordRequest counts a request and reports whether it is within the rate limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.requestCountByIP[ip]++

	n := s.requestCountByIP[ip]
	if n <= s.limits.MaxRequests {
		return true
	}
	if (n-s.limits.MaxRequests)%highRateLogEvery == 1 {
		slog.Warn(SecurityAlertHighRate, LogFieldIP, ip, LogFieldCount, n, LogFieldWindow, s.limits.Window)
	}
	return false
}

// rollWindow clears the counters once the window has passed.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) rollWindow() {
	now := s.now()
	if now.Sub(s.windowStart) > s.limits.Window {
		clear(s.requestCountByIP)
		clear(s.failedAuthByIP)
		s.windowStart = now
	}
}

// SecurityLoggingMiddleware enforces the per-IP request rate
func SecurityLoggingMiddleware(proxies *TrustedProxies, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(proxies.ClientIP(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TrustedProxies is the set of peers whose X-Forwarded-For header is believed.
// Entries may be single addresses or CIDR prefixes.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// NewTrustedProxies parses the configured proxies, skipping invalid entries
func NewTrustedProxies(entries []string) *TrustedProxies {
	t := &TrustedProxies{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			t.prefixes = append(t.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			t.prefixes = append(t.prefixes, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
			continue
		}
		slog.Warn(LogMsgBadTrustedProxy, LogFieldProxy, e)
	}
	return t
}

// Trusts reports whether addr is a configured proxy
func (t *TrustedProxies) Trusts(addr string) bool {
	if t == nil {
		return false
	}
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range t.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// ClientIP returns the connecting address, or the last X-Forwarded-For hop when the
// connection comes from a trusted proxy.
func (t *TrustedProxies) ClientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !t.Trusts(remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	// rightmost hop is the one our proxy saw
	hops := strings.Split(forwarded, ",")
	if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
		return last
	}
	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueDeny)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			// API responses carry per-actor state
			h.Set(HeaderCacheControl, HeaderValueNoStore)

			next.ServeHTTP(w, r)
		})
	}
}
