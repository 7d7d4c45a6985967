package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/grapl-ai/grapl-site/internal/infra/metrics"
	"github.com/grapl-ai/grapl-site/internal/usecase"
)

type WaitlistHandler struct {
	submitLead  *usecase.SubmitLeadUseCase
	rateLimiter *RateLimiter
}

func NewWaitlistHandler(uc *usecase.SubmitLeadUseCase) *WaitlistHandler {
	return &WaitlistHandler{
		submitLead:  uc,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

func (h *WaitlistHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		metrics.RecordSignup("rate_limited")
		writeErrorResponse(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	ct := r.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		metrics.RecordSignup("unsupported_media")
		writeErrorResponse(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req usecase.SubmitLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordSignup("malformed")
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	output, err := h.submitLead.Execute(r.Context(), req)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	metrics.RecordSignup("accepted")
	writeJSON(w, http.StatusOK, output)
}

func (h *WaitlistHandler) writeFailure(w http.ResponseWriter, err error) {
	if de, ok := usecase.AsDomainError(err); ok {
		metrics.RecordSignup("rejected")
		writeErrorResponse(w, http.StatusBadRequest, de.Message)
		return
	}

	if te, ok := usecase.AsTechnicalError(err); ok {
		switch te.Code {
		case usecase.CodeUpstreamWriteFailed:
			metrics.RecordSignup("write_failed")
			writeErrorResponse(w, http.StatusBadGateway, te.Message)
		default:
			metrics.RecordSignup("misconfigured")
			writeErrorResponse(w, http.StatusInternalServerError, te.Message)
		}
		return
	}

	metrics.RecordSignup("error")
	writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
