// mockserver is a stand-in for the Backend-Lycosidae API: registration
// with server-side validation, quota headers on every response, and the
// system endpoints the client polls. Useful for exercising the client
// without the real backend.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPort   = "8082"
	rateLimit     = 20
	rateWindow    = time.Minute
	jwtTTL        = time.Hour
	serviceName   = "backend-lycosidae"
	serverVersion = "0.3.0"
)

var jwtSecret = []byte(getEnv("JWT_SECRET", "mock-secret-do-not-use"))

var allowedDomains = map[string]bool{
	"gmail.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"yahoo.com":      true,
	"protonmail.com": true,
}

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
}

type store struct {
	mu      sync.Mutex
	byEmail map[string]*account
	byName  map[string]*account
}

func newStore() *store {
	return &store{byEmail: make(map[string]*account), byName: make(map[string]*account)}
}

// limiter is a fixed-window counter per client address.
type limiter struct {
	mu      sync.Mutex
	counts  map[string]int
	resetAt time.Time
}

func newLimiter() *limiter {
	return &limiter{counts: make(map[string]int), resetAt: time.Now().Add(rateWindow)}
}

func (l *limiter) take(key string) (remaining int, resetAt time.Time, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if now.After(l.resetAt) {
		l.counts = make(map[string]int)
		l.resetAt = now.Add(rateWindow)
	}
	l.counts[key]++
	used := l.counts[key]
	if used > rateLimit {
		return 0, l.resetAt, false
	}
	return rateLimit - used, l.resetAt, true
}

func main() {
	port := getEnv("PORT", defaultPort)
	accounts := newStore()
	lim := newLimiter()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logClient)
	r.Use(quotaHeaders(lim))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Backend-Lycosidae mock up"})
	})
	r.Get("/system/health", handleHealth)
	r.Get("/system/rate-limit/info", handleRateLimitInfo(lim))
	r.Post("/route/register", handleRegister(accounts))

	log.Printf("mock backend-lycosidae listening on :%s (limit %d req/%s)", port, rateLimit, rateWindow)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

// logClient records who is calling, parsed from the User-Agent.
func logClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		name, version := ua.Browser()
		if name == "" {
			name = r.UserAgent()
		}
		log.Printf("%s %s from %s (%s %s)", r.Method, r.URL.Path, r.RemoteAddr, name, version)
		next.ServeHTTP(w, r)
	})
}

// quotaHeaders enforces the fixed-window limit and stamps quota headers
// on every response, success or failure.
func quotaHeaders(lim *limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.Split(r.RemoteAddr, ":")[0]
			remaining, resetAt, ok := lim.take(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retryAfter := int(time.Until(resetAt).Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeJSON(w, http.StatusTooManyRequests, map[string]any{
					"message": "Rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"message":         "All systems operational",
		"service":         serviceName,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"version":         serverVersion,
		"database_status": "connected",
	})
}

func handleRateLimitInfo(lim *limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// take already ran in the middleware; report what it stamped.
		remaining, _ := strconv.Atoi(w.Header().Get("X-RateLimit-Remaining"))
		reset, _ := strconv.Atoi(w.Header().Get("X-RateLimit-Reset"))
		writeJSON(w, http.StatusOK, map[string]any{
			"limit":       rateLimit,
			"remaining":   remaining,
			"reset_time":  reset,
			"retry_after": 0,
		})
	}
}

func handleRegister(accounts *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid JSON body"})
			return
		}

		if verrs := validateRegister(req); len(verrs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "Validation failed",
				"details": map[string]any{"validation_errors": verrs},
			})
			return
		}

		accounts.mu.Lock()
		defer accounts.mu.Unlock()
		if _, exists := accounts.byEmail[req.Email]; exists {
			writeJSON(w, http.StatusConflict, map[string]any{"message": "Email already registered"})
			return
		}
		if _, exists := accounts.byName[req.Username]; exists {
			writeJSON(w, http.StatusConflict, map[string]any{"message": "Username already taken"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "hashing failed"})
			return
		}

		acct := &account{
			ID:           uuid.NewString(),
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
		}
		accounts.byEmail[acct.Email] = acct
		accounts.byName[acct.Username] = acct

		token, err := issueToken(acct)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "token issuance failed"})
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"id":           acct.ID,
			"username":     acct.Username,
			"email":        acct.Email,
			"phone_number": req.PhoneNumber,
			"token":        token,
		})
	}
}

func validateRegister(req registerRequest) []string {
	var verrs []string
	if !usernameRe.MatchString(req.Username) {
		verrs = append(verrs, "username must be 3-50 characters of letters, digits, _ or -")
	}
	if !emailRe.MatchString(req.Email) {
		verrs = append(verrs, "email must be a valid address")
	} else {
		domain := req.Email[strings.LastIndex(req.Email, "@")+1:]
		if !allowedDomains[strings.ToLower(domain)] {
			verrs = append(verrs, "Email domain not allowed: "+domain)
		}
	}
	if len(req.Password) < 8 {
		verrs = append(verrs, "password must have at least 8 characters")
	}
	return verrs
}

func issueToken(acct *account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      acct.ID,
		"username": acct.Username,
		"iss":      serviceName,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(jwtTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
