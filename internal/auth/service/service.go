package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"lycosidae/internal/api"
	"lycosidae/internal/auth/models"
	sessionStore "lycosidae/internal/auth/store/session"
	"lycosidae/internal/events"
	"lycosidae/internal/platform/metrics"
	"lycosidae/internal/sentinel"
)

const registerPath = "/route/register"

// Service implements register/login/logout over the request engine and
// owns the Session Record. Anonymous -> Authenticated happens only
// through Register or Login; Authenticated -> Anonymous only through
// Logout. There is no expiry transition: no token/JWT handling exists
// yet on the backend.
type Service struct {
	api      *api.Client
	sessions sessionStore.Store
	bus      *events.Bus
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// Collapses concurrent identical submissions (double-click submit)
	// into one in-flight call per operation+payload.
	group singleflight.Group
}

// Option configures the Service.
type Option func(*Service)

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs the auth service.
func NewService(apiClient *api.Client, sessions sessionStore.Store, bus *events.Bus, opts ...Option) *Service {
	svc := &Service{
		api:      apiClient,
		sessions: sessions,
		bus:      bus,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// ValidationError carries per-field messages from client-side checks.
// These never reach the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return sentinel.ErrInvalidInput
}

// Register creates an account via POST /route/register and, on success,
// persists the returned identity as the Session Record and broadcasts a
// UserLogin event. Failures are re-worded per the shared translation
// policy and returned, never swallowed.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if errs := models.ValidateRegister(req); len(errs) > 0 {
		return models.User{}, &ValidationError{Fields: errs}
	}

	// An empty optional phone number is omitted from the payload.
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	v, err, _ := s.group.Do("register:"+payloadHash(req), func() (any, error) {
		s.logger.InfoContext(ctx, "registering user", "username", req.Username, "email", req.Email, "has_phone", req.PhoneNumber != "")

		var resp models.RegisterResponse
		if err := s.api.Post(ctx, registerPath, req, nil, &resp); err != nil {
			s.authFailure(ctx, OpRegister, err)
			return nil, translateAuthError(err, OpRegister)
		}

		user := resp.User()
		if err := s.establishSession(ctx, user, resp.Token); err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.IncrementUsersRegistered()
		}
		return user, nil
	})
	if err != nil {
		return models.User{}, err
	}
	return v.(models.User), nil
}

// Login is a documented stub: the backend has no login endpoint yet, so
// the identity is synthesized from the email's local-part and persisted
// exactly as a register would. Replace with a real call once the
// contract exists.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if errs := models.ValidateLogin(req); len(errs) > 0 {
		return models.User{}, &ValidationError{Fields: errs}
	}

	v, err, _ := s.group.Do("login:"+payloadHash(req), func() (any, error) {
		username := strings.SplitN(req.Email, "@", 2)[0]
		if username == "" {
			username = "user"
		}
		resp := models.LoginResponse{
			ID:       uuid.NewString(),
			Username: username,
			Email:    req.Email,
		}
		s.logger.InfoContext(ctx, "login simulated, backend endpoint pending", "email", req.Email)

		user := resp.User()
		if err := s.establishSession(ctx, user, resp.Token); err != nil {
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return models.User{}, err
	}
	return v.(models.User), nil
}

// establishSession persists the Session Record (and token, when
// present) and broadcasts UserLogin.
func (s *Service) establishSession(ctx context.Context, user models.User, token string) error {
	if err := s.sessions.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("persist session record: %w", err)
	}
	if token != "" {
		if err := s.sessions.SaveToken(ctx, token); err != nil {
			return fmt.Errorf("persist auth token: %w", err)
		}
	}
	s.bus.PublishUserLogin(events.UserLoginEvent{User: user})
	return nil
}

// Logout deletes the Session Record and any stored auth token and
// broadcasts UserLogout. Logging out while anonymous is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.InfoContext(ctx, "user logged out")
	s.bus.PublishUserLogout(events.UserLogoutEvent{})
	return nil
}

// CurrentUser reads the Session Record. An absent or unreadable entry is
// operationally equivalent to no session: the failure is logged, not
// propagated. This is the sole swallow point in the error policy.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "unreadable session record treated as no session", "error", err)
		}
		return nil, nil
	}
	return &user, nil
}

// IsAuthenticated reports whether a Session Record exists.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	user, _ := s.CurrentUser(ctx)
	return user != nil
}

func (s *Service) authFailure(ctx context.Context, operation string, err error) {
	s.logger.WarnContext(ctx, "auth operation failed", "operation", operation, "error", err)
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}
}

// payloadHash keys the duplicate-submit guard by operation payload.
func payloadHash(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "unhashable"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
