package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lycosidae/internal/api"
	"lycosidae/internal/auth/models"
	sessionStore "lycosidae/internal/auth/store/session"
	"lycosidae/internal/events"
	"lycosidae/internal/sentinel"
	"lycosidae/pkg/apierrors"
)

func validRegister() models.RegisterRequest {
	return models.RegisterRequest{
		Username: "alice",
		Email:    "alice@gmail.com",
		Password: "Str0ng!pass",
	}
}

func newTestService(t *testing.T, handler http.Handler) (*Service, *events.Bus, sessionStore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	bus := events.NewBus()
	store := sessionStore.NewInMemoryStore()
	client := api.New(srv.URL, bus)
	return NewService(client, store, bus), bus, store
}

func TestRegisterSuccess(t *testing.T) {
	svc, bus, store := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/route/register", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"1","username":"alice","email":"alice@gmail.com"}`))
	}))

	var logins []events.UserLoginEvent
	require.NoError(t, bus.SubscribeUserLogin(func(ev events.UserLoginEvent) {
		logins = append(logins, ev)
	}))

	user, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "alice", user.Username)

	stored, err := store.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, stored)

	require.Len(t, logins, 1)
	assert.Equal(t, user, logins[0].User)
}

func TestRegisterClientSideValidation(t *testing.T) {
	called := false
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "x"})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "username")
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
	assert.True(t, errors.Is(err, sentinel.ErrInvalidInput))
	assert.False(t, called, "invalid payloads never reach the network")
}

func TestRegisterBackendValidation(t *testing.T) {
	svc, _, store := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"details":{"validation_errors":["Email domain not allowed: example.test"]}}`))
	}))

	_, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Domínio de email não permitido")

	user, getErr := svc.CurrentUser(context.Background())
	require.NoError(t, getErr)
	assert.Nil(t, user, "failed registration leaves no session behind")
	_, storeErr := store.CurrentUser(context.Background())
	assert.True(t, errors.Is(storeErr, sentinel.ErrNotFound))
}

func TestRegisterConflict(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate"}`))
	}))

	_, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.Equal(t, "Email ou username já está em uso.", err.Error())
	assert.Equal(t, http.StatusConflict, apierrors.StatusOf(err))
}

func TestRegisterRateLimited(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.Equal(t, "Muitas tentativas de registro. Tente novamente em 30s.", err.Error())
	assert.True(t, apierrors.HasCode(err, apierrors.CodeRateLimit))
}

func TestRegisterInterpreterDown(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Interpreter communication error","code":"EXTERNAL_SERVICE_ERROR"}`))
	}))

	_, err := svc.Register(context.Background(), validRegister())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interpreter")
}

func TestLoginStubEstablishesSession(t *testing.T) {
	svc, bus, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("login must not hit the network yet")
	}))

	var logins int
	require.NoError(t, bus.SubscribeUserLogin(func(events.UserLoginEvent) { logins++ }))

	user, err := svc.Login(context.Background(), models.LoginRequest{Email: "bob@gmail.com", Password: "whatever"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, "bob@gmail.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 1, logins)
	assert.True(t, svc.IsAuthenticated(context.Background()))
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, bus, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var logouts int
	require.NoError(t, bus.SubscribeUserLogout(func(events.UserLogoutEvent) { logouts++ }))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "bob@gmail.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, svc.IsAuthenticated(context.Background()))

	// Logging out while anonymous is a no-op, not an error.
	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 2, logouts)
}

func TestCurrentUserAbsentSession(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	user, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, svc.IsAuthenticated(context.Background()))
}
