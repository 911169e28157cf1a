package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinmiday/marketing-calc/internal/auth"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chiMux(handler *auth.Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

type stubRepo struct {
	user *auth.User
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) Create(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	if s.user != nil && s.user.Email == email {
		return nil, shared.ErrDuplicate
	}
	s.user = &auth.User{ID: 1, Email: email, PasswordHash: passwordHash, IsActive: true, CreatedAt: time.Now()}
	return s.user, nil
}

func newAuthHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", time.Hour, false)
	handler := auth.NewHandler(testLogger(), auth.NewService(repo), sessionManager)
	return handler, sessionManager
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func withSession(t *testing.T, sm *shared.SessionManager, req *http.Request) *http.Request {
	t.Helper()
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID:           7,
		Email:        "owner@example.com",
		PasswordHash: hashed(t, "correct-horse"),
		IsActive:     true,
	}}
	handler, sm := newAuthHandler(t, repo)

	mux := chiMux(handler)
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"owner@example.com","password":"correct-horse"}`))
	req = withSession(t, sm, req)
	res := httptest.NewRecorder()
	mux.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	sess := shared.SessionFromContext(req.Context())
	require.Equal(t, "7", sess.User())
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID:           7,
		Email:        "owner@example.com",
		PasswordHash: hashed(t, "correct-horse"),
		IsActive:     true,
	}}
	handler, sm := newAuthHandler(t, repo)

	mux := chiMux(handler)
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"owner@example.com","password":"wrong-password"}`))
	req = withSession(t, sm, req)
	res := httptest.NewRecorder()
	mux.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID:           7,
		Email:        "owner@example.com",
		PasswordHash: hashed(t, "correct-horse"),
		IsActive:     false,
	}}
	handler, sm := newAuthHandler(t, repo)

	mux := chiMux(handler)
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"owner@example.com","password":"correct-horse"}`))
	req = withSession(t, sm, req)
	res := httptest.NewRecorder()
	mux.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	repo := &stubRepo{}
	handler, sm := newAuthHandler(t, repo)
	mux := chiMux(handler)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"new@example.com","password":"long-enough"}`))
	req = withSession(t, sm, req)
	res := httptest.NewRecorder()
	mux.ServeHTTP(res, req)
	require.Equal(t, http.StatusCreated, res.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"new@example.com","password":"long-enough"}`))
	req = withSession(t, sm, req)
	res = httptest.NewRecorder()
	mux.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	_, sm := newAuthHandler(t, &stubRepo{})

	called := false
	guarded := auth.RequireUser(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/receipts", nil)
	req = withSession(t, sm, req)
	res := httptest.NewRecorder()
	guarded.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.False(t, called)
}

func TestRequireUserInjectsUserID(t *testing.T) {
	_, sm := newAuthHandler(t, &stubRepo{})

	var gotUserID int64
	guarded := auth.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = shared.UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/receipts", nil)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	sess.SetUser("42")
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res := httptest.NewRecorder()
	guarded.ServeHTTP(res, req)
	require.Equal(t, int64(42), gotUserID)
}
