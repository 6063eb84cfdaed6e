package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

const testEntryURL = "https://app.example.com/login"

func newAuthRouter(opts AuthOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/me", AuthMiddleware(opts), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		cookies := CookiesFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"userId": userID, "cookies": len(cookies)})
	})
	return r
}

// fakeVerifier answers like the backend's /users/me for the tokens it knows.
type fakeVerifier struct {
	mu    sync.Mutex
	users map[string]string
	err   error
	calls int
}

func (f *fakeVerifier) Me(ctx context.Context) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range CookiesFromContext(ctx) {
		if id, ok := f.users[c.Value]; ok && c.Name == "access_token" {
			return &domain.User{UserID: id}, nil
		}
	}
	return nil, &apperrors.RemoteError{StatusCode: http.StatusUnauthorized, Message: "invalid token"}
}

func (f *fakeVerifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func serveWithCookie(r *gin.Engine, name, value string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	r := newAuthRouter(AuthOptions{EntryURL: testEntryURL})

	t.Run("api caller gets 401 with redirect", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("Accept", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), testEntryURL)
	})

	t.Run("browser is redirected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, testEntryURL, w.Header().Get("Location"))
	})
}

func TestAuthMiddleware_BackendConfirmedToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"id": "u42", "exp": time.Now().Add(time.Hour).Unix()}, "backend-only")
	verifier := &fakeVerifier{users: map[string]string{token: "u42"}}
	r := newAuthRouter(AuthOptions{Verifier: verifier})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "r"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u42","cookies":2}`, w.Body.String())

	// a confirmed token is not sent to the backend again
	w = serveWithCookie(r, "access_token", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, verifier.callCount())
}

func TestAuthMiddleware_ForgedTokenIsRejected(t *testing.T) {
	victimToken := signToken(t, jwt.MapClaims{"sub": "victim"}, "backend-key")
	verifier := &fakeVerifier{users: map[string]string{victimToken: "victim"}}
	r := newAuthRouter(AuthOptions{Verifier: verifier, EntryURL: testEntryURL})

	w := serveWithCookie(r, "access_token", victimToken)
	require.Equal(t, http.StatusOK, w.Code)

	forged := signToken(t, jwt.MapClaims{"sub": "victim"}, "attacker-key")
	w = serveWithCookie(r, "access_token", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "victim")
	assert.Equal(t, 2, verifier.callCount())
}

func TestAuthMiddleware_BackendNamesTheUser(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "someone-else"}, "k")
	r := newAuthRouter(AuthOptions{Verifier: &fakeVerifier{users: map[string]string{token: "u5"}}})

	w := serveWithCookie(r, "access_token", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u5"`)
}

func TestAuthMiddleware_NoSecretNoVerifierRejects(t *testing.T) {
	r := newAuthRouter(AuthOptions{})
	w := serveWithCookie(r, "access_token", signToken(t, jwt.MapClaims{"sub": "u1"}, "k"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BackendDownIsBadGateway(t *testing.T) {
	verifier := &fakeVerifier{err: apperrors.ErrTransport}
	r := newAuthRouter(AuthOptions{Verifier: verifier})

	w := serveWithCookie(r, "access_token", signToken(t, jwt.MapClaims{"sub": "u1"}, "k"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestVerifiedSessions_ExpireAfterTTL(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "u1"}, "k")
	verifier := &fakeVerifier{users: map[string]string{token: "u1"}}
	cache := newVerifiedSessions(time.Minute, 10)
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := WithCookies(context.Background(), []*http.Cookie{{Name: "access_token", Value: token}})

	_, err := cache.resolve(ctx, token, verifier)
	require.NoError(t, err)
	_, err = cache.resolve(ctx, token, verifier)
	require.NoError(t, err)
	assert.Equal(t, 1, verifier.callCount())

	now = now.Add(2 * time.Minute)
	id, err := cache.resolve(ctx, token, verifier)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
	assert.Equal(t, 2, verifier.callCount())
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	verifier := &fakeVerifier{}
	r := newAuthRouter(AuthOptions{Verifier: verifier})
	token := signToken(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Minute).Unix()}, "x")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
	assert.Zero(t, verifier.callCount())
}

func TestAuthMiddleware_VerifiedToken(t *testing.T) {
	r := newAuthRouter(AuthOptions{CookieName: "sid", Secret: "s3cret"})

	t.Run("valid signature", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: signToken(t, jwt.MapClaims{"sub": "u7"}, "s3cret")})
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":"u7"`)
	})

	t.Run("wrong signature", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: signToken(t, jwt.MapClaims{"sub": "u7"}, "other")})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouteEventName(t *testing.T) {
	assert.Equal(t, "api_v1_workspaces_id_sync", routeEventName("/api/v1/workspaces/:id/sync"))
	assert.Equal(t, "", routeEventName(""))
}

func TestRequireSafePathParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := 0
	r.DELETE("/workspaces/:workspace_id/members/:user_id", RequireSafePathParams(), func(c *gin.Context) {
		reached++
		c.Status(http.StatusNoContent)
	})

	for _, target := range []string{"/workspaces/ws-1/members/..", "/workspaces/ws-1/members/."} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	assert.Zero(t, reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/workspaces/ws-1/members/u2", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, reached)
}
