package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

const (
	// verifiedSessionTTL bounds how long a backend-confirmed token is trusted
	// before it is confirmed again.
	verifiedSessionTTL  = time.Minute
	maxVerifiedSessions = 10000
)

// SessionVerifier confirms a session with the backend. The context carries
// the request cookies.
type SessionVerifier interface {
	Me(ctx context.Context) (*domain.User, error)
}

// AuthOptions configures AuthMiddleware.
type AuthOptions struct {
	// CookieName is the session cookie set by the backend.
	CookieName string
	// Secret, when set, is used to verify the HMAC signature of the cookie.
	Secret string
	// Verifier confirms tokens with the backend when no Secret is set. The
	// backend's answer, not the token claims, then names the user. Without
	// either every request is rejected.
	Verifier SessionVerifier
	// EntryURL is where unauthenticated browsers are sent.
	EntryURL string
}

// subjectClaims lists the claims checked for the user id, in order.
var subjectClaims = []string{"sub", "id", "_id", "userId"}

var errNoVerifier = errors.New("no way to verify session tokens")

// AuthMiddleware gates the dashboard behind the backend session cookie.
// Browsers without a session are redirected to the entry URL; API callers get
// a 401 carrying the same URL.
func AuthMiddleware(opts AuthOptions) gin.HandlerFunc {
	if opts.CookieName == "" {
		opts.CookieName = "access_token"
	}
	verified := newVerifiedSessions(verifiedSessionTTL, maxVerifiedSessions)

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		cookie, err := c.Request.Cookie(opts.CookieName)
		if err != nil || cookie.Value == "" {
			logger.Debug("Session cookie missing", slog.String("cookie", opts.CookieName))
			rejectUnauthenticated(c, opts.EntryURL, "authentication required")
			return
		}

		ctx := WithCookies(c.Request.Context(), c.Request.Cookies())

		var userID string
		if opts.Secret != "" {
			userID, err = userIDFromToken(cookie.Value, opts.Secret)
		} else {
			userID, err = verified.resolve(ctx, cookie.Value, opts.Verifier)
		}
		if err != nil {
			if isBackendUnavailable(err) {
				logger.Error("Session verification failed", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "The workspace service is unavailable"})
				return
			}
			logger.Warn("Invalid session token", slog.String("error", err.Error()))
			msg := "invalid session"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "session has expired"
			}
			rejectUnauthenticated(c, opts.EntryURL, msg)
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx = WithUserID(ctx, userID)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

func isBackendUnavailable(err error) bool {
	return errors.Is(err, apperrors.ErrTransport) || errors.Is(err, apperrors.ErrRemote)
}

type verifiedSession struct {
	userID  string
	expires time.Time
}

// verifiedSessions remembers which token hashes the backend has confirmed and
// for which user.
type verifiedSessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	limit   int
	entries map[string]verifiedSession
	now     func() time.Time
}

func newVerifiedSessions(ttl time.Duration, limit int) *verifiedSessions {
	return &verifiedSessions{ttl: ttl, limit: limit, entries: make(map[string]verifiedSession), now: time.Now}
}

func (v *verifiedSessions) resolve(ctx context.Context, token string, verifier SessionVerifier) (string, error) {
	if verifier == nil {
		return "", errNoVerifier
	}
	// expired tokens never reach the backend
	expires, err := unverifiedExpiry(token)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(token))
	key := hex.EncodeToString(sum[:])
	now := v.now()

	v.mu.Lock()
	entry, ok := v.entries[key]
	v.mu.Unlock()
	if ok && now.Before(entry.expires) {
		return entry.userID, nil
	}

	user, err := verifier.Me(ctx)
	if err != nil {
		return "", err
	}
	if user == nil || user.UserID == "" {
		return "", errors.New("backend returned no user for the session")
	}

	until := now.Add(v.ttl)
	if !expires.IsZero() && expires.Before(until) {
		until = expires
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.entries) >= v.limit {
		for k, e := range v.entries {
			if !now.Before(e.expires) {
				delete(v.entries, k)
			}
		}
		if len(v.entries) >= v.limit {
			v.entries = make(map[string]verifiedSession)
		}
	}
	v.entries[key] = verifiedSession{userID: user.UserID, expires: until}
	return user.UserID, nil
}

// unverifiedExpiry reads the exp claim without checking the signature. A zero
// time means the token carries no expiry.
func unverifiedExpiry(tokenString string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	if !exp.After(time.Now()) {
		return time.Time{}, jwt.ErrTokenExpired
	}
	return exp.Time, nil
}

func rejectUnauthenticated(c *gin.Context, entryURL, msg string) {
	if entryURL != "" && strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, entryURL)
		c.Abort()
		return
	}
	body := gin.H{"error": msg}
	if entryURL != "" {
		body["redirect"] = entryURL
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, body)
}

func userIDFromToken(tokenString, secret string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	for _, key := range subjectClaims {
		if v, ok := claims[key].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", errors.New("token carries no user id")
}
