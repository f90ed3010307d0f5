package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// requireAdmin gates a handler behind an HS256 bearer token when an admin
// secret is configured. Without a secret the route stays open, matching
// the original deployment.
func (a *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	if a.cfg.AdminSecret == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorEnvelope("Unauthorized"))
			return
		}
		if err := verifyAdminToken(token, a.cfg.AdminSecret); err != nil {
			writeJSON(w, http.StatusUnauthorized, errorEnvelope("Unauthorized"))
			return
		}
		next(w, r)
	}
}

func verifyAdminToken(token, secret string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// IssueAdminToken mints a short-lived export token; used by operators and
// tests.
func IssueAdminToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
