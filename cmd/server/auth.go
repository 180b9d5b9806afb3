package main

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/agrokalk/internal/config"
)

const (
	sessionCookieName = "agrokalk_session"
	defaultSessionTTL = 12 * time.Hour
)

type authService struct {
	db            *sql.DB
	sessionSecret []byte
	adminToken    string
	ttl           time.Duration
	secure        bool
	now           func() time.Time
}

// newAuthService falls back to a random per-process secret, which logs
// everyone out on restart.
func newAuthService(db *sql.DB, cfg config.AdminConfig) (*authService, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &authService{
		db:            db,
		sessionSecret: secret,
		adminToken:    cfg.Token,
		ttl:           ttl,
		secure:        cfg.CookieSecure,
		now:           time.Now,
	}, nil
}

func (a *authService) validateCredentials(ctx context.Context, email, password string) (bool, error) {
	var passwordHash string
	err := a.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE email = ?`, email).Scan(&passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("compare password hash: %w", err)
	}
	return true, nil
}

func (a *authService) sign(payload string) []byte {
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	return mac.Sum(nil)
}

// createSessionValue signs "<email>|<expiry unix>".
func (a *authService) createSessionValue(email string, expires time.Time) string {
	claims := email + "|" + strconv.FormatInt(expires.Unix(), 10)
	payload := base64.RawURLEncoding.EncodeToString([]byte(claims))
	return payload + "." + hex.EncodeToString(a.sign(payload))
}

func (a *authService) verifySessionValue(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil || !hmac.Equal(provided, a.sign(payload)) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	idx := strings.LastIndexByte(string(decoded), '|')
	if idx <= 0 {
		return "", false
	}
	email, rawExpiry := string(decoded[:idx]), string(decoded[idx+1:])
	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil || !a.now().Before(time.Unix(expiry, 0)) {
		return "", false
	}

	return email, true
}

func (a *authService) setSessionCookie(w http.ResponseWriter, email string) {
	expires := a.now().Add(a.ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    a.createSessionValue(email, expires),
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(a.ttl / time.Second),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authService) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// isAuthenticated accepts a signed session cookie or the static admin
// bearer token.
func (a *authService) isAuthenticated(r *http.Request) bool {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && a.adminToken != "" {
		if subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) == 1 {
			return true
		}
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}
	_, ok := a.verifySessionValue(cookie.Value)
	return ok
}

func (s *server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.isAuthenticated(r) {
			writeError(w, http.StatusUnauthorized, "Wymagane logowanie.", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
