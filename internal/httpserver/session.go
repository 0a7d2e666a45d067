// internal/httpserver/session.go
//
// Session tokens bind an HTTP client to a single stored game.
// Responsibilities:
//   - Sign HS256 JWTs carrying the game ID ("gid") with a TTL expiry.
//   - Read the token from `Authorization: Bearer` or the session cookie.
//   - requireSession middleware: verify the token and put the game ID in
//     the request context.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const sessionCookieName = "wordling_session"

// ctxGameKey is the context key type for the session's game ID.
type ctxGameKey struct{}

// signToken creates an HS256 JWT for game gid.
func (s *Server) signToken(gid string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.SessionSecret))
	return ss, exp, err
}

// parseToken verifies tokenStr and returns its game ID.
func (s *Server) parseToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.SessionSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errors.New("token without game id")
	}
	return gid, nil
}

// requireSession enforces a valid session token.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerOrCookie(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "no_session")
			return
		}
		gid, err := s.parseToken(tokenStr)
		if err != nil {
			log.Warn().Err(err).Msg("reject session token")
			writeError(w, http.StatusUnauthorized, "invalid_session")
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, gid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionGameID returns the game ID placed by requireSession.
func sessionGameID(r *http.Request) string {
	gid, _ := r.Context().Value(ctxGameKey{}).(string)
	return gid
}

// setSessionCookie writes the session token cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for cross-site use when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearSessionCookie deletes the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or
// the session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
