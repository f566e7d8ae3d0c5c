package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	sessionIDKey contextKey = "session_id"
)

// sessionMaxAge は閲覧セッションクッキーの寿命
const sessionMaxAge = 24 * time.Hour

// UserIDFromContext は context から管理者の userID を取得する
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// WithUserID は context に userID をセットする
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// SessionIDFromContext returns the browsing session that owns the selection state.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok && v != ""
}

// WithSessionID は context に閲覧セッション ID をセットする
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// EnsureSession attaches a browsing session to every request. A missing or tampered cookie is
// replaced by a freshly issued session, so the caller starts with an empty selection.
func EnsureSession(sessionSecret []byte, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName()); err == nil {
				if id, err := VerifySessionToken(cookie.Value, sessionSecret); err == nil {
					next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
					return
				}
				slog.Debug("discarding invalid session cookie", "remote_addr", r.RemoteAddr)
			}

			id := NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName(),
				Value:    CreateSessionToken(id, sessionSecret),
				Path:     "/",
				MaxAge:   int(sessionMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// RequireAuth は認証必須ミドルウェア。管理者トークン（Bearer またはクッキー）を検証し、userID を context にセットする
func RequireAuth(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(AdminCookieName()); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				writeAuthError(w, "unauthorized")
				return
			}

			userID, err := VerifySessionToken(token, sessionSecret)
			if err != nil {
				writeAuthError(w, "invalid_session")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevUserID は開発用のダミー userID（AUTH_REQUIRED=false 時に使用）
const DevUserID = "dev-user-id"

// DevAuth は開発用ミドルウェア。ダミー userID を context にセットする
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithUserID(r.Context(), DevUserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
