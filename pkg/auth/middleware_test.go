package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAuth_NoCookie_Returns401(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	mw := RequireAuth(secret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_InvalidToken_Returns401(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	mw := RequireAuth(secret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName(), Value: "invalid.token"})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidToken_CallsNextWithUserID(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	token := CreateSessionToken("user-123", secret)
	mw := RequireAuth(secret)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName(), Value: token})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-123" {
		t.Errorf("expected userID=user-123, got %q", gotUserID)
	}
}

func TestDevAuth_SetsDevUserID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("userID not in context")
			return
		}
		if userID != DevUserID {
			t.Errorf("expected %q, got %q", DevUserID, userID)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	DevAuth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuth_BearerToken_CallsNext(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	token := CreateSessionToken("admin-1", secret)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest("PUT", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	RequireAuth(secret)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || gotUserID != "admin-1" {
		t.Errorf("expected 200 with admin-1, got %d / %q", rec.Code, gotUserID)
	}
}

func TestRequireAuth_SessionCookieIsNotAdminToken(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: CreateSessionToken("s-1", secret)})
	rec := httptest.NewRecorder()
	RequireAuth(secret)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestEnsureSession_IssuesCookieWhenMissing(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = SessionIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	EnsureSession(secret, false)(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if gotID == "" {
		t.Fatal("expected a session id in context")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName() {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if id, err := VerifySessionToken(cookies[0].Value, secret); err != nil || id != gotID {
		t.Errorf("cookie does not carry the session id: %q, %v", id, err)
	}
}

func TestEnsureSession_ReusesValidCookie(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = SessionIDFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: CreateSessionToken("existing", secret)})
	rec := httptest.NewRecorder()
	EnsureSession(secret, false)(next).ServeHTTP(rec, req)

	if gotID != "existing" {
		t.Errorf("expected existing session, got %q", gotID)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("should not reissue a valid cookie")
	}
}

func TestEnsureSession_ReplacesTamperedCookie(t *testing.T) {
	secret := SessionSecretBytes("dev-secret-change-in-production-32bytes")
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = SessionIDFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: CreateSessionToken("victim", []byte("other-secret-other-secret-other!"))})
	rec := httptest.NewRecorder()
	EnsureSession(secret, false)(next).ServeHTTP(rec, req)

	if gotID == "" || gotID == "victim" {
		t.Errorf("tampered session accepted: %q", gotID)
	}
}
