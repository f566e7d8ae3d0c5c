package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func runAdmin(t *testing.T, ctx context.Context, ids []string, allowDev bool) bool {
	t.Helper()
	var got bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IsAdminFromContext(r.Context())
	})
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	AdminMiddleware(ids, allowDev)(inner).ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestAdminMiddleware_ListedUser_SetsAdminTrue(t *testing.T) {
	ctx := WithUserID(context.Background(), "owner")
	if !runAdmin(t, ctx, []string{"staff", "owner"}, false) {
		t.Error("expected admin")
	}
}

func TestAdminMiddleware_UnlistedUser_SetsAdminFalse(t *testing.T) {
	ctx := WithUserID(context.Background(), "guest")
	if runAdmin(t, ctx, []string{"owner"}, false) {
		t.Error("expected non-admin")
	}
}

func TestAdminMiddleware_NoUserID_SetsAdminFalse(t *testing.T) {
	if runAdmin(t, context.Background(), []string{"owner"}, true) {
		t.Error("expected non-admin without user id")
	}
}

func TestAdminMiddleware_DevUser(t *testing.T) {
	ctx := WithUserID(context.Background(), DevUserID)
	if !runAdmin(t, ctx, nil, true) {
		t.Error("dev user should be admin when allowed")
	}
	if runAdmin(t, ctx, nil, false) {
		t.Error("dev user should not be admin when not allowed")
	}
}

func TestIsAdminFromContext_DefaultFalse(t *testing.T) {
	if IsAdminFromContext(context.Background()) {
		t.Error("expected false when unset")
	}
}
