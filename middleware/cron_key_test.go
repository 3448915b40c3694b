package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func cronProtected(key string) http.Handler {
	return CronKeyMiddleware(key)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCronKey_MatchingKeyPasses(t *testing.T) {
	req := httptest.NewRequest("POST", "http://example.local/cron/payouts", nil)
	req.Header.Set("X-CRON-KEY", "s3cret")
	rec := httptest.NewRecorder()
	cronProtected("s3cret").ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with matching key, got %d", rec.Code)
	}
}

func TestCronKey_WrongKeyRejected(t *testing.T) {
	req := httptest.NewRequest("POST", "http://example.local/cron/payouts", nil)
	req.Header.Set("X-CRON-KEY", "s3cret-but-wrong")
	rec := httptest.NewRecorder()
	cronProtected("s3cret").ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
}

func TestCronKey_EmptyConfiguredKeyAlwaysRejects(t *testing.T) {
	req := httptest.NewRequest("POST", "http://example.local/cron/payouts", nil)
	req.Header.Set("X-CRON-KEY", "")
	rec := httptest.NewRecorder()
	cronProtected("").ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no key configured, got %d", rec.Code)
	}
}
