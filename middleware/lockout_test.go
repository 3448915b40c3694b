package middleware

import (
	"testing"
	"time"
)

func TestLoginLockout_Progressive(t *testing.T) {
	const uid = 9001

	if locked, _ := IsAccountLocked(uid); locked {
		t.Fatalf("expected no lock before any failure")
	}

	RecordFailedLogin(uid)
	locked, retry := IsAccountLocked(uid)
	if !locked {
		t.Fatalf("expected lock after first failure")
	}
	if retry <= 0 || retry > time.Minute {
		t.Fatalf("expected first lockout of at most one minute, got %v", retry)
	}

	RecordFailedLogin(uid)
	_, retry = IsAccountLocked(uid)
	if retry <= time.Minute {
		t.Fatalf("expected second lockout longer than one minute, got %v", retry)
	}
}

func TestLoginLockout_ResetClearsState(t *testing.T) {
	const uid = 9002

	RecordFailedLogin(uid)
	if locked, _ := IsAccountLocked(uid); !locked {
		t.Fatalf("expected lock after failure")
	}

	ResetFailedLogin(uid)
	if locked, _ := IsAccountLocked(uid); locked {
		t.Fatalf("expected no lock after reset")
	}

	// failure counter restarts from the shortest lockout
	RecordFailedLogin(uid)
	_, retry := IsAccountLocked(uid)
	if retry > time.Minute {
		t.Fatalf("expected lockout of at most one minute after reset, got %v", retry)
	}
}
