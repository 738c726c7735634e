package services

import (
	"fmt"
	"testing"
	"time"
)

func TestLimiterAllowsUpToMax(t *testing.T) {
	limiter := NewLimiter(time.Minute, 5)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		decision := limiter.Allow("1.2.3.4", now)
		if !decision.Allowed {
			t.Fatalf("request %d: expected allowed", i+1)
		}
		if want := 5 - (i + 1); decision.Remaining != want {
			t.Errorf("request %d: remaining = %d, want %d", i+1, decision.Remaining, want)
		}
	}
}

func TestLimiterRejectsOverMax(t *testing.T) {
	limiter := NewLimiter(10*time.Second, 1)
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	if d := limiter.Allow("1.2.3.4", start); !d.Allowed {
		t.Fatal("first request should be allowed")
	}

	// 7.5s left in the window rounds up to 8
	d := limiter.Allow("1.2.3.4", start.Add(2500*time.Millisecond))
	if d.Allowed {
		t.Fatal("second request should be rejected")
	}
	if d.RetryAfterSeconds != 8 {
		t.Errorf("retry after = %d, want 8", d.RetryAfterSeconds)
	}
	if !d.ResetTime.Equal(start.Add(10 * time.Second)) {
		t.Errorf("reset time = %v, want %v", d.ResetTime, start.Add(10*time.Second))
	}
}

func TestLimiterRetryAfterDecreases(t *testing.T) {
	limiter := NewLimiter(10*time.Second, 1)
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	limiter.Allow("1.2.3.4", start)

	previous := 11
	for _, offset := range []time.Duration{time.Second, 3 * time.Second, 6 * time.Second, 9 * time.Second} {
		d := limiter.Allow("1.2.3.4", start.Add(offset))
		if d.Allowed {
			t.Fatalf("request at +%v should be rejected", offset)
		}
		if d.RetryAfterSeconds >= previous {
			t.Errorf("retry after at +%v = %d, want < %d", offset, d.RetryAfterSeconds, previous)
		}
		if d.RetryAfterSeconds < 1 {
			t.Errorf("retry after at +%v = %d, want >= 1", offset, d.RetryAfterSeconds)
		}
		previous = d.RetryAfterSeconds
	}
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewLimiter(time.Minute, 2)
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	limiter.Allow("1.2.3.4", start)
	limiter.Allow("1.2.3.4", start)
	if d := limiter.Allow("1.2.3.4", start); d.Allowed {
		t.Fatal("third request in window should be rejected")
	}

	// Landing exactly on the reset time starts a fresh window
	d := limiter.Allow("1.2.3.4", start.Add(time.Minute))
	if !d.Allowed {
		t.Fatal("request at window boundary should be allowed")
	}
	if d.Remaining != 1 {
		t.Errorf("remaining after reset = %d, want 1", d.Remaining)
	}
	if !d.ResetTime.Equal(start.Add(2 * time.Minute)) {
		t.Errorf("reset time = %v, want %v", d.ResetTime, start.Add(2*time.Minute))
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(time.Minute, 1)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		ip := fmt.Sprintf("10.0.0.%d", i)
		if d := limiter.Allow(ip, now); !d.Allowed {
			t.Errorf("first request from %s should be allowed", ip)
		}
	}

	if d := limiter.Allow("10.0.0.0", now); d.Allowed {
		t.Error("second request from exhausted key should be rejected")
	}
	if d := limiter.Allow("10.0.0.99", now); !d.Allowed {
		t.Error("fresh key should be unaffected by other keys")
	}
}

func TestLimiterInstancesAreIndependent(t *testing.T) {
	general := NewLimiter(time.Minute, 100)
	contact := NewLimiter(time.Minute, 2)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		contact.Allow("1.2.3.4", now)
	}
	if d := contact.Allow("1.2.3.4", now); d.Allowed {
		t.Fatal("contact limiter should be exhausted")
	}

	if d := general.Allow("1.2.3.4", now); !d.Allowed {
		t.Error("general limiter should not be affected by the contact limiter")
	}
}
