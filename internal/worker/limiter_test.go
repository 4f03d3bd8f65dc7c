package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 3)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow("openai") {
			allowed++
		}
	}

	if allowed != 3 {
		t.Errorf("Expected burst of 3 allowed, got %d", allowed)
	}
}

func TestLimiter_ServicesAreIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("openai") {
		t.Error("Expected first openai request allowed")
	}
	if limiter.Allow("openai") {
		t.Error("Expected second openai request denied")
	}
	if !limiter.Allow("weather") {
		t.Error("Expected weather bucket to be unaffected by openai usage")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)

	// Drain the bucket
	_ = limiter.Allow("openai")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "openai"); err == nil {
		t.Error("Expected Wait to fail once context deadline passes")
	}
}

func TestLimiter_ZeroBurstDefaults(t *testing.T) {
	limiter := NewLimiter(10, 0)

	if !limiter.Allow("any") {
		t.Error("Expected default burst to allow a request")
	}
}
