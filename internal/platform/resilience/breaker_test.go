package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestBreaker_OpensAfterThresholdAndProbesAfterCooldown(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	b := NewBreaker(2, time.Minute)
	b.now = func() time.Time { return now }
	boom := errors.New("warehouse down")

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("call %d rejected: %v", i, err)
		}
		b.Record(boom)
	}
	if b.State() != BreakerOpen {
		t.Fatalf("expected open breaker, got %s", b.State())
	}
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected ErrBreakerOpen during cooldown, got %v", err)
	}

	now = now.Add(time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe after cooldown, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected a second concurrent probe to be rejected, got %v", err)
	}
	b.Record(nil)
	if b.State() != BreakerClosed {
		t.Fatalf("expected closed breaker after successful probe, got %s", b.State())
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	b := NewBreaker(1, time.Second)
	b.now = func() time.Time { return now }

	_ = b.Allow()
	b.Record(errors.New("timeout"))
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe, got %v", err)
	}
	b.Record(errors.New("timeout"))
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected reopened breaker, got %v", err)
	}
}

func TestBreaker_SuccessResetsFailureRun(t *testing.T) {
	b := NewBreaker(2, time.Minute)
	boom := errors.New("boom")

	_ = b.Allow()
	b.Record(boom)
	_ = b.Allow()
	b.Record(nil)
	_ = b.Allow()
	b.Record(boom)
	if b.State() != BreakerClosed {
		t.Fatalf("expected interleaved success to keep breaker closed, got %s", b.State())
	}
}

func TestBreaker_ReleaseIsNeutral(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	b := NewBreaker(2, time.Minute)
	b.now = func() time.Time { return now }
	boom := errors.New("boom")

	_ = b.Allow()
	b.Record(boom)
	_ = b.Allow()
	b.Release()
	_ = b.Allow()
	b.Record(boom)
	if b.State() != BreakerOpen {
		t.Fatalf("expected release to keep the failure run, got %s", b.State())
	}

	now = now.Add(time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe after cooldown, got %v", err)
	}
	b.Release()
	if b.State() != BreakerProbing {
		t.Fatalf("expected released probe to leave the breaker probing, got %s", b.State())
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected a new probe after release, got %v", err)
	}
}
