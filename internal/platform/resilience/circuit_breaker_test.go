package resilience

import (
	"errors"
	"testing"
	"time"
)

var errStore = errors.New("store down")

func newTestBreaker(threshold, halfOpen int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   halfOpen,
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 1)

	var transitions []CircuitState
	b.OnStateChange(func(_, to CircuitState) { transitions = append(transitions, to) })

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}
	b.Record(errStore)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow before threshold: %v", err)
	}
	b.Record(errStore)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.Record(nil)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", transitions)
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now := newTestBreaker(1, 2)

	_ = b.Allow()
	b.Record(errStore)
	*now = now.Add(6 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	b.Record(errStore)
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected breaker to reopen after failed probe, got %v", err)
	}
}

func TestCircuitBreaker_ReleaseFreesProbeSlot(t *testing.T) {
	b, now := newTestBreaker(1, 1)

	_ = b.Allow()
	b.Record(errStore)
	*now = now.Add(6 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}
	b.Release()
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected released probe to leave breaker half-open, got %s", state)
	}

	if err := b.Allow(); err != nil {
		t.Fatalf("expected released slot to admit a new probe: %v", err)
	}
	b.Record(nil)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(2, 1)

	for i := 0; i < 5; i++ {
		_ = b.Allow()
		b.Record(errStore)
		_ = b.Allow()
		b.Record(nil)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed with interleaved successes, got %s", state)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}
