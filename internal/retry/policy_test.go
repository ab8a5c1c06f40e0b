package retry

import (
	"testing"
	"time"
)

func TestDelayFixed(t *testing.T) {
	p := NewPolicy(BackoffFixed, 2*time.Second, 10*time.Second, 3)
	for attempt := 1; attempt <= 3; attempt++ {
		if d := p.Delay(attempt); d != 2*time.Second {
			t.Errorf("attempt %d: got %v, want 2s", attempt, d)
		}
	}
}

func TestDelayLinear(t *testing.T) {
	p := NewPolicy(BackoffLinear, time.Second, 5*time.Second, 10)
	cases := map[int]time.Duration{
		1: time.Second,
		2: 2 * time.Second,
		5: 5 * time.Second,
		9: 5 * time.Second, // capped
	}
	for attempt, want := range cases {
		if d := p.Delay(attempt); d != want {
			t.Errorf("attempt %d: got %v, want %v", attempt, d, want)
		}
	}
}

func TestDelayExponential(t *testing.T) {
	p := NewPolicy(BackoffExponential, time.Second, 10*time.Second, 10)
	cases := map[int]time.Duration{
		1: time.Second,
		2: 2 * time.Second,
		3: 4 * time.Second,
		4: 8 * time.Second,
		5: 10 * time.Second, // capped
	}
	for attempt, want := range cases {
		if d := p.Delay(attempt); d != want {
			t.Errorf("attempt %d: got %v, want %v", attempt, d, want)
		}
	}
}

func TestDelayZeroAttempt(t *testing.T) {
	p := DefaultPolicy()
	if d := p.Delay(0); d != 0 {
		t.Errorf("attempt 0 should have no delay, got %v", d)
	}
}

func TestNewPolicyFallbacks(t *testing.T) {
	p := NewPolicy("bogus", 0, 0, -1)
	def := DefaultPolicy()
	if p != def {
		t.Errorf("invalid inputs should fall back to defaults: got %+v", p)
	}
}

func TestInitialClampedToMax(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Minute, time.Second, 1)
	if p.Initial != time.Second {
		t.Errorf("initial should be clamped to max, got %v", p.Initial)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Errorf("default policy should validate: %v", err)
	}
	bad := Policy{Mode: BackoffFixed, Initial: 0, Max: time.Second}
	if err := bad.Validate(); err == nil {
		t.Error("zero initial should fail validation")
	}
}
