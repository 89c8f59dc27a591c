package quiz

import (
	"context"
	"testing"
)

// collideStore reports the first n codes as taken.
type collideStore struct {
	MemoryStore
	remaining int
	checked   int
}

func (c *collideStore) Exists(_ context.Context, _ string) (bool, error) {
	c.checked++
	if c.remaining > 0 {
		c.remaining--
		return true, nil
	}
	return false, nil
}

func TestNewCode_Format(t *testing.T) {
	s := NewMemoryStore()

	code, err := newCode(context.Background(), s)
	if err != nil {
		t.Fatalf("new code: %v", err)
	}
	if len(code) != 8 {
		t.Errorf("code length = %d, want 8", len(code))
	}
	for _, r := range code {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Errorf("code %q contains non-hex character %q", code, r)
		}
	}
}

func TestNewCode_RegeneratesOnCollision(t *testing.T) {
	s := &collideStore{remaining: 2}

	code, err := newCode(context.Background(), s)
	if err != nil {
		t.Fatalf("new code: %v", err)
	}
	if len(code) != 8 {
		t.Errorf("code length = %d, want 8", len(code))
	}
	if s.checked != 3 {
		t.Errorf("expected 3 collision checks, got %d", s.checked)
	}
}

func TestNewCode_GivesUpEventually(t *testing.T) {
	s := &collideStore{remaining: maxCodeAttempts + 1}

	_, err := newCode(context.Background(), s)
	if err == nil {
		t.Fatal("expected error when every code collides")
	}
}
