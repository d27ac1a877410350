package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashIsSalted(t *testing.T) {
	h := NewPasswordHasherWithCost(bcrypt.MinCost)

	first, err := h.Hash("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatalf("expected salted hashes to differ, both were %q", first)
	}
	if !h.Verify("admin123", first) || !h.Verify("admin123", second) {
		t.Fatalf("expected both hashes to verify")
	}
}

func TestPasswordHasher_VerifyMismatch(t *testing.T) {
	h := NewPasswordHasherWithCost(bcrypt.MinCost)

	hashed, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if h.Verify("wrong-horse", hashed) {
		t.Fatalf("expected mismatch to verify false")
	}
	if h.Verify("correct-horse", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to verify false")
	}
}

func TestNewPasswordHasherWithCost_OutOfRange(t *testing.T) {
	h := NewPasswordHasherWithCost(99)
	if h.cost != hashCost {
		t.Fatalf("expected fallback to default cost %d, got %d", hashCost, h.cost)
	}
}
