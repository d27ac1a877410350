package service

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor for stored credentials. 12 rounds is
// the floor for new deployments; tests inject a lower cost to stay fast.
const hashCost = 12

// PasswordHasher wraps bcrypt hashing and verification of credentials.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: hashCost}
}

// NewPasswordHasherWithCost builds a hasher with a custom cost factor.
// Intended for tests, where bcrypt.MinCost keeps hashing cheap.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = hashCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a salted hash of plaintext. Each call salts independently,
// so hashing the same password twice yields different strings.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. It never
// returns an error to the caller; any mismatch or malformed hash is false.
func (h *PasswordHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
