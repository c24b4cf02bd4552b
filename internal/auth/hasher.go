package auth

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the fixed work factor for password hashes. Raising it only
// affects new hashes; existing ones verify at the cost they were created
// with.
const BcryptCost = 12

// Hasher produces and verifies salted bcrypt password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher at the fixed cost.
func NewHasher() *Hasher { return &Hasher{cost: BcryptCost} }

// Hash returns the bcrypt hash of plain. The salt is randomized per call,
// so hashing the same plaintext twice yields two different strings that
// both verify. An empty plaintext is rejected, as is one over bcrypt's
// 72-byte input limit.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", &ValidationError{Violations: []string{"password is required"}}
	}
	if len(plain) > 72 {
		return "", &ValidationError{Violations: []string{"password must be at most 72 bytes"}}
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain reproduces hash. It never errors: empty
// inputs and malformed hashes simply verify as false.
func (h *Hasher) Verify(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
