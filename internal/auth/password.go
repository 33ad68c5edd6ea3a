package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes credentials and verifies them against a stored hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// BcryptPasswordHasher implements PasswordHasher on bcrypt with a
// configurable cost.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a bcrypt-backed hasher. Cost values
// outside bcrypt's supported range fall back to the library default.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// Hash derives a bcrypt hash from the plain password.
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare verifies the plain password against a stored bcrypt hash.
// It returns nil when they match.
func (h *BcryptPasswordHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
