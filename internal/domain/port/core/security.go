package core

// PasswordHasher abstracts the password hashing scheme. The ledger never
// inspects hashes, it only stores and verifies them.
type PasswordHasher interface {
	// Hash derives a one-way hash from a plaintext password
	Hash(password string) (string, error)
	// Verify reports whether the plaintext matches the stored hash
	Verify(password, hash string) bool
}

// TokenGenerator produces opaque bearer token strings.
// Implementations must use a cryptographically secure source with at
// least 256 bits of entropy per token.
type TokenGenerator interface {
	Generate() (string, error)
}
