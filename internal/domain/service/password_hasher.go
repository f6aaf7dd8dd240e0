// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. A fresh salt is
	// drawn on every call, so hashing the same input twice yields different digests.
	// Failures are reported as *errors.HashingError.
	Hash(password string) (string, error)

	// Check recomputes the digest using the salt and cost embedded in hash and
	// compares in constant time.
	Check(password, hash string) bool
}
