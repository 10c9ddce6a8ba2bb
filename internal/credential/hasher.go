// Package credential derives and checks stored password digests.
package credential

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext secret into the digest kept in users.password_digest
// and checks a plaintext secret against a stored digest.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(digest, secret string) bool
}

// MD5Hasher produces unsalted hex MD5 digests, the format of every existing
// row.
type MD5Hasher struct{}

// Digest is the deterministic digest of secret.
func Digest(secret string) string {
	sum := md5.Sum([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func (MD5Hasher) Hash(secret string) (string, error) {
	return Digest(secret), nil
}

func (MD5Hasher) Verify(digest, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(Digest(secret))) == 1
}

// BcryptHasher is the salted alternative. Digests it produces cannot be read by
// MD5Hasher and the other way round.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(digest, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// New returns the hasher registered under name ("md5" or "bcrypt").
func New(name string, bcryptCost int) (Hasher, error) {
	switch name {
	case "", "md5":
		return MD5Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}
