// Package password hashes and verifies member passwords.
package password

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMismatch      = errors.New("password.mismatch")
	ErrEmptyPassword = errors.New("password.empty")
)

// Hasher turns a plaintext password into its stored form and compares a
// candidate against a stored hash.
type Hasher interface {
	Hash(plain string) (string, error)
	// Compare returns ErrMismatch when plain does not produce hash.
	Compare(hash, plain string) error
}

// MD5Hasher produces lowercase hex MD5 digests, the format of legacy member
// records. New deployments should prefer BcryptHasher.
type MD5Hasher struct{}

func (MD5Hasher) Hash(plain string) (string, error) {
	sum := md5.Sum([]byte(plain))
	return hex.EncodeToString(sum[:]), nil
}

func (h MD5Hasher) Compare(hash, plain string) error {
	candidate, _ := h.Hash(plain)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) != 1 {
		return ErrMismatch
	}
	return nil
}

// BcryptHasher hashes with bcrypt at Cost (bcrypt.DefaultCost when zero).
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(out), nil
}

func (BcryptHasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return errors.Join(ErrMismatch, err)
	}
	return nil
}

// New returns the hasher registered under name: "md5" or "bcrypt".
func New(name string) (Hasher, error) {
	switch name {
	case "", "md5":
		return MD5Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("password: unknown hasher %q", name)
	}
}
