package test

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied secret.
func (h HasherStub) Hash(secret string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(secret)
	}
	return "hash:" + secret, nil
}

// Compare validates secret against stored hash.
func (h HasherStub) Compare(hash string, secret string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, secret)
	}
	if hash != "hash:"+secret {
		return errors.New("mismatch")
	}
	return nil
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      string
	Err     error
	ParseFn func(string) (string, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.ID == "" {
		return "U1", nil
	}
	return s.ID, nil
}

// AdminVerifierStub accepts exactly Key.
type AdminVerifierStub struct {
	Key       string
	VerifyErr error
}

// VerifyAdminKey mirrors the real verifier's error contract.
func (s AdminVerifierStub) VerifyAdminKey(key string) error {
	if s.VerifyErr != nil {
		return s.VerifyErr
	}
	if s.Key == "" || key != s.Key {
		return pkgAuth.ErrInvalidAdminKey
	}
	return nil
}

// LockerStub grants or denies the sweep lease.
type LockerStub struct {
	Deny bool
	Err  error

	mu   sync.Mutex
	Keys []string
}

// TryLock records the requested key.
func (l *LockerStub) TryLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Keys = append(l.Keys, key)
	if l.Err != nil {
		return false, l.Err
	}
	return !l.Deny, nil
}

// Attempts reports how many times the lock was requested.
func (l *LockerStub) Attempts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Keys)
}

var _ pkgAuth.PasswordHasher = HasherStub{}
