package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/polkiloo/storefront/internal/pkg/auth"
)

const hashKeyCommand = "hash-admin-key"

// hashAdminKey prints a bcrypt hash suitable for ADMIN_KEY_HASH.
func hashAdminKey(w io.Writer, hasher auth.PasswordHasher, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("admin key must not be empty")
	}
	hash, err := hasher.Hash(key)
	if err != nil {
		return fmt.Errorf("hash admin key: %w", err)
	}
	_, err = fmt.Fprintln(w, hash)
	return err
}
