// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrAdminDisabled    = errors.New("admin operations are disabled")
)

// GenerateSessionID creates a random session identifier
func GenerateSessionID() string {
	return uuid.NewString()
}

// ValidateSessionID checks that id is a session identifier this server could have issued
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidSessionID
	}
	return nil
}

// CacheKey derives the cache namespace of a session.
// Session IDs never reach storage in the clear.
func CacheKey(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// ValidateAdminKey compares the provided key against the configured one in constant time.
// An empty configured key disables admin operations.
func ValidateAdminKey(provided, expected string) error {
	if expected == "" {
		return ErrAdminDisabled
	}
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
