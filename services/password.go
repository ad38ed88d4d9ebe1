package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 2
	keyLength   = 32
	saltLength  = 16
)

var ErrInvalidHash = errors.New("invalid stored password format")

// HashPassword returns "salt$hash", both raw base64.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(hash), nil
}

func VerifyPassword(storedPassword, providedPassword string) (bool, error) {
	salt64, hash64, ok := strings.Cut(storedPassword, "$")
	if !ok {
		return false, ErrInvalidHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(salt64)
	if err != nil {
		return false, ErrInvalidHash
	}
	storedHash, err := base64.RawStdEncoding.DecodeString(hash64)
	if err != nil {
		return false, ErrInvalidHash
	}

	computed := argon2.IDKey([]byte(providedPassword), salt, iterations, memory, parallelism, uint32(len(storedHash)))
	return subtle.ConstantTimeCompare(computed, storedHash) == 1, nil
}

// ComparePasswords treats malformed hashes as a mismatch.
func ComparePasswords(storedHash, plainPassword string) bool {
	match, err := VerifyPassword(storedHash, plainPassword)
	return err == nil && match
}
