package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/crypto/argon2"
)

var (
	jwtSecretValue = getEnv("JWTSECRET", "")
	jwtSecretByte  = []byte(jwtSecretValue)
	jwtMutex       sync.RWMutex
)

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// SetJWTSecret allows tests or runtime code to update the JWT secret used
// for token signing. This function is thread-safe and can be called concurrently.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes in a thread-safe manner.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}

// Argon2id parameters. Fixed work factor; changing these invalidates no
// stored hashes because each hash encodes its own parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// GenerateSalt returns a random base64-encoded salt for password hashing.
func GenerateSalt() (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(salt), nil
}

// HashPasswordArgon2 hashes the plaintext with Argon2id using the provided
// base64-encoded salt. The result embeds the parameters and salt:
// argon2id$v=<version>$m=<mem>,t=<time>,p=<threads>$<salt>$<hash>
func HashPasswordArgon2(password, salt string) (string, error) {
	saltBytes, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("invalid salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), saltBytes, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		salt, base64.RawStdEncoding.EncodeToString(key)), nil
}

// HashPassword generates a fresh salt and hashes the plaintext with Argon2id.
func HashPassword(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return HashPasswordArgon2(password, salt)
}

// VerifyPassword checks a plaintext candidate against an encoded Argon2id hash.
// A malformed stored hash is an error, never a "wrong password" result.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "argon2id" {
		return false, errors.New("malformed password hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil {
		return false, fmt.Errorf("malformed password hash version: %w", err)
	}
	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("malformed password hash parameters: %w", err)
	}

	saltBytes, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, fmt.Errorf("malformed password hash salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("malformed password hash digest: %w", err)
	}

	key := argon2.IDKey([]byte(password), saltBytes, iterations, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

// passwordSymbols is the fixed punctuation set accepted by the password policy.
const passwordSymbols = "@$!%*?&"

// ValidatePasswordPolicy checks a plaintext password against the account
// password policy and returns an error naming the first unmet rule.
func ValidatePasswordPolicy(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return errors.New("password must include an uppercase letter")
	case !hasLower:
		return errors.New("password must include a lowercase letter")
	case !hasDigit:
		return errors.New("password must include a digit")
	case !hasSymbol:
		return fmt.Errorf("password must include a symbol (%s)", passwordSymbols)
	}
	return nil
}
