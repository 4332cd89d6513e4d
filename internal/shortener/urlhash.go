package shortener

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// collisionSalt is appended to the hashed input once per probe level.
const collisionSalt = "|collision"

// NormalizeURL validates rawURL as an absolute http(s) URL with a host and returns it
// with surrounding whitespace trimmed. Nothing else is rewritten: the result is both the
// redirect target and the idempotence key.
func NormalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https", ErrInvalidInput)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidInput)
	}

	return trimmed, nil
}

// HashURL computes a SHA256 hash of the input, hex encoded.
func HashURL(input string) string {
	h := sha256.Sum256([]byte(input))

	return hex.EncodeToString(h[:])
}

// CandidateCode derives the short code for a normalized URL at the given probe level.
// Level 0 hashes the URL itself; each further level appends one more salt marker.
func CandidateCode(normalizedURL string, level int) Code {
	input := normalizedURL + strings.Repeat(collisionSalt, level)

	return Code(HashURL(input)[:CodeLength])
}
