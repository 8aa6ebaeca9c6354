package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
)

// URLSafeToken reads nBytes from the OS CSPRNG and returns them encoded
// with unpadded base64url, matching the shape of challenge identifiers and
// share-link tokens. nBytes of 32 gives 256 bits of entropy.
func URLSafeToken(nBytes int) (string, error) {
	raw := make([]byte, nBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// NumericCode returns a string of digits cryptographically drawn one digit
// at a time, used for MFA one-time codes. Each digit is uniform over 0-9,
// so a 6-digit code carries the full 10^6 space including leading zeros.
func NumericCode(digits int) (string, error) {
	code := make([]byte, digits)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("error drawing random digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code), nil
}
