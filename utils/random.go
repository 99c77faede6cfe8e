package utils

import (
	"crypto/rand"
)

// base36Charset matches the suffix alphabet of payment references.
const base36Charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36 returns a random lowercase alphanumeric string of the
// given length.
func RandomBase36(length int) (string, error) {
	code := make([]byte, length)
	if _, err := rand.Read(code); err != nil {
		return "", err
	}
	for i := 0; i < length; i++ {
		code[i] = base36Charset[int(code[i])%len(base36Charset)]
	}
	return string(code), nil
}
