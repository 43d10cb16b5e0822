package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// ConfirmationCode derives the sign-up code for an address: the hex SHA-256 of the email.
// It carries no secret, so anyone who knows an address can compute its code.
func ConfirmationCode(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}

// CheckConfirmationCode compares code against the code derived from email in constant time.
func CheckConfirmationCode(email, code string) bool {
	expected := ConfirmationCode(email)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1
}
