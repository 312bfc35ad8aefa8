package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for secrets hashed by this package
const BcryptCost = 12

// HashSecret hashes a shared secret for storage in configuration
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckSecret reports whether secret matches the stored bcrypt hash
func CheckSecret(hashedSecret, secret string) bool {
	if hashedSecret == "" || secret == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(secret))
	return err == nil
}
