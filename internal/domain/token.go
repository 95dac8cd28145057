package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

const (
	BookingAccessScope string = "booking_access"
	tokenLength        int    = 32
)

// Token grants access to a booking without an account. Only the hash is stored.
type Token struct {
	Plaintext string
	Hash      []byte
	Scope     string
}

func GenerateToken(scope string) (*Token, error) {
	randomBytes := make([]byte, tokenLength)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	plaintext := base64.RawURLEncoding.EncodeToString(randomBytes)

	return &Token{
		Plaintext: plaintext,
		Hash:      HashToken(plaintext),
		Scope:     scope,
	}, nil
}

func HashToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}
