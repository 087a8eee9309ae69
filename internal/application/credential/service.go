package credential

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SessionToken is a signed, stateless bearer credential.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	IssueSessionToken(accountID string) (SessionToken, error)
}

type tokenSigner interface {
	Sign(accountID string) (string, time.Time, error)
}

type service struct {
	signer     tokenSigner
	bcryptCost int
}

type ServiceDeps struct {
	Signer     tokenSigner
	BcryptCost int
}

func NewService(deps ServiceDeps) Service {
	cost := deps.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &service{signer: deps.Signer, bcryptCost: cost}
}

func (s *service) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify never returns an error: a malformed hash is simply a mismatch.
func (s *service) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (s *service) IssueSessionToken(accountID string) (SessionToken, error) {
	tok, exp, err := s.signer.Sign(accountID)
	if err != nil {
		return SessionToken{}, fmt.Errorf("issue session token: %w", err)
	}
	return SessionToken{Token: tok, ExpiresAt: exp}, nil
}
