package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
)

type tokenKey struct {
	accountID string
	purpose   domain.TokenPurpose
}

// memStore mirrors the DynamoDB repos: the account, its email marker and
// tokens change together or not at all.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	emails   map[string]string
	tokens   map[tokenKey]domain.VerificationToken
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]domain.Account{},
		emails:   map[string]string{},
		tokens:   map[tokenKey]domain.VerificationToken{},
	}
}

func (m *memStore) CreateWithToken(_ context.Context, a *domain.Account, t *domain.VerificationToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.emails[a.Email]; taken {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	if _, taken := m.accounts[a.AccountID]; taken {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	m.accounts[a.AccountID] = *a
	m.emails[a.Email] = a.AccountID
	m.tokens[tokenKey{t.AccountID, t.Purpose}] = *t
	return nil
}

func (m *memStore) Get(_ context.Context, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	return &a, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	accountID, ok := m.emails[email]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	return m.Get(ctx, accountID)
}

func (m *memStore) MarkVerified(_ context.Context, accountID, tokenHash string) error {
	return m.updateAndConsume(accountID, domain.PurposeEmailVerify, tokenHash, func(a *domain.Account) {
		a.IsVerified = true
	})
}

func (m *memStore) ResetPassword(_ context.Context, accountID, passwordHash, otpHash string) error {
	return m.updateAndConsume(accountID, domain.PurposePasswordResetOTP, otpHash, func(a *domain.Account) {
		a.PasswordHash = passwordHash
	})
}

func (m *memStore) updateAndConsume(accountID string, purpose domain.TokenPurpose, tokenHash string, apply func(*domain.Account)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	k := tokenKey{accountID, purpose}
	t, hasToken := m.tokens[k]
	if !ok || !hasToken || t.TokenHash != tokenHash {
		return fmt.Errorf("token already consumed: %w", domain.ErrConflict)
	}
	apply(&a)
	a.UpdatedAt = time.Now().UTC()
	m.accounts[accountID] = a
	delete(m.tokens, k)
	return nil
}

// memTokens shares state with memStore so transactional consumption is visible to token reads.
type memTokens struct{ *memStore }

func (m memTokens) Put(_ context.Context, t *domain.VerificationToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[tokenKey{t.AccountID, t.Purpose}] = *t
	return nil
}

func (m memTokens) Get(_ context.Context, accountID string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[tokenKey{accountID, purpose}]
	if !ok {
		return nil, fmt.Errorf("verification token not found: %w", domain.ErrNotFound)
	}
	return &t, nil
}

func (m memTokens) GetByHash(_ context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.TokenHash == tokenHash && t.Purpose == purpose {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("verification token not found: %w", domain.ErrNotFound)
}

func (m memTokens) Delete(_ context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := tokenKey{accountID, purpose}
	if t, ok := m.tokens[k]; ok && t.TokenHash == tokenHash {
		delete(m.tokens, k)
	}
	return nil
}

func (m memTokens) RecordFailedAttempt(_ context.Context, accountID string, purpose domain.TokenPurpose, tokenHash string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := tokenKey{accountID, purpose}
	t, ok := m.tokens[k]
	if !ok || t.TokenHash != tokenHash {
		return 0, fmt.Errorf("verification token not found: %w", domain.ErrNotFound)
	}
	t.Attempts++
	m.tokens[k] = t
	return t.Attempts, nil
}

func (m memTokens) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, t := range m.tokens {
		if t.Expired(now) {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

func (m *memStore) tokenCount(accountID string, purpose domain.TokenPurpose) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.tokens {
		if k.accountID == accountID && k.purpose == purpose {
			n++
		}
	}
	return n
}

func (m *memStore) accountCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

// recordingGateway captures raw tokens and OTPs the way a mailbox would.
type recordingGateway struct {
	mu            sync.Mutex
	verifications map[string][]string
	otps          map[string][]string
	err           error
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{verifications: map[string][]string{}, otps: map[string][]string{}}
}

func (g *recordingGateway) SendVerification(_ context.Context, a *domain.Account, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifications[a.AccountID] = append(g.verifications[a.AccountID], token)
	return g.err
}

func (g *recordingGateway) SendOTP(_ context.Context, a *domain.Account, otp string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.otps[a.AccountID] = append(g.otps[a.AccountID], otp)
	return g.err
}

func (g *recordingGateway) lastVerification(accountID string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	v := g.verifications[accountID]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

func (g *recordingGateway) lastOTP(accountID string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	v := g.otps[accountID]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}
