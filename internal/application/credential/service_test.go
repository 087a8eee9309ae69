package credential

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(accountID string) (string, time.Time, error) {
	args := m.Called(accountID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func newService(signer *mockSigner) Service {
	return NewService(ServiceDeps{Signer: signer, BcryptCost: bcrypt.MinCost})
}

func TestHash_VerifyRoundTrip(t *testing.T) {
	svc := newService(nil)
	hash, err := svc.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, svc.Verify("s3cret", hash))
	assert.False(t, svc.Verify("wrong", hash))
}

func TestHash_SaltedPerCall(t *testing.T) {
	svc := newService(nil)
	a, err := svc.Hash("same")
	require.NoError(t, err)
	b, err := svc.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHash_TooLong(t *testing.T) {
	svc := newService(nil)
	_, err := svc.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestVerify_MalformedHash(t *testing.T) {
	svc := newService(nil)
	assert.False(t, svc.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, svc.Verify("anything", ""))
}

func TestNewService_DefaultCost(t *testing.T) {
	svc := NewService(ServiceDeps{}).(*service)
	assert.Equal(t, bcrypt.DefaultCost, svc.bcryptCost)
}

func TestIssueSessionToken(t *testing.T) {
	signer := &mockSigner{}
	exp := time.Now().Add(time.Hour)
	signer.On("Sign", "acc1").Return("jwt-token", exp, nil)

	tok, err := newService(signer).IssueSessionToken("acc1")
	require.NoError(t, err)
	assert.Equal(t, SessionToken{Token: "jwt-token", ExpiresAt: exp}, tok)
	signer.AssertExpectations(t)
}

func TestIssueSessionToken_SignerError(t *testing.T) {
	signer := &mockSigner{}
	signer.On("Sign", "acc1").Return("", time.Time{}, errors.New("no key"))

	_, err := newService(signer).IssueSessionToken("acc1")
	assert.ErrorContains(t, err, "issue session token")
}
