package token

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaque_LengthAndUniqueness(t *testing.T) {
	a, err := NewOpaque(32)
	require.NoError(t, err)
	b, err := NewOpaque(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNewOTP_SixDigitsInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		otp, err := NewOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, otpMin)
		assert.LessOrEqual(t, n, otpMax)
	}
}

func TestHash_DeterministicAndDistinct(t *testing.T) {
	assert.Equal(t, Hash("abc"), Hash("abc"))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))
	assert.Len(t, Hash("abc"), 64)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Hash("123456"), Hash("123456")))
	assert.False(t, Equal(Hash("123456"), Hash("654321")))
	assert.False(t, Equal("", Hash("x")))
}
