package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_VerifiesOwnPlaintext(t *testing.T) {
	digest, err := hashWithCost("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", digest)
	assert.True(t, Verify(digest, "s3cret-pass"))
	assert.True(t, Verify(digest, "s3cret-pass"), "verification must be repeatable")
	assert.False(t, Verify(digest, "s3cret-pasS"))
	assert.False(t, Verify(digest, ""))
}

func TestHash_Salted(t *testing.T) {
	a, err := hashWithCost("same-input", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := hashWithCost("same-input", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, Verify(a, "same-input"))
	assert.True(t, Verify(b, "same-input"))
}

func TestHash_DefaultCost(t *testing.T) {
	digest, err := Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)
}

func TestHash_RejectsBadInput(t *testing.T) {
	_, err := Hash("")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Hash(strings.Repeat("x", maxLen+1))
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestVerify_Malformed(t *testing.T) {
	assert.False(t, Verify("not-a-digest", "pw"))
	assert.False(t, Verify("", "pw"))
}
