package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	token, err := IssueToken("secret", "scheduler", time.Hour)
	require.NoError(t, err)

	subject, err := NewJWTVerifier("secret").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "scheduler", subject)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := IssueToken("secret", "scheduler", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTVerifier("different").Verify(token)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	token, err := IssueToken("secret", "scheduler", -time.Minute)
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret").Verify(token)
	assert.Error(t, err)
}

func TestVerify_NoSubject(t *testing.T) {
	token, err := IssueToken("secret", "", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTVerifier("secret").Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewJWTVerifier("secret").Verify("not-a-jwt")
	assert.Error(t, err)
}
