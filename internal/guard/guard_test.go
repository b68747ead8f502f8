package guard

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCode(t *testing.T) {
	g := New("", "", 0)

	assert.NoError(t, g.CheckCode("deletethis"))

	err := g.CheckCode("deleteThis")
	require.ErrorIs(t, err, ErrWrongCode)
	assert.Equal(t, "The code is incorrect.", err.Error())

	assert.ErrorIs(t, g.CheckCode(""), ErrWrongCode)
}

func TestIssueAndValidateToken(t *testing.T) {
	g := New("secret-code", "signing-secret", time.Minute)

	t.Run("round trip", func(t *testing.T) {
		token, expiresAt, err := g.IssueToken("secret-code")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

		assert.NoError(t, g.ValidateToken(token))
		assert.NoError(t, g.Authorize("", token))
	})

	t.Run("wrong code", func(t *testing.T) {
		_, _, err := g.IssueToken("deletethis")
		assert.ErrorIs(t, err, ErrWrongCode)
	})

	t.Run("other secret", func(t *testing.T) {
		other := New("secret-code", "another-secret", time.Minute)
		token, _, err := other.IssueToken("secret-code")
		require.NoError(t, err)
		assert.ErrorIs(t, g.ValidateToken(token), ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		assert.ErrorIs(t, g.ValidateToken("not-a-jwt"), ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old := New("secret-code", "signing-secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := old.IssueToken("secret-code")
		require.NoError(t, err)
		assert.ErrorIs(t, g.ValidateToken(token), ErrExpiredToken)
	})

	t.Run("wrong scope", func(t *testing.T) {
		claims := &adminClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			Scope: "teams:write",
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("signing-secret"))
		require.NoError(t, err)
		assert.ErrorIs(t, g.ValidateToken(token), ErrInvalidToken)
	})
}

func TestTokensDisabled(t *testing.T) {
	g := New("deletethis", "", 0)
	assert.False(t, g.TokensEnabled())

	_, _, err := g.IssueToken("deletethis")
	assert.ErrorIs(t, err, ErrTokensDisabled)
	assert.ErrorIs(t, g.ValidateToken("some-token"), ErrTokensDisabled)
	assert.NoError(t, g.Authorize("deletethis", ""))

	t.Run("bearer header falls back to the code", func(t *testing.T) {
		assert.NoError(t, g.Authorize("deletethis", "some-token"))
		assert.ErrorIs(t, g.Authorize("wrong", "some-token"), ErrWrongCode)
		assert.ErrorIs(t, g.Authorize("", "some-token"), ErrWrongCode)
	})
}
