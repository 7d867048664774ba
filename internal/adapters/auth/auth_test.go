package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTIssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("user-1", "alice", []string{"Organizer"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", identity.ID)
	require.Equal(t, "alice", identity.Username)
	require.Equal(t, []string{"Organizer"}, identity.Roles)
	require.True(t, identity.IsOrganizer())
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("secret-a")
	verifier := NewJWTVerifier("secret-b")

	token, err := issuer.Issue("user-1", "alice", nil, time.Hour)
	require.NoError(t, err)

	identity, err := verifier.Verify(token)
	require.Error(t, err)
	require.True(t, identity.IsAnonymous())
}

func TestJWTVerifyRejectsExpired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("user-1", "alice", nil, -time.Minute)
	require.NoError(t, err)

	identity, err := verifier.Verify(token)
	require.Error(t, err)
	require.True(t, identity.IsAnonymous())
}

func TestJWTVerifyRejectsGarbage(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")

	identity, err := verifier.Verify("not-a-token")
	require.Error(t, err)
	require.True(t, identity.IsAnonymous())
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash, err := hasher.Hash(salt, "s3cret")
	require.NoError(t, err)

	require.NoError(t, hasher.Compare(hash, salt, "s3cret"))
	require.Error(t, hasher.Compare(hash, salt, "wrong"))
	require.Error(t, hasher.Compare(hash, "other-salt", "s3cret"))
}
