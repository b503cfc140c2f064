package auth_test

import (
	"testing"
	"time"

	"confreg/internal/auth"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue()
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, issuer.Verify(token))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue()
	assert.NoError(t, err)

	assert.ErrorIs(t, other.Verify(token), auth.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue()
	assert.NoError(t, err)

	assert.ErrorIs(t, issuer.Verify(token), auth.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	assert.ErrorIs(t, issuer.Verify(""), auth.ErrInvalidToken)
	assert.ErrorIs(t, issuer.Verify("not.a.jwt"), auth.ErrInvalidToken)
}
