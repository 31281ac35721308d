package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test_secret")

	token, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestIssueTokensAreUnique(t *testing.T) {
	issuer := NewIssuer("test_secret")

	a, err := issuer.Issue(1)
	require.NoError(t, err)
	b, err := issuer.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "each issuance must carry a fresh jti")
}

func TestVerifyMissingToken(t *testing.T) {
	issuer := NewIssuer("test_secret")
	_, err := issuer.Verify("")
	assert.True(t, errors.Is(err, ErrMissingToken))
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewIssuer("test_secret")
	for _, tok := range []string{"garbage", "a.b", "a.b.c"} {
		_, err := issuer.Verify(tok)
		assert.True(t, errors.Is(err, ErrMalformedToken), "token %q", tok)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewIssuer("other_secret")
	token, err := other.Issue(7)
	require.NoError(t, err)

	issuer := NewIssuer("test_secret")
	_, err = issuer.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidSignature))
}

func signClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func baseClaims(exp time.Time) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": "7",
		"iss": "babel-api",
		"aud": "babel-client",
		"exp": exp.Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer("test_secret")
	token := signClaims(t, "test_secret", baseClaims(time.Now().Add(-time.Minute)))

	_, err := issuer.Verify(token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestVerifyClaimChecks(t *testing.T) {
	issuer := NewIssuer("test_secret")
	exp := time.Now().Add(time.Hour)

	mutate := func(fn func(jwt.MapClaims)) string {
		claims := baseClaims(exp)
		fn(claims)
		return signClaims(t, "test_secret", claims)
	}

	cases := map[string]string{
		"wrong issuer":     mutate(func(c jwt.MapClaims) { c["iss"] = "someone-else" }),
		"wrong audience":   mutate(func(c jwt.MapClaims) { c["aud"] = "other-client" }),
		"missing subject":  mutate(func(c jwt.MapClaims) { delete(c, "sub") }),
		"garbage subject":  mutate(func(c jwt.MapClaims) { c["sub"] = "not-a-number" }),
		"zero subject":     mutate(func(c jwt.MapClaims) { c["sub"] = "0" }),
		"numeric overflow": mutate(func(c jwt.MapClaims) { c["sub"] = "99999999999999999999" }),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(token)
			assert.True(t, errors.Is(err, ErrMalformedToken))
		})
	}
}

func TestVerifyRejectsUnexpectedAlgorithm(t *testing.T) {
	issuer := NewIssuer("test_secret")

	// alg=none with a valid-looking payload must never verify.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, baseClaims(time.Now().Add(time.Hour)))
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.Error(t, err)
}
