package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func adminClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":           "user-1",
		"email":         "admin@example.org",
		"exp":           exp.Unix(),
		"user_metadata": map[string]interface{}{"role": "admin"},
	}
}

func frozenVerifier(secret string) *Verifier {
	v := NewVerifier(secret)
	v.now = func() time.Time { return testNow }
	return v
}

func TestVerifyAdminToken(t *testing.T) {
	v := frozenVerifier("")
	token := signedToken(t, "whatever", adminClaims(testNow.Add(time.Hour)))

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin@example.org", claims.Email)
}

func TestVerifyMissingToken(t *testing.T) {
	v := frozenVerifier("")
	_, err := v.Verify("")
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = v.Verify("   ")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestVerifyMalformedToken(t *testing.T) {
	v := frozenVerifier("")
	for _, token := range []string{"abc", "a.b", "a.b.c.d", "not-a-jwt"} {
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrMalformedCredential, "token %q", token)
	}

	// three segments but the payload is not base64url JSON
	_, err := v.Verify("aGVhZGVy.!!!.c2ln")
	assert.ErrorIs(t, err, ErrMalformedCredential)
}

func TestVerifyExpiredToken(t *testing.T) {
	v := frozenVerifier("")
	token := signedToken(t, "whatever", adminClaims(testNow.Add(-time.Minute)))

	// expiry wins even for an otherwise valid admin claim
	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRoleClaim(t *testing.T) {
	v := frozenVerifier("")

	claims := adminClaims(testNow.Add(time.Hour))
	claims["user_metadata"] = map[string]interface{}{"role": "editor"}
	_, err := v.Verify(signedToken(t, "whatever", claims))
	assert.ErrorIs(t, err, ErrInsufficientRole)

	delete(claims, "user_metadata")
	_, err = v.Verify(signedToken(t, "whatever", claims))
	assert.ErrorIs(t, err, ErrInsufficientRole)

	// app-level metadata is an accepted fallback location
	claims["app_metadata"] = map[string]interface{}{"role": "admin"}
	got, err := v.Verify(signedToken(t, "whatever", claims))
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)
}

func TestVerifyNoExpiryClaim(t *testing.T) {
	v := frozenVerifier("")
	claims := adminClaims(testNow)
	delete(claims, "exp")

	_, err := v.Verify(signedToken(t, "whatever", claims))
	assert.NoError(t, err)
}

func TestVerifySignatureCheckedWithSecret(t *testing.T) {
	v := frozenVerifier("right-secret")

	_, err := v.Verify(signedToken(t, "wrong-secret", adminClaims(testNow.Add(time.Hour))))
	assert.ErrorIs(t, err, ErrMalformedCredential)

	_, err = v.Verify(signedToken(t, "right-secret", adminClaims(testNow.Add(time.Hour))))
	assert.NoError(t, err)
}
