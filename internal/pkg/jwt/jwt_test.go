package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidate(t *testing.T) {
	token, err := Generate(42, testSecret, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Validate(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "bloodlink", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := Generate(42, testSecret, 1)
	require.NoError(t, err)

	_, err = Validate(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := Validate("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
	now := time.Now()
	claims := Claims{
		UserID: 42,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  gojwt.NewNumericDate(now.Add(-2 * time.Hour)),
			Issuer:    "bloodlink",
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	// Expired and tampered tokens yield the same error
	_, err = Validate(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_WrongSigningMethod(t *testing.T) {
	// alg=none token signed with the "none" key
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{UserID: 42}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Validate(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerate_UniqueTokenIDs(t *testing.T) {
	first, err := Generate(1, testSecret, 1)
	require.NoError(t, err)
	second, err := Generate(1, testSecret, 1)
	require.NoError(t, err)

	c1, err := Validate(first, testSecret)
	require.NoError(t, err)
	c2, err := Validate(second, testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
}
