package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseTokens(t *testing.T) {
	SetJWTSecret("test-secret-123")

	hospitalToken, err := IssueHospitalToken(7)
	require.NoError(t, err)
	kind, id, err := ParseToken(hospitalToken)
	require.NoError(t, err)
	assert.Equal(t, PrincipalHospital, kind)
	assert.Equal(t, uint(7), id)

	doctorToken, err := IssueDoctorToken(42)
	require.NoError(t, err)
	kind, id, err = ParseToken(doctorToken)
	require.NoError(t, err)
	assert.Equal(t, PrincipalDoctor, kind)
	assert.Equal(t, uint(42), id)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret-123")
	token, err := IssueHospitalToken(1)
	require.NoError(t, err)

	SetJWTSecret("a-different-secret")
	defer SetJWTSecret("test-secret-123")

	_, _, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	SetJWTSecret("test-secret-123")
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"hospital_id": float64(3),
		"exp":         time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString(GetJWTSecretByte())
	require.NoError(t, err)

	_, _, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRequiresExactlyOneDiscriminant(t *testing.T) {
	SetJWTSecret("test-secret-123")

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"no discriminant", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}},
		{"both discriminants", jwt.MapClaims{
			"hospital_id": float64(1),
			"doctor_id":   float64(2),
			"exp":         time.Now().Add(time.Hour).Unix(),
		}},
		{"zero id", jwt.MapClaims{
			"hospital_id": float64(0),
			"exp":         time.Now().Add(time.Hour).Unix(),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims)
			signed, err := token.SignedString(GetJWTSecretByte())
			require.NoError(t, err)

			_, _, err = ParseToken(signed)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret-123")
	_, _, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
