package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// PrincipalKind discriminates which kind of account a token identifies.
type PrincipalKind string

const (
	PrincipalHospital PrincipalKind = "hospital"
	PrincipalDoctor   PrincipalKind = "doctor"
)

// tokenTTL is the lifetime of issued identity tokens.
const tokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for malformed, mis-signed, expired or
// ambiguous tokens.
var ErrInvalidToken = errors.New("invalid token")

const (
	claimHospitalID = "hospital_id"
	claimDoctorID   = "doctor_id"
)

// IssueHospitalToken signs a token identifying the given hospital.
func IssueHospitalToken(hospitalID uint) (string, error) {
	return issueToken(claimHospitalID, hospitalID)
}

// IssueDoctorToken signs a token identifying the given doctor.
func IssueDoctorToken(doctorID uint) (string, error) {
	return issueToken(claimDoctorID, doctorID)
}

func issueToken(claimKey string, id uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimKey: float64(id),
		"exp":    time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(GetJWTSecretByte())
}

// ParseToken verifies a bearer token and returns the principal it carries.
// A token must embed exactly one discriminant claim; anything else fails
// with ErrInvalidToken.
func ParseToken(tokenString string) (PrincipalKind, uint, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return GetJWTSecretByte(), nil
	})
	if err != nil || !token.Valid {
		return "", 0, ErrInvalidToken
	}

	hospitalID, hasHospital := claimID(claims, claimHospitalID)
	doctorID, hasDoctor := claimID(claims, claimDoctorID)
	switch {
	case hasHospital && !hasDoctor:
		return PrincipalHospital, hospitalID, nil
	case hasDoctor && !hasHospital:
		return PrincipalDoctor, doctorID, nil
	}
	return "", 0, ErrInvalidToken
}

func claimID(claims jwt.MapClaims, key string) (uint, bool) {
	v, ok := claims[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f <= 0 {
		return 0, false
	}
	return uint(f), true
}
