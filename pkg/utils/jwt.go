package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ophthalmoai/saas-backend/config"
)

// Role values stored on users and carried in the token.
const (
	RoleMaster        = "master"
	RoleHospitalAdmin = "hospital_admin"
	RoleStaff         = "staff"
)

// Claims is the flat token payload: who the user is, what they may do, and
// which hospital their data is scoped to. HospitalID is nil for master.
type Claims struct {
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	HospitalID *int   `json:"hospital_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWTToken signs a token for the authenticated user.
func GenerateJWTToken(userID int, username, role string, hospitalID *int) (string, error) {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret key is missing")
	}

	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Username:   username,
		Role:       role,
		HospitalID: hospitalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.TokenTTLHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateJWTToken parses and verifies a token string.
func ValidateJWTToken(tokenString string) (*Claims, error) {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret key is missing")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
