package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignSession issues the long-lived session token stored on the account.
// It carries no expiry: the token lives until logout clears it and the
// auth middleware compares it against the stored value on every request.
func SignSession(userID uuid.UUID, secret string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SignReset issues a password-reset token valid for 24 hours.
func SignReset(secret string) (string, error) {
	claims := jwt.MapClaims{
		"issuer": "www.pickaguide.com",
		"nonce":  uuid.New().String(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ValidateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
