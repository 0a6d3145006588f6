package token

import (
	"fmt"
	"time"

	"fleet-registry/lib/config"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorSession is what the auth middleware injects into the request
// context after a token checks out.
type OperatorSession struct {
	SessionID  string `json:"session_id"`
	OperatorID string `json:"operator_id"`
	UserName   string `json:"user_name"`
}

// GenerateToken signs an HS256 JWT for the operator. The jti carries the
// server-side session id so the token can be revoked by deleting the session.
func GenerateToken(sessionID, operatorID, userName string) (string, time.Time, error) {
	expiresAt := time.Now().Add(config.SessionTTL())

	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   operatorID,
		Audience:  jwt.ClaimStrings{userName},
		Issuer:    "fleet-registry",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(config.JWTSecret())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error signing token: %w", err)
	}

	return signed, expiresAt, nil
}

// ParseToken validates the signature and expiry and returns the session info.
func ParseToken(tokenString string) (OperatorSession, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return config.JWTSecret(), nil
	})
	if err != nil {
		return OperatorSession{}, fmt.Errorf("error parsing token: %w", err)
	}
	if !parsed.Valid {
		return OperatorSession{}, fmt.Errorf("invalid token")
	}

	userName := ""
	if len(claims.Audience) > 0 {
		userName = claims.Audience[0]
	}

	return OperatorSession{
		SessionID:  claims.ID,
		OperatorID: claims.Subject,
		UserName:   userName,
	}, nil
}
