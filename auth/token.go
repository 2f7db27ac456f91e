package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token profiles. Both are signed with the same secret; the type claim
// keeps a short-lived reset token from authenticating a request and a
// session token from rewriting a password.
const (
	TokenTypeSession = "session"
	TokenTypeReset   = "reset"
)

const tokenIssuer = "galleria"

// Claims is the JWT payload: the user identity plus the token profile.
type Claims struct {
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed HS256 token for userID with an absolute
// expiry computed from ttl at issuance time. Tokens are self-contained
// and never stored server-side; validity is purely a function of
// signature and expiry.
func (s *Service) IssueToken(userID int, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.Itoa(userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken checks signature and expiry and that the token carries
// the expected type claim. Malformed, forged and expired tokens all
// come back as errors; callers surface them as the same rejection.
func (s *Service) VerifyToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedType, claims.TokenType)
	}
	if claims.UserID == 0 {
		return nil, errors.New("token is missing the user_id claim")
	}
	return claims, nil
}
