// Package auth turns credentials and signed tokens into request-scoped
// actors: it issues and verifies the auth token, and resolves a verified
// token payload into a fully populated Actor with derived permissions.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/orgvault/internal/common"
)

// Claims carries the ActorPayload inside a signed JWT. Subject is the user
// id. The token proves only that the payload was issued by us and has not
// been altered; roles and permissions are never embedded.
type Claims struct {
	jwt.RegisteredClaims
	OrgID string `json:"org_id"`
	Scope string `json:"scope"`
}

// CreateAuthToken serializes payload into an HS256-signed compact token.
func CreateAuthToken(payload *ActorPayload, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		OrgID: payload.OrgID,
		Scope: payload.Scope,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign auth token: %w", err)
	}
	return signed, nil
}

// VerifyAuthToken parses and validates a token and returns its payload.
// Malformed encoding, a signature mismatch, an unexpected signing method and
// an expired timestamp all come back as ErrorInvalidAuthToken. No permission
// or tenant checks happen here.
func VerifyAuthToken(tokenString string, secret []byte) (*ActorPayload, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrorInvalidAuthToken
	}

	return &ActorPayload{
		UserID: claims.Subject,
		OrgID:  claims.OrgID,
		Scope:  claims.Scope,
	}, nil
}
