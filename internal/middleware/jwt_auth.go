package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
)

// JwtCustomClaims are the claims carried by access tokens.
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTResolver resolves HS256 bearer tokens signed with a shared secret.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a new JWTResolver
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (j *JWTResolver) Resolve(ctx context.Context, r *http.Request) (string, bool) {
	tokenString, ok := bearerToken(r)
	if !ok {
		return "", false
	}

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("rejected bearer token")
		return "", false
	}
	return claims.UserID, claims.UserID != ""
}

// Sign issues a token for userID that expires after ttl.
func (j *JWTResolver) Sign(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}
