package auth

import (
	"context"
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

type Claims struct {
	Client string `json:"client"`
	jwt.StandardClaims
}

// JWTResolver accepts HS256 tokens whose "client" claim names the tenant.
type JWTResolver struct {
	key []byte
}

func NewJWTResolver(secret string) (*JWTResolver, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	return &JWTResolver{key: []byte(secret)}, nil
}

func (r *JWTResolver) Resolve(_ context.Context, tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return r.key, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Client == "" {
		return "", fmt.Errorf("%w: missing client claim", ErrInvalidToken)
	}
	return claims.Client, nil
}

// Issue signs a token for tenant, used by tooling and tests.
func (r *JWTResolver) Issue(tenant string, claims jwt.StandardClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Client: tenant, StandardClaims: claims})
	return token.SignedString(r.key)
}
