// Copyright © 2023 OpenIM. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tokenverify mints and validates the signed bearer tokens. Access
// and refresh tokens share one claim shape and differ only in type and TTL.
package tokenverify

import (
	"errors"

	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/openimsdk/tools/errs"

	"github.com/linkup-im/linkup/pkg/common/servererrs"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the JWT payload. Username travels in the registered "sub" claim.
type Claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Username returns the subject the token was issued to.
func (c *Claims) Username() string {
	return c.Subject
}

// BuildClaims assembles the claims for a token issued now for username,
// expiring after ttl.
func BuildClaims(username, tokenType string, ttl time.Duration) Claims {
	now := time.Now().UTC()
	return Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)), // tolerate clock skew
		},
	}
}

// CreateToken signs a token of the given type for username with HS256.
func CreateToken(username, tokenType, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, BuildClaims(username, tokenType, ttl))
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errs.WrapMsg(err, "sign token failed", "username", username, "type", tokenType)
	}
	return signed, nil
}

// Secret returns a key function binding the parser to the server secret and
// the HS256 algorithm.
func Secret(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, servererrs.ErrTokenSignatureInvalid.WithDetail("unexpected signing method").Wrap()
		}
		return []byte(secret), nil
	}
}

// GetClaimFromToken parses and validates a token, returning a distinguishable
// error for each failure class: malformed, expired, bad signature, unknown.
func GetClaimFromToken(tokenString string, secretFunc jwt.Keyfunc) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, secretFunc)
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, servererrs.ErrTokenMalformed.WithDetail("token is malformed").Wrap()
			case ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
				return nil, servererrs.ErrTokenExpired.WithDetail("token has expired").Wrap()
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return nil, servererrs.ErrTokenSignatureInvalid.WithDetail("token signature is invalid").Wrap()
			default:
				return nil, servererrs.ErrTokenUnknown.WithDetail("could not validate token").Wrap()
			}
		}
		return nil, servererrs.ErrTokenUnknown.WithDetail("could not validate token").Wrap()
	}
	if !token.Valid {
		return nil, servererrs.ErrTokenUnknown.WithDetail("could not validate token").Wrap()
	}
	return claims, nil
}

// GetTypedClaimFromToken additionally enforces the token type, so a refresh
// token can never authenticate a request and an access token can never mint
// new credentials.
func GetTypedClaimFromToken(tokenString, tokenType string, secretFunc jwt.Keyfunc) (*Claims, error) {
	claims, err := GetClaimFromToken(tokenString, secretFunc)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, servererrs.ErrTokenInvalidType.WithDetail("unexpected token type").Wrap()
	}
	return claims, nil
}
