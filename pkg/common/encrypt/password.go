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

// Package encrypt holds the credential primitives: adaptive password hashing
// and the hashed-at-rest treatment of refresh tokens.
package encrypt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/openimsdk/tools/errs"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkup-im/linkup/pkg/common/servererrs"
)

// SpecialChars is the character set accepted by the optional
// special-character strength rule.
const SpecialChars = `!@#$%^&*()-_=+[]{}|;:'",.<>/?`

// StrengthRules is the explicit password-strength configuration. The zero
// value accepts everything; defaults come from config.
type StrengthRules struct {
	MinLength          int
	RequireSpecialChar bool
}

// PasswordHash hashes a cleartext password with bcrypt at the default cost.
// The result is self-describing (algorithm, cost and salt are embedded).
func PasswordHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.WrapMsg(err, "bcrypt hash failed")
	}
	return string(hash), nil
}

// PasswordVerify reports whether plain matches the stored bcrypt hash.
func PasswordVerify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// TokenHash hashes a refresh token for storage. The token is digested with
// SHA-256 first: bcrypt caps input at 72 bytes and signed tokens are longer.
func TokenHash(token string) (string, error) {
	return PasswordHash(tokenDigest(token))
}

// TokenVerify reports whether plain matches the stored refresh-token hash.
// Empty inputs never verify.
func TokenVerify(plain, hashed string) bool {
	if plain == "" || hashed == "" {
		return false
	}
	return PasswordVerify(tokenDigest(plain), hashed)
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateStrength checks a cleartext password against the configured rules
// and returns ErrWeakPassword describing the first rule that failed.
func ValidateStrength(password string, rules StrengthRules) error {
	if len(password) < rules.MinLength {
		return servererrs.ErrWeakPassword.WithDetail(
			fmt.Sprintf("password must be at least %d characters long", rules.MinLength)).Wrap()
	}
	if rules.RequireSpecialChar && !strings.ContainsAny(password, SpecialChars) {
		return servererrs.ErrWeakPassword.WithDetail(
			fmt.Sprintf("password must contain at least one special character (%s)", SpecialChars)).Wrap()
	}
	return nil
}
