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

package encrypt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashVerify(t *testing.T) {
	hash, err := PasswordHash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, PasswordVerify("correct horse battery staple", hash))
	assert.False(t, PasswordVerify("wrong password", hash))
}

func TestTokenHashVerifyLongInput(t *testing.T) {
	// Signed tokens exceed bcrypt's 72-byte input cap; the digest step must
	// keep verification exact for arbitrarily long tokens.
	token := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20)
	hash, err := TokenHash(token)
	require.NoError(t, err)

	assert.True(t, TokenVerify(token, hash))
	assert.False(t, TokenVerify(token+"x", hash))
	assert.False(t, TokenVerify("", hash))
	assert.False(t, TokenVerify(token, ""))
}

func TestValidateStrength(t *testing.T) {
	assert.NoError(t, ValidateStrength("anything", StrengthRules{}))
	assert.Error(t, ValidateStrength("short", StrengthRules{MinLength: 8}))
	assert.Error(t, ValidateStrength("longenoughpassword", StrengthRules{MinLength: 8, RequireSpecialChar: true}))
	assert.NoError(t, ValidateStrength("longenough!password", StrengthRules{MinLength: 8, RequireSpecialChar: true}))
}
