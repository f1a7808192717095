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

package tokenverify

import (
	"testing"
	"time"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/mw/specialerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-im/linkup/pkg/common/servererrs"
)

const testSecret = "test-secret"

func hasCode(t *testing.T, want errs.CodeError, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, want.Is(specialerror.ErrCode(errs.Unwrap(err))), "unexpected error: %v", err)
}

func TestCreateTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("alice", TokenTypeAccess, testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := GetTypedClaimFromToken(token, TokenTypeAccess, Secret(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestExpiredToken(t *testing.T) {
	token, err := CreateToken("alice", TokenTypeAccess, testSecret, -time.Hour)
	require.NoError(t, err)

	_, err = GetClaimFromToken(token, Secret(testSecret))
	hasCode(t, servererrs.ErrTokenExpired, err)
}

func TestMalformedToken(t *testing.T) {
	_, err := GetClaimFromToken("not-a-token", Secret(testSecret))
	hasCode(t, servererrs.ErrTokenMalformed, err)
}

func TestWrongSecret(t *testing.T) {
	token, err := CreateToken("alice", TokenTypeAccess, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = GetClaimFromToken(token, Secret("other-secret"))
	hasCode(t, servererrs.ErrTokenSignatureInvalid, err)
}

func TestWrongTokenType(t *testing.T) {
	refresh, err := CreateToken("alice", TokenTypeRefresh, testSecret, time.Hour)
	require.NoError(t, err)

	// A refresh token must never pass as an access token, and vice versa.
	_, err = GetTypedClaimFromToken(refresh, TokenTypeAccess, Secret(testSecret))
	hasCode(t, servererrs.ErrTokenInvalidType, err)

	access, err := CreateToken("alice", TokenTypeAccess, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = GetTypedClaimFromToken(access, TokenTypeRefresh, Secret(testSecret))
	hasCode(t, servererrs.ErrTokenInvalidType, err)
}
