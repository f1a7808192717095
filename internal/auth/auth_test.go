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

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/mw/specialerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-im/linkup/pkg/common/config"
	"github.com/linkup-im/linkup/pkg/common/encrypt"
	"github.com/linkup-im/linkup/pkg/common/servererrs"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

type fakeUserDB struct {
	users map[string]*model.User
}

func newFakeUserDB() *fakeUserDB {
	return &fakeUserDB{users: make(map[string]*model.User)}
}

func notFound() error {
	return errs.ErrRecordNotFound.WrapMsg("not found")
}

func (f *fakeUserDB) Create(ctx context.Context, user *model.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserDB) Take(ctx context.Context, username string) (*model.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, notFound()
}

func (f *fakeUserDB) TakeByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, notFound()
}

func (f *fakeUserDB) ExistUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeUserDB) ExistEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.TakeByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserDB) UpdateLastSeen(ctx context.Context, username string, at time.Time) error {
	user, ok := f.users[username]
	if !ok {
		return notFound()
	}
	user.LastSeen = at
	return nil
}

func (f *fakeUserDB) SetRefreshToken(ctx context.Context, username, hashedToken string, expiresAt time.Time) error {
	user, ok := f.users[username]
	if !ok {
		return notFound()
	}
	user.HashedRefreshToken = hashedToken
	user.RefreshTokenExpiresAt = expiresAt
	return nil
}

func (f *fakeUserDB) Search(ctx context.Context, query string, excluded []string, limit int) ([]*model.User, error) {
	return nil, nil
}

func (f *fakeUserDB) FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error) {
	return nil, nil
}

func assertCode(t *testing.T, want errs.CodeError, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, want.Is(specialerror.ErrCode(errs.Unwrap(err))), "unexpected error: %v", err)
}

func newTestService(minPasswordLength int) (*AuthService, *fakeUserDB) {
	db := newFakeUserDB()
	cfg := &config.Config{
		Token: config.TokenPolicy{
			Secret:              "test-secret",
			AccessExpireMinutes: 30,
			RefreshExpireDays:   7,
		},
		Password: config.Password{MinLength: minPasswordLength},
	}
	return NewAuthService(db, cfg), db
}

func register(t *testing.T, service *AuthService, username string) *TokenResponse {
	t.Helper()
	pair, err := service.Register(context.Background(), &RegisterRequest{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "pa55word!",
		DisplayName: username,
	})
	require.NoError(t, err)
	return pair
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	service, db := newTestService(1)
	pair := register(t, service, "alice")

	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, "alice", pair.Username)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	user, err := db.Take(context.Background(), "alice")
	require.NoError(t, err)
	// Credentials are hashed at rest, never stored in clear.
	assert.NotEqual(t, "pa55word!", user.HashedPassword)
	assert.NotEqual(t, pair.RefreshToken, user.HashedRefreshToken)
	assert.True(t, encrypt.TokenVerify(pair.RefreshToken, user.HashedRefreshToken))
	assert.True(t, user.RefreshTokenExpiresAt.After(time.Now()))

	resolved, err := service.ResolveBearer(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", resolved.Username)
}

func TestRegisterShortUsername(t *testing.T) {
	service, _ := newTestService(1)
	_, err := service.Register(context.Background(), &RegisterRequest{
		Username: "ab", Email: "ab@example.com", Password: "x", DisplayName: "ab",
	})
	assertCode(t, servererrs.ErrUsernameTooShort, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, _ := newTestService(1)
	register(t, service, "alice")
	_, err := service.Register(context.Background(), &RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "x", DisplayName: "alice",
	})
	assertCode(t, servererrs.ErrUsernameExists, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService(1)
	register(t, service, "alice")
	_, err := service.Register(context.Background(), &RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "x", DisplayName: "alice2",
	})
	assertCode(t, servererrs.ErrEmailExists, err)
}

func TestRegisterWeakPassword(t *testing.T) {
	service, _ := newTestService(12)
	_, err := service.Register(context.Background(), &RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "short", DisplayName: "alice",
	})
	assertCode(t, servererrs.ErrWeakPassword, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := newTestService(1)
	_, err := service.Login(context.Background(), &LoginRequest{Email: "ghost@example.com", Password: "x"})
	assertCode(t, servererrs.ErrEmailNotFound, err)
}

func TestLoginWrongPassword(t *testing.T) {
	service, _ := newTestService(1)
	register(t, service, "alice")
	_, err := service.Login(context.Background(), &LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assertCode(t, servererrs.ErrInvalidCredentials, err)
}

func TestLoginRotatesRefreshHash(t *testing.T) {
	service, db := newTestService(1)
	first := register(t, service, "alice")

	second, err := service.Login(context.Background(), &LoginRequest{Email: "alice@example.com", Password: "pa55word!"})
	require.NoError(t, err)

	user, err := db.Take(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, encrypt.TokenVerify(second.RefreshToken, user.HashedRefreshToken))
	// The pre-login refresh token no longer matches the stored hash.
	_, err = service.Refresh(context.Background(), &RefreshRequest{RefreshToken: first.RefreshToken})
	assertCode(t, servererrs.ErrAuthentication, err)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	service, _ := newTestService(1)
	pair := register(t, service, "alice")

	refreshed, err := service.Refresh(context.Background(), &RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	// No rotation: the same refresh token comes back.
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken)

	_, err = service.ResolveBearer(context.Background(), refreshed.AccessToken)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	service, _ := newTestService(1)
	pair := register(t, service, "alice")
	_, err := service.Refresh(context.Background(), &RefreshRequest{RefreshToken: pair.AccessToken})
	assertCode(t, servererrs.ErrTokenInvalidType, err)
}

func TestRefreshRejectsExpiredStoredToken(t *testing.T) {
	service, db := newTestService(1)
	pair := register(t, service, "alice")

	user, err := db.Take(context.Background(), "alice")
	require.NoError(t, err)
	user.RefreshTokenExpiresAt = time.Now().UTC().Add(-time.Hour)

	_, err = service.Refresh(context.Background(), &RefreshRequest{RefreshToken: pair.RefreshToken})
	assertCode(t, servererrs.ErrAuthentication, err)
}

func TestResolveBearerRejectsRefreshToken(t *testing.T) {
	service, _ := newTestService(1)
	pair := register(t, service, "alice")
	_, err := service.ResolveBearer(context.Background(), pair.RefreshToken)
	assertCode(t, servererrs.ErrTokenInvalidType, err)
}

func TestResolveBearerTouchesLastSeen(t *testing.T) {
	service, db := newTestService(1)
	pair := register(t, service, "alice")

	before := time.Now().UTC().Add(-time.Second)
	_, err := service.ResolveBearer(context.Background(), pair.AccessToken)
	require.NoError(t, err)

	user, err := db.Take(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, user.LastSeen.After(before))
}

func TestResolveChannelToken(t *testing.T) {
	service, _ := newTestService(1)
	pair := register(t, service, "alice")

	require.NoError(t, service.ResolveChannelToken(pair.AccessToken, "alice"))

	err := service.ResolveChannelToken(pair.AccessToken, "bob")
	assertCode(t, servererrs.ErrAuthentication, err)

	err = service.ResolveChannelToken(pair.RefreshToken, "alice")
	assertCode(t, servererrs.ErrTokenInvalidType, err)
}
