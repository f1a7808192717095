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

package controller

import (
	"context"
	"time"

	"github.com/linkup-im/linkup/pkg/common/storage/database"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
	"github.com/openimsdk/tools/db/tx"
)

type UserDatabase interface {
	// Create inserts the account and fails on username or email collision.
	Create(ctx context.Context, user *model.User) error
	Take(ctx context.Context, username string) (*model.User, error)
	TakeByEmail(ctx context.Context, email string) (*model.User, error)
	ExistUsername(ctx context.Context, username string) (bool, error)
	ExistEmail(ctx context.Context, email string) (bool, error)
	UpdateLastSeen(ctx context.Context, username string, at time.Time) error
	// SetRefreshToken stores the hashed refresh token and its expiry on the
	// user row, replacing any previous one.
	SetRefreshToken(ctx context.Context, username, hashedToken string, expiresAt time.Time) error
	Search(ctx context.Context, query string, excluded []string, limit int) ([]*model.User, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error)
}

func NewUserDatabase(userDB database.User, tx tx.Tx) UserDatabase {
	return &userDatabase{userDB: userDB, tx: tx}
}

type userDatabase struct {
	userDB database.User
	tx     tx.Tx
}

func (u *userDatabase) Create(ctx context.Context, user *model.User) error {
	return u.tx.Transaction(ctx, func(ctx context.Context) error {
		return u.userDB.Create(ctx, []*model.User{user})
	})
}

func (u *userDatabase) Take(ctx context.Context, username string) (*model.User, error) {
	return u.userDB.Take(ctx, username)
}

func (u *userDatabase) TakeByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.userDB.TakeByEmail(ctx, email)
}

func (u *userDatabase) ExistUsername(ctx context.Context, username string) (bool, error) {
	return u.userDB.ExistUsername(ctx, username)
}

func (u *userDatabase) ExistEmail(ctx context.Context, email string) (bool, error) {
	return u.userDB.ExistEmail(ctx, email)
}

func (u *userDatabase) UpdateLastSeen(ctx context.Context, username string, at time.Time) error {
	return u.userDB.UpdateLastSeen(ctx, username, at)
}

func (u *userDatabase) SetRefreshToken(ctx context.Context, username, hashedToken string, expiresAt time.Time) error {
	return u.userDB.UpdateRefreshToken(ctx, username, hashedToken, expiresAt)
}

func (u *userDatabase) Search(ctx context.Context, query string, excluded []string, limit int) ([]*model.User, error) {
	return u.userDB.Search(ctx, query, excluded, limit)
}

func (u *userDatabase) FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error) {
	return u.userDB.FindByUsernames(ctx, usernames)
}
