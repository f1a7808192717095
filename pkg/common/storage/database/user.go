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

package database

import (
	"context"
	"time"

	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

// User is the account store.
type User interface {
	Create(ctx context.Context, users []*model.User) error
	Take(ctx context.Context, username string) (*model.User, error)
	TakeByEmail(ctx context.Context, email string) (*model.User, error)
	ExistUsername(ctx context.Context, username string) (bool, error)
	ExistEmail(ctx context.Context, email string) (bool, error)
	UpdateLastSeen(ctx context.Context, username string, at time.Time) error
	UpdateRefreshToken(ctx context.Context, username, hashedToken string, expiresAt time.Time) error
	// Search returns up to limit users whose username case-insensitively
	// contains query, skipping the excluded usernames.
	Search(ctx context.Context, query string, excluded []string, limit int) ([]*model.User, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error)
}
