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

// FriendRequest stores directed friend requests, unique per ordered
// (sender, recipient) pair.
type FriendRequest interface {
	Create(ctx context.Context, requests []*model.FriendRequest) error
	Take(ctx context.Context, senderUsername, recipientUsername string) (*model.FriendRequest, error)
	TakeByID(ctx context.Context, requestID string) (*model.FriendRequest, error)
	UpdateHandleResult(ctx context.Context, requestID string, handleResult int, at time.Time) error
	// DeleteBothDirections removes the rows in both directions of the pair,
	// if present.
	DeleteBothDirections(ctx context.Context, a, b string) error
	FindRecipients(ctx context.Context, senderUsername string) ([]string, error)
	FindToUser(ctx context.Context, recipientUsername string, handleResults []int) ([]*model.FriendRequest, error)
	FindFromUser(ctx context.Context, senderUsername string, handleResults []int) ([]*model.FriendRequest, error)
}

// Friendship stores the undirected relation with the canonical ordering
// user1 < user2, unique per pair.
type Friendship interface {
	Create(ctx context.Context, friendships []*model.Friendship) error
	Take(ctx context.Context, user1Username, user2Username string) (*model.Friendship, error)
	Exist(ctx context.Context, user1Username, user2Username string) (bool, error)
	FindByUser(ctx context.Context, username string) ([]*model.Friendship, error)
	FindFriendUsernames(ctx context.Context, username string) ([]string, error)
}
