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

	"github.com/google/uuid"
	"github.com/linkup-im/linkup/pkg/common/storage/cache"
	"github.com/linkup-im/linkup/pkg/common/storage/database"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
	"github.com/openimsdk/tools/db/tx"
)

type FriendDatabase interface {
	// CreateRequest inserts a pending request from sender to recipient.
	CreateRequest(ctx context.Context, senderUsername, recipientUsername string, at time.Time) (*model.FriendRequest, error)
	TakeRequest(ctx context.Context, senderUsername, recipientUsername string) (*model.FriendRequest, error)
	TakeRequestByID(ctx context.Context, requestID string) (*model.FriendRequest, error)
	// RejectRequest marks the request rejected; the row stays and keeps
	// blocking re-requests from the same sender.
	RejectRequest(ctx context.Context, requestID string, at time.Time) error
	// BecomeFriends creates the friendship and deletes the request rows in
	// both directions, in one transaction, then invalidates both sides'
	// cached friend lists.
	BecomeFriends(ctx context.Context, a, b string, at time.Time) (*model.Friendship, error)
	ExistFriendship(ctx context.Context, a, b string) (bool, error)
	FindFriendships(ctx context.Context, username string) ([]*model.Friendship, error)
	// FindFriendUsernames goes through the friend cache.
	FindFriendUsernames(ctx context.Context, username string) ([]string, error)
	FindRequestsToUser(ctx context.Context, recipientUsername string, handleResults []int) ([]*model.FriendRequest, error)
	FindRequestsFromUser(ctx context.Context, senderUsername string, handleResults []int) ([]*model.FriendRequest, error)
	// FindSentRecipients returns every username the sender has a request row
	// toward, in any state.
	FindSentRecipients(ctx context.Context, senderUsername string) ([]string, error)
}

func NewFriendDatabase(friendRequest database.FriendRequest, friendship database.Friendship, cache cache.FriendCache, tx tx.Tx) FriendDatabase {
	return &friendDatabase{
		friendRequestDB: friendRequest,
		friendshipDB:    friendship,
		cache:           cache,
		tx:              tx,
	}
}

type friendDatabase struct {
	friendRequestDB database.FriendRequest
	friendshipDB    database.Friendship
	cache           cache.FriendCache
	tx              tx.Tx
}

func (f *friendDatabase) CreateRequest(ctx context.Context, senderUsername, recipientUsername string, at time.Time) (*model.FriendRequest, error) {
	request := &model.FriendRequest{
		RequestID:         uuid.NewString(),
		SenderUsername:    senderUsername,
		RecipientUsername: recipientUsername,
		HandleResult:      model.FriendRequestPending,
		CreateTime:        at,
		UpdateTime:        at,
	}
	if err := f.friendRequestDB.Create(ctx, []*model.FriendRequest{request}); err != nil {
		return nil, err
	}
	return request, nil
}

func (f *friendDatabase) TakeRequest(ctx context.Context, senderUsername, recipientUsername string) (*model.FriendRequest, error) {
	return f.friendRequestDB.Take(ctx, senderUsername, recipientUsername)
}

func (f *friendDatabase) TakeRequestByID(ctx context.Context, requestID string) (*model.FriendRequest, error) {
	return f.friendRequestDB.TakeByID(ctx, requestID)
}

func (f *friendDatabase) RejectRequest(ctx context.Context, requestID string, at time.Time) error {
	return f.friendRequestDB.UpdateHandleResult(ctx, requestID, model.FriendRequestRejected, at)
}

func (f *friendDatabase) BecomeFriends(ctx context.Context, a, b string, at time.Time) (*model.Friendship, error) {
	user1, user2 := model.SortUsernamePair(a, b)
	friendship := &model.Friendship{
		FriendshipID:  uuid.NewString(),
		User1Username: user1,
		User2Username: user2,
		CreateTime:    at,
	}
	err := f.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := f.friendRequestDB.DeleteBothDirections(ctx, a, b); err != nil {
			return err
		}
		return f.friendshipDB.Create(ctx, []*model.Friendship{friendship})
	})
	if err != nil {
		return nil, err
	}
	if err := f.cache.DelFriendUsernames(ctx, a, b); err != nil {
		return nil, err
	}
	return friendship, nil
}

func (f *friendDatabase) ExistFriendship(ctx context.Context, a, b string) (bool, error) {
	user1, user2 := model.SortUsernamePair(a, b)
	return f.friendshipDB.Exist(ctx, user1, user2)
}

func (f *friendDatabase) FindFriendships(ctx context.Context, username string) ([]*model.Friendship, error) {
	return f.friendshipDB.FindByUser(ctx, username)
}

func (f *friendDatabase) FindFriendUsernames(ctx context.Context, username string) ([]string, error) {
	return f.cache.GetFriendUsernames(ctx, username, func(ctx context.Context) ([]string, error) {
		return f.friendshipDB.FindFriendUsernames(ctx, username)
	})
}

func (f *friendDatabase) FindRequestsToUser(ctx context.Context, recipientUsername string, handleResults []int) ([]*model.FriendRequest, error) {
	return f.friendRequestDB.FindToUser(ctx, recipientUsername, handleResults)
}

func (f *friendDatabase) FindRequestsFromUser(ctx context.Context, senderUsername string, handleResults []int) ([]*model.FriendRequest, error) {
	return f.friendRequestDB.FindFromUser(ctx, senderUsername, handleResults)
}

func (f *friendDatabase) FindSentRecipients(ctx context.Context, senderUsername string) ([]string, error) {
	return f.friendRequestDB.FindRecipients(ctx, senderUsername)
}
