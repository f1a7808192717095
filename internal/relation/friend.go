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

// Package relation implements the friendship state machine: directed friend
// requests, the derived undirected friendship relation, and the
// auto-accept-on-reverse-request rule.
package relation

import (
	"context"
	"time"

	"github.com/openimsdk/tools/log"
	"github.com/openimsdk/tools/utils/datautil"

	"github.com/linkup-im/linkup/pkg/common/servererrs"
	"github.com/linkup-im/linkup/pkg/common/storage/controller"
	"github.com/linkup-im/linkup/pkg/common/storage/database/mgo"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

const searchLimit = 20

// UserPublic is the user shape exposed to other users.
type UserPublic struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	LastSeen    time.Time `json:"last_seen"`
}

// FriendRequestResponse reports a send outcome: status is "pending" for a
// new request and "accepted" when a reverse pending request auto-accepted,
// in which case ID is the friendship ID.
type FriendRequestResponse struct {
	ID                string `json:"id"`
	SenderUsername    string `json:"sender_username"`
	RecipientUsername string `json:"recipient_username"`
	Status            string `json:"status"`
}

type SendRequestRequest struct {
	Username string `json:"username" binding:"required"`
}

type RespondRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

type FriendService struct {
	friendDatabase controller.FriendDatabase
	userDatabase   controller.UserDatabase
}

func NewFriendService(friendDatabase controller.FriendDatabase, userDatabase controller.UserDatabase) *FriendService {
	return &FriendService{
		friendDatabase: friendDatabase,
		userDatabase:   userDatabase,
	}
}

// Search returns up to 20 users whose username contains query, excluding the
// caller, the caller's friends, and anyone the caller has a request row
// toward in any state. Rejected requests keep their recipient hidden.
func (s *FriendService) Search(ctx context.Context, currentUsername, query string) ([]*UserPublic, error) {
	friends, err := s.friendDatabase.FindFriendUsernames(ctx, currentUsername)
	if err != nil {
		return nil, err
	}
	requested, err := s.friendDatabase.FindSentRecipients(ctx, currentUsername)
	if err != nil {
		return nil, err
	}
	excluded := datautil.Distinct(append(append([]string{currentUsername}, friends...), requested...))
	users, err := s.userDatabase.Search(ctx, query, excluded, searchLimit)
	if err != nil {
		return nil, err
	}
	return usersToPublic(users), nil
}

// SendRequest runs the ordered precondition checks and either records a
// pending request or, when a pending reverse request exists, auto-accepts it
// and creates the friendship.
func (s *FriendService) SendRequest(ctx context.Context, senderUsername, recipientUsername string) (*FriendRequestResponse, error) {
	if senderUsername == recipientUsername {
		return nil, servererrs.ErrCannotFriendSelf.WithDetail("cannot send a friend request to yourself").Wrap()
	}
	if exist, err := s.userDatabase.ExistUsername(ctx, recipientUsername); err != nil {
		return nil, err
	} else if !exist {
		return nil, servererrs.ErrUserNotFound.WithDetail("recipient not found").Wrap()
	}
	if exist, err := s.friendDatabase.ExistFriendship(ctx, senderUsername, recipientUsername); err != nil {
		return nil, err
	} else if exist {
		return nil, servererrs.ErrFriendshipAlreadyExists.WithDetail("already friends").Wrap()
	}
	if _, err := s.friendDatabase.TakeRequest(ctx, senderUsername, recipientUsername); err == nil {
		return nil, servererrs.ErrFriendRequestAlreadyExists.WithDetail("request already sent").Wrap()
	} else if !mgo.IsNotFound(err) {
		return nil, err
	}
	now := time.Now().UTC()
	reverse, err := s.friendDatabase.TakeRequest(ctx, recipientUsername, senderUsername)
	if err == nil && reverse.HandleResult == model.FriendRequestPending {
		friendship, err := s.friendDatabase.BecomeFriends(ctx, senderUsername, recipientUsername, now)
		if err != nil {
			return nil, err
		}
		log.ZInfo(ctx, "friend request auto-accepted", "sender", senderUsername, "recipient", recipientUsername)
		return &FriendRequestResponse{
			ID:                friendship.FriendshipID,
			SenderUsername:    senderUsername,
			RecipientUsername: recipientUsername,
			Status:            "accepted",
		}, nil
	}
	if err != nil && !mgo.IsNotFound(err) {
		return nil, err
	}
	request, err := s.friendDatabase.CreateRequest(ctx, senderUsername, recipientUsername, now)
	if err != nil {
		return nil, err
	}
	log.ZInfo(ctx, "friend request created", "sender", senderUsername, "recipient", recipientUsername)
	return &FriendRequestResponse{
		ID:                request.RequestID,
		SenderUsername:    senderUsername,
		RecipientUsername: recipientUsername,
		Status:            "pending",
	}, nil
}

// AcceptRequest creates the friendship and removes the request rows in both
// directions. Returns the sender so the caller can show the new friend.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, currentUsername string) (*UserPublic, error) {
	request, err := s.takeAuthorizedRequest(ctx, requestID, currentUsername)
	if err != nil {
		return nil, err
	}
	if _, err := s.friendDatabase.BecomeFriends(ctx, request.SenderUsername, request.RecipientUsername, time.Now().UTC()); err != nil {
		return nil, err
	}
	log.ZInfo(ctx, "friend request accepted", "requestID", requestID, "sender", request.SenderUsername, "recipient", currentUsername)
	return s.takePublic(ctx, request.SenderUsername)
}

// RejectRequest transitions the request to rejected. The row is kept, which
// blocks re-requests from the same sender.
func (s *FriendService) RejectRequest(ctx context.Context, requestID, currentUsername string) (*UserPublic, error) {
	request, err := s.takeAuthorizedRequest(ctx, requestID, currentUsername)
	if err != nil {
		return nil, err
	}
	if err := s.friendDatabase.RejectRequest(ctx, requestID, time.Now().UTC()); err != nil {
		return nil, err
	}
	log.ZInfo(ctx, "friend request rejected", "requestID", requestID, "sender", request.SenderUsername, "recipient", currentUsername)
	return s.takePublic(ctx, request.SenderUsername)
}

func (s *FriendService) takeAuthorizedRequest(ctx context.Context, requestID, currentUsername string) (*model.FriendRequest, error) {
	request, err := s.friendDatabase.TakeRequestByID(ctx, requestID)
	if err != nil {
		if mgo.IsNotFound(err) {
			return nil, servererrs.ErrFriendRequestNotFound.WithDetail("friend request not found").Wrap()
		}
		return nil, err
	}
	if request.RecipientUsername != currentUsername {
		return nil, servererrs.ErrNotAuthorized.WithDetail("only the recipient may respond to a friend request").Wrap()
	}
	if request.HandleResult != model.FriendRequestPending {
		return nil, servererrs.ErrInvalidFriendRequestState.WithDetail(
			"friend request already " + model.FriendRequestStatus(request.HandleResult)).Wrap()
	}
	return request, nil
}

// ListReceived returns the pending requests addressed to the user.
func (s *FriendService) ListReceived(ctx context.Context, username string) ([]*FriendRequestResponse, error) {
	requests, err := s.friendDatabase.FindRequestsToUser(ctx, username, []int{model.FriendRequestPending})
	if err != nil {
		return nil, err
	}
	return requestsToResponses(requests), nil
}

// ListSent returns the pending requests the user has sent.
func (s *FriendService) ListSent(ctx context.Context, username string) ([]*FriendRequestResponse, error) {
	requests, err := s.friendDatabase.FindRequestsFromUser(ctx, username, []int{model.FriendRequestPending})
	if err != nil {
		return nil, err
	}
	return requestsToResponses(requests), nil
}

// ListFriends returns everyone sharing a friendship row with the user.
func (s *FriendService) ListFriends(ctx context.Context, username string) ([]*UserPublic, error) {
	friendUsernames, err := s.friendDatabase.FindFriendUsernames(ctx, username)
	if err != nil {
		return nil, err
	}
	users, err := s.userDatabase.FindByUsernames(ctx, friendUsernames)
	if err != nil {
		return nil, err
	}
	return usersToPublic(users), nil
}

// AreFriends reports whether the two users share a friendship row.
func (s *FriendService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	return s.friendDatabase.ExistFriendship(ctx, a, b)
}

func (s *FriendService) takePublic(ctx context.Context, username string) (*UserPublic, error) {
	user, err := s.userDatabase.Take(ctx, username)
	if err != nil {
		if mgo.IsNotFound(err) {
			return nil, servererrs.ErrUserNotFound.WithDetail("user not found").Wrap()
		}
		return nil, err
	}
	return userToPublic(user), nil
}

func userToPublic(user *model.User) *UserPublic {
	return &UserPublic{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		LastSeen:    user.LastSeen,
	}
}

func usersToPublic(users []*model.User) []*UserPublic {
	return datautil.Slice(users, userToPublic)
}

func requestsToResponses(requests []*model.FriendRequest) []*FriendRequestResponse {
	return datautil.Slice(requests, func(request *model.FriendRequest) *FriendRequestResponse {
		return &FriendRequestResponse{
			ID:                request.RequestID,
			SenderUsername:    request.SenderUsername,
			RecipientUsername: request.RecipientUsername,
			Status:            model.FriendRequestStatus(request.HandleResult),
		}
	})
}
