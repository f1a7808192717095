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

package model

import "time"

// Friend request handle results.
const (
	FriendRequestPending  = 0
	FriendRequestAccepted = 1
	FriendRequestRejected = -1
)

// FriendRequestStatus maps a handle result to its wire representation.
func FriendRequestStatus(result int) string {
	switch result {
	case FriendRequestAccepted:
		return "accepted"
	case FriendRequestRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// FriendRequest is a directed request from SenderUsername to
// RecipientUsername. At most one row exists per ordered pair.
type FriendRequest struct {
	RequestID         string    `bson:"request_id"`
	SenderUsername    string    `bson:"sender_username"`
	RecipientUsername string    `bson:"recipient_username"`
	HandleResult      int       `bson:"handle_result"`
	CreateTime        time.Time `bson:"create_time"`
	UpdateTime        time.Time `bson:"update_time"`
}

// Friendship is the undirected relation, stored once with
// User1Username < User2Username.
type Friendship struct {
	FriendshipID  string    `bson:"friendship_id"`
	User1Username string    `bson:"user1_username"`
	User2Username string    `bson:"user2_username"`
	CreateTime    time.Time `bson:"create_time"`
}

// Other returns the friend of username in this friendship.
func (f *Friendship) Other(username string) string {
	if f.User1Username == username {
		return f.User2Username
	}
	return f.User1Username
}

// SortUsernamePair returns the canonical ordering of an unordered username
// pair, the order friendship rows are stored in.
func SortUsernamePair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
