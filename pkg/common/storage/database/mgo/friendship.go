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

package mgo

import (
	"context"

	"github.com/linkup-im/linkup/pkg/common/storage/database"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
	"github.com/openimsdk/tools/db/mongoutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewFriendshipMongo(db *mongo.Database) (database.Friendship, error) {
	coll := db.Collection(database.FriendshipName)
	_, err := coll.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "friendship_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user1_username", Value: 1},
				{Key: "user2_username", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, err
	}
	return &FriendshipMgo{coll: coll}, nil
}

type FriendshipMgo struct {
	coll *mongo.Collection
}

// pairFilter expects the canonical ordering, user1 < user2.
func (f *FriendshipMgo) pairFilter(user1Username, user2Username string) bson.M {
	return bson.M{"user1_username": user1Username, "user2_username": user2Username}
}

func (f *FriendshipMgo) Create(ctx context.Context, friendships []*model.Friendship) error {
	return mongoutil.InsertMany(ctx, f.coll, friendships)
}

func (f *FriendshipMgo) Take(ctx context.Context, user1Username, user2Username string) (*model.Friendship, error) {
	return mongoutil.FindOne[*model.Friendship](ctx, f.coll, f.pairFilter(user1Username, user2Username))
}

func (f *FriendshipMgo) Exist(ctx context.Context, user1Username, user2Username string) (bool, error) {
	count, err := mongoutil.Count(ctx, f.coll, f.pairFilter(user1Username, user2Username))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (f *FriendshipMgo) FindByUser(ctx context.Context, username string) ([]*model.Friendship, error) {
	filter := bson.M{"$or": []bson.M{
		{"user1_username": username},
		{"user2_username": username},
	}}
	return mongoutil.Find[*model.Friendship](ctx, f.coll, filter, options.Find().SetSort(bson.D{{Key: "create_time", Value: -1}}))
}

func (f *FriendshipMgo) FindFriendUsernames(ctx context.Context, username string) ([]string, error) {
	friendships, err := f.FindByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		usernames = append(usernames, friendship.Other(username))
	}
	return usernames, nil
}
