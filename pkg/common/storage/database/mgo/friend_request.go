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
	"time"

	"github.com/linkup-im/linkup/pkg/common/storage/database"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
	"github.com/openimsdk/tools/db/mongoutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewFriendRequestMongo(db *mongo.Database) (database.FriendRequest, error) {
	coll := db.Collection(database.FriendRequestName)
	_, err := coll.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "sender_username", Value: 1},
				{Key: "recipient_username", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "create_time", Value: -1}},
		},
	})
	if err != nil {
		return nil, err
	}
	return &FriendRequestMgo{coll: coll}, nil
}

type FriendRequestMgo struct {
	coll *mongo.Collection
}

func (f *FriendRequestMgo) sort() any {
	return bson.D{{Key: "create_time", Value: -1}}
}

func (f *FriendRequestMgo) Create(ctx context.Context, requests []*model.FriendRequest) error {
	return mongoutil.InsertMany(ctx, f.coll, requests)
}

func (f *FriendRequestMgo) Take(ctx context.Context, senderUsername, recipientUsername string) (*model.FriendRequest, error) {
	filter := bson.M{"sender_username": senderUsername, "recipient_username": recipientUsername}
	return mongoutil.FindOne[*model.FriendRequest](ctx, f.coll, filter)
}

func (f *FriendRequestMgo) TakeByID(ctx context.Context, requestID string) (*model.FriendRequest, error) {
	return mongoutil.FindOne[*model.FriendRequest](ctx, f.coll, bson.M{"request_id": requestID})
}

func (f *FriendRequestMgo) UpdateHandleResult(ctx context.Context, requestID string, handleResult int, at time.Time) error {
	update := bson.M{"$set": bson.M{"handle_result": handleResult, "update_time": at}}
	return mongoutil.UpdateOne(ctx, f.coll, bson.M{"request_id": requestID}, update, true)
}

func (f *FriendRequestMgo) DeleteBothDirections(ctx context.Context, a, b string) error {
	filter := bson.M{"$or": []bson.M{
		{"sender_username": a, "recipient_username": b},
		{"sender_username": b, "recipient_username": a},
	}}
	return mongoutil.DeleteMany(ctx, f.coll, filter)
}

func (f *FriendRequestMgo) FindRecipients(ctx context.Context, senderUsername string) ([]string, error) {
	filter := bson.M{"sender_username": senderUsername}
	opt := options.Find().SetProjection(bson.M{"_id": 0, "recipient_username": 1})
	return mongoutil.Find[string](ctx, f.coll, filter, opt)
}

func (f *FriendRequestMgo) FindToUser(ctx context.Context, recipientUsername string, handleResults []int) ([]*model.FriendRequest, error) {
	filter := bson.M{"recipient_username": recipientUsername}
	if len(handleResults) > 0 {
		filter["handle_result"] = bson.M{"$in": handleResults}
	}
	return mongoutil.Find[*model.FriendRequest](ctx, f.coll, filter, options.Find().SetSort(f.sort()))
}

func (f *FriendRequestMgo) FindFromUser(ctx context.Context, senderUsername string, handleResults []int) ([]*model.FriendRequest, error) {
	filter := bson.M{"sender_username": senderUsername}
	if len(handleResults) > 0 {
		filter["handle_result"] = bson.M{"$in": handleResults}
	}
	return mongoutil.Find[*model.FriendRequest](ctx, f.coll, filter, options.Find().SetSort(f.sort()))
}
