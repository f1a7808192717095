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

func NewPendingMessageMongo(db *mongo.Database) (database.PendingMessage, error) {
	coll := db.Collection(database.PendingMessageName)
	_, err := coll.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "message_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "recipient_username", Value: 1},
				{Key: "create_time", Value: 1},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &PendingMessageMgo{coll: coll}, nil
}

type PendingMessageMgo struct {
	coll *mongo.Collection
}

func (m *PendingMessageMgo) Create(ctx context.Context, messages []*model.PendingMessage) error {
	return mongoutil.InsertMany(ctx, m.coll, messages)
}

func (m *PendingMessageMgo) Take(ctx context.Context, messageID string) (*model.PendingMessage, error) {
	return mongoutil.FindOne[*model.PendingMessage](ctx, m.coll, bson.M{"message_id": messageID})
}

// FindByRecipient returns undelivered messages oldest first, so redelivery
// preserves the original send order.
func (m *PendingMessageMgo) FindByRecipient(ctx context.Context, recipientUsername string) ([]*model.PendingMessage, error) {
	filter := bson.M{"recipient_username": recipientUsername}
	opt := options.Find().SetSort(bson.D{{Key: "create_time", Value: 1}})
	return mongoutil.Find[*model.PendingMessage](ctx, m.coll, filter, opt)
}

func (m *PendingMessageMgo) Delete(ctx context.Context, messageID string) error {
	return mongoutil.DeleteOne(ctx, m.coll, bson.M{"message_id": messageID})
}

func (m *PendingMessageMgo) CountByRecipient(ctx context.Context, recipientUsername string) (int64, error) {
	return mongoutil.Count(ctx, m.coll, bson.M{"recipient_username": recipientUsername})
}
