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
	"regexp"
	"time"

	"github.com/linkup-im/linkup/pkg/common/storage/database"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
	"github.com/openimsdk/tools/db/mongoutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewUserMongo(db *mongo.Database) (database.User, error) {
	coll := db.Collection(database.UserName)
	_, err := coll.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, err
	}
	return &UserMgo{coll: coll}, nil
}

type UserMgo struct {
	coll *mongo.Collection
}

func (u *UserMgo) Create(ctx context.Context, users []*model.User) error {
	return mongoutil.InsertMany(ctx, u.coll, users)
}

func (u *UserMgo) Take(ctx context.Context, username string) (*model.User, error) {
	return mongoutil.FindOne[*model.User](ctx, u.coll, bson.M{"username": username})
}

func (u *UserMgo) TakeByEmail(ctx context.Context, email string) (*model.User, error) {
	return mongoutil.FindOne[*model.User](ctx, u.coll, bson.M{"email": email})
}

func (u *UserMgo) ExistUsername(ctx context.Context, username string) (bool, error) {
	count, err := mongoutil.Count(ctx, u.coll, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *UserMgo) ExistEmail(ctx context.Context, email string) (bool, error) {
	count, err := mongoutil.Count(ctx, u.coll, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *UserMgo) UpdateLastSeen(ctx context.Context, username string, at time.Time) error {
	return mongoutil.UpdateOne(ctx, u.coll, bson.M{"username": username}, bson.M{"$set": bson.M{"last_seen": at}}, false)
}

func (u *UserMgo) UpdateRefreshToken(ctx context.Context, username, hashedToken string, expiresAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"hashed_refresh_token":     hashedToken,
		"refresh_token_expires_at": expiresAt,
	}}
	return mongoutil.UpdateOne(ctx, u.coll, bson.M{"username": username}, update, true)
}

func (u *UserMgo) Search(ctx context.Context, query string, excluded []string, limit int) ([]*model.User, error) {
	match := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	if len(excluded) > 0 {
		match["$nin"] = excluded
	}
	filter := bson.M{"username": match}
	opt := options.Find().SetSort(bson.D{{Key: "username", Value: 1}}).SetLimit(int64(limit))
	return mongoutil.Find[*model.User](ctx, u.coll, filter, opt)
}

func (u *UserMgo) FindByUsernames(ctx context.Context, usernames []string) ([]*model.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	filter := bson.M{"username": bson.M{"$in": usernames}}
	return mongoutil.Find[*model.User](ctx, u.coll, filter, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
}
