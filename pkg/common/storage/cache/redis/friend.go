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

package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/linkup-im/linkup/pkg/common/storage/cache"
	"github.com/linkup-im/linkup/pkg/common/storage/cache/cachekey"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/redis/go-redis/v9"
)

const (
	friendExpireTime = time.Second * 60 * 60 * 12
)

func NewFriendCacheRedis(rdb redis.UniversalClient) cache.FriendCache {
	return &friendCacheRedis{
		rdb:        rdb,
		expireTime: friendExpireTime,
	}
}

type friendCacheRedis struct {
	rdb        redis.UniversalClient
	expireTime time.Duration
}

func (f *friendCacheRedis) getFriendUsernamesKey(username string) string {
	return cachekey.GetFriendUsernamesKey(username)
}

// GetFriendUsernames is read-through: a hit decodes the cached list, a miss
// loads from storage and backfills with a TTL. A backfill failure only logs;
// the fetched list is still returned.
func (f *friendCacheRedis) GetFriendUsernames(ctx context.Context, username string, fetch cache.FetchFriendUsernames) ([]string, error) {
	key := f.getFriendUsernamesKey(username)
	val, err := f.rdb.Get(ctx, key).Result()
	if err == nil {
		var usernames []string
		if err := json.Unmarshal([]byte(val), &usernames); err == nil {
			return usernames, nil
		}
		// Corrupt entry, drop it and fall through to storage.
		if err := f.rdb.Del(ctx, key).Err(); err != nil {
			log.ZWarn(ctx, "del corrupt friend cache", err, "username", username)
		}
	} else if err != redis.Nil {
		return nil, errs.Wrap(err)
	}
	usernames, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(usernames)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	if err := f.rdb.Set(ctx, key, data, f.expireTime).Err(); err != nil {
		log.ZWarn(ctx, "set friend cache", err, "username", username)
	}
	return usernames, nil
}

func (f *friendCacheRedis) DelFriendUsernames(ctx context.Context, usernames ...string) error {
	if len(usernames) == 0 {
		return nil
	}
	keys := make([]string, 0, len(usernames))
	for _, username := range usernames {
		keys = append(keys, f.getFriendUsernamesKey(username))
	}
	if err := f.rdb.Del(ctx, keys...).Err(); err != nil {
		return errs.Wrap(err)
	}
	return nil
}
