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
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-im/linkup/pkg/common/storage/cache/cachekey"
)

func TestGetFriendUsernamesHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewFriendCacheRedis(rdb)
	key := cachekey.GetFriendUsernamesKey("alice")

	mock.ExpectGet(key).SetVal(`["bob","carol"]`)

	usernames, err := c.GetFriendUsernames(context.Background(), "alice", func(ctx context.Context) ([]string, error) {
		t.Fatal("fetch must not run on a cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, usernames)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFriendUsernamesMissBackfills(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewFriendCacheRedis(rdb)
	key := cachekey.GetFriendUsernamesKey("alice")

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, []byte(`["bob"]`), friendExpireTime).SetVal("OK")

	usernames, err := c.GetFriendUsernames(context.Background(), "alice", func(ctx context.Context) ([]string, error) {
		return []string{"bob"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, usernames)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFriendUsernamesCorruptEntry(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewFriendCacheRedis(rdb)
	key := cachekey.GetFriendUsernamesKey("alice")

	mock.ExpectGet(key).SetVal(`not-json`)
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, []byte(`["bob"]`), friendExpireTime).SetVal("OK")

	usernames, err := c.GetFriendUsernames(context.Background(), "alice", func(ctx context.Context) ([]string, error) {
		return []string{"bob"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, usernames)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelFriendUsernames(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewFriendCacheRedis(rdb)

	mock.ExpectDel(cachekey.GetFriendUsernamesKey("alice"), cachekey.GetFriendUsernamesKey("bob")).SetVal(2)

	require.NoError(t, c.DelFriendUsernames(context.Background(), "alice", "bob"))
	assert.NoError(t, mock.ExpectationsWereMet())

	// No usernames, no round trip.
	require.NoError(t, c.DelFriendUsernames(context.Background()))
}
