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

package cache

import "context"

// FetchFriendUsernames loads the friend username list from storage on a
// cache miss.
type FetchFriendUsernames func(ctx context.Context) ([]string, error)

// FriendCache caches each user's friend username list. Writers must
// invalidate both sides of a pair in the same call that commits the change.
type FriendCache interface {
	GetFriendUsernames(ctx context.Context, username string, fetch FetchFriendUsernames) ([]string, error)
	DelFriendUsernames(ctx context.Context, usernames ...string) error
}
