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

// User is the account record. Username is the primary identity; the two
// refresh-token fields are empty until a token pair has been issued.
type User struct {
	Username              string    `bson:"username"`
	Email                 string    `bson:"email"`
	DisplayName           string    `bson:"display_name"`
	HashedPassword        string    `bson:"hashed_password"`
	HashedRefreshToken    string    `bson:"hashed_refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `bson:"refresh_token_expires_at,omitempty"`
	LastSeen              time.Time `bson:"last_seen"`
	CreateTime            time.Time `bson:"create_time"`
}
