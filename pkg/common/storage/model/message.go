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

// PendingMessage is a message whose recipient has not yet acknowledged
// delivery. The row's existence is the undelivered state: acknowledgment
// deletes it.
type PendingMessage struct {
	MessageID         string    `bson:"message_id"`
	SenderUsername    string    `bson:"sender_username"`
	RecipientUsername string    `bson:"recipient_username"`
	Text              string    `bson:"text"`
	CreateTime        time.Time `bson:"create_time"`
}
