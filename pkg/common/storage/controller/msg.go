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

package controller

import (
	"context"

	"github.com/linkup-im/linkup/pkg/common/storage/database"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

type MsgDatabase interface {
	CreateMessage(ctx context.Context, msg *model.PendingMessage) error
	TakeMessage(ctx context.Context, messageID string) (*model.PendingMessage, error)
	FindByRecipient(ctx context.Context, recipientUsername string) ([]*model.PendingMessage, error)
	DeleteMessage(ctx context.Context, messageID string) error
}

func NewMsgDatabase(msgDB database.PendingMessage) MsgDatabase {
	return &msgDatabase{msgDB: msgDB}
}

type msgDatabase struct {
	msgDB database.PendingMessage
}

func (m *msgDatabase) CreateMessage(ctx context.Context, msg *model.PendingMessage) error {
	return m.msgDB.Create(ctx, []*model.PendingMessage{msg})
}

func (m *msgDatabase) TakeMessage(ctx context.Context, messageID string) (*model.PendingMessage, error) {
	return m.msgDB.Take(ctx, messageID)
}

func (m *msgDatabase) FindByRecipient(ctx context.Context, recipientUsername string) ([]*model.PendingMessage, error) {
	return m.msgDB.FindByRecipient(ctx, recipientUsername)
}

func (m *msgDatabase) DeleteMessage(ctx context.Context, messageID string) error {
	return m.msgDB.Delete(ctx, messageID)
}
