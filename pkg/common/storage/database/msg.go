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

package database

import (
	"context"

	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

// PendingMessage stores undelivered messages. Rows are deleted on
// acknowledgment.
type PendingMessage interface {
	Create(ctx context.Context, messages []*model.PendingMessage) error
	Take(ctx context.Context, messageID string) (*model.PendingMessage, error)
	// FindByRecipient returns the recipient's undelivered messages in FIFO
	// order (create_time ascending).
	FindByRecipient(ctx context.Context, recipientUsername string) ([]*model.PendingMessage, error)
	Delete(ctx context.Context, messageID string) error
	CountByRecipient(ctx context.Context, recipientUsername string) (int64, error)
}
