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

// Package msg implements the message delivery engine: friendship-gated send,
// pending buffering, and delete-on-acknowledgment. Delivery is at-least-once;
// clients deduplicate on the server-assigned message ID.
package msg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openimsdk/tools/log"
	"github.com/openimsdk/tools/utils/datautil"

	"github.com/linkup-im/linkup/pkg/common/prommetrics"
	"github.com/linkup-im/linkup/pkg/common/servererrs"
	"github.com/linkup-im/linkup/pkg/common/storage/controller"
	"github.com/linkup-im/linkup/pkg/common/storage/database/mgo"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

// MessageResponse is the wire shape of a message.
type MessageResponse struct {
	ID                string    `json:"id"`
	SenderUsername    string    `json:"sender_username"`
	RecipientUsername string    `json:"recipient_username"`
	Text              string    `json:"text"`
	CreatedAt         time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	RecipientUsername string `json:"recipient_username" binding:"required"`
	Text              string `json:"text" binding:"required"`
}

// Pusher delivers frames to live realtime channels. Implemented by the
// websocket gateway; nil means no realtime push (tests, startup).
type Pusher interface {
	PushNewMessage(ctx context.Context, recipientUsername string, msg *MessageResponse) bool
	PushMessageDelivered(ctx context.Context, username, messageID string) bool
	IsOnline(username string) bool
}

type MsgService struct {
	msgDatabase    controller.MsgDatabase
	friendDatabase controller.FriendDatabase
	userDatabase   controller.UserDatabase
	pusher         Pusher
}

func NewMsgService(msgDatabase controller.MsgDatabase, friendDatabase controller.FriendDatabase, userDatabase controller.UserDatabase) *MsgService {
	return &MsgService{
		msgDatabase:    msgDatabase,
		friendDatabase: friendDatabase,
		userDatabase:   userDatabase,
	}
}

// SetPusher wires the realtime gateway in after construction; the gateway
// itself depends on this service for the flush and ack paths.
func (s *MsgService) SetPusher(pusher Pusher) {
	s.pusher = pusher
}

// Send persists the message and then pushes it if the recipient holds a live
// channel. The record stays pending either way; only the recipient's ack
// removes it.
func (s *MsgService) Send(ctx context.Context, senderUsername string, req *SendMessageRequest) (*MessageResponse, error) {
	if exist, err := s.userDatabase.ExistUsername(ctx, req.RecipientUsername); err != nil {
		return nil, err
	} else if !exist {
		prommetrics.MsgSendFailedCounter.Inc()
		return nil, servererrs.ErrUserNotFound.WithDetail("recipient not found").Wrap()
	}
	if friends, err := s.friendDatabase.ExistFriendship(ctx, senderUsername, req.RecipientUsername); err != nil {
		return nil, err
	} else if !friends {
		prommetrics.MsgSendFailedCounter.Inc()
		return nil, servererrs.ErrNotFriends.WithDetail("you are not friends with the recipient").Wrap()
	}
	message := &model.PendingMessage{
		MessageID:         uuid.NewString(),
		SenderUsername:    senderUsername,
		RecipientUsername: req.RecipientUsername,
		Text:              req.Text,
		CreateTime:        time.Now().UTC(),
	}
	if err := s.msgDatabase.CreateMessage(ctx, message); err != nil {
		prommetrics.MsgSendFailedCounter.Inc()
		return nil, err
	}
	prommetrics.MsgSendSuccessCounter.Inc()
	resp := messageToResponse(message)
	if s.pusher != nil && s.pusher.PushNewMessage(ctx, req.RecipientUsername, resp) {
		prommetrics.MsgPushCounter.Inc()
	}
	return resp, nil
}

// ListPending returns the recipient's undelivered messages, FIFO by creation
// time.
func (s *MsgService) ListPending(ctx context.Context, recipientUsername string) ([]*MessageResponse, error) {
	messages, err := s.msgDatabase.FindByRecipient(ctx, recipientUsername)
	if err != nil {
		return nil, err
	}
	return datautil.Slice(messages, messageToResponse), nil
}

// MarkDelivered deletes the pending record and returns it. Only the
// recipient may acknowledge.
func (s *MsgService) MarkDelivered(ctx context.Context, messageID, currentUsername string) (*MessageResponse, error) {
	message, err := s.msgDatabase.TakeMessage(ctx, messageID)
	if err != nil {
		if mgo.IsNotFound(err) {
			return nil, servererrs.ErrMessageNotFound.WithDetail("message not found").Wrap()
		}
		return nil, err
	}
	if message.RecipientUsername != currentUsername {
		return nil, servererrs.ErrNotAuthorized.WithDetail("only the recipient may acknowledge a message").Wrap()
	}
	if err := s.msgDatabase.DeleteMessage(ctx, messageID); err != nil {
		return nil, err
	}
	prommetrics.MsgDeliveredCounter.Inc()
	return messageToResponse(message), nil
}

// AcknowledgeDelivered marks the message delivered and notifies the original
// sender over their channel if they are online. Used by the explicit ack
// paths; the flush-on-connect path acks without notifying.
func (s *MsgService) AcknowledgeDelivered(ctx context.Context, messageID, currentUsername string) (*MessageResponse, error) {
	resp, err := s.MarkDelivered(ctx, messageID, currentUsername)
	if err != nil {
		return nil, err
	}
	if s.pusher != nil && !s.pusher.PushMessageDelivered(ctx, resp.SenderUsername, resp.ID) {
		log.ZDebug(ctx, "sender offline, delivery notification skipped", "sender", resp.SenderUsername, "messageID", resp.ID)
	}
	return resp, nil
}

func messageToResponse(message *model.PendingMessage) *MessageResponse {
	return &MessageResponse{
		ID:                message.MessageID,
		SenderUsername:    message.SenderUsername,
		RecipientUsername: message.RecipientUsername,
		Text:              message.Text,
		CreatedAt:         message.CreateTime,
	}
}
