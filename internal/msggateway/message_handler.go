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

package msggateway

import (
	"context"
	"encoding/json"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"

	"github.com/linkup-im/linkup/internal/msg"
)

// Frame is the JSON envelope on the realtime channel.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// DeliveredData is the payload of a message_delivered frame, both inbound
// (ack) and outbound (sender notification).
type DeliveredData struct {
	MessageID string `json:"message_id"`
}

// TypingData is the payload of a typing_indicator frame. Relayed only, never
// persisted.
type TypingData struct {
	SenderUsername    string `json:"sender_username,omitempty"`
	RecipientUsername string `json:"recipient_username"`
	IsTyping          bool   `json:"is_typing"`
}

func newFrame(frameType string, data any) (*Frame, error) {
	frame := &Frame{Type: frameType}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, errs.WrapMsg(err, "marshal frame data", "type", frameType)
		}
		frame.Data = raw
	}
	return frame, nil
}

// MessageHandler is the message-service surface the gateway needs: the flush
// on connect and the explicit ack path. Satisfied by *msg.MsgService.
type MessageHandler interface {
	ListPending(ctx context.Context, recipientUsername string) ([]*msg.MessageResponse, error)
	MarkDelivered(ctx context.Context, messageID, currentUsername string) (*msg.MessageResponse, error)
	AcknowledgeDelivered(ctx context.Context, messageID, currentUsername string) (*msg.MessageResponse, error)
}

// handleFrame dispatches one inbound frame. Unknown types are ignored for
// forward compatibility; malformed payloads log and keep the loop alive.
func (ws *WsServer) handleFrame(ctx context.Context, client *Client, raw []byte) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		log.ZWarn(ctx, "malformed frame", err, "username", client.Username)
		return
	}
	switch frame.Type {
	case FramePing:
		pong, err := newFrame(FramePong, nil)
		if err != nil {
			return
		}
		if err := client.writeFrame(pong); err != nil {
			log.ZWarn(ctx, "write pong", err, "username", client.Username)
		}
	case FrameMessageDelivered:
		var data DeliveredData
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.MessageID == "" {
			log.ZWarn(ctx, "malformed message_delivered frame", err, "username", client.Username)
			return
		}
		if _, err := ws.msgHandler.AcknowledgeDelivered(ctx, data.MessageID, client.Username); err != nil {
			log.ZWarn(ctx, "acknowledge delivered", err, "username", client.Username, "messageID", data.MessageID)
		}
	case FrameTypingIndicator:
		var data TypingData
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.RecipientUsername == "" {
			log.ZWarn(ctx, "malformed typing_indicator frame", err, "username", client.Username)
			return
		}
		data.SenderUsername = client.Username
		relay, err := newFrame(FrameTypingIndicator, data)
		if err != nil {
			return
		}
		ws.sendFrame(ctx, data.RecipientUsername, relay)
	default:
		// Unknown frame types are ignored.
	}
}

// flushPending replays the user's buffered messages in FIFO order. Each
// successfully transmitted frame is acked implicitly; on the first write
// failure the flush stops and the rest stay pending for the next connection.
func (ws *WsServer) flushPending(ctx context.Context, client *Client) {
	messages, err := ws.msgHandler.ListPending(ctx, client.Username)
	if err != nil {
		log.ZError(ctx, "list pending on connect", err, "username", client.Username)
		return
	}
	for _, message := range messages {
		frame, err := newFrame(FrameNewMessage, message)
		if err != nil {
			return
		}
		if err := client.writeFrame(frame); err != nil {
			log.ZWarn(ctx, "flush interrupted", err, "username", client.Username, "messageID", message.ID)
			return
		}
		if _, err := ws.msgHandler.MarkDelivered(ctx, message.ID, client.Username); err != nil {
			log.ZWarn(ctx, "implicit ack failed", err, "username", client.Username, "messageID", message.ID)
		}
	}
	if len(messages) > 0 {
		log.ZInfo(ctx, "flushed pending messages", "username", client.Username, "count", len(messages))
	}
}
