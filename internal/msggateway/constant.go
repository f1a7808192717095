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

import "time"

// WebSocket message types per RFC 6455.
const (
	// MessageText is for UTF-8 encoded text messages (JSON frames).
	MessageText = iota + 1
	// MessageBinary is for binary messages.
	MessageBinary
	// CloseMessage denotes a close control message.
	CloseMessage = 8
	// PingMessage denotes a ping control message.
	PingMessage = 9
	// PongMessage denotes a pong control message.
	PongMessage = 10
)

// Frame types on the realtime channel.
const (
	FrameConnected        = "connected"
	FrameNewMessage       = "new_message"
	FrameMessageDelivered = "message_delivered"
	FrameTypingIndicator  = "typing_indicator"
	FramePing             = "ping"
	FramePong             = "pong"
)

const (
	// writeWait is the max time allowed for a single write.
	writeWait = 10 * time.Second

	// pongWait is the read deadline; any inbound traffic resets it.
	pongWait = 30 * time.Second

	// maxMessageSize caps inbound frames.
	maxMessageSize = 51200

	// handshakeTimeout bounds the websocket upgrade.
	handshakeTimeout = 10 * time.Second
)
