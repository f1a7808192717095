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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameWithoutData(t *testing.T) {
	frame, err := newFrame(FramePong, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(frame)
	require.NoError(t, err)
	// No data key on payload-less frames.
	assert.JSONEq(t, `{"type":"pong"}`, string(raw))
}

func TestNewFrameDeliveredPayload(t *testing.T) {
	frame, err := newFrame(FrameMessageDelivered, DeliveredData{MessageID: "m-1"})
	require.NoError(t, err)

	raw, err := json.Marshal(frame)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message_delivered","data":{"message_id":"m-1"}}`, string(raw))
}

func TestFrameRoundTrip(t *testing.T) {
	raw := []byte(`{"type":"typing_indicator","data":{"recipient_username":"bob","is_typing":true}}`)
	var frame Frame
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, FrameTypingIndicator, frame.Type)

	var data TypingData
	require.NoError(t, json.Unmarshal(frame.Data, &data))
	assert.Equal(t, "bob", data.RecipientUsername)
	assert.True(t, data.IsTyping)
	assert.Empty(t, data.SenderUsername)
}
