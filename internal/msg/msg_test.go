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

package msg

import (
	"context"
	"testing"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/mw/specialerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-im/linkup/pkg/common/servererrs"
	"github.com/linkup-im/linkup/pkg/common/storage/controller"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

// The embedded interfaces keep the fakes small; only the methods the message
// service touches are implemented.

type fakeUserDB struct {
	controller.UserDatabase
	users map[string]bool
}

func (f *fakeUserDB) ExistUsername(ctx context.Context, username string) (bool, error) {
	return f.users[username], nil
}

type fakeFriendDB struct {
	controller.FriendDatabase
	friends map[string]bool
}

func pairKey(a, b string) string {
	u1, u2 := model.SortUsernamePair(a, b)
	return u1 + "|" + u2
}

func (f *fakeFriendDB) ExistFriendship(ctx context.Context, a, b string) (bool, error) {
	return f.friends[pairKey(a, b)], nil
}

type fakeMsgDB struct {
	messages []*model.PendingMessage
}

func (f *fakeMsgDB) CreateMessage(ctx context.Context, msg *model.PendingMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMsgDB) TakeMessage(ctx context.Context, messageID string) (*model.PendingMessage, error) {
	for _, m := range f.messages {
		if m.MessageID == messageID {
			return m, nil
		}
	}
	return nil, errs.ErrRecordNotFound.WrapMsg("not found")
}

func (f *fakeMsgDB) FindByRecipient(ctx context.Context, recipientUsername string) ([]*model.PendingMessage, error) {
	var out []*model.PendingMessage
	for _, m := range f.messages {
		if m.RecipientUsername == recipientUsername {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMsgDB) DeleteMessage(ctx context.Context, messageID string) error {
	for i, m := range f.messages {
		if m.MessageID == messageID {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return errs.ErrRecordNotFound.WrapMsg("not found")
}

type fakePusher struct {
	online    map[string]bool
	pushed    []*MessageResponse
	delivered []string
}

func (f *fakePusher) PushNewMessage(ctx context.Context, recipientUsername string, msg *MessageResponse) bool {
	if !f.online[recipientUsername] {
		return false
	}
	f.pushed = append(f.pushed, msg)
	return true
}

func (f *fakePusher) PushMessageDelivered(ctx context.Context, username, messageID string) bool {
	if !f.online[username] {
		return false
	}
	f.delivered = append(f.delivered, messageID)
	return true
}

func (f *fakePusher) IsOnline(username string) bool {
	return f.online[username]
}

func assertCode(t *testing.T, want errs.CodeError, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, want.Is(specialerror.ErrCode(errs.Unwrap(err))), "unexpected error: %v", err)
}

func newTestService(friends bool, online ...string) (*MsgService, *fakeMsgDB, *fakePusher) {
	msgDB := &fakeMsgDB{}
	friendDB := &fakeFriendDB{friends: map[string]bool{}}
	if friends {
		friendDB.friends[pairKey("alice", "bob")] = true
	}
	userDB := &fakeUserDB{users: map[string]bool{"alice": true, "bob": true}}
	pusher := &fakePusher{online: map[string]bool{}}
	for _, username := range online {
		pusher.online[username] = true
	}
	service := NewMsgService(msgDB, friendDB, userDB)
	service.SetPusher(pusher)
	return service, msgDB, pusher
}

func TestSendToUnknownRecipient(t *testing.T) {
	service, _, _ := newTestService(true)
	_, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "ghost", Text: "hi"})
	assertCode(t, servererrs.ErrUserNotFound, err)
}

func TestSendRequiresFriendship(t *testing.T) {
	service, msgDB, _ := newTestService(false)
	_, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "hi"})
	assertCode(t, servererrs.ErrNotFriends, err)
	assert.Empty(t, msgDB.messages)
}

func TestSendPersistsThenPushes(t *testing.T) {
	service, msgDB, pusher := newTestService(true, "bob")
	resp, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice", resp.SenderUsername)

	// The record stays pending even though the push succeeded; only the
	// recipient's ack removes it.
	require.Len(t, msgDB.messages, 1)
	assert.Equal(t, resp.ID, msgDB.messages[0].MessageID)
	require.Len(t, pusher.pushed, 1)
	assert.Equal(t, resp.ID, pusher.pushed[0].ID)
}

func TestSendOfflineRecipientSkipsPush(t *testing.T) {
	service, msgDB, pusher := newTestService(true)
	resp, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "hi"})
	require.NoError(t, err)
	require.Len(t, msgDB.messages, 1)
	assert.Equal(t, resp.ID, msgDB.messages[0].MessageID)
	assert.Empty(t, pusher.pushed)
}

func TestListPendingKeepsSendOrder(t *testing.T) {
	service, _, _ := newTestService(true)
	first, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "first"})
	require.NoError(t, err)
	second, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "second"})
	require.NoError(t, err)

	pending, err := service.ListPending(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestMarkDeliveredDeletesPending(t *testing.T) {
	service, msgDB, _ := newTestService(true)
	sent, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "hi"})
	require.NoError(t, err)

	resp, err := service.MarkDelivered(context.Background(), sent.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, sent.ID, resp.ID)
	assert.Equal(t, "hi", resp.Text)
	assert.Empty(t, msgDB.messages)
}

func TestMarkDeliveredUnknownMessage(t *testing.T) {
	service, _, _ := newTestService(true)
	_, err := service.MarkDelivered(context.Background(), "missing", "bob")
	assertCode(t, servererrs.ErrMessageNotFound, err)
}

func TestMarkDeliveredOnlyRecipient(t *testing.T) {
	service, msgDB, _ := newTestService(true)
	sent, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "hi"})
	require.NoError(t, err)

	_, err = service.MarkDelivered(context.Background(), sent.ID, "alice")
	assertCode(t, servererrs.ErrNotAuthorized, err)
	assert.Len(t, msgDB.messages, 1)
}

func TestAcknowledgeNotifiesSender(t *testing.T) {
	service, _, pusher := newTestService(true, "alice")
	sent, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "hi"})
	require.NoError(t, err)

	_, err = service.AcknowledgeDelivered(context.Background(), sent.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{sent.ID}, pusher.delivered)
}

func TestAcknowledgeSenderOffline(t *testing.T) {
	service, msgDB, pusher := newTestService(true)
	sent, err := service.Send(context.Background(), "alice", &SendMessageRequest{RecipientUsername: "bob", Text: "hi"})
	require.NoError(t, err)

	// The ack still lands when the sender holds no channel.
	_, err = service.AcknowledgeDelivered(context.Background(), sent.ID, "bob")
	require.NoError(t, err)
	assert.Empty(t, msgDB.messages)
	assert.Empty(t, pusher.delivered)
}
