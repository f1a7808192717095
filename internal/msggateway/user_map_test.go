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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMapSetGet(t *testing.T) {
	m := newUserMap()
	client := &Client{Username: "alice"}

	assert.Nil(t, m.Set("alice", client))
	got, ok := m.Get("alice")
	require.True(t, ok)
	assert.Same(t, client, got)
	assert.True(t, m.IsOnline("alice"))
	assert.False(t, m.IsOnline("bob"))
	assert.Equal(t, 1, m.Length())
}

func TestUserMapLastWriterWins(t *testing.T) {
	m := newUserMap()
	first := &Client{Username: "alice"}
	second := &Client{Username: "alice"}

	assert.Nil(t, m.Set("alice", first))
	displaced := m.Set("alice", second)
	assert.Same(t, first, displaced)

	got, ok := m.Get("alice")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, m.Length())
}

func TestUserMapSetSameClientTwice(t *testing.T) {
	m := newUserMap()
	client := &Client{Username: "alice"}
	m.Set("alice", client)
	assert.Nil(t, m.Set("alice", client))
}

func TestUserMapGuardedDelete(t *testing.T) {
	m := newUserMap()
	first := &Client{Username: "alice"}
	second := &Client{Username: "alice"}
	m.Set("alice", first)
	m.Set("alice", second)

	// The displaced connection unregisters on its way out; it must not kick
	// the replacement binding.
	assert.False(t, m.DeleteIfBound("alice", first))
	assert.True(t, m.IsOnline("alice"))

	assert.True(t, m.DeleteIfBound("alice", second))
	assert.False(t, m.IsOnline("alice"))
	assert.Equal(t, 0, m.Length())
}
