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

import "sync"

// UserMap is the connection registry: one live channel per username. A
// reconnect replaces the prior binding (last writer wins); the displaced
// channel is closed by its own loop on the next send failure.
type UserMap struct {
	lock    sync.RWMutex
	clients map[string]*Client
}

func newUserMap() *UserMap {
	return &UserMap{clients: make(map[string]*Client)}
}

// Set binds the client to its username and returns the displaced client, if
// any.
func (u *UserMap) Set(username string, client *Client) *Client {
	u.lock.Lock()
	defer u.lock.Unlock()
	displaced := u.clients[username]
	u.clients[username] = client
	if displaced == client {
		return nil
	}
	return displaced
}

func (u *UserMap) Get(username string) (*Client, bool) {
	u.lock.RLock()
	defer u.lock.RUnlock()
	client, ok := u.clients[username]
	return client, ok
}

// DeleteIfBound removes the binding only if it still points at the given
// client, so a displaced connection cannot kick its replacement. Reports
// whether a binding was removed.
func (u *UserMap) DeleteIfBound(username string, client *Client) bool {
	u.lock.Lock()
	defer u.lock.Unlock()
	if bound, ok := u.clients[username]; ok && bound == client {
		delete(u.clients, username)
		return true
	}
	return false
}

func (u *UserMap) IsOnline(username string) bool {
	u.lock.RLock()
	defer u.lock.RUnlock()
	_, ok := u.clients[username]
	return ok
}

func (u *UserMap) Length() int {
	u.lock.RLock()
	defer u.lock.RUnlock()
	return len(u.clients)
}
