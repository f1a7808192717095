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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkup-im/linkup/internal/relation"
	"github.com/linkup-im/linkup/pkg/common/servererrs"
)

const minSearchQueryLength = 3

func (a *Api) searchUsers(c *gin.Context) {
	query := c.Query("q")
	if len(query) < minSearchQueryLength {
		validationError(c, "query must be at least 3 characters long", []fieldError{{Field: "q", Reason: "min"}})
		return
	}
	users, err := a.friendService.Search(c, currentUser(c).Username, query)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (a *Api) listFriends(c *gin.Context) {
	friends, err := a.friendService.ListFriends(c, currentUser(c).Username)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (a *Api) sendFriendRequest(c *gin.Context) {
	var req relation.SendRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := a.friendService.SendRequest(c, currentUser(c).Username, req.Username)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a *Api) respondFriendRequest(c *gin.Context) {
	var req relation.RespondRequest
	if !bindJSON(c, &req) {
		return
	}
	switch req.Action {
	case "accept":
		other, err := a.friendService.AcceptRequest(c, req.RequestID, currentUser(c).Username)
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusOK, other)
	case "reject":
		other, err := a.friendService.RejectRequest(c, req.RequestID, currentUser(c).Username)
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusOK, other)
	default:
		apiError(c, servererrs.ErrArgs.WithDetail("invalid action, must be 'accept' or 'reject'").Wrap())
	}
}

func (a *Api) listReceivedRequests(c *gin.Context) {
	requests, err := a.friendService.ListReceived(c, currentUser(c).Username)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (a *Api) listSentRequests(c *gin.Context) {
	requests, err := a.friendService.ListSent(c, currentUser(c).Username)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
