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

	"github.com/linkup-im/linkup/internal/msg"
)

func (a *Api) sendMessage(c *gin.Context) {
	var req msg.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	message, err := a.msgService.Send(c, currentUser(c).Username, &req)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (a *Api) listPendingMessages(c *gin.Context) {
	messages, err := a.msgService.ListPending(c, currentUser(c).Username)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// markDelivered acknowledges a message over HTTP. The service enforces that
// only the recipient may ack and notifies the sender's live channel.
func (a *Api) markDelivered(c *gin.Context) {
	messageID := c.Param("message_id")
	if _, err := a.msgService.AcknowledgeDelivered(c, messageID, currentUser(c).Username); err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
