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

package prommetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UserLoginCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_login_total",
		Help: "The number of user login",
	})
	UserRegisterCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_register_total",
		Help: "The number of user registered",
	})
	OnlineUserGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "online_user_num",
		Help: "The number of online users",
	})
	WsConnectionTotalCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_connection_total",
		Help: "The number of websocket connections accepted",
	})
	MsgSendSuccessCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "msg_send_success_total",
		Help: "The number of messages accepted for delivery",
	})
	MsgSendFailedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "msg_send_failed_total",
		Help: "The number of message sends rejected",
	})
	MsgPushCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "msg_push_total",
		Help: "The number of messages pushed over a live channel",
	})
	MsgDeliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "msg_delivered_total",
		Help: "The number of delivery acknowledgments processed",
	})
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		UserLoginCounter,
		UserRegisterCounter,
		OnlineUserGauge,
		WsConnectionTotalCounter,
		MsgSendSuccessCounter,
		MsgSendFailedCounter,
		MsgPushCounter,
		MsgDeliveredCounter,
	)
}

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
