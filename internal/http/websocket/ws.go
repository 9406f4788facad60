// SPDX-License-Identifier: AGPL-3.0-or-later
// DMRHub - Run a DMR network server in a single binary
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// The source code is available at <https://github.com/USA-RedDragon/DMRHub>

// Package websocket streams a channel's RDS field-update events (published
// on internal/pubsub's "channel:<name>" topic) to connected dashboard
// clients, one connection per tuner.
package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kb9vww/rdsctl/internal/config"
	"github.com/kb9vww/rdsctl/internal/pubsub"
)

const bufferSize = 1024

// Handler upgrades and serves websocket connections for channel update
// streams, fanned out from pubsub.
type Handler struct {
	wsUpgrader websocket.Upgrader
	ps         pubsub.PubSub
}

// CreateHandler builds a Handler whose CheckOrigin accepts only the
// configured CORS hosts, mirroring the teacher's repeater/peer socket setup.
func CreateHandler(cfg *config.Config, ps pubsub.PubSub) *Handler {
	return &Handler{
		ps: ps,
		wsUpgrader: websocket.Upgrader{
			ReadBufferSize:  bufferSize,
			WriteBufferSize: bufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return false
				}
				for _, host := range cfg.HTTP.CORSHosts {
					if strings.Contains(origin, host) {
						return true
					}
				}
				return false
			},
			EnableCompression: true,
		},
	}
}

func (h *Handler) channelHandler(ctx context.Context, w http.ResponseWriter, r *http.Request, channel string) {
	conn, err := h.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket", "error", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("failed to close websocket", "error", err)
		}
	}()

	topic := "channel:" + channel
	sub := h.ps.Subscribe(topic)
	defer func() {
		if err := sub.Close(); err != nil {
			slog.Error("failed to close subscription", "topic", topic, "error", err)
		}
	}()

	readFailed := make(chan struct{})
	go func() {
		defer close(readFailed)
		for {
			t, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if string(msg) == "PING" {
				if err := conn.WriteMessage(t, []byte("PONG")); err != nil {
					return
				}
				continue
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-readFailed:
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Error("failed to write websocket message", "channel", channel, "error", err)
				return
			}
		}
	}
}

// ApplyRoutes mounts /ws/channels/:channel behind the caller's rate limiter.
func (h *Handler) ApplyRoutes(r *gin.Engine, ratelimit gin.HandlerFunc) {
	r.GET("/ws/channels/:channel", ratelimit, func(c *gin.Context) {
		h.channelHandler(c.Request.Context(), c.Writer, c.Request, c.Param("channel"))
	})
}
