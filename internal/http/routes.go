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

package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/kb9vww/rdsctl/internal/config"
	"github.com/kb9vww/rdsctl/internal/pubsub"
)

// snapshotEnvelope is the JSON shape published to pubsub and served over
// REST: the station identity the fields came from, a field bitmask, and the
// full current snapshot. Published envelopes carry the fields that changed on
// the triggering Ingest call; the REST endpoint carries snap.ValidFields.
type snapshotEnvelope struct {
	PI       uint16 `json:"pi"`
	Fields   uint32 `json:"fields"`
	Snapshot any    `json:"snapshot"`
}

func applyAPIRoutes(r *gin.Engine, cfg *config.Config, reg *Registry, ps pubsub.PubSub, ready *atomic.Bool, version, commit string, ratelimitMW gin.HandlerFunc) {
	r.GET("/robots.txt", ratelimitMW, func(c *gin.Context) { robotsTXT(c, cfg) })

	v1 := r.Group("/api/v1")
	v1.GET("/ping", ratelimitMW, func(c *gin.Context) {
		c.String(http.StatusOK, "%d", time.Now().Unix())
	})
	v1.GET("/version", ratelimitMW, func(c *gin.Context) {
		c.String(http.StatusOK, "%s-%s", version, commit)
	})
	v1.GET("/healthcheck", ratelimitMW, func(c *gin.Context) {
		if ready == nil || ready.Load() {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
	})

	v1.GET("/channels", ratelimitMW, func(c *gin.Context) {
		c.JSON(http.StatusOK, reg.Channels())
	})
	v1.GET("/channels/:channel/snapshot", ratelimitMW, func(c *gin.Context) {
		channel := c.Param("channel")
		d, ok := reg.Get(channel)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown channel"})
			return
		}

		session := sessions.Default(c)
		session.Set("channel", channel)
		if err := session.Save(); err != nil {
			slog.Warn("failed to persist selected-channel session", "error", err)
		}

		snap := d.Snapshot()
		c.JSON(http.StatusOK, snapshotEnvelope{
			PI:       snap.PI,
			Fields:   uint32(snap.ValidFields),
			Snapshot: snap,
		})
	})
}

func robotsTXT(c *gin.Context, cfg *config.Config) {
	switch cfg.HTTP.RobotsTXT.Mode {
	case config.RobotsTXTModeAllow:
		c.String(http.StatusOK, "User-agent: *\nAllow: /\n")
	case config.RobotsTXTModeCustom:
		c.String(http.StatusOK, cfg.HTTP.RobotsTXT.Content)
	case config.RobotsTXTModeDisabled:
		fallthrough
	default:
		c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
	}
}

// PublishSnapshot hashes snap with hashstructure and, only if the hash
// differs from the last one published for channel, marshals and publishes
// a snapshotEnvelope to the "channel:<name>" pubsub topic — the same kind of
// cheap change dedup the teacher uses hashstructure for elsewhere, so
// websocket clients aren't pushed identical frames on every poll.
func PublishSnapshot(ps pubsub.PubSub, dedup *sync.Map, channel string, pi uint16, fields uint32, snapshot any) error {
	hash, err := hashstructure.Hash(snapshot, hashstructure.FormatV2, nil)
	if err != nil {
		return fmt.Errorf("failed to hash snapshot: %w", err)
	}

	if prev, ok := dedup.Load(channel); ok && prev.(uint64) == hash {
		return nil
	}
	dedup.Store(channel, hash)

	payload, err := json.Marshal(snapshotEnvelope{PI: pi, Fields: fields, Snapshot: snapshot})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot envelope: %w", err)
	}

	if err := ps.Publish("channel:"+channel, payload); err != nil {
		return fmt.Errorf("failed to publish snapshot for channel %s: %w", channel, err)
	}
	return nil
}
