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

// Package http serves a status/dashboard API over the channels registered
// in a Registry: a point-in-time Snapshot per channel over REST, and a
// streaming feed of FieldSet changes over websocket.
package http

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	ratelimitpkg "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	"github.com/kb9vww/rdsctl/internal/config"
	"github.com/kb9vww/rdsctl/internal/http/ratelimit"
	redisSessions "github.com/kb9vww/rdsctl/internal/http/sessions"
	"github.com/kb9vww/rdsctl/internal/http/websocket"
	"github.com/kb9vww/rdsctl/internal/pubsub"
)

const (
	defTimeout      = 10 * time.Second
	rateLimitRate   = time.Second
	rateLimitLimit  = 10
	sessionKeyLen   = 32
	shutdownTimeout = 5 * time.Second
)

var (
	ErrClosed = errors.New("server closed")
	ErrFailed = errors.New("failed to start server")
)

// Server wraps the status/dashboard http.Server with the graceful-shutdown
// signaling the teacher's Start/Stop pair uses.
type Server struct {
	*http.Server
	shutdownChannel chan bool
}

// MakeServer builds a Server bound to cfg.HTTP, serving reg's registered
// channels over ps for websocket fan-out.
func MakeServer(cfg *config.Config, reg *Registry, ps pubsub.PubSub, ready *atomic.Bool, version, commit string) Server {
	r := CreateRouter(cfg, reg, ps, ready, version, commit)

	slog.Info("status server listening", "bind", cfg.HTTP.Bind, "port", cfg.HTTP.Port)
	s := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Bind, cfg.HTTP.Port),
		Handler:           r,
		ReadTimeout:       defTimeout,
		ReadHeaderTimeout: defTimeout,
		WriteTimeout:      defTimeout,
	}
	s.SetKeepAlivesEnabled(false)

	return Server{s, make(chan bool)}
}

func sessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
		})
		store, err := redisSessions.NewStore(client, []byte(""))
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		return store, nil
	}

	key := make([]byte, sessionKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	return cookie.NewStore(key), nil
}

func addMiddleware(r *gin.Engine, cfg *config.Config) error {
	if cfg.PProf.Enabled {
		pprof.Register(r)
	}

	if cfg.Metrics.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("rdsctl"))
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = cfg.HTTP.CORSHosts
	r.Use(cors.New(corsConfig))

	store, err := sessionStore(cfg)
	if err != nil {
		return err
	}
	r.Use(sessions.Sessions("rdsctl_session", store))
	return nil
}

// CreateRouter builds the status server's gin.Engine: REST snapshot
// endpoints over reg, a websocket feed per channel fanned out from ps, and
// the ambient ping/version/healthcheck/robots.txt endpoints.
func CreateRouter(cfg *config.Config, reg *Registry, ps pubsub.PubSub, ready *atomic.Bool, version, commit string) *gin.Engine {
	if cfg.LogLevel == config.LogLevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if err := addMiddleware(r, cfg); err != nil {
		slog.Error("failed to configure http middleware", "error", err)
	}

	ratelimitStore := ratelimit.NewMemoryStore(&ratelimit.MemoryOptions{
		Rate:  rateLimitRate,
		Limit: rateLimitLimit,
	})
	ratelimitMW := ratelimitpkg.RateLimiter(ratelimitStore, &ratelimitpkg.Options{
		ErrorHandler: func(c *gin.Context, info ratelimitpkg.Info) {
			c.String(http.StatusTooManyRequests, "too many requests, try again in "+time.Until(info.ResetTime).String())
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})

	applyAPIRoutes(r, cfg, reg, ps, ready, version, commit, ratelimitMW)

	wsHandler := websocket.CreateHandler(cfg, ps)
	wsHandler.ApplyRoutes(r, ratelimitMW)

	return r
}

// Stop gracefully shuts the server down, waiting for Start's goroutine to
// observe http.ErrServerClosed.
func (s *Server) Stop() {
	slog.Info("stopping status server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down status server", "error", err)
	}
	<-s.shutdownChannel
}

// Start runs ListenAndServe, returning ErrClosed on a clean shutdown and
// ErrFailed on any other listen error.
func (s *Server) Start() error {
	g := new(errgroup.Group)
	g.Go(func() error {
		err := s.ListenAndServe()
		switch {
		case err == nil:
			return nil
		case errors.Is(err, http.ErrServerClosed):
			s.shutdownChannel <- true
			return ErrClosed
		default:
			slog.Error("failed to start status server", "error", err)
			return ErrFailed
		}
	})
	return g.Wait() //nolint:wrapcheck
}
