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

package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kb9vww/rdsctl/internal/config"
	internalhttp "github.com/kb9vww/rdsctl/internal/http"
	"github.com/kb9vww/rdsctl/internal/pubsub"
	"github.com/kb9vww/rdsctl/internal/rds"
)

const testTimeout = 1 * time.Minute

func testConfig() *config.Config {
	return &config.Config{
		LogLevel: config.LogLevelInfo,
		HTTP: config.HTTP{
			Bind:          "[::]",
			Port:          3005,
			CanonicalHost: "http://localhost:3005",
			RobotsTXT:     config.RobotsTXT{Mode: config.RobotsTXTModeDisabled},
		},
	}
}

func testRouter(t *testing.T, ready *atomic.Bool) (*internalhttp.Registry, http.Handler) {
	t.Helper()
	ps, err := pubsub.MakePubSub(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })

	reg := internalhttp.NewRegistry()
	router := internalhttp.CreateRouter(testConfig(), reg, ps, ready, "test", "deadbeef")
	return reg, router
}

func doGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPingEndpoint(t *testing.T) {
	t.Parallel()
	_, router := testRouter(t, nil)

	w := doGet(t, router, "/api/v1/ping")
	assert.Equal(t, http.StatusOK, w.Code)

	ts, err := strconv.ParseInt(w.Body.String(), 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), ts, 5)
}

func TestVersionEndpoint(t *testing.T) {
	t.Parallel()
	_, router := testRouter(t, nil)

	w := doGet(t, router, "/api/v1/version")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-deadbeef", w.Body.String())
}

func TestRobotsTxtEndpointDisabled(t *testing.T) {
	t.Parallel()
	_, router := testRouter(t, nil)

	w := doGet(t, router, "/robots.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Disallow")
}

func TestHealthcheckReadyWhenNilFlag(t *testing.T) {
	t.Parallel()
	_, router := testRouter(t, nil)

	w := doGet(t, router, "/api/v1/healthcheck")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHealthcheckNotReady(t *testing.T) {
	t.Parallel()
	ready := &atomic.Bool{} // zero value: false
	_, router := testRouter(t, ready)

	w := doGet(t, router, "/api/v1/healthcheck")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
}

func TestChannelsListEmpty(t *testing.T) {
	t.Parallel()
	_, router := testRouter(t, nil)

	w := doGet(t, router, "/api/v1/channels")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestChannelSnapshotUnknownChannel(t *testing.T) {
	t.Parallel()
	_, router := testRouter(t, nil)

	w := doGet(t, router, "/api/v1/channels/wxyz/snapshot")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChannelSnapshotRegisteredChannel(t *testing.T) {
	t.Parallel()
	reg, router := testRouter(t, nil)
	reg.Put("wxyz", rds.NewDecoder(true))

	w := doGet(t, router, "/api/v1/channels/wxyz/snapshot")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "snapshot")
}

func TestCreateRouterNotNil(t *testing.T) {
	t.Parallel()
	_, router := testRouter(t, nil)
	assert.NotNil(t, router)
}
