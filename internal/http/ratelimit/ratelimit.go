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

package ratelimit

import (
	"sync"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// entry tracks one client's hits within the current window, the fields the
// teacher's GORM-backed ratelimit row stores.
type entry struct {
	hits      int64
	timestamp time.Time
}

// MemoryStore is a fixed-window rate limiter keyed by client, the same
// accounting as the teacher's GORMStore without a database: this server has
// no other reason to hold a SQL connection open just to count requests.
type MemoryStore struct {
	mu    sync.Mutex
	rate  time.Duration
	limit uint
	hits  map[string]*entry
}

// MemoryOptions configures a MemoryStore.
type MemoryOptions struct {
	Rate  time.Duration
	Limit uint
}

// NewMemoryStore builds a MemoryStore.
func NewMemoryStore(options *MemoryOptions) *MemoryStore {
	return &MemoryStore{
		rate:  options.Rate,
		limit: options.Limit,
		hits:  make(map[string]*entry),
	}
}

// Limit implements ratelimit.Store.
func (s *MemoryStore) Limit(key string, _ *gin.Context) (ret ratelimit.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret.Limit = s.limit

	e, ok := s.hits[key]
	if !ok {
		e = &entry{timestamp: time.Now()}
		s.hits[key] = e
	}

	ret.ResetTime = time.Now().Add(s.rate - time.Since(e.timestamp))

	if e.timestamp.Add(s.rate).Before(time.Now()) {
		e.hits = 0
		e.timestamp = time.Now()
	}

	if e.hits >= int64(s.limit) {
		ret.RateLimited = true
		ret.RemainingHits = 0
		return
	}

	e.hits++
	ret.RemainingHits = s.limit - uint(e.hits)
	return
}
