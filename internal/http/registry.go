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
	"sort"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/kb9vww/rdsctl/internal/rds"
)

// Registry is the concurrent channel-name -> *rds.Decoder map backing
// multi-tuner serving. One rdsctl process can decode several stations at
// once (e.g. a replay farm fed from several SDR dongles); the status server
// looks a channel up by name on every request instead of holding a single
// global Decoder.
type Registry struct {
	decoders *xsync.Map[string, *rds.Decoder]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{decoders: xsync.NewMap[string, *rds.Decoder]()}
}

// Put registers or replaces the Decoder serving channel.
func (r *Registry) Put(channel string, d *rds.Decoder) {
	r.decoders.Store(channel, d)
}

// Get returns the Decoder serving channel, or nil if no such channel is
// registered.
func (r *Registry) Get(channel string) (*rds.Decoder, bool) {
	return r.decoders.Load(channel)
}

// Remove drops channel from the registry.
func (r *Registry) Remove(channel string) {
	r.decoders.Delete(channel)
}

// Channels returns every registered channel name, sorted for a stable
// listing response.
func (r *Registry) Channels() []string {
	names := make([]string, 0, r.decoders.Size())
	r.decoders.Range(func(channel string, _ *rds.Decoder) bool {
		names = append(names, channel)
		return true
	})
	sort.Strings(names)
	return names
}
