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

package pubsub

import (
	"sync"

	"github.com/kb9vww/rdsctl/internal/config"
)

func makeInMemoryPubSub(_ *config.Config) (PubSub, error) {
	return &inMemoryPubSub{
		topics: make(map[string][]chan []byte),
	}, nil
}

// inMemoryPubSub fans a published message out to every channel currently
// subscribed to its topic, for the single-process case where Redis isn't
// configured.
type inMemoryPubSub struct {
	mu     sync.Mutex
	topics map[string][]chan []byte
}

func (ps *inMemoryPubSub) Publish(topic string, message []byte) error {
	ps.mu.Lock()
	subs := append([]chan []byte(nil), ps.topics[topic]...)
	ps.mu.Unlock()

	for _, ch := range subs {
		ch <- message
	}
	return nil
}

func (ps *inMemoryPubSub) Subscribe(topic string) Subscription {
	ch := make(chan []byte, 16)

	ps.mu.Lock()
	ps.topics[topic] = append(ps.topics[topic], ch)
	ps.mu.Unlock()

	return &inMemorySubscription{ps: ps, topic: topic, ch: ch}
}

func (ps *inMemoryPubSub) Close() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, subs := range ps.topics {
		for _, ch := range subs {
			close(ch)
		}
	}
	ps.topics = make(map[string][]chan []byte)
	return nil
}

func (ps *inMemoryPubSub) remove(topic string, target chan []byte) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	subs := ps.topics[topic]
	for i, ch := range subs {
		if ch == target {
			ps.topics[topic] = append(subs[:i], subs[i+1:]...)
			close(ch)
			return
		}
	}
}

type inMemorySubscription struct {
	ps    *inMemoryPubSub
	topic string
	ch    chan []byte

	once sync.Once
}

func (s *inMemorySubscription) Close() error {
	s.once.Do(func() {
		s.ps.remove(s.topic, s.ch)
	})
	return nil
}

func (s *inMemorySubscription) Channel() <-chan []byte {
	return s.ch
}
