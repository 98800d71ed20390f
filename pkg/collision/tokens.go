// Copyright 2025 walteh LLC
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

package collision

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// 🎲 TokenSource produces the unique part of a collision suffix
type TokenSource interface {
	Token() string
}

// ⏱️ ClockTokens derives tokens from the wall clock in nanoseconds. Tokens
// are strictly increasing: a reading at or behind the last one is bumped past
// it, so calls within one clock tick still differ.
type ClockTokens struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockTokens returns a clock token source.
func NewClockTokens() *ClockTokens {
	return &ClockTokens{now: time.Now}
}

func (c *ClockTokens) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.now().UnixNano()
	if n <= c.last {
		n = c.last + 1
	}
	c.last = n
	return strconv.FormatInt(n, 10)
}

// 🆔 UUIDTokens uses random v4 UUIDs.
type UUIDTokens struct{}

func (UUIDTokens) Token() string {
	return uuid.NewString()
}
