// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package connpool

import "time"

// forkMutex is a mutual-exclusion primitive that supports a bounded-time
// acquire, used for check_pid's "two locks" discipline (spec 4.6/9): the
// primary pool mutex protects day-to-day lease/release, while forkMutex
// serializes the one-time reset() across sibling goroutines racing a fork
// detection, without ever blocking indefinitely.
type forkMutex chan struct{}

func newForkMutex() forkMutex {
	m := make(forkMutex, 1)
	m <- struct{}{}
	return m
}

// tryLock attempts to acquire the mutex within timeout, reporting whether
// it succeeded.
func (m forkMutex) tryLock(timeout time.Duration) bool {
	select {
	case <-m:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (m forkMutex) unlock() {
	m <- struct{}{}
}
