// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now() when
// tests need unique identifiers for node names, request IDs, or trace
// file paths that must be distinguishable across parallel tests.
//
//	node := testutil.UniqueID("node")       // "node-1", "node-2", ...
//	path := testutil.UniqueID("trace-out")  // "trace-out-3", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
