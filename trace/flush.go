// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"sync"

	"github.com/bureau-foundation/probe/proc"
)

// Flush asks every traced node to deliver and flush pending trace
// output, then drains any local output buffering. Flush is advisory:
// it raises confidence that already-generated events have been
// written, but offers no delivery guarantee, so it reports nothing —
// per-node failures, gather timeouts, even a crashed controller (no
// node list means nothing to fan out to) all degrade to doing less,
// never to an error.
func (s *Session) Flush(ctx context.Context) {
	nodes, err := s.handle().nodeList(ctx)
	if err != nil {
		s.logger.Debug("flush: node discovery failed, skipping fan-out", "error", err)
		nodes = nil
	}

	if len(nodes) > 0 && s.env != nil && s.env.Cluster != nil {
		s.fanOut(ctx, nodes)
	}
	s.drainLocal(ctx)
}

// fanOut broadcasts the flush request with bounded concurrency and
// waits for the stragglers only up to the flush timeout.
func (s *Session) fanOut(ctx context.Context, nodes []proc.Node) {
	semaphore := make(chan struct{}, s.flushParallelism)
	var pending sync.WaitGroup

	for _, node := range nodes {
		pending.Add(1)
		go func(node proc.Node) {
			defer pending.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := s.env.Cluster.Flush(ctx, node); err != nil {
				s.logger.Debug("flush: node did not acknowledge", "node", node, "error", err)
			}
		}(node)
	}

	finished := make(chan struct{})
	go func() {
		pending.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-s.clock.After(s.flushTimeout):
		s.logger.Debug("flush: fan-out timed out", "timeout", s.flushTimeout)
	case <-ctx.Done():
		s.logger.Debug("flush: fan-out abandoned", "error", ctx.Err())
	}
}

// drainLocal flushes the runtime's local output sink. A missing sink
// is a no-op inside the runtime; a panicking drain is swallowed here,
// matching the advisory contract.
func (s *Session) drainLocal(ctx context.Context) {
	defer func() {
		if reason := recover(); reason != nil {
			s.logger.Debug("flush: local drain panicked", "reason", reason)
		}
	}()
	if err := s.runtime.Drain(ctx); err != nil {
		s.logger.Debug("flush: local drain failed", "error", err)
	}
}
