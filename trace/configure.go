// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"github.com/bureau-foundation/probe/lib/config"
	"github.com/bureau-foundation/probe/proc"
)

// SessionOptions maps the trace section of the tooling configuration
// onto session options: flush tuning and the initial traced node set.
// Zero-valued fields are left at the session defaults.
func SessionOptions(cfg config.TraceConfig) []Option {
	var options []Option
	if cfg.FlushTimeout > 0 {
		options = append(options, WithFlushTimeout(cfg.FlushTimeout))
	}
	if cfg.FlushParallelism > 0 {
		options = append(options, WithFlushParallelism(cfg.FlushParallelism))
	}
	if len(cfg.Nodes) > 0 {
		nodes := make([]proc.Node, len(cfg.Nodes))
		for i, name := range cfg.Nodes {
			nodes[i] = proc.Node(name)
		}
		options = append(options, WithNodes(nodes...))
	}
	return options
}
