// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/probe/lib/clock"
	"github.com/bureau-foundation/probe/pattern"
	"github.com/bureau-foundation/probe/proc"
)

// Session is the public facade. It holds the controller handle
// explicitly — there is no hidden global — and re-reads it on every
// operation, so [Session.Reset] swapping in a fresh controller is
// transparent to subsequent calls. A Session is safe for concurrent
// use; the controller serializes command effects in the order it
// receives them, which for concurrent callers is not necessarily
// issue order.
type Session struct {
	runtime  Runtime
	env      *proc.Env
	compiler pattern.Compiler
	logger   *slog.Logger
	clock    clock.Clock

	flushTimeout     time.Duration
	flushParallelism int
	seedNodes        []proc.Node

	mu         sync.Mutex
	controller *controller
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for controller lifecycle and flush
// diagnostics. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock sets the clock used to bound the flush gather. Tests
// inject a fake clock; the default is the real one.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithCompiler sets the pattern compiler for source-text and
// transform patterns. The default compiles the JSONC clause-list
// form.
func WithCompiler(compiler pattern.Compiler) Option {
	return func(s *Session) { s.compiler = compiler }
}

// WithFlushTimeout bounds how long Flush waits for the per-node
// fan-out to complete. Default 5s.
func WithFlushTimeout(timeout time.Duration) Option {
	return func(s *Session) { s.flushTimeout = timeout }
}

// WithFlushParallelism caps concurrent per-node flush requests.
// Default 8.
func WithFlushParallelism(parallelism int) Option {
	return func(s *Session) { s.flushParallelism = parallelism }
}

// WithNodes seeds the traced node set during construction. Each node
// is added through the controller as if [Session.Node] had been
// called; a node the runtime refuses is logged and skipped. Reset
// does not re-seed.
func WithNodes(nodes ...proc.Node) Option {
	return func(s *Session) { s.seedNodes = append(s.seedNodes, nodes...) }
}

// NewSession starts a controller over the runtime and returns the
// facade. env supplies process resolution and the cluster interface;
// it may be nil when only class selectors and pids are used.
func NewSession(runtime Runtime, env *proc.Env, options ...Option) *Session {
	session := &Session{
		runtime:          runtime,
		env:              env,
		compiler:         pattern.SourceCompiler{},
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:            clock.Real(),
		flushTimeout:     5 * time.Second,
		flushParallelism: 8,
	}
	for _, option := range options {
		option(session)
	}
	session.controller = newController(runtime, session.logger)
	for _, node := range session.seedNodes {
		if err := session.controller.addNode(context.Background(), node); err != nil {
			session.logger.Warn("configured node not added", "node", node, "error", err)
		}
	}
	return session
}

// handle returns the current controller. Crashed controllers are
// returned as-is: their closed done channel makes every call fail
// with [ErrControlCrashed], which is the contract — recovery is the
// caller's explicit decision via Reset, never automatic.
func (s *Session) handle() *controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

// Trace applies trace flags to the selected processes. Flags accept
// shorthand aliases and duplicates; the result maps each
// participating node to its match count or failure reason.
func (s *Session) Trace(ctx context.Context, item Item, flags ...Flag) (Result, error) {
	const op = "trace"
	normalized, err := NormalizeFlags(flags)
	if err != nil {
		return Result{}, opError(op, err, item, flags)
	}
	resolved, err := s.resolveItem(ctx, item)
	if err != nil {
		return Result{}, opError(op, err, item, flags)
	}
	replies, err := s.handle().setFlags(ctx, resolved, normalized)
	if err != nil {
		return Result{}, opError(op, err, item, normalized)
	}
	return aggregate(replies), nil
}

// Clear removes all trace flags from the selected processes. This is
// the clear-all sentinel: it bypasses flag normalization entirely.
func (s *Session) Clear(ctx context.Context, item Item) (Result, error) {
	const op = "clear"
	resolved, err := s.resolveItem(ctx, item)
	if err != nil {
		return Result{}, opError(op, err, item)
	}
	replies, err := s.handle().clearFlags(ctx, resolved)
	if err != nil {
		return Result{}, opError(op, err, item)
	}
	return aggregate(replies), nil
}

// Call installs a filter pattern on a function target, firing for
// cross-module calls. When the pattern compiles to a fresh program,
// the result's Saved field carries the id assigned to it for reuse.
func (s *Session) Call(ctx context.Context, target Target, p pattern.Pattern) (Result, error) {
	return s.install(ctx, "call", target, p, false)
}

// LocalCall is Call with module-internal calls included.
func (s *Session) LocalCall(ctx context.Context, target Target, p pattern.Pattern) (Result, error) {
	return s.install(ctx, "local_call", target, p, true)
}

func (s *Session) install(ctx context.Context, op string, target Target, p pattern.Pattern, localCalls bool) (Result, error) {
	if err := target.Validate(); err != nil {
		return Result{}, opError(op, err, target)
	}
	canonical, err := p.Compile(s.compiler)
	if err != nil {
		return Result{}, opError(op, err, target)
	}
	replies, err := s.handle().install(ctx, target, canonical, localCalls)
	if err != nil {
		return Result{}, opError(op, err, target)
	}
	return aggregate(replies), nil
}

// Cancel removes any installed filter from the target.
func (s *Session) Cancel(ctx context.Context, target Target) (Result, error) {
	const op = "cancel"
	if err := target.Validate(); err != nil {
		return Result{}, opError(op, err, target)
	}
	replies, err := s.handle().cancel(ctx, target)
	if err != nil {
		return Result{}, opError(op, err, target)
	}
	return aggregate(replies), nil
}

// Patterns lists the saved patterns currently in the table, decoded
// back into displayable programs. Entries that fail to decode —
// installed through the runtime's raw path, corrupt, foreign — are
// omitted, never surfaced as errors.
func (s *Session) Patterns(ctx context.Context) (map[pattern.SavedID]pattern.Program, error) {
	const op = "patterns"
	entries, err := s.handle().tableEntries(ctx)
	if err != nil {
		return nil, opError(op, err)
	}
	programs := make(map[pattern.SavedID]pattern.Program, len(entries))
	for id, encoded := range entries {
		program, err := pattern.Decode(encoded)
		if err != nil {
			s.logger.Debug("skipping undecodable pattern entry", "id", id, "error", err)
			continue
		}
		programs[id] = program
	}
	return programs, nil
}

// Node adds a node to the traced cluster set.
func (s *Session) Node(ctx context.Context, node proc.Node) error {
	return opError("node", s.handle().addNode(ctx, node), node)
}

// ClearNode removes a node from the traced cluster set.
func (s *Session) ClearNode(ctx context.Context, node proc.Node) error {
	return opError("clear_node", s.handle().removeNode(ctx, node), node)
}

// Nodes lists the traced cluster set in sorted order.
func (s *Session) Nodes(ctx context.Context) ([]proc.Node, error) {
	nodes, err := s.handle().nodeList(ctx)
	if err != nil {
		return nil, opError("nodes", err)
	}
	return nodes, nil
}

// Reset flushes pending output, stops the controller, and installs a
// fresh one with an empty node set and a pristine pattern table.
// This is the only recovery path after a controller crash.
func (s *Session) Reset(ctx context.Context) {
	s.Flush(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.stop()
	s.controller = newController(s.runtime, s.logger)
}

// resolveItem resolves the process form of an item to a concrete
// pid. Class selectors pass through untouched.
func (s *Session) resolveItem(ctx context.Context, item Item) (Item, error) {
	if item.Class != ClassProcess {
		return item, nil
	}
	if s.env == nil {
		return Item{}, &proc.NotFoundError{Ref: item.Ref}
	}
	id, err := s.env.Resolve(ctx, item.Ref)
	if err != nil {
		return Item{}, err
	}
	return Process(proc.Pid(id)), nil
}
