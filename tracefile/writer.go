// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracefile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/probe/lib/codec"
)

// Writer appends events to a trace file. It buffers writes and keeps
// a running keyed digest of everything written; Close appends the
// integrity trailer. Writer does not close the underlying
// io.Writer — the caller owns it.
//
// Writer is not safe for concurrent use. The tracer serializes
// events before they reach the writer.
type Writer struct {
	buffer      *bufio.Writer
	hasher      writerHash
	compression CompressionTag
	closed      bool
	scratch     [recordHeaderLength + eventPrefixLength]byte
}

// writerHash is the subset of the BLAKE3 hasher the writer uses.
type writerHash interface {
	io.Writer
	Sum(b []byte) []byte
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompression sets the compression algorithm for event records.
// The default is LZ4. Records that do not shrink under the configured
// algorithm are stored uncompressed regardless of this setting.
func WithCompression(tag CompressionTag) WriterOption {
	return func(w *Writer) { w.compression = tag }
}

// NewWriter writes the file header to w and returns a Writer that
// appends event records to it.
func NewWriter(w io.Writer, options ...WriterOption) (*Writer, error) {
	writer := &Writer{
		buffer:      bufio.NewWriter(w),
		hasher:      newFileHasher(),
		compression: CompressionLZ4,
	}
	for _, option := range options {
		option(writer)
	}

	var header [headerLength]byte
	copy(header[:], fileMagic)
	header[len(fileMagic)] = formatVersion
	if err := writer.writeHashed(header[:]); err != nil {
		return nil, fmt.Errorf("write file header: %w", err)
	}
	return writer, nil
}

// Write appends one event record.
func (w *Writer) Write(event Event) error {
	if w.closed {
		return errors.New("tracefile: write after Close")
	}

	encoded, err := codec.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	tag := w.compression
	compressed, err := compressRecord(encoded, tag)
	if errors.Is(err, errIncompressible) {
		tag = CompressionNone
		compressed = encoded
	} else if err != nil {
		return fmt.Errorf("compress event: %w", err)
	}

	payloadLength := eventPrefixLength + len(compressed)
	if payloadLength > maxPayloadLength {
		return fmt.Errorf("event record of %d bytes exceeds maximum %d", payloadLength, maxPayloadLength)
	}

	header := w.scratch[:]
	header[0] = recordEvent
	binary.BigEndian.PutUint32(header[1:5], uint32(payloadLength))
	header[5] = byte(tag)
	binary.BigEndian.PutUint32(header[6:10], uint32(len(encoded)))
	if err := w.writeHashed(header); err != nil {
		return fmt.Errorf("write event record header: %w", err)
	}
	if err := w.writeHashed(compressed); err != nil {
		return fmt.Errorf("write event record payload: %w", err)
	}
	return nil
}

// Drain flushes buffered records to the underlying writer without
// closing the file. Use this to make a live capture visible to a
// concurrent reader at a record boundary.
func (w *Writer) Drain() error {
	if err := w.buffer.Flush(); err != nil {
		return fmt.Errorf("flush trace file: %w", err)
	}
	return nil
}

// Close appends the integrity trailer and flushes. The trailer digest
// covers every byte written before it, so a reader can verify the
// file was closed cleanly. Close does not close the underlying
// writer. Calling Close more than once returns an error.
func (w *Writer) Close() error {
	if w.closed {
		return errors.New("tracefile: already closed")
	}
	w.closed = true

	digest := w.hasher.Sum(nil)

	var header [recordHeaderLength]byte
	header[0] = recordTrailer
	binary.BigEndian.PutUint32(header[1:5], uint32(len(digest)))
	if _, err := w.buffer.Write(header[:]); err != nil {
		return fmt.Errorf("write trailer header: %w", err)
	}
	if _, err := w.buffer.Write(digest); err != nil {
		return fmt.Errorf("write trailer digest: %w", err)
	}
	return w.Drain()
}

// writeHashed writes data to both the output buffer and the running
// digest. The trailer is the only record excluded from the digest.
func (w *Writer) writeHashed(data []byte) error {
	if _, err := w.buffer.Write(data); err != nil {
		return err
	}
	// bufio and blake3 writes never fail short.
	w.hasher.Write(data)
	return nil
}
