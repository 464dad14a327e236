// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracefile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/probe/lib/codec"
)

// ErrTruncated is returned by [Reader.Next] when the stream ends
// without a trailer record. Events read before the truncation point
// are intact; the file was simply never closed.
var ErrTruncated = errors.New("tracefile: file is truncated")

// ErrCorrupted is returned by [Reader.Next] when the trailer digest
// does not match the file contents. Events already returned may have
// been tampered with or damaged.
var ErrCorrupted = errors.New("tracefile: integrity digest mismatch")

// Reader streams events from a trace file. Next returns events in
// write order and io.EOF after a verified trailer. Reader does not
// close the underlying io.Reader.
type Reader struct {
	buffer *bufio.Reader
	hasher writerHash
	done   bool
}

// NewReader validates the file header of r and returns a Reader
// positioned at the first record.
func NewReader(r io.Reader) (*Reader, error) {
	reader := &Reader{
		buffer: bufio.NewReader(r),
		hasher: newFileHasher(),
	}

	var header [headerLength]byte
	if _, err := io.ReadFull(reader.buffer, header[:]); err != nil {
		return nil, fmt.Errorf("read file header: %w", err)
	}
	if !bytes.Equal(header[:len(fileMagic)], []byte(fileMagic)) {
		return nil, fmt.Errorf("not a trace file: bad magic %q", header[:len(fileMagic)])
	}
	if version := header[len(fileMagic)]; version != formatVersion {
		return nil, fmt.Errorf("unsupported trace file version %d (want %d)", version, formatVersion)
	}
	reader.hasher.Write(header[:])
	return reader, nil
}

// Next returns the next event. It returns io.EOF after the trailer
// has been read and verified, ErrTruncated if the stream ends before
// a trailer, and ErrCorrupted if the trailer digest does not match.
func (r *Reader) Next() (Event, error) {
	if r.done {
		return Event{}, io.EOF
	}

	var header [recordHeaderLength]byte
	if _, err := io.ReadFull(r.buffer, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.done = true
			return Event{}, ErrTruncated
		}
		return Event{}, fmt.Errorf("read record header: %w", err)
	}

	recordType := header[0]
	payloadLength := binary.BigEndian.Uint32(header[1:5])
	if payloadLength > maxPayloadLength {
		return Event{}, fmt.Errorf("record payload length %d exceeds maximum %d", payloadLength, maxPayloadLength)
	}

	payload := make([]byte, payloadLength)
	if _, err := io.ReadFull(r.buffer, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.done = true
			return Event{}, ErrTruncated
		}
		return Event{}, fmt.Errorf("read record payload: %w", err)
	}

	switch recordType {
	case recordEvent:
		// The digest covers event records but not the trailer.
		r.hasher.Write(header[:])
		r.hasher.Write(payload)
		return r.decodeEvent(payload)

	case recordTrailer:
		r.done = true
		if !bytes.Equal(payload, r.hasher.Sum(nil)) {
			return Event{}, ErrCorrupted
		}
		return Event{}, io.EOF

	default:
		return Event{}, fmt.Errorf("unknown record type 0x%02x", recordType)
	}
}

// decodeEvent decompresses and decodes one event record payload.
func (r *Reader) decodeEvent(payload []byte) (Event, error) {
	if len(payload) < eventPrefixLength {
		return Event{}, fmt.Errorf("event record of %d bytes is shorter than its %d-byte prefix",
			len(payload), eventPrefixLength)
	}
	tag := CompressionTag(payload[0])
	uncompressedSize := binary.BigEndian.Uint32(payload[1:5])
	if uncompressedSize > maxPayloadLength {
		return Event{}, fmt.Errorf("event uncompressed size %d exceeds maximum %d",
			uncompressedSize, maxPayloadLength)
	}

	encoded, err := decompressRecord(payload[eventPrefixLength:], tag, int(uncompressedSize))
	if err != nil {
		return Event{}, err
	}

	var event Event
	if err := codec.Unmarshal(encoded, &event); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}
