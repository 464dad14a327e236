// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// sampleReply is a representative internal wire type using cbor struct
// tags (the convention for purely-internal types).
type sampleReply struct {
	Node   string `cbor:"node"`
	Reason string `cbor:"reason,omitempty"`
	Count  int    `cbor:"count"`
}

// sampleSummary uses json struct tags (the convention for types that
// serve both JSON CLI output and CBOR, relying on fxamacker's fallback).
type sampleSummary struct {
	Version int    `json:"version"`
	Node    string `json:"node"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleReply{
		Node:   "node-a",
		Reason: "no such function",
		Count:  42,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleReply
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestTimeRoundtripPreservesNanoseconds(t *testing.T) {
	type stamped struct {
		At time.Time `cbor:"at"`
	}

	original := stamped{At: time.Date(2026, 3, 14, 9, 26, 53, 417000321, time.UTC)}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded stamped
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !decoded.At.Equal(original.At) {
		t.Errorf("time roundtrip: got %v, want %v", decoded.At, original.At)
	}
	if got := decoded.At.Nanosecond(); got != 417000321 {
		t.Errorf("nanoseconds: got %d, want 417000321", got)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	reply := sampleReply{
		Node:   "node-b",
		Reason: "unreachable",
		Count:  7,
	}

	first, err := Marshal(reply)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}

	second, err := Marshal(reply)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	replies := []sampleReply{
		{Node: "node-a", Reason: "", Count: 1},
		{Node: "node-b", Reason: "unreachable", Count: 0},
		{Node: "node-c", Count: 12},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, reply := range replies {
		if err := encoder.Encode(reply); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range replies {
		var got sampleReply
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode reply %d: %v", i, err)
		}
		if got != want {
			t.Errorf("reply %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	// Types with json tags (no cbor tags) should encode/decode
	// correctly through our modes, using json tag names as CBOR
	// map keys.
	original := sampleSummary{Version: 3, Node: "node-a"}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleSummary
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestOmitemptyRespected(t *testing.T) {
	// A zero-value omitempty field should not appear in output.
	withReason := sampleReply{Node: "a", Reason: "x", Count: 1}
	withoutReason := sampleReply{Node: "a", Count: 1}

	dataWith, err := Marshal(withReason)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutReason)
	if err != nil {
		t.Fatal(err)
	}

	// The encoding without the reason field should be shorter
	// because the omitted field is not present.
	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var reply sampleReply
	err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &reply)
	if err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestByteStringRoundtrip(t *testing.T) {
	// Verify that []byte fields encode as CBOR byte strings (major
	// type 2), not text strings. Table entries and trace file records
	// carry pre-encoded payloads this way.
	type envelope struct {
		Payload []byte `cbor:"payload"`
	}

	original := envelope{Payload: []byte(`{"match":"_"}`)}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded envelope
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !bytes.Equal(decoded.Payload, original.Payload) {
		t.Errorf("byte string roundtrip: got %q, want %q", decoded.Payload, original.Payload)
	}
}

func BenchmarkMarshal(b *testing.B) {
	reply := sampleReply{
		Node:   "node-a",
		Reason: "no such function",
		Count:  42,
	}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(reply)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"node": "node-a"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if !strings.Contains(notation, `"node"`) {
		t.Errorf("notation %q does not contain \"node\"", notation)
	}
	if !strings.Contains(notation, `"node-a"`) {
		t.Errorf("notation %q does not contain \"node-a\"", notation)
	}
}

func TestDiagnoseFirst(t *testing.T) {
	item1, err := Marshal("hello")
	if err != nil {
		t.Fatalf("Marshal item 1: %v", err)
	}
	item2, err := Marshal(int64(42))
	if err != nil {
		t.Fatalf("Marshal item 2: %v", err)
	}

	var sequence []byte
	sequence = append(sequence, item1...)
	sequence = append(sequence, item2...)

	notation, remaining, err := DiagnoseFirst(sequence)
	if err != nil {
		t.Fatalf("DiagnoseFirst: %v", err)
	}

	if !strings.Contains(notation, `"hello"`) {
		t.Errorf("first item notation %q does not contain \"hello\"", notation)
	}
	if len(remaining) == 0 {
		t.Fatal("expected remaining bytes after first item")
	}

	notation2, remaining2, err := DiagnoseFirst(remaining)
	if err != nil {
		t.Fatalf("DiagnoseFirst second: %v", err)
	}
	if !strings.Contains(notation2, "42") {
		t.Errorf("second item notation %q does not contain \"42\"", notation2)
	}
	if len(remaining2) != 0 {
		t.Errorf("expected no remaining bytes, got %d", len(remaining2))
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	reply := sampleReply{
		Node:   "node-a",
		Reason: "no such function",
		Count:  42,
	}
	data, err := Marshal(reply)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		var decoded sampleReply
		Unmarshal(data, &decoded)
	}
}
