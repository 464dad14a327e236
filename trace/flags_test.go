// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"reflect"
	"testing"
)

func TestNormalizeFlagsAliases(t *testing.T) {
	t.Parallel()

	pairs := []struct {
		shorthand Flag
		canonical Flag
	}{
		{"s", FlagSend},
		{"r", FlagReceive},
		{"c", FlagCall},
		{"p", FlagProcs},
		{"ts", FlagTimestamp},
		{"gc", FlagGarbageCollection},
		{"sos", FlagSetOnSpawn},
		{"sofs", FlagSetOnFirstSpawn},
		{"sol", FlagSetOnLink},
		{"sofl", FlagSetOnFirstLink},
	}
	for _, pair := range pairs {
		short, err := NormalizeFlags([]Flag{pair.shorthand})
		if err != nil {
			t.Fatalf("NormalizeFlags(%q): %v", pair.shorthand, err)
		}
		long, err := NormalizeFlags([]Flag{pair.canonical})
		if err != nil {
			t.Fatalf("NormalizeFlags(%q): %v", pair.canonical, err)
		}
		if !reflect.DeepEqual(short, long) {
			t.Errorf("alias %q: got %v, want %v", pair.shorthand, short, long)
		}
	}
}

func TestNormalizeFlagsMessageShorthand(t *testing.T) {
	t.Parallel()

	got, err := NormalizeFlags([]Flag{"m"})
	if err != nil {
		t.Fatalf("NormalizeFlags: %v", err)
	}
	want := []Flag{FlagSend, FlagReceive}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("m expansion: got %v, want %v", got, want)
	}
}

func TestNormalizeFlagsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := [][]Flag{
		{"m", "s", FlagTimestamp, "ts", FlagSend},
		{FlagAll},
		{"gc", "c", "r"},
		nil,
	}
	for _, input := range inputs {
		once, err := NormalizeFlags(input)
		if err != nil {
			t.Fatalf("NormalizeFlags(%v): %v", input, err)
		}
		twice, err := NormalizeFlags(once)
		if err != nil {
			t.Fatalf("NormalizeFlags(normalized %v): %v", once, err)
		}
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("not idempotent for %v: %v != %v", input, once, twice)
		}
	}
}

func TestNormalizeFlagsCanonicalOrder(t *testing.T) {
	t.Parallel()

	got, err := NormalizeFlags([]Flag{"gc", FlagSilent, "s", FlagCall})
	if err != nil {
		t.Fatalf("NormalizeFlags: %v", err)
	}
	want := []Flag{FlagSend, FlagCall, FlagGarbageCollection, FlagSilent}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order: got %v, want %v", got, want)
	}
}

func TestNormalizeFlagsUnknownFlag(t *testing.T) {
	t.Parallel()

	_, err := NormalizeFlags([]Flag{FlagSend, "warp_speed"})
	if err == nil {
		t.Fatal("unknown flag accepted")
	}
	if !IsArgument(err) {
		t.Errorf("unknown flag error: got %v, want ArgumentError", err)
	}
}
