// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pattern

import "sync"

// Table is the saved-pattern store: encoded programs keyed by
// [SavedID]. The table is owned by the tracer control process; the
// control layer proper only reads it (via [Table.Range] and
// [Table.Lookup]). [Table.Save] is the control process's write path
// for freshly-compiled programs, and [Table.Install] is the raw write
// path the runtime itself uses — which is why entries that do not
// follow this module's encoding convention can appear.
type Table struct {
	mu      sync.RWMutex
	entries map[SavedID][]byte
	next    SavedID
}

// NewTable returns a table pre-seeded with the three built-in programs
// under their symbolic ids. Assigned ids start at 1.
func NewTable() *Table {
	table := &Table{
		entries: make(map[SavedID][]byte),
		next:    1,
	}
	for _, id := range []SavedID{Caller, Exception, CallerException} {
		program, _ := BuiltinProgram(id)
		encoded, err := Encode(program)
		if err != nil {
			// Built-in programs are static and always encodable.
			panic("pattern: encoding built-in program: " + err.Error())
		}
		table.entries[id] = encoded
	}
	return table
}

// Save stores an encoded program under the next assigned id and
// returns that id.
func (t *Table) Save(encoded []byte) SavedID {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.next
	t.next++
	t.entries[id] = append([]byte(nil), encoded...)
	return id
}

// Install stores raw entry bytes under an explicit id, overwriting any
// existing entry. This is the runtime's direct write path; it performs
// no validation of the bytes or the id.
func (t *Table) Install(id SavedID, raw []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = append([]byte(nil), raw...)
	if id >= t.next {
		t.next = id + 1
	}
}

// Remove deletes the entry stored under id, if any. Assigned ids are
// never reused; a removed id simply leaves a gap.
func (t *Table) Remove(id SavedID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Lookup returns the encoded entry stored under id.
func (t *Table) Lookup(id SavedID) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	encoded, ok := t.entries[id]
	return encoded, ok
}

// Range calls fn for every entry until fn returns false. The iteration
// works on a snapshot, so fn may safely call back into the table.
func (t *Table) Range(fn func(id SavedID, encoded []byte) bool) {
	t.mu.RLock()
	snapshot := make(map[SavedID][]byte, len(t.entries))
	for id, encoded := range t.entries {
		snapshot[id] = encoded
	}
	t.mu.RUnlock()

	for id, encoded := range snapshot {
		if !fn(id, encoded) {
			return
		}
	}
}
