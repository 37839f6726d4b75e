// Package names provides a deduplicating registry of package names.
//
// Sanitized package names are not guaranteed to be unique across a
// reflection snapshot; the table tracks, per canonical name, how many
// distinct packages share it so callers can render collision suffixes.
package names

// Handle references an interned name in a Table.
type Handle int

// InvalidHandle is returned for lookups that fail.
const InvalidHandle Handle = -1

// Entry is one canonical name with its collision count.
type Entry struct {
	name string

	// collisions is the number of additional packages that resolved to
	// this name after the first.
	collisions int
}

// Name returns the canonical string.
func (e *Entry) Name() string {
	return e.name
}

// CollisionCount returns how many packages collided on this name after
// the first occurrence.
func (e *Entry) CollisionCount() int {
	return e.collisions
}

// IsUnique reports whether the name has never collided.
func (e *Entry) IsUnique() bool {
	return e.collisions == 0
}

// Table interns package name strings and counts collisions.
type Table struct {
	entries []Entry
	byName  map[string]Handle
}

// NewTable creates an empty name table.
func NewTable() *Table {
	return &Table{
		byName: make(map[string]Handle),
	}
}

// FindOrAdd interns name. The second return is true if the name was newly
// inserted. When an existing name is found its collision count is
// incremented; the caller records that count as its own 1-based collision
// index.
func (t *Table) FindOrAdd(name string) (Handle, bool) {
	if h, ok := t.byName[name]; ok {
		t.entries[h].collisions++
		return h, false
	}

	h := Handle(len(t.entries))
	t.entries = append(t.entries, Entry{name: name})
	t.byName[name] = h
	return h, true
}

// Entry returns the entry for a handle. The pointer stays valid until the
// next FindOrAdd (callers must not retain it across inserts).
func (t *Table) Entry(h Handle) *Entry {
	return &t.entries[h]
}

// Len returns the number of distinct names in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
