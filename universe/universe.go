package universe

import (
	"fmt"
	"strings"
	"unicode"
)

// Universe is the read-only store of reflected objects. Objects are held
// in a dense slice indexed by their object index.
type Universe struct {
	objects []Object
}

// New creates an empty universe.
func New() *Universe {
	return &Universe{}
}

// Add appends obj and assigns its index. The stored object keeps whatever
// PackageIndex/Super/Properties the caller set.
func (u *Universe) Add(obj Object) int {
	obj.Index = len(u.objects)
	u.objects = append(u.objects, obj)
	return obj.Index
}

// Len returns the number of objects.
func (u *Universe) Len() int {
	return len(u.objects)
}

// ByIndex returns the object at idx. Panics on an out-of-range index;
// indices come from the snapshot and are trusted (a bad one is a
// structural invariant violation, not an input error).
func (u *Universe) ByIndex(idx int) *Object {
	if idx < 0 || idx >= len(u.objects) {
		panic(fmt.Sprintf("universe: object index %d out of range (len %d)", idx, len(u.objects)))
	}
	return &u.objects[idx]
}

// ValidName returns the object's name sanitized into an identifier:
// non-alphanumeric runes become underscores and a leading digit is
// prefixed. Empty names render as "None".
func (u *Universe) ValidName(idx int) string {
	return SanitizeName(u.ByIndex(idx).Name)
}

// SanitizeName maps an arbitrary display name to a valid identifier.
func SanitizeName(name string) string {
	if name == "" {
		return "None"
	}

	var b strings.Builder
	b.Grow(len(name) + 1)

	for i, r := range name {
		valid := r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		if i == 0 && unicode.IsDigit(r) {
			b.WriteByte('_')
		}
		if valid {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	return b.String()
}
