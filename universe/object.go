// Package universe holds an in-memory snapshot of reflected type metadata:
// packages, structs, classes, enums, functions and their properties, keyed
// by a stable non-negative object index.
//
// The dependency engine only reads from a Universe; mutation happens while
// a snapshot is loaded or a test fixture is built.
package universe

// NoIndex marks "no object" (no package, no super, no enum).
const NoIndex = -1

// Kind is a cast-flags bitmask. A class is also a struct, and a function
// is also a struct, the way reflection systems model callable signatures
// as field containers.
type Kind uint32

const (
	KindPackage Kind = 1 << iota
	KindStruct
	KindClass
	KindFunction
	KindEnum
	KindStructProperty
	KindEnumProperty
	KindByteProperty
	KindArrayProperty
	KindSetProperty
	KindMapProperty
	KindOtherProperty
)

// ObjectFlags carries per-object state flags from the snapshot.
type ObjectFlags uint32

const (
	// FlagClassDefaultObject marks the template instance reflection keeps
	// per class; these carry no type information of their own.
	FlagClassDefaultObject ObjectFlags = 1 << iota
)

// Property is one member of a struct-like object, modeled as a tagged
// variant over the property kinds the engine cares about. Kinds that
// contribute no type dependency use KindOtherProperty.
type Property struct {
	Kind Kind

	// Struct is the underlying struct index for KindStructProperty.
	Struct int

	// Enum is the enum index for KindEnumProperty and enum-typed
	// KindByteProperty; NoIndex when the byte has no enum.
	Enum int

	// Inner is the element property for KindArrayProperty and
	// KindSetProperty.
	Inner *Property

	// Key and Value are the pair properties for KindMapProperty.
	Key   *Property
	Value *Property
}

// Object is one reflected entity. Packages are objects too; their index
// doubles as the package index of their members.
type Object struct {
	Index        int
	PackageIndex int
	Name         string
	Kind         Kind
	Flags        ObjectFlags

	// Super is the parent struct/class index, NoIndex if none.
	Super int

	// Properties are the fields of a struct-like object, or the
	// parameters of a function.
	Properties []Property

	// Functions are the member function indices of a class, in
	// declaration order.
	Functions []int
}

// IsA reports whether the object has any of the given kind bits.
func (o *Object) IsA(k Kind) bool {
	return o.Kind&k != 0
}

// HasFlag reports whether the object has any of the given flags.
func (o *Object) HasFlag(f ObjectFlags) bool {
	return o.Flags&f != 0
}

// HasMembers reports whether the object declares any properties. For
// functions this means "has at least one parameter".
func (o *Object) HasMembers() bool {
	return len(o.Properties) > 0
}
