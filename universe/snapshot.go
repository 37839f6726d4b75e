package universe

import (
	"encoding/json"
	"fmt"
	"os"
)

// SnapshotError wraps failures while loading a reflection snapshot.
type SnapshotError struct {
	Path string
	Err  error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s: %v", e.Path, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// snapshot is the on-disk JSON form of a universe. Object indices are
// implicit: an object's index is its position in the array.
type snapshot struct {
	Version int              `json:"version"`
	Objects []snapshotObject `json:"objects"`
}

type snapshotObject struct {
	Name       string             `json:"name"`
	Kind       string             `json:"kind"`
	Package    *int               `json:"package,omitempty"`
	Super      *int               `json:"super,omitempty"`
	Flags      []string           `json:"flags,omitempty"`
	Properties []snapshotProperty `json:"properties,omitempty"`
	Functions  []int              `json:"functions,omitempty"`
}

type snapshotProperty struct {
	Kind   string            `json:"kind"`
	Struct *int              `json:"struct,omitempty"`
	Enum   *int              `json:"enum,omitempty"`
	Inner  *snapshotProperty `json:"inner,omitempty"`
	Key    *snapshotProperty `json:"key,omitempty"`
	Value  *snapshotProperty `json:"value,omitempty"`
}

// SnapshotVersion is the only on-disk format version understood.
const SnapshotVersion = 1

// LoadSnapshot reads a reflection snapshot file into a Universe.
func LoadSnapshot(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Err: err}
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &SnapshotError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}
	if snap.Version != SnapshotVersion {
		return nil, &SnapshotError{Path: path, Err: fmt.Errorf("unsupported snapshot version %d", snap.Version)}
	}

	u := New()
	for i, so := range snap.Objects {
		obj, err := decodeObject(so, len(snap.Objects))
		if err != nil {
			return nil, &SnapshotError{Path: path, Err: fmt.Errorf("object %d (%s): %w", i, so.Name, err)}
		}
		u.Add(obj)
	}

	return u, nil
}

func decodeObject(so snapshotObject, total int) (Object, error) {
	kind, err := decodeKind(so.Kind)
	if err != nil {
		return Object{}, err
	}

	obj := Object{
		Name:         so.Name,
		Kind:         kind,
		PackageIndex: NoIndex,
		Super:        NoIndex,
		Functions:    so.Functions,
	}

	if so.Package != nil {
		if *so.Package < 0 || *so.Package >= total {
			return Object{}, fmt.Errorf("package index %d out of range", *so.Package)
		}
		obj.PackageIndex = *so.Package
	}
	if so.Super != nil {
		if *so.Super < 0 || *so.Super >= total {
			return Object{}, fmt.Errorf("super index %d out of range", *so.Super)
		}
		obj.Super = *so.Super
	}

	for _, flag := range so.Flags {
		switch flag {
		case "class_default_object":
			obj.Flags |= FlagClassDefaultObject
		default:
			return Object{}, fmt.Errorf("unknown object flag %q", flag)
		}
	}

	for _, fn := range so.Functions {
		if fn < 0 || fn >= total {
			return Object{}, fmt.Errorf("function index %d out of range", fn)
		}
	}

	for _, sp := range so.Properties {
		prop, err := decodeProperty(sp, total)
		if err != nil {
			return Object{}, err
		}
		obj.Properties = append(obj.Properties, prop)
	}

	return obj, nil
}

func decodeKind(s string) (Kind, error) {
	switch s {
	case "package":
		return KindPackage, nil
	case "struct":
		return KindStruct, nil
	case "class":
		// A class is struct-like for every consumer that walks fields.
		return KindClass | KindStruct, nil
	case "function":
		return KindFunction | KindStruct, nil
	case "enum":
		return KindEnum, nil
	}
	return 0, fmt.Errorf("unknown object kind %q", s)
}

func decodeProperty(sp snapshotProperty, total int) (Property, error) {
	prop := Property{Struct: NoIndex, Enum: NoIndex}

	checkRef := func(name string, idx int) error {
		if idx < 0 || idx >= total {
			return fmt.Errorf("%s property reference %d out of range", name, idx)
		}
		return nil
	}

	switch sp.Kind {
	case "struct":
		if sp.Struct == nil {
			return Property{}, fmt.Errorf("struct property without struct reference")
		}
		if err := checkRef("struct", *sp.Struct); err != nil {
			return Property{}, err
		}
		prop.Kind = KindStructProperty
		prop.Struct = *sp.Struct

	case "enum":
		prop.Kind = KindEnumProperty
		if sp.Enum != nil {
			if err := checkRef("enum", *sp.Enum); err != nil {
				return Property{}, err
			}
			prop.Enum = *sp.Enum
		}

	case "byte":
		prop.Kind = KindByteProperty
		if sp.Enum != nil {
			if err := checkRef("byte", *sp.Enum); err != nil {
				return Property{}, err
			}
			prop.Enum = *sp.Enum
		}

	case "array", "set":
		if sp.Inner == nil {
			return Property{}, fmt.Errorf("%s property without inner property", sp.Kind)
		}
		inner, err := decodeProperty(*sp.Inner, total)
		if err != nil {
			return Property{}, err
		}
		if sp.Kind == "array" {
			prop.Kind = KindArrayProperty
		} else {
			prop.Kind = KindSetProperty
		}
		prop.Inner = &inner

	case "map":
		if sp.Key == nil || sp.Value == nil {
			return Property{}, fmt.Errorf("map property without key/value properties")
		}
		key, err := decodeProperty(*sp.Key, total)
		if err != nil {
			return Property{}, err
		}
		value, err := decodeProperty(*sp.Value, total)
		if err != nil {
			return Property{}, err
		}
		prop.Kind = KindMapProperty
		prop.Key = &key
		prop.Value = &value

	case "other", "":
		prop.Kind = KindOtherProperty

	default:
		return Property{}, fmt.Errorf("unknown property kind %q", sp.Kind)
	}

	return prop, nil
}
