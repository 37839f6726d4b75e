package packages

import (
	"sdkgen/log"
	"sdkgen/structinfo"
	"sdkgen/universe"
)

// fixture builds small universes for engine tests.
type fixture struct {
	u *universe.Universe
}

func newFixture() *fixture {
	return &fixture{u: universe.New()}
}

func (f *fixture) pkg(name string) int {
	return f.u.Add(universe.Object{
		Name:         name,
		Kind:         universe.KindPackage,
		PackageIndex: universe.NoIndex,
		Super:        universe.NoIndex,
	})
}

func (f *fixture) strct(pkgIdx int, name string, super int, props ...universe.Property) int {
	return f.u.Add(universe.Object{
		Name:         name,
		Kind:         universe.KindStruct,
		PackageIndex: pkgIdx,
		Super:        super,
		Properties:   props,
	})
}

func (f *fixture) class(pkgIdx int, name string, super int, props ...universe.Property) int {
	return f.u.Add(universe.Object{
		Name:         name,
		Kind:         universe.KindClass | universe.KindStruct,
		PackageIndex: pkgIdx,
		Super:        super,
		Properties:   props,
	})
}

func (f *fixture) enum(pkgIdx int, name string) int {
	return f.u.Add(universe.Object{
		Name:         name,
		Kind:         universe.KindEnum,
		PackageIndex: pkgIdx,
		Super:        universe.NoIndex,
	})
}

// function adds a member function to class classIdx. Parameters are
// modeled as properties of the function object.
func (f *fixture) function(classIdx int, name string, params ...universe.Property) int {
	cls := f.u.ByIndex(classIdx)
	idx := f.u.Add(universe.Object{
		Name:         name,
		Kind:         universe.KindFunction | universe.KindStruct,
		PackageIndex: cls.PackageIndex,
		Super:        universe.NoIndex,
		Properties:   params,
	})
	// Re-fetch: Add may have grown the backing slice.
	f.u.ByIndex(classIdx).Functions = append(f.u.ByIndex(classIdx).Functions, idx)
	return idx
}

func (f *fixture) defaultObject(pkgIdx int, name string) int {
	return f.u.Add(universe.Object{
		Name:         name,
		Kind:         universe.KindClass | universe.KindStruct,
		PackageIndex: pkgIdx,
		Super:        universe.NoIndex,
		Flags:        universe.FlagClassDefaultObject,
	})
}

// manager wires a Manager plus its struct manager over the fixture
// universe.
func (f *fixture) manager() (*Manager, *structinfo.Manager) {
	si := structinfo.NewManager()
	return NewManager(f.u, si, log.NoOpLogger{}), si
}

func structProp(structIdx int) universe.Property {
	return universe.Property{Kind: universe.KindStructProperty, Struct: structIdx, Enum: universe.NoIndex}
}

func enumProp(enumIdx int) universe.Property {
	return universe.Property{Kind: universe.KindEnumProperty, Struct: universe.NoIndex, Enum: enumIdx}
}

func byteProp(enumIdx int) universe.Property {
	return universe.Property{Kind: universe.KindByteProperty, Struct: universe.NoIndex, Enum: enumIdx}
}

func otherProp() universe.Property {
	return universe.Property{Kind: universe.KindOtherProperty, Struct: universe.NoIndex, Enum: universe.NoIndex}
}

func arrayOf(inner universe.Property) universe.Property {
	return universe.Property{Kind: universe.KindArrayProperty, Struct: universe.NoIndex, Enum: universe.NoIndex, Inner: &inner}
}

func setOf(inner universe.Property) universe.Property {
	return universe.Property{Kind: universe.KindSetProperty, Struct: universe.NoIndex, Enum: universe.NoIndex, Inner: &inner}
}

func mapOf(key, value universe.Property) universe.Property {
	return universe.Property{Kind: universe.KindMapProperty, Struct: universe.NoIndex, Enum: universe.NoIndex, Key: &key, Value: &value}
}
