package packages

import (
	"sdkgen/universe"
)

// propertyDependencies walks the properties of a struct-like object and
// collects the indices of every referenced struct and enum. The object's
// own index is removed: a self-reference through a pointer is legal and
// is not an ordering dependency.
func propertyDependencies(obj *universe.Object) map[int]struct{} {
	deps := make(map[int]struct{})

	for i := range obj.Properties {
		collectPropertyDependency(&obj.Properties[i], deps)
	}

	delete(deps, obj.Index)

	return deps
}

func collectPropertyDependency(p *universe.Property, deps map[int]struct{}) {
	switch p.Kind {
	case universe.KindStructProperty:
		deps[p.Struct] = struct{}{}

	case universe.KindEnumProperty:
		if p.Enum != universe.NoIndex {
			deps[p.Enum] = struct{}{}
		}

	case universe.KindByteProperty:
		// Enum-typed byte
		if p.Enum != universe.NoIndex {
			deps[p.Enum] = struct{}{}
		}

	case universe.KindArrayProperty, universe.KindSetProperty:
		collectPropertyDependency(p.Inner, deps)

	case universe.KindMapProperty:
		collectPropertyDependency(p.Key, deps)
		collectPropertyDependency(p.Value, deps)
	}
}

// setPackageDependencies propagates deps into lane as cross-package
// requirements. Dependencies are structs/enums, which always live in the
// peer's _structs output. allowSelf lets classes record requirements on
// their own package's _structs file; plain structs must not.
func (m *Manager) setPackageDependencies(lane DependencyList, deps map[int]struct{}, ownPkg int, allowSelf bool) {
	for dep := range deps {
		pkgIdx := m.universe.ByIndex(dep).PackageIndex

		if allowSelf || pkgIdx != ownPkg {
			lane.require(pkgIdx).IncludeStructs = true
		}
	}
}

// addEnumPackageDependencies is setPackageDependencies restricted to enum
// dependencies. Enum classes cannot be forward-declared without their
// underlying type, so function parameter enums land in the classes lane.
func (m *Manager) addEnumPackageDependencies(lane DependencyList, deps map[int]struct{}, ownPkg int, allowSelf bool) {
	for dep := range deps {
		obj := m.universe.ByIndex(dep)

		if !obj.IsA(universe.KindEnum) {
			continue
		}

		if allowSelf || obj.PackageIndex != ownPkg {
			lane.require(obj.PackageIndex).IncludeStructs = true
		}
	}
}

// addStructDependencies records the same-package, non-enum subset of deps
// as intra-file ordering edges of structIdx.
func (m *Manager) addStructDependencies(sorted *DependencyManager, deps map[int]struct{}, structIdx, ownPkg int) {
	filtered := make(map[int]struct{})

	for dep := range deps {
		obj := m.universe.ByIndex(dep)

		if obj.PackageIndex == ownPkg && !obj.IsA(universe.KindEnum) {
			filtered[dep] = struct{}{}
		}
	}

	sorted.SetDependencies(structIdx, filtered)
}

// initDependencies walks every entity in the universe exactly once,
// creating PackageInfos and filling member lists, intra-package graphs
// and inter-package requirement lists.
func (m *Manager) initDependencies() {
	for idx := 0; idx < m.universe.Len(); idx++ {
		obj := m.universe.ByIndex(idx)

		if obj.HasFlag(universe.FlagClassDefaultObject) {
			continue
		}

		pkgIdx := obj.PackageIndex

		isClass := obj.IsA(universe.KindClass)
		isFunction := obj.IsA(universe.KindFunction)

		switch {
		case obj.IsA(universe.KindStruct) && !isFunction:
			info := m.getOrCreateInfo(pkgIdx)

			laneDeps := info.Dependencies.StructsDependencies
			laneSorted := info.StructsSorted
			if isClass {
				laneDeps = info.Dependencies.ClassesDependencies
				laneSorted = info.ClassesSorted
			}

			deps := propertyDependencies(obj)

			laneSorted.SetExists(idx)

			m.setPackageDependencies(laneDeps, deps, pkgIdx, isClass)

			if !isClass {
				m.addStructDependencies(laneSorted, deps, idx, pkgIdx)
			}

			// Supers order both lanes: same-package supers sort within
			// the file, foreign supers become include requirements.
			if obj.Super != universe.NoIndex {
				superPkg := m.universe.ByIndex(obj.Super).PackageIndex

				if superPkg == pkgIdx {
					laneSorted.AddDependency(idx, obj.Super)
				} else {
					req := laneDeps.require(superPkg)
					req.IncludeStructs = req.IncludeStructs || !isClass
					req.IncludeClasses = req.IncludeClasses || isClass
				}
			}

			if isClass {
				m.addClassFunctions(info, obj)
			}

		case obj.IsA(universe.KindEnum):
			info := m.getOrCreateInfo(pkgIdx)
			info.Enums = append(info.Enums, idx)
		}
	}
}

// addClassFunctions records a class's member functions and propagates
// their parameter dependencies. Parameter structs always pull in the
// peer's _structs output, own package included.
func (m *Manager) addClassFunctions(info *PackageInfo, class *universe.Object) {
	for _, fnIdx := range class.Functions {
		fn := m.universe.ByIndex(fnIdx)

		info.Functions = append(info.Functions, fnIdx)

		paramDeps := propertyDependencies(fn)

		info.HasParams = info.HasParams || fn.HasMembers()

		fnPkg := fn.PackageIndex

		m.setPackageDependencies(info.Dependencies.ParametersDependencies, paramDeps, fnPkg, true)
		m.addEnumPackageDependencies(info.Dependencies.ClassesDependencies, paramDeps, fnPkg, true)
	}
}
