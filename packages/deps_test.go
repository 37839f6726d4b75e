package packages

import (
	"testing"

	"sdkgen/universe"
)

// Simple chain: P2's class embeds a struct from P1.
func TestInitSimpleChain(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	p2 := f.pkg("P2")
	sa := f.strct(p1, "SA", universe.NoIndex)
	f.class(p2, "CB", universe.NoIndex, structProp(sa))

	m, _ := f.manager()
	m.Init()

	info := m.GetInfo(p2)
	req, ok := info.Dependencies().ClassesDependencies[p1]
	if !ok {
		t.Fatalf("P2 classes lane missing requirement on P1")
	}
	if !req.IncludeStructs || req.IncludeClasses {
		t.Errorf("requirement = %+v, want structs-only", req)
	}

	if len(m.GetInfo(p1).Dependencies().StructsDependencies) != 0 {
		t.Errorf("P1 should have no inter-package requirements")
	}
}

func TestInitEnumInFunctionParameter(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	p2 := f.pkg("P2")
	e := f.enum(p1, "E")
	c := f.class(p2, "C", universe.NoIndex)
	fn := f.function(c, "F", enumProp(e))

	m, _ := f.manager()
	m.Init()

	info := m.GetInfo(p2)

	req, ok := info.Dependencies().ClassesDependencies[p1]
	if !ok || !req.IncludeStructs {
		t.Fatalf("enum parameter did not add structs requirement to classes lane: %+v", req)
	}

	if !info.HasParameterStructs() {
		t.Errorf("HasParameterStructs() = false, want true")
	}

	fns := info.Functions()
	if len(fns) != 1 || fns[0] != fn {
		t.Errorf("Functions() = %v, want [%d]", fns, fn)
	}

	// Parameter lane records the dependency too.
	if _, ok := info.Dependencies().ParametersDependencies[p1]; !ok {
		t.Errorf("ParametersDependencies missing P1")
	}
}

func TestInitIntraPackageSuper(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	a := f.strct(p1, "A", universe.NoIndex)
	b := f.strct(p1, "B", a)

	m, _ := f.manager()
	m.Init()

	info := m.GetInfo(p1)

	deps := info.SortedStructs().Dependencies(b)
	if len(deps) != 1 || deps[0] != a {
		t.Fatalf("B dependencies = %v, want [%d]", deps, a)
	}

	var order []int
	info.SortedStructs().VisitAllNodesWithCallback(func(idx int) {
		order = append(order, idx)
	})
	if len(order) != 2 || order[0] != a || order[1] != b {
		t.Errorf("visit order = %v, want [%d %d]", order, a, b)
	}

	if len(info.Dependencies().StructsDependencies) != 0 {
		t.Errorf("same-package super must not create inter-package requirement")
	}
}

func TestInitCrossPackageSuperLanes(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	p2 := f.pkg("P2")
	base := f.strct(p1, "Base", universe.NoIndex)
	baseClass := f.class(p1, "BaseClass", universe.NoIndex)
	f.strct(p2, "Derived", base)
	f.class(p2, "DerivedClass", baseClass)

	m, _ := f.manager()
	m.Init()

	info := m.GetInfo(p2)

	sreq, ok := info.Dependencies().StructsDependencies[p1]
	if !ok || !sreq.IncludeStructs || sreq.IncludeClasses {
		t.Errorf("struct super requirement = %+v, want structs-only", sreq)
	}

	creq, ok := info.Dependencies().ClassesDependencies[p1]
	if !ok || !creq.IncludeClasses {
		t.Errorf("class super requirement = %+v, want classes", creq)
	}
}

func TestInitStructSelfPackagePropertyStaysIntra(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	inner := f.strct(p1, "Inner", universe.NoIndex)
	outer := f.strct(p1, "Outer", universe.NoIndex, structProp(inner))

	m, _ := f.manager()
	m.Init()

	info := m.GetInfo(p1)

	// No self-edge in the cross-package map (invariant 2).
	if _, ok := info.Dependencies().StructsDependencies[p1]; ok {
		t.Errorf("struct recorded requirement on its own package")
	}

	deps := info.SortedStructs().Dependencies(outer)
	if len(deps) != 1 || deps[0] != inner {
		t.Errorf("Outer intra deps = %v, want [%d]", deps, inner)
	}
}

func TestInitClassMayRequireOwnPackageStructs(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	s := f.strct(p1, "S", universe.NoIndex)
	f.class(p1, "C", universe.NoIndex, structProp(s))

	m, _ := f.manager()
	m.Init()

	req, ok := m.GetInfo(p1).Dependencies().ClassesDependencies[p1]
	if !ok || !req.IncludeStructs {
		t.Errorf("class self-package structs requirement missing: %+v", req)
	}
}

func TestInitContainerPropertiesRecurse(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	p2 := f.pkg("P2")
	elem := f.strct(p1, "Elem", universe.NoIndex)
	key := f.strct(p1, "Key", universe.NoIndex)
	e := f.enum(p1, "E")

	f.strct(p2, "Holder", universe.NoIndex,
		arrayOf(structProp(elem)),
		setOf(byteProp(e)),
		mapOf(structProp(key), enumProp(e)),
		otherProp(),
	)

	m, _ := f.manager()
	m.Init()

	req, ok := m.GetInfo(p2).Dependencies().StructsDependencies[p1]
	if !ok || !req.IncludeStructs {
		t.Fatalf("container dependencies not propagated: %+v", req)
	}
}

func TestInitSelfReferenceIgnored(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")

	node := f.strct(p1, "Node", universe.NoIndex)
	// A struct may reference itself through a pointer; not a dependency.
	f.u.ByIndex(node).Properties = []universe.Property{structProp(node)}

	m, _ := f.manager()
	m.Init()

	if deps := m.GetInfo(p1).SortedStructs().Dependencies(node); len(deps) != 0 {
		t.Errorf("self-reference recorded as dependency: %v", deps)
	}
}

func TestInitSkipsClassDefaultObjects(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	f.strct(p1, "Real", universe.NoIndex)
	cdo := f.defaultObject(p1, "Default__Real")

	m, _ := f.manager()
	m.Init()

	if m.GetInfo(p1).SortedClasses().Contains(cdo) {
		t.Errorf("class default object registered in classes DAG")
	}
}

// Totality: every non-default struct/class/enum lands in exactly one of
// StructsSorted, ClassesSorted, Enums, Functions.
func TestInitTotality(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	p2 := f.pkg("P2")
	s := f.strct(p1, "S", universe.NoIndex)
	e := f.enum(p1, "E")
	c := f.class(p2, "C", universe.NoIndex)
	fn := f.function(c, "F", enumProp(e))

	m, _ := f.manager()
	m.Init()

	memberships := func(pkgIdx, objIdx int) int {
		if !m.Has(pkgIdx) {
			return 0
		}
		info := m.GetInfo(pkgIdx)
		count := 0
		if info.SortedStructs().Contains(objIdx) {
			count++
		}
		if info.SortedClasses().Contains(objIdx) {
			count++
		}
		for _, idx := range info.Enums() {
			if idx == objIdx {
				count++
			}
		}
		for _, idx := range info.Functions() {
			if idx == objIdx {
				count++
			}
		}
		return count
	}

	checks := []struct {
		pkg, obj int
		what     string
	}{
		{p1, s, "struct"},
		{p1, e, "enum"},
		{p2, c, "class"},
		{p2, fn, "function"},
	}
	for _, c := range checks {
		if got := memberships(c.pkg, c.obj); got != 1 {
			t.Errorf("%s %d listed %d times, want exactly 1", c.what, c.obj, got)
		}
	}
}

func TestParameterDependenciesIncludeOwnPackage(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	s := f.strct(p1, "S", universe.NoIndex)
	c := f.class(p1, "C", universe.NoIndex)
	f.function(c, "F", structProp(s))

	m, _ := f.manager()
	m.Init()

	// Unlike the structs/classes lanes, the parameters lane records the
	// owning package itself.
	req, ok := m.GetInfo(p1).Dependencies().ParametersDependencies[p1]
	if !ok || !req.IncludeStructs {
		t.Errorf("own-package parameter dependency missing: %+v", req)
	}
}

func TestHasParamsMonotonic(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	c := f.class(p1, "C", universe.NoIndex)
	f.function(c, "WithParam", otherProp())
	f.function(c, "NoParams")

	m, _ := f.manager()
	m.Init()

	if !m.GetInfo(p1).HasParameterStructs() {
		t.Errorf("HasParams cleared by later parameterless function")
	}
}
