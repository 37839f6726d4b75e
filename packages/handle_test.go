package packages

import (
	"testing"

	"sdkgen/universe"
)

func TestNameRenderingUnique(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("Engine")
	f.strct(p1, "S", universe.NoIndex)

	m, _ := f.manager()
	m.Init()

	info := m.GetInfo(p1)
	if got := info.Name(); got != "Engine" {
		t.Errorf("Name() = %q, want %q", got, "Engine")
	}

	name, collision := info.NameCollisionPair()
	if name != "Engine" || collision != 0 {
		t.Errorf("NameCollisionPair() = (%q, %d), want (Engine, 0)", name, collision)
	}
}

func TestNameRenderingCollision(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("Engine")
	p2 := f.pkg("Engine")
	f.strct(p1, "A", universe.NoIndex)
	f.strct(p2, "B", universe.NoIndex)

	m, _ := f.manager()
	m.Init()

	if got := m.GetInfo(p1).Name(); got != "Engine" {
		t.Errorf("first package Name() = %q, want %q", got, "Engine")
	}
	if got := m.GetInfo(p2).Name(); got != "Engine_0" {
		t.Errorf("second package Name() = %q, want %q", got, "Engine_0")
	}

	name, collision := m.GetInfo(p2).NameCollisionPair()
	if name != "Engine" || collision < 1 {
		t.Errorf("NameCollisionPair() = (%q, %d), want (Engine, >=1)", name, collision)
	}
}

func TestNameSanitization(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("My-Game Core")
	f.strct(p1, "S", universe.NoIndex)

	m, _ := f.manager()
	m.Init()

	if got := m.GetInfo(p1).Name(); got != "My_Game_Core" {
		t.Errorf("Name() = %q, want %q", got, "My_Game_Core")
	}
}

func TestHandleQueries(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	p2 := f.pkg("P2")
	f.strct(p1, "S", universe.NoIndex)
	f.enum(p1, "E")
	c := f.class(p2, "C", universe.NoIndex)
	f.function(c, "F", otherProp())

	m, _ := f.manager()
	m.Init()

	i1 := m.GetInfo(p1)
	if !i1.HasStructs() || !i1.HasEnums() {
		t.Errorf("P1 should have structs and enums")
	}
	if i1.HasClasses() || i1.HasFunctions() || i1.HasParameterStructs() {
		t.Errorf("P1 should have no classes/functions/params")
	}
	if i1.IsEmpty() {
		t.Errorf("P1 reported empty")
	}

	i2 := m.GetInfo(p2)
	if !i2.HasClasses() || !i2.HasFunctions() || !i2.HasParameterStructs() {
		t.Errorf("P2 should have classes, functions and parameter structs")
	}
	if i2.HasStructs() {
		t.Errorf("P2 should have no plain structs")
	}

	if i1.Index() != p1 || i2.Index() != p2 {
		t.Errorf("Index() mismatch")
	}
}

func TestGetInfoUnknownPackagePanics(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	f.strct(p1, "S", universe.NoIndex)

	m, _ := f.manager()
	m.Init()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown package index")
		}
	}()
	m.GetInfo(12345)
}

func TestEraseDependencyThroughHandle(t *testing.T) {
	f := newFixture()
	p1 := f.pkg("P1")
	p2 := f.pkg("P2")
	sa := f.strct(p1, "SA", universe.NoIndex)
	f.strct(p2, "SB", sa)

	m, _ := f.manager()
	m.Init()

	info := m.GetInfo(p2)
	if _, ok := info.Dependencies().StructsDependencies[p1]; !ok {
		t.Fatalf("expected requirement P2 -> P1")
	}

	info.ErasePackageDependencyFromStructs(p1)

	if _, ok := info.Dependencies().StructsDependencies[p1]; ok {
		t.Errorf("requirement survived erase")
	}
}
