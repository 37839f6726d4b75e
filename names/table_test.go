package names

import "testing"

func TestFindOrAddUnique(t *testing.T) {
	tbl := NewTable()

	h, inserted := tbl.FindOrAdd("Engine")
	if !inserted {
		t.Fatalf("first insert reported as existing")
	}
	if got := tbl.Entry(h).Name(); got != "Engine" {
		t.Errorf("Name() = %q, want %q", got, "Engine")
	}
	if !tbl.Entry(h).IsUnique() {
		t.Errorf("fresh name not unique")
	}
	if tbl.Entry(h).CollisionCount() != 0 {
		t.Errorf("fresh name collision count = %d, want 0", tbl.Entry(h).CollisionCount())
	}
}

func TestFindOrAddCollisions(t *testing.T) {
	tbl := NewTable()

	h1, _ := tbl.FindOrAdd("Engine")
	h2, inserted := tbl.FindOrAdd("Engine")
	if inserted {
		t.Fatalf("second insert of same name reported as new")
	}
	if h1 != h2 {
		t.Fatalf("collision returned different handle: %d != %d", h1, h2)
	}
	if got := tbl.Entry(h1).CollisionCount(); got != 1 {
		t.Errorf("after one collision, count = %d, want 1", got)
	}

	tbl.FindOrAdd("Engine")
	if got := tbl.Entry(h1).CollisionCount(); got != 2 {
		t.Errorf("after two collisions, count = %d, want 2", got)
	}
	if tbl.Entry(h1).IsUnique() {
		t.Errorf("collided name reported unique")
	}
}

func TestDistinctNames(t *testing.T) {
	tbl := NewTable()

	tbl.FindOrAdd("Engine")
	h, inserted := tbl.FindOrAdd("CoreUObject")
	if !inserted {
		t.Fatalf("distinct name reported as collision")
	}
	if tbl.Entry(h).Name() != "CoreUObject" {
		t.Errorf("wrong entry for second name")
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}
