// Package structinfo tracks per-struct metadata the emitter needs beyond
// what the universe stores, most importantly which structs participate in
// a broken inter-package dependency cycle and therefore must be emitted as
// package-tagged forward declarations.
package structinfo

import (
	"fmt"
	"sort"

	"sdkgen/universe"
)

// Info is the tracked metadata for one struct-like object.
type Info struct {
	Index        int
	PackageIndex int
	ValidName    string

	// cyclicPartners holds the package indices this struct is cyclic
	// with, as recorded by the cycle resolver.
	cyclicPartners map[int]struct{}
}

// IsPartOfCycle reports whether the cycle resolver marked this struct.
func (i *Info) IsPartOfCycle() bool {
	return len(i.cyclicPartners) > 0
}

// CyclicPartners returns the partner package indices in ascending order.
func (i *Info) CyclicPartners() []int {
	out := make([]int, 0, len(i.cyclicPartners))
	for pkg := range i.cyclicPartners {
		out = append(out, pkg)
	}
	sort.Ints(out)
	return out
}

// IsCyclicWith reports whether the struct was marked cyclic with pkg.
func (i *Info) IsCyclicWith(pkg int) bool {
	_, ok := i.cyclicPartners[pkg]
	return ok
}

// Manager owns the struct metadata for one universe.
type Manager struct {
	infos       map[int]*Info
	initialized bool
}

// NewManager creates an uninitialized manager.
func NewManager() *Manager {
	return &Manager{
		infos: make(map[int]*Info),
	}
}

// Init collects every non-function struct-like object from the universe.
// Idempotent.
func (m *Manager) Init(u *universe.Universe) {
	if m.initialized {
		return
	}
	m.initialized = true

	for idx := 0; idx < u.Len(); idx++ {
		obj := u.ByIndex(idx)

		if obj.HasFlag(universe.FlagClassDefaultObject) {
			continue
		}
		if !obj.IsA(universe.KindStruct) || obj.IsA(universe.KindFunction) {
			continue
		}

		m.infos[idx] = &Info{
			Index:        idx,
			PackageIndex: obj.PackageIndex,
			ValidName:    universe.SanitizeName(obj.Name),
		}
	}
}

// Initialized reports whether Init has run.
func (m *Manager) Initialized() bool {
	return m.initialized
}

// Get returns the info for a struct index, or nil if the index is not a
// tracked struct.
func (m *Manager) Get(structIdx int) *Info {
	return m.infos[structIdx]
}

// SetCycleForStruct records that structIdx participates in a dependency
// cycle with partnerPackage. Only the cycle resolver calls this, and only
// after Init; calling earlier is a programming error.
func (m *Manager) SetCycleForStruct(structIdx, partnerPackage int) {
	if !m.initialized {
		panic("structinfo: SetCycleForStruct called before Init")
	}

	info, ok := m.infos[structIdx]
	if !ok {
		panic(fmt.Sprintf("structinfo: SetCycleForStruct on unknown struct index %d", structIdx))
	}

	if info.cyclicPartners == nil {
		info.cyclicPartners = make(map[int]struct{})
	}
	info.cyclicPartners[partnerPackage] = struct{}{}
}

// CyclicStructs returns the indices of all structs marked cyclic, in
// ascending order.
func (m *Manager) CyclicStructs() []int {
	var out []int
	for idx, info := range m.infos {
		if info.IsPartOfCycle() {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}
