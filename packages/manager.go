// Package packages is the dependency engine of the generator. It
// partitions the reflected object universe into packages, computes the
// per-package intra-file ordering graphs and the lane-qualified
// inter-package requirement graph, detects and breaks cyclic
// inter-package dependencies, and drives emission in dependency order.
package packages

import (
	"fmt"
	"sort"

	"sdkgen/log"
	"sdkgen/names"
	"sdkgen/structinfo"
	"sdkgen/universe"
)

// NoPackage is the sentinel for "no package" in iteration params.
const NoPackage = -1

// Manager is the package registry and traversal driver. Built once by
// Init, amended by PostInit, read-only afterwards. Single-threaded.
type Manager struct {
	universe *universe.Universe
	names    *names.Table
	structs  *structinfo.Manager
	logger   log.LibraryLogger

	infos map[int]*PackageInfo

	// order holds the registered package indices, ascending. Fixed after
	// Init so that repeated traversal passes see identical sequences.
	order []int

	// currentIterationHitCount is bumped once per top-level traversal
	// pass; per-lane counters equal to it mark "already processed".
	currentIterationHitCount uint64

	initialized     bool
	postInitialized bool
}

// NewManager creates a manager over the given universe. The structinfo
// manager receives cycle markings during PostInit. logger may be nil.
func NewManager(u *universe.Universe, structs *structinfo.Manager, logger log.LibraryLogger) *Manager {
	if logger == nil {
		logger = log.NoOpLogger{}
	}
	return &Manager{
		universe: u,
		names:    names.NewTable(),
		structs:  structs,
		logger:   logger,
		infos:    make(map[int]*PackageInfo),
	}
}

// Init builds the registry: one universe walk to collect members and
// dependencies, then name interning. Idempotent.
func (m *Manager) Init() {
	if m.initialized {
		return
	}
	m.initialized = true

	m.initDependencies()
	m.rebuildOrder()
	m.initNames()

	m.logger.Info("package registry initialized: %d packages", len(m.order))
}

// PostInit initializes the struct manager and resolves inter-package
// cycles. Must run after Init. Idempotent.
func (m *Manager) PostInit() {
	if m.postInitialized {
		return
	}
	m.postInitialized = true

	m.structs.Init(m.universe)

	m.handleCycles()
}

func (m *Manager) rebuildOrder() {
	m.order = m.order[:0]
	for pkgIdx := range m.infos {
		m.order = append(m.order, pkgIdx)
	}
	sort.Ints(m.order)
}

// Packages returns the registered package indices in ascending order.
func (m *Manager) Packages() []int {
	out := make([]int, len(m.order))
	copy(out, m.order)
	return out
}

// Has reports whether pkgIdx is registered.
func (m *Manager) Has(pkgIdx int) bool {
	_, ok := m.infos[pkgIdx]
	return ok
}

// GetInfo returns a handle over the package's registry record. An unknown
// index is a structural invariant violation and panics.
func (m *Manager) GetInfo(pkgIdx int) PackageInfoHandle {
	info, ok := m.infos[pkgIdx]
	if !ok {
		panic(fmt.Sprintf("packages: no PackageInfo for package index %d", pkgIdx))
	}
	return PackageInfoHandle{names: m.names, info: info}
}

func (m *Manager) getOrCreateInfo(pkgIdx int) *PackageInfo {
	if info, ok := m.infos[pkgIdx]; ok {
		return info
	}
	info := newPackageInfo(pkgIdx)
	m.infos[pkgIdx] = info
	return info
}

// initNames interns every package's sanitized name and records collision
// counts. Packages are processed in ascending index order so collision
// suffixes are stable between runs.
func (m *Manager) initNames() {
	for _, pkgIdx := range m.order {
		info := m.infos[pkgIdx]

		handle, inserted := m.names.FindOrAdd(m.universe.ValidName(pkgIdx))
		info.Name = handle

		if !inserted {
			info.CollisionCount = m.names.Entry(handle).CollisionCount()
		}
	}
}
