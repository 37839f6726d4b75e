package packages

import "fmt"

// IterationParams describes one edge of the inter-package DFS: the
// package being entered, the package it was entered from, and which of
// the peer's outputs the edge requires.
type IterationParams struct {
	PrevPackage     int
	RequiredPackage int

	// WasPrevNodeStructs records the lane of the parent node.
	WasPrevNodeStructs bool

	RequiresStructs bool
	RequiresClasses bool
}

// includeStatus tracks, per package on the current DFS path, which lanes
// it was entered through. Path-local: erased when the node completes.
type includeStatus struct {
	structs bool
	classes bool
}

// IterateCallback is invoked once per (package, lane) in post-order:
// every package the lane's output depends on has been reported first.
type IterateCallback func(pkgIdx int, isStruct bool)

// FindCycleCallback is invoked for every back-edge. cur holds the entry
// params of the node found on the path again (cur.RequiredPackage is the
// cycle head, cur.PrevPackage the package whose requirement closed the
// cycle); old holds the revisited node's own outgoing-edge params
// (old.PrevPackage is the cycle head).
type FindCycleCallback func(old, cur IterationParams, isStruct bool)

// IterateDependencies walks every package once in dependency order,
// invoking cb per (package, lane). Two consecutive passes produce the
// same sequence.
func (m *Manager) IterateDependencies(cb IterateCallback) {
	m.iterateAll(cb, func(IterationParams, IterationParams, bool) {}, false)
}

// FindCycle runs the same traversal but reports every back-edge instead
// of emitting.
func (m *Manager) FindCycle(onCycle FindCycleCallback) {
	m.iterateAll(func(int, bool) {}, onCycle, true)
}

func (m *Manager) iterateAll(cb IterateCallback, onCycle FindCycleCallback, checkCycle bool) {
	// New pass: invalidate every stored lane hit counter in O(1).
	m.currentIterationHitCount++

	visited := make(map[int]*includeStatus)

	for _, pkgIdx := range m.order {
		clear(visited)

		params := IterationParams{
			PrevPackage:        NoPackage,
			RequiredPackage:    pkgIdx,
			WasPrevNodeStructs: true,
			RequiresStructs:    true,
			RequiresClasses:    true,
		}

		m.iterateDependenciesImpl(params, cb, onCycle, checkCycle, visited)
	}
}

// laneIteration bundles the per-lane state of one package visit.
type laneIteration struct {
	cur       IterationParams
	newParams *IterationParams
	lane      DependencyList
	hitCount  *uint64

	shouldHandle bool
	isStruct     bool
}

func (m *Manager) iterateDependenciesImpl(params IterationParams, cb IterateCallback, onCycle FindCycleCallback, checkCycle bool, visited map[int]*includeStatus) {
	info, ok := m.infos[params.RequiredPackage]
	if !ok {
		panic(fmt.Sprintf("packages: traversal reached unregistered package %d", params.RequiredPackage))
	}

	deps := &info.Dependencies

	newParams := IterationParams{PrevPackage: params.RequiredPackage}

	m.iterateSingleLane(laneIteration{
		cur:          params,
		newParams:    &newParams,
		lane:         deps.StructsDependencies,
		hitCount:     &deps.structsHitCount,
		shouldHandle: params.RequiresStructs,
		isStruct:     true,
	}, cb, onCycle, checkCycle, visited)

	m.iterateSingleLane(laneIteration{
		cur:          params,
		newParams:    &newParams,
		lane:         deps.ClassesDependencies,
		hitCount:     &deps.classesHitCount,
		shouldHandle: params.RequiresClasses,
		isStruct:     false,
	}, cb, onCycle, checkCycle, visited)
}

func (m *Manager) iterateSingleLane(it laneIteration, cb IterateCallback, onCycle FindCycleCallback, checkCycle bool, visited map[int]*includeStatus) {
	if !it.shouldHandle {
		return
	}

	current := it.cur.RequiredPackage

	if *it.hitCount < m.currentIterationHitCount {
		*it.hitCount = m.currentIterationHitCount

		status, ok := visited[current]
		if !ok {
			status = &includeStatus{}
			visited[current] = status
		}
		if it.isStruct {
			status.structs = true
		} else {
			status.classes = true
		}

		for _, pkg := range it.lane.sortedPackages() {
			req := it.lane[pkg]

			it.newParams.WasPrevNodeStructs = it.isStruct
			it.newParams.RequiresStructs = req.IncludeStructs
			it.newParams.RequiresClasses = req.IncludeClasses
			it.newParams.RequiredPackage = req.PackageIndex

			m.iterateDependenciesImpl(*it.newParams, cb, onCycle, checkCycle, visited)
		}

		delete(visited, current)

		cb(current, it.isStruct)
		return
	}

	// Already processed in this pass. Only a node still on the current
	// path, reached again through the same lane, is a back-edge.
	if checkCycle {
		if status, ok := visited[current]; ok {
			if (status.structs && it.isStruct) || (status.classes && !it.isStruct) {
				onCycle(*it.newParams, it.cur, it.isStruct)
			}
		}
	}
}
