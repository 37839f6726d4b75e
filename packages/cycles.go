package packages

import "sdkgen/universe"

// cycleInfo records one resolved cycle: the pair, the lane, and which
// side lost the weight comparison.
type cycleInfo struct {
	loser  int
	winner int

	structsLane bool
}

// countLaneDependenciesOn visits every node of the lane DAG and counts
// direct dependencies (super, plus struct-typed properties when on the
// structs lane) living in requiredPkg.
func (m *Manager) countLaneDependenciesOn(dag *DependencyManager, requiredPkg int, structsLane bool) int {
	count := 0

	dag.VisitAllNodesWithCallback(func(idx int) {
		obj := m.universe.ByIndex(idx)

		if obj.Super != universe.NoIndex && m.universe.ByIndex(obj.Super).PackageIndex == requiredPkg {
			count++
		}

		// Classes never embed classes by value; only the super matters.
		if !structsLane {
			return
		}

		for i := range obj.Properties {
			prop := &obj.Properties[i]
			if prop.Kind != universe.KindStructProperty {
				continue
			}
			if m.universe.ByIndex(prop.Struct).PackageIndex == requiredPkg {
				count++
			}
		}
	})

	return count
}

// markCyclicDependenciesOf reports node idx to the struct manager if any
// of its direct dependencies live in loserPkg: the node must be emitted
// with a package-qualified forward declaration.
func (m *Manager) markCyclicDependenciesOf(idx, loserPkg int, structsLane bool) {
	obj := m.universe.ByIndex(idx)

	if obj.Super != universe.NoIndex && m.universe.ByIndex(obj.Super).PackageIndex == loserPkg {
		m.structs.SetCycleForStruct(idx, loserPkg)
	}

	if !structsLane {
		return
	}

	for i := range obj.Properties {
		prop := &obj.Properties[i]
		if prop.Kind != universe.KindStructProperty {
			continue
		}
		if m.universe.ByIndex(prop.Struct).PackageIndex == loserPkg {
			m.structs.SetCycleForStruct(idx, loserPkg)
		}
	}
}

// handleCycles finds every inter-package cycle, decides the break side by
// weight, marks the affected structs in the struct manager, and finally
// removes enough requirement edges to leave the graph acyclic.
func (m *Manager) handleCycles() {
	var handled []cycleInfo

	onCycle := func(old, cur IterationParams, isStruct bool) {
		current := cur.RequiredPackage
		previous := cur.PrevPackage

		// One resolution per unordered pair and lane.
		for _, c := range handled {
			samePair := (c.loser == current && c.winner == previous) ||
				(c.loser == previous && c.winner == current)
			if samePair && c.structsLane == isStruct {
				return
			}
		}

		currentInfo := m.GetInfo(current)
		previousInfo := m.GetInfo(previous)

		currentDAG := currentInfo.SortedStructs()
		previousDAG := previousInfo.SortedStructs()
		if !isStruct {
			currentDAG = currentInfo.SortedClasses()
			previousDAG = previousInfo.SortedClasses()
		}

		// How many of each side's entries directly need the other side.
		requiredByCurrent := m.countLaneDependenciesOn(currentDAG, previous, isStruct)
		requiredByPrevious := m.countLaneDependenciesOn(previousDAG, current, isStruct)

		lane := "structs"
		if !isStruct {
			lane = "classes"
		}
		m.logger.Debug("'%s' requires %d %s from '%s'", currentInfo.Name(), requiredByCurrent, lane, previousInfo.Name())
		m.logger.Debug("'%s' requires %d %s from '%s'", previousInfo.Name(), requiredByPrevious, lane, currentInfo.Name())

		// The side needing fewer entries loses; ties keep the current
		// node as the loser.
		loser, winner := current, previous
		if requiredByCurrent > requiredByPrevious {
			loser, winner = previous, current
		}

		handled = append(handled, cycleInfo{loser: loser, winner: winner, structsLane: isStruct})

		loserName := m.GetInfo(loser).Name()
		winnerName := m.GetInfo(winner).Name()
		m.logger.Info("cycle between '%s' and '%s' (%s lane): breaking toward '%s'", loserName, winnerName, lane, loserName)

		// Everything in the winner's DAG that directly needs the loser
		// becomes a package-tagged forward declaration.
		winnerDAG := m.GetInfo(winner).SortedStructs()
		if !isStruct {
			winnerDAG = m.GetInfo(winner).SortedClasses()
		}
		winnerDAG.VisitAllNodesWithCallback(func(idx int) {
			m.markCyclicDependenciesOf(idx, loser, isStruct)
		})
	}

	m.FindCycle(onCycle)

	for _, c := range handled {
		if c.structsLane {
			// Broken in exactly one direction: the winner stops
			// including the loser's _structs, the loser keeps its edge.
			m.GetInfo(c.winner).ErasePackageDependencyFromStructs(c.loser)
			continue
		}

		// Classes lane: each direction keeps its entry as a
		// structs-only requirement when the peer's _structs output is
		// legitimately needed, otherwise the entry goes away.
		m.downgradeClassesRequirement(c.loser, c.winner)
		m.downgradeClassesRequirement(c.winner, c.loser)
	}
}

// downgradeClassesRequirement removes the classes->classes component of
// from's requirement on to, keeping a structs-only entry when one is
// needed.
func (m *Manager) downgradeClassesRequirement(from, to int) {
	info := m.GetInfo(from)

	req, ok := info.Dependencies().ClassesDependencies[to]
	if !ok {
		return
	}

	if req.IncludeStructs {
		req.IncludeClasses = false
	} else {
		info.ErasePackageDependencyFromClasses(to)
	}
}
