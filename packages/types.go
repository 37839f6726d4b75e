package packages

import (
	"sort"

	"sdkgen/names"
)

// RequirementInfo is one inter-package include requirement. A single edge
// may need the peer's _structs output, its _classes output, or both.
type RequirementInfo struct {
	PackageIndex   int
	IncludeStructs bool
	IncludeClasses bool
}

// DependencyList maps a peer package index to the requirement against it.
type DependencyList map[int]*RequirementInfo

// require returns the entry for pkg, creating it if absent.
func (l DependencyList) require(pkg int) *RequirementInfo {
	if req, ok := l[pkg]; ok {
		return req
	}
	req := &RequirementInfo{PackageIndex: pkg}
	l[pkg] = req
	return req
}

// sortedPackages returns the peer package indices in ascending order.
func (l DependencyList) sortedPackages() []int {
	out := make([]int, 0, len(l))
	for pkg := range l {
		out = append(out, pkg)
	}
	sort.Ints(out)
	return out
}

// DependencyInfo holds the inter-package requirements of one package,
// split by which of its output files carries the requirement.
type DependencyInfo struct {
	// StructsDependencies lists the packages this package's _structs
	// output needs included.
	StructsDependencies DependencyList

	// ClassesDependencies lists the packages this package's _classes
	// output needs included.
	ClassesDependencies DependencyList

	// ParametersDependencies lists the packages needed by parameter
	// structs of this package's functions. May include the owning
	// package itself.
	ParametersDependencies DependencyList

	// Per-lane hit counters; compared against the manager's global
	// counter to prune revisits within one traversal pass.
	structsHitCount uint64
	classesHitCount uint64
}

func newDependencyInfo() DependencyInfo {
	return DependencyInfo{
		StructsDependencies:    make(DependencyList),
		ClassesDependencies:    make(DependencyList),
		ParametersDependencies: make(DependencyList),
	}
}

// PackageInfo is the registry record for one package that owns at least
// one struct, class or enum.
type PackageInfo struct {
	PackageIndex int

	// Name is the interned handle; CollisionCount is 0 for a unique
	// name, otherwise the 1-based collision index used for the display
	// suffix.
	Name           names.Handle
	CollisionCount int

	// StructsSorted and ClassesSorted are the intra-package ordering
	// graphs of non-function structs and of classes.
	StructsSorted *DependencyManager
	ClassesSorted *DependencyManager

	// Functions and Enums are owned member indices in discovery order.
	Functions []int
	Enums     []int

	// HasParams is true once any owned function has a parameter. Never
	// cleared.
	HasParams bool

	Dependencies DependencyInfo
}

func newPackageInfo(pkgIdx int) *PackageInfo {
	return &PackageInfo{
		PackageIndex:  pkgIdx,
		Name:          names.InvalidHandle,
		StructsSorted: NewDependencyManager(),
		ClassesSorted: NewDependencyManager(),
		Dependencies:  newDependencyInfo(),
	}
}
