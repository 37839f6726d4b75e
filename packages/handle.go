package packages

import (
	"strconv"

	"sdkgen/names"
)

// PackageInfoHandle is a non-owning view over a PackageInfo. Handles stay
// valid for the life of the manager; the only mutations they permit are
// the two dependency-erase operations used by cycle resolution.
type PackageInfoHandle struct {
	names *names.Table
	info  *PackageInfo
}

// Index returns the package's object index.
func (h PackageInfoHandle) Index() int {
	return h.info.PackageIndex
}

// Name returns the display name: the canonical name, suffixed with
// "_<n-1>" when the package is the n-th collision on it.
func (h PackageInfoHandle) Name() string {
	name := h.names.Entry(h.info.Name).Name()

	if h.info.CollisionCount <= 0 {
		return name
	}

	return name + "_" + strconv.Itoa(h.info.CollisionCount-1)
}

// NameCollisionPair returns the canonical name and this package's
// collision index (0 when the name never collided in the table).
func (h PackageInfoHandle) NameCollisionPair() (string, int) {
	entry := h.names.Entry(h.info.Name)

	if entry.IsUnique() {
		return entry.Name(), 0
	}

	return entry.Name(), h.info.CollisionCount
}

// HasClasses reports whether the package owns any classes.
func (h PackageInfoHandle) HasClasses() bool {
	return h.info.ClassesSorted.NumEntries() > 0
}

// HasStructs reports whether the package owns any non-function structs.
func (h PackageInfoHandle) HasStructs() bool {
	return h.info.StructsSorted.NumEntries() > 0
}

// HasFunctions reports whether the package owns any functions.
func (h PackageInfoHandle) HasFunctions() bool {
	return len(h.info.Functions) > 0
}

// HasParameterStructs reports whether any owned function takes
// parameters.
func (h PackageInfoHandle) HasParameterStructs() bool {
	return h.info.HasParams
}

// HasEnums reports whether the package owns any enums.
func (h PackageInfoHandle) HasEnums() bool {
	return len(h.info.Enums) > 0
}

// IsEmpty reports whether the package contributes nothing to emission.
func (h PackageInfoHandle) IsEmpty() bool {
	return !h.HasClasses() && !h.HasStructs() && !h.HasEnums() && !h.HasParameterStructs() && !h.HasFunctions()
}

// SortedStructs returns the intra-package struct ordering graph.
func (h PackageInfoHandle) SortedStructs() *DependencyManager {
	return h.info.StructsSorted
}

// SortedClasses returns the intra-package class ordering graph.
func (h PackageInfoHandle) SortedClasses() *DependencyManager {
	return h.info.ClassesSorted
}

// Functions returns the owned function indices in discovery order.
func (h PackageInfoHandle) Functions() []int {
	return h.info.Functions
}

// Enums returns the owned enum indices in discovery order.
func (h PackageInfoHandle) Enums() []int {
	return h.info.Enums
}

// Dependencies returns the package's inter-package requirements.
func (h PackageInfoHandle) Dependencies() *DependencyInfo {
	return &h.info.Dependencies
}

// ErasePackageDependencyFromStructs removes pkg from the structs lane.
// Used only by cycle resolution.
func (h PackageInfoHandle) ErasePackageDependencyFromStructs(pkg int) {
	delete(h.info.Dependencies.StructsDependencies, pkg)
}

// ErasePackageDependencyFromClasses removes pkg from the classes lane.
// Used only by cycle resolution.
func (h PackageInfoHandle) ErasePackageDependencyFromClasses(pkg int) {
	delete(h.info.Dependencies.ClassesDependencies, pkg)
}
