// Package emit turns the resolved package graph into output files: per
// non-empty package a <Package>_structs.h (written only when the package
// has structs or enums) and a <Package>_classes.h (written only when it
// has classes or functions), plus a master SDK.h whose include order
// follows the dependency traversal.
package emit

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"sdkgen/log"
	"sdkgen/packages"
	"sdkgen/structinfo"
	"sdkgen/universe"
	"sdkgen/util"
)

// Summary reports what a WriteAll pass produced.
type Summary struct {
	Packages int
	Files    int
	Bytes    int64
}

// Writer emits the SDK files for one resolved manager.
type Writer struct {
	mgr     *packages.Manager
	u       *universe.Universe
	structs *structinfo.Manager
	outDir  string
	logger  log.LibraryLogger
}

// NewWriter creates a writer. The manager must have completed PostInit.
func NewWriter(mgr *packages.Manager, u *universe.Universe, structs *structinfo.Manager, outDir string, logger log.LibraryLogger) *Writer {
	if logger == nil {
		logger = log.NoOpLogger{}
	}
	return &Writer{mgr: mgr, u: u, structs: structs, outDir: outDir, logger: logger}
}

// WriteAll walks the package graph in dependency order and writes every
// output file.
func (w *Writer) WriteAll() (*Summary, error) {
	if err := util.EnsureDir(w.outDir); err != nil {
		return nil, err
	}

	// The traversal callback cannot fail; collect the order first and
	// write afterwards.
	type laneVisit struct {
		pkg      int
		isStruct bool
	}
	var order []laneVisit
	w.mgr.IterateDependencies(func(pkgIdx int, isStruct bool) {
		order = append(order, laneVisit{pkgIdx, isStruct})
	})

	summary := &Summary{}
	emitted := make(map[int]bool)
	var master strings.Builder
	master.WriteString("// Master include. Order matters: dependencies first.\n\n")

	for _, v := range order {
		info := w.mgr.GetInfo(v.pkg)
		if info.IsEmpty() {
			continue
		}
		if !emitted[v.pkg] {
			emitted[v.pkg] = true
			summary.Packages++
		}

		var name string
		var content string
		if v.isStruct {
			if !info.HasStructs() && !info.HasEnums() {
				continue
			}
			name = info.Name() + "_structs.h"
			content = w.renderStructsFile(info)
		} else {
			if !info.HasClasses() && !info.HasFunctions() {
				continue
			}
			name = info.Name() + "_classes.h"
			content = w.renderClassesFile(info)
		}

		path := filepath.Join(w.outDir, name)
		if err := util.WriteFileAtomic(path, []byte(content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		summary.Files++
		summary.Bytes += int64(len(content))
		master.WriteString("#include \"" + name + "\"\n")

		w.logger.Debug("wrote %s (%d bytes)", name, len(content))
	}

	masterPath := filepath.Join(w.outDir, "SDK.h")
	if err := util.WriteFileAtomic(masterPath, []byte(master.String())); err != nil {
		return nil, fmt.Errorf("writing SDK.h: %w", err)
	}
	summary.Files++
	summary.Bytes += int64(master.Len())

	return summary, nil
}

func (w *Writer) writeIncludes(b *strings.Builder, deps packages.DependencyList, ownPkg int) {
	for _, pkg := range sortedKeys(deps) {
		req := deps[pkg]
		peer := w.mgr.GetInfo(pkg)
		if req.IncludeStructs {
			b.WriteString("#include \"" + peer.Name() + "_structs.h\"\n")
		}
		// A package never includes its own classes output.
		if req.IncludeClasses && pkg != ownPkg {
			b.WriteString("#include \"" + peer.Name() + "_classes.h\"\n")
		}
	}
}

// writeForwardDecls emits package-tagged forward declarations for the
// direct dependencies a cyclic struct cannot include.
func (w *Writer) writeForwardDecls(b *strings.Builder, nodeIdx int) {
	si := w.structs.Get(nodeIdx)
	if si == nil || !si.IsPartOfCycle() {
		return
	}

	obj := w.u.ByIndex(nodeIdx)
	declared := make(map[int]bool)

	declare := func(depIdx int) {
		dep := w.u.ByIndex(depIdx)
		if !si.IsCyclicWith(dep.PackageIndex) || declared[depIdx] {
			return
		}
		declared[depIdx] = true
		pkgName := w.mgr.GetInfo(dep.PackageIndex).Name()
		fmt.Fprintf(b, "struct %s_%s; // cyclic, declared in %s\n",
			pkgName, universe.SanitizeName(dep.Name), pkgName)
	}

	if obj.Super != universe.NoIndex {
		declare(obj.Super)
	}
	for i := range obj.Properties {
		if obj.Properties[i].Kind == universe.KindStructProperty {
			declare(obj.Properties[i].Struct)
		}
	}
}

func (w *Writer) renderStructsFile(info packages.PackageInfoHandle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s: structs and enums\n\n", info.Name())

	w.writeIncludes(&b, info.Dependencies().StructsDependencies, info.Index())
	b.WriteString("\n")

	for _, enumIdx := range info.Enums() {
		fmt.Fprintf(&b, "enum class %s;\n", universe.SanitizeName(w.u.ByIndex(enumIdx).Name))
	}
	if len(info.Enums()) > 0 {
		b.WriteString("\n")
	}

	info.SortedStructs().VisitAllNodesWithCallback(func(idx int) {
		w.writeForwardDecls(&b, idx)
		obj := w.u.ByIndex(idx)
		if obj.Super != universe.NoIndex {
			fmt.Fprintf(&b, "struct %s : %s {};\n",
				universe.SanitizeName(obj.Name), universe.SanitizeName(w.u.ByIndex(obj.Super).Name))
		} else {
			fmt.Fprintf(&b, "struct %s {};\n", universe.SanitizeName(obj.Name))
		}
	})

	return b.String()
}

func (w *Writer) renderClassesFile(info packages.PackageInfoHandle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s: classes\n\n", info.Name())

	w.writeIncludes(&b, info.Dependencies().ClassesDependencies, info.Index())
	b.WriteString("\n")

	info.SortedClasses().VisitAllNodesWithCallback(func(idx int) {
		w.writeForwardDecls(&b, idx)
		obj := w.u.ByIndex(idx)
		if obj.Super != universe.NoIndex {
			fmt.Fprintf(&b, "class %s : public %s {};\n",
				universe.SanitizeName(obj.Name), universe.SanitizeName(w.u.ByIndex(obj.Super).Name))
		} else {
			fmt.Fprintf(&b, "class %s {};\n", universe.SanitizeName(obj.Name))
		}
	})

	if len(info.Functions()) > 0 {
		b.WriteString("\n// functions\n")
		for _, fnIdx := range info.Functions() {
			fn := w.u.ByIndex(fnIdx)
			fmt.Fprintf(&b, "// %s(%d params)\n", universe.SanitizeName(fn.Name), len(fn.Properties))
		}
	}

	return b.String()
}

func sortedKeys(deps packages.DependencyList) []int {
	out := make([]int, 0, len(deps))
	for pkg := range deps {
		out = append(out, pkg)
	}
	sort.Ints(out)
	return out
}
