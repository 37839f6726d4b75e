package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [snapshot]",
	Short: "Browse the package dependency graph interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if cfg.DisableUI {
		return fmt.Errorf("interactive UI disabled by configuration")
	}

	mgr, _, _, err := loadManager(args)
	if err != nil {
		return err
	}

	root := tview.NewTreeNode("packages").SetColor(tcell.ColorYellow)

	for _, pkgIdx := range mgr.Packages() {
		info := mgr.GetInfo(pkgIdx)
		if info.IsEmpty() {
			continue
		}

		pkgNode := tview.NewTreeNode(fmt.Sprintf("%s (structs:%d classes:%d enums:%d funcs:%d)",
			info.Name(),
			info.SortedStructs().NumEntries(),
			info.SortedClasses().NumEntries(),
			len(info.Enums()),
			len(info.Functions()))).
			SetColor(tcell.ColorGreen).
			SetExpanded(false)

		structsNode := tview.NewTreeNode("needs for _structs")
		for _, dep := range info.Dependencies().StructsDependencies {
			structsNode.AddChild(tview.NewTreeNode(requirementLabel(mgr.GetInfo(dep.PackageIndex).Name(), dep.IncludeStructs, dep.IncludeClasses)))
		}
		classesNode := tview.NewTreeNode("needs for _classes")
		for _, dep := range info.Dependencies().ClassesDependencies {
			classesNode.AddChild(tview.NewTreeNode(requirementLabel(mgr.GetInfo(dep.PackageIndex).Name(), dep.IncludeStructs, dep.IncludeClasses)))
		}

		if len(structsNode.GetChildren()) > 0 {
			pkgNode.AddChild(structsNode)
		}
		if len(classesNode.GetChildren()) > 0 {
			pkgNode.AddChild(classesNode)
		}
		root.AddChild(pkgNode)
	}

	tree := tview.NewTreeView().SetRoot(root).SetCurrentNode(root)
	tree.SetBorder(true).SetTitle(" sdkgen package graph (q to quit) ").SetTitleAlign(tview.AlignLeft)

	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		node.SetExpanded(!node.IsExpanded())
	})

	app := tview.NewApplication().SetRoot(tree, true)
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	return app.Run()
}

func requirementLabel(name string, structs, classes bool) string {
	switch {
	case structs && classes:
		return name + " (structs+classes)"
	case structs:
		return name + " (structs)"
	case classes:
		return name + " (classes)"
	}
	return name
}
