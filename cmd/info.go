package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdkgen/log"
	"sdkgen/packages"
	"sdkgen/structinfo"
	"sdkgen/universe"
)

var infoCmd = &cobra.Command{
	Use:   "info [snapshot]",
	Short: "Show the package table of a snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// loadManager builds an initialized manager for the read-only commands.
// Only Init runs: inter-package cycles are left unresolved.
func loadManager(args []string) (*packages.Manager, *universe.Universe, *structinfo.Manager, error) {
	snapshot := cfg.SnapshotPath
	if len(args) == 1 {
		snapshot = args[0]
	}
	if snapshot == "" {
		return nil, nil, nil, fmt.Errorf("no snapshot given (argument or [paths] snapshot in config)")
	}

	u, err := universe.LoadSnapshot(snapshot)
	if err != nil {
		return nil, nil, nil, err
	}

	si := structinfo.NewManager()
	mgr := packages.NewManager(u, si, log.NoOpLogger{})
	mgr.Init()

	return mgr, u, si, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	mgr, _, _, err := loadManager(args)
	if err != nil {
		return err
	}

	header := color.New(color.Bold)
	header.Printf("%-28s %8s %8s %8s %8s %6s\n", "PACKAGE", "STRUCTS", "CLASSES", "ENUMS", "FUNCS", "DEPS")

	for _, pkgIdx := range mgr.Packages() {
		info := mgr.GetInfo(pkgIdx)
		if info.IsEmpty() {
			continue
		}

		deps := len(info.Dependencies().StructsDependencies) + len(info.Dependencies().ClassesDependencies)

		fmt.Printf("%-28s %8d %8d %8d %8d %6d\n",
			info.Name(),
			info.SortedStructs().NumEntries(),
			info.SortedClasses().NumEntries(),
			len(info.Enums()),
			len(info.Functions()),
			deps)
	}

	return nil
}
