package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdkgen/packages"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles [snapshot]",
	Short: "Report cyclic inter-package dependencies without emitting",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCycles,
}

func init() {
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) error {
	mgr, _, _, err := loadManager(args)
	if err != nil {
		return err
	}

	type edge struct {
		current, previous int
		structs           bool
	}
	seen := make(map[edge]bool)
	found := 0

	mgr.FindCycle(func(old, cur packages.IterationParams, isStruct bool) {
		e := edge{cur.RequiredPackage, cur.PrevPackage, isStruct}
		if seen[e] {
			return
		}
		seen[e] = true
		found++

		lane := "structs"
		if !isStruct {
			lane = "classes"
		}
		color.Yellow("cycle: %s <-> %s (%s lane)",
			mgr.GetInfo(cur.RequiredPackage).Name(),
			mgr.GetInfo(cur.PrevPackage).Name(),
			lane)
	})

	if found == 0 {
		color.Green("No cyclic inter-package dependencies")
	} else {
		fmt.Printf("%d cyclic edge(s) found; `sdkgen generate` will break them\n", found)
	}

	return nil
}
