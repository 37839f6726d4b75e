package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sdkgen/emit"
	"sdkgen/gendb"
	"sdkgen/log"
	"sdkgen/packages"
	"sdkgen/structinfo"
	"sdkgen/universe"
	"sdkgen/util"
)

var generateCmd = &cobra.Command{
	Use:   "generate [snapshot]",
	Short: "Generate SDK headers from a snapshot",
	Long: `Load the reflection snapshot, resolve the package dependency
graph and write the ordered header files. Unless --force is given, a
snapshot whose content is unchanged since the last successful run is
skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("force", false, "regenerate even if the snapshot is unchanged")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	snapshot := cfg.SnapshotPath
	if len(args) == 1 {
		snapshot = args[0]
	}
	if snapshot == "" {
		return fmt.Errorf("no snapshot given (argument or [paths] snapshot in config)")
	}

	force := cfg.Force
	if f, _ := cmd.Flags().GetBool("force"); f {
		force = true
	}

	if err := util.EnsureDir(cfg.OutputPath); err != nil {
		return err
	}

	// One generator per output directory at a time.
	lock, err := util.AcquireRunLock(filepath.Join(cfg.OutputPath, ".sdkgen.lock"))
	if err != nil {
		return err
	}
	defer lock.Release()

	logger, err := log.NewLogger(cfg.LogsPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Close()

	db, err := gendb.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	crc, err := gendb.SnapshotCRC(snapshot)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	if !force {
		needs, err := db.NeedsGeneration(snapshot, crc)
		if err != nil {
			return err
		}
		if !needs {
			color.Green("Snapshot unchanged, nothing to do (use --force to regenerate)")
			return nil
		}
	}

	start := time.Now()
	rec := &gendb.RunRecord{
		UUID:         uuid.NewString(),
		SnapshotPath: snapshot,
		SnapshotCRC:  crc,
		StartTime:    start,
	}
	if err := db.StartRun(rec); err != nil {
		return err
	}

	u, err := universe.LoadSnapshot(snapshot)
	if err != nil {
		db.FinishRun(rec, gendb.RunStatusFailed, time.Now())
		return err
	}
	fmt.Printf("Loaded %d objects from %s\n", u.Len(), snapshot)

	si := structinfo.NewManager()
	mgr := packages.NewManager(u, si, logger)
	mgr.Init()
	mgr.PostInit()
	fmt.Printf("Resolved %d packages\n", len(mgr.Packages()))

	writer := emit.NewWriter(mgr, u, si, cfg.OutputPath, logger)
	summary, err := writer.WriteAll()
	if err != nil {
		logger.Error("emission failed: %v", err)
		db.FinishRun(rec, gendb.RunStatusFailed, time.Now())
		return err
	}

	rec.Packages = summary.Packages
	rec.Files = summary.Files
	rec.BytesWritten = summary.Bytes
	if err := db.FinishRun(rec, gendb.RunStatusSuccess, time.Now()); err != nil {
		return err
	}
	if err := db.RecordGeneration(snapshot, crc); err != nil {
		return err
	}

	duration := time.Since(start)
	logger.WriteSummary(summary.Packages, summary.Files, summary.Bytes, duration)

	color.Green("Wrote %d files for %d packages (%s) in %s",
		summary.Files, summary.Packages, humanize.Bytes(uint64(summary.Bytes)), duration.Round(time.Millisecond))

	return nil
}
