package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftscan/drift/internal/cachestore"
	"github.com/driftscan/drift/internal/scan"
)

var scanFlags struct {
	snapshotPath   string
	maxFileSize    int64
	threads        int
	extraIgnore    []string
	followSymlinks bool
	computeHashes  bool
	forceFullScan  bool
	skipBinary     bool
	jsonOutput     bool
}

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Run a full scan: discover, hash, diff against the snapshot, and persist results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFlags.snapshotPath, "snapshot", "drift.db", "path to the persisted snapshot database")
	scanCmd.Flags().Int64Var(&scanFlags.maxFileSize, "max-file-size", scan.DefaultMaxFileSize, "skip files larger than this many bytes")
	scanCmd.Flags().IntVar(&scanFlags.threads, "threads", 0, "worker count (0 = auto-detect)")
	scanCmd.Flags().StringSliceVar(&scanFlags.extraIgnore, "ignore", nil, "extra ignore glob patterns, on top of defaults and ignore files")
	scanCmd.Flags().BoolVar(&scanFlags.followSymlinks, "follow-symlinks", false, "follow symlinks instead of skipping them")
	scanCmd.Flags().BoolVar(&scanFlags.computeHashes, "compute-hashes", true, "hash file contents to confirm mtime-detected changes")
	scanCmd.Flags().BoolVar(&scanFlags.forceFullScan, "force-full-scan", false, "disable the mtime short-circuit and hash every file")
	scanCmd.Flags().BoolVar(&scanFlags.skipBinary, "skip-binary", true, "skip files that sniff as binary")
	scanCmd.Flags().BoolVar(&scanFlags.jsonOutput, "json", false, "print the exposed summary as JSON")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg := scan.Config{
		MaxFileSize:    scanFlags.maxFileSize,
		ThreadCount:    scanFlags.threads,
		ExtraIgnore:    scanFlags.extraIgnore,
		FollowSymlinks: scanFlags.followSymlinks,
		ComputeHashes:  scanFlags.computeHashes,
		ForceFullScan:  scanFlags.forceFullScan,
		SkipBinary:     scanFlags.skipBinary,
	}

	store, err := cachestore.OpenSQLiteStore(scanFlags.snapshotPath)
	if err != nil {
		return err
	}
	defer store.Close()

	diff, err := scan.Scan(cmd.Context(), root, cfg, store, scan.NoopEventSink, nil)
	if err != nil {
		return err
	}

	summary := scan.BuildSummary(diff)
	if scanFlags.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "status:    %s\n", summary.Status)
	fmt.Fprintf(cmd.OutOrStdout(), "added:     %d\n", summary.AddedCount)
	fmt.Fprintf(cmd.OutOrStdout(), "modified:  %d\n", summary.ModifiedCount)
	fmt.Fprintf(cmd.OutOrStdout(), "removed:   %d\n", summary.RemovedCount)
	fmt.Fprintf(cmd.OutOrStdout(), "unchanged: %d\n", summary.UnchangedCount)
	fmt.Fprintf(cmd.OutOrStdout(), "bytes:     %d\n", summary.TotalBytes)
	fmt.Fprintf(cmd.OutOrStdout(), "duration:  %dms\n", summary.DurationMillis)
	return nil
}
