package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftscan/drift/internal/scan"
)

var discoverFlags struct {
	maxFileSize    int64
	threads        int
	extraIgnore    []string
	followSymlinks bool
	skipBinary     bool
}

var discoverCmd = &cobra.Command{
	Use:   "discover [root]",
	Short: "Walk a directory and print candidate paths, without hashing or diffing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().Int64Var(&discoverFlags.maxFileSize, "max-file-size", scan.DefaultMaxFileSize, "skip files larger than this many bytes")
	discoverCmd.Flags().IntVar(&discoverFlags.threads, "threads", 0, "worker count (0 = auto-detect)")
	discoverCmd.Flags().StringSliceVar(&discoverFlags.extraIgnore, "ignore", nil, "extra ignore glob patterns")
	discoverCmd.Flags().BoolVar(&discoverFlags.followSymlinks, "follow-symlinks", false, "follow symlinks instead of skipping them")
	discoverCmd.Flags().BoolVar(&discoverFlags.skipBinary, "skip-binary", true, "skip files that sniff as binary")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg := scan.Config{
		MaxFileSize:    discoverFlags.maxFileSize,
		ThreadCount:    discoverFlags.threads,
		ExtraIgnore:    discoverFlags.extraIgnore,
		FollowSymlinks: discoverFlags.followSymlinks,
		SkipBinary:     discoverFlags.skipBinary,
	}

	candidates, errs, err := scan.DiscoverOnly(cmd.Context(), root, cfg, nil)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		fmt.Fprintln(cmd.OutOrStdout(), c.Path)
	}
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", e.Path, e.Err)
	}
	return nil
}
