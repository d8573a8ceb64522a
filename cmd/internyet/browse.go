package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Monika-msk/vtu-internyet/internal/archive"
	"github.com/Monika-msk/vtu-internyet/internal/browse"
)

var browseLimit int

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse archived listings in an interactive view",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().IntVarP(&browseLimit, "limit", "n", 100, "maximum listings to load, newest first")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if cfg.ArchiveFile == "" {
		return fmt.Errorf("no archive_file configured, nothing to browse")
	}

	arch, err := archive.Open(cfg.ArchiveFile)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer arch.Close()

	listings, err := arch.Recent(browseLimit)
	if err != nil {
		return fmt.Errorf("loading archived listings: %w", err)
	}
	if len(listings) == 0 {
		fmt.Println("Archive is empty. Run the watcher first.")
		return nil
	}
	return browse.Run(listings)
}
