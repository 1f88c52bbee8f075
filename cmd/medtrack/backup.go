package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"medtrack/internal/app"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Dump all records and settings as JSON",
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore records and settings from a JSON dump",
	Long: `Read a backup file and upsert every record through the normal
validation path. Records already present under the same ID are
overwritten; everything else is left alone.`,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().String("out", "", "output file (default stdout)")

	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().String("in", "", "backup file to restore (required)")
	_ = restoreCmd.MarkFlagRequired("in")
}

func runBackup(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	return app.NewBackupService(storesFor(db)).Dump(cmd.Context(), out)
}

func runRestore(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("in")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	restored, err := app.NewBackupService(storesFor(db)).Restore(cmd.Context(), f)
	if err != nil {
		return err
	}
	fmt.Printf("restored %d records\n", restored)
	return nil
}
