package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"medtrack/internal/app"
	"medtrack/internal/domain"
)

var exportKinds = map[string]domain.RecordKind{
	"injections":   domain.KindInjection,
	"weights":      domain.KindWeight,
	"measurements": domain.KindMeasurement,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write record history as CSV",
	Long: `Export one record kind as CSV, oldest row first, to stdout or a file.

Kinds: injections, weights, measurements.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("kind", "", "record kind to export (required)")
	exportCmd.Flags().String("out", "", "output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("kind")
}

func runExport(cmd *cobra.Command, args []string) error {
	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, ok := exportKinds[kindFlag]
	if !ok {
		return fmt.Errorf("unknown kind %q (injections, weights or measurements)", kindFlag)
	}

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

	return app.NewExportService(storesFor(db)).WriteCSV(cmd.Context(), kind, out)
}
