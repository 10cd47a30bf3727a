package benchstore

import (
	"errors"
	"fmt"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/parquet"
)

// ExecuteBenchmarkExport writes every stored submission to a Parquet file.
func ExecuteBenchmarkExport(store contract.BenchmarkStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("benchmark store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get benchmark status: %w", err)
	}
	if status.TotalSubmissions == 0 {
		return errors.New("no benchmark data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total submissions: %d\n", status.TotalSubmissions)

	submissions, err := store.GetAllSubmissions()
	if err != nil {
		return fmt.Errorf("failed to retrieve submissions: %w", err)
	}

	rows := parquet.ConvertSubmissions(submissions)
	if err := parquet.WriteSubmissionsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write submissions: %w", err)
	}
	fmt.Printf("Exported %d submissions to: %s\n", len(rows), outputFile)
	fmt.Println("The file can be used as a --cohort-file for offline ranking.")

	return nil
}
