package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
)

// WriteStoreStatus outputs benchmark store status information.
func WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeStatusText(w, status) },
		func(w io.Writer) error { return writeStatusCSV(w, status) },
		status,
	)
}

// sortedCohorts returns cohort names in a stable order.
func sortedCohorts(status schema.StoreStatus) []string {
	names := make([]string, 0, len(status.Cohorts))
	for name := range status.Cohorts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// writeStatusText prints store status information.
func writeStatusText(w io.Writer, status schema.StoreStatus) error {
	if _, err := fmt.Fprintf(w, "Benchmark Backend: %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Connected: %t\n", status.Connected); err != nil {
		return err
	}
	if !status.Connected {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Total Submissions: %d\n", status.TotalSubmissions); err != nil {
		return err
	}
	if status.TotalSubmissions == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Last Submission: %s\n", status.LastSubmissionTime.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Oldest Submission: %s\n", status.OldestSubmissionTime.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Cohorts:"); err != nil {
		return err
	}
	for _, name := range sortedCohorts(status) {
		if _, err := fmt.Fprintf(w, "  %s: %d submissions\n", name, status.Cohorts[name]); err != nil {
			return err
		}
	}
	return nil
}

// writeStatusCSV writes one row per cohort.
func writeStatusCSV(w io.Writer, status schema.StoreStatus) error {
	return writeCSVWithHeader(w, []string{"backend", "cohort", "submissions"}, func(cw *csv.Writer) error {
		for _, name := range sortedCohorts(status) {
			if err := cw.Write([]string{status.Backend, name, strconv.Itoa(status.Cohorts[name])}); err != nil {
				return err
			}
		}
		return nil
	})
}
