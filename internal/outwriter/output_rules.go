package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRulesListing outputs the rules of a manifest with their weights.
func WriteRulesListing(listing schema.RulesListing, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeRulesText(w, listing, cfg) },
		func(w io.Writer) error { return writeRulesCSV(w, listing) },
		listing,
	)
}

// formatWeight renders a manifest weight, keeping non-numeric values visible.
func formatWeight(weight schema.Weight) string {
	switch {
	case !weight.Present:
		return "-"
	case !weight.Numeric:
		return fmt.Sprintf("%q", weight.Raw)
	default:
		return strconv.FormatFloat(weight.Value, 'f', -1, 64)
	}
}

// writeRulesText displays rules in human-readable text format.
func writeRulesText(w io.Writer, listing schema.RulesListing, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "🧭 Onboarding Rules (manifest %s, hash %s)\n", listing.ManifestVersion, listing.ManifestHash); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score = Σ weight × sub-score, clamped to [0, 100]\n"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rule", "Category", "Weight", "Confidence", "Scored", "Description"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{
			tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignLeft, tw.AlignLeft, tw.AlignLeft,
		}
	})

	descWidth := GetMaxTableTextWidth(cfg, 60) // Rule + Category + Weight + Confidence + Scored
	var data [][]string
	for _, r := range listing.Rules {
		scored := "yes"
		if !r.Scored {
			scored = "no"
		}
		confidence := string(r.Confidence)
		if confidence == "" {
			confidence = "-"
		}
		data = append(data, []string{
			r.ID,
			r.Category,
			formatWeight(r.Weight),
			confidence,
			scored,
			contract.TruncateText(r.Description, descWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d rules, total weight %.4f\n", len(listing.Rules), listing.TotalWeight)
	return err
}

// writeRulesCSV writes the rules listing in CSV format.
func writeRulesCSV(w io.Writer, listing schema.RulesListing) error {
	header := []string{"id", "category", "weight", "confidence", "scored", "description", "fix"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range listing.Rules {
			rec := []string{
				r.ID,
				r.Category,
				formatWeight(r.Weight),
				string(r.Confidence),
				strconv.FormatBool(r.Scored),
				r.Description,
				r.Fix,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
