package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBenchmarkRanking outputs a score's placement within a cohort.
func WriteBenchmarkRanking(ranking schema.BenchmarkRanking, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg,
		func(w io.Writer) error { return writeRankingTable(w, ranking, fmtFloat) },
		func(w io.Writer) error { return writeRankingCSV(w, ranking, fmtFloat) },
		ranking,
	)
}

func rankingRow(r schema.BenchmarkRanking, fmtFloat func(float64) string) []string {
	return []string{
		r.Cohort,
		fmtFloat(r.Score),
		strconv.Itoa(r.Rank),
		strconv.Itoa(r.Of),
		fmtFloat(r.P25),
		fmtFloat(r.P50),
		fmtFloat(r.P75),
	}
}

// writeRankingTable writes a single-row ranking table.
func writeRankingTable(w io.Writer, r schema.BenchmarkRanking, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Cohort", "Score", "Rank", "Of", "P25", "P50", "P75"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk([][]string{rankingRow(r, fmtFloat)}); err != nil {
		return err
	}
	return table.Render()
}

// writeRankingCSV writes the ranking in CSV format.
func writeRankingCSV(w io.Writer, r schema.BenchmarkRanking, fmtFloat func(float64) string) error {
	header := []string{"cohort", "score", "rank", "of", "p25", "p50", "p75"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write(rankingRow(r, fmtFloat))
	})
}
