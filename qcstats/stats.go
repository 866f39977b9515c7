// Package qcstats summarizes the per-sample read statistics that the
// workflow writes to qc_basic_stats.tsv.
package qcstats

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/araddon/dateparse"
	"github.com/naobservatory/mgsreport"
)

// RawStage is the stage holding the untrimmed, concatenated reads.
const RawStage = "raw_concat"

const DateLayout = "2006-01-02"

var requiredColumns = []string{"sample", "stage", "n_read_pairs", "percent_gc", "n_bases_approx"}

// BasicStats is one sample × stage row of qc_basic_stats.tsv.
type BasicStats struct {
	Sample       string  `csv:"sample"`
	Stage        string  `csv:"stage"`
	NReadPairs   float64 `csv:"n_read_pairs"`
	PercentGC    float64 `csv:"percent_gc"`
	NBasesApprox float64 `csv:"n_bases_approx"`
}

func Load(path string, client *storage.Client) ([]BasicStats, error) {
	out := []BasicStats{}
	if err := mgsreport.LoadTable(path, client, &out, requiredColumns...); err != nil {
		return nil, err
	}

	return out, nil
}

// Read decodes an in-memory qc_basic_stats table.
func Read(source string, data []byte) ([]BasicStats, error) {
	out := []BasicStats{}
	if err := mgsreport.UnmarshalTable(source, data, &out, requiredColumns...); err != nil {
		return nil, err
	}

	return out, nil
}

// Raw keeps only the raw_concat rows.
func Raw(rows []BasicStats) []BasicStats {
	out := make([]BasicStats, 0, len(rows))
	for _, row := range rows {
		if row.Stage == RawStage {
			out = append(out, row)
		}
	}

	return out
}

// SampleDateString extracts the collection date embedded in a sample name:
// JR-2024-03-22-a-S1 yields 2024-03-22.
func SampleDateString(sample string) (string, error) {
	parts := strings.Split(sample, "-")
	if len(parts) < 4 {
		return "", fmt.Errorf("sample %q does not embed a YYYY-MM-DD date", sample)
	}

	return strings.Join(parts[1:4], "-"), nil
}

// SampleDate parses the date embedded in a sample name.
func SampleDate(sample string) (time.Time, error) {
	s, err := SampleDateString(sample)
	if err != nil {
		return time.Time{}, err
	}

	date, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("sample %q: %w", sample, err)
	}

	return date, nil
}

// The NovaSeq X replaced the NovaSeq 6000 for runs from this date on.
var novaSeqXSince = time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)

// SequencingMachine names the instrument that sequenced a sample collected on
// date.
func SequencingMachine(date time.Time) string {
	if !date.Before(novaSeqXSince) {
		return "NovaSeq X"
	}

	return "NovaSeq 6000"
}

// DateRange renders the span of dates as "YYYY-MM-DD to YYYY-MM-DD".
func DateRange(dates []time.Time) string {
	if len(dates) == 0 {
		return ""
	}

	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	return fmt.Sprintf("%s to %s", min.Format(DateLayout), max.Format(DateLayout))
}
