package qcstats

import (
	"fmt"
	"io"

	"github.com/naobservatory/mgsreport"
)

// Every library was collected at the same site.
var siteColumns = []string{"United States", "California", "Los Angeles County", "Los Angeles", "Hyperion Treatment Plant"}

// SampleReads is one line of the per-sample table.
type SampleReads struct {
	Sample    string
	Date      string
	ReadPairs float64
}

// PerSample lists every distinct sample in order of first appearance. When a
// sample has rows for several stages, the read-pair count of its last row is
// kept.
func PerSample(rows []BasicStats) ([]SampleReads, error) {
	index := make(map[string]int)
	out := make([]SampleReads, 0)
	for _, row := range rows {
		i, seen := index[row.Sample]
		if !seen {
			date, err := SampleDateString(row.Sample)
			if err != nil {
				return nil, &mgsreport.MalformedInputError{Source: "qc_basic_stats", Column: "sample", Err: err}
			}
			i = len(out)
			index[row.Sample] = i
			out = append(out, SampleReads{Sample: row.Sample, Date: date})
		}
		out[i].ReadPairs = row.NReadPairs
	}

	return out, nil
}

// WriteSamplesTable writes one row per sample with its collection site, date
// and read-pair count.
func WriteSamplesTable(w io.Writer, samples []SampleReads) error {
	if err := mgsreport.WriteTSVRow(w, "Sample", "Country", "State", "County", "City", "Treatment Plant", "Date", "Reads"); err != nil {
		return err
	}

	for _, s := range samples {
		fields := append([]string{s.Sample}, siteColumns...)
		fields = append(fields, s.Date, mgsreport.FormatReadCount(s.ReadPairs, 2))
		if err := mgsreport.WriteTSVRow(w, fields...); err != nil {
			return err
		}
	}

	return nil
}

// Describe prints the read-pair spread the way the command line tools report
// it.
func Describe(w io.Writer, rows []BasicStats) error {
	summary, err := ReadPairStats(rows)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, summary)
	return err
}
