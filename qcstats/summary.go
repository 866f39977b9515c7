package qcstats

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"github.com/naobservatory/mgsreport"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroupSummary aggregates the raw_concat rows that share a key: a sequencing
// machine or a delivery.
type GroupSummary struct {
	Key       string
	Samples   int
	ReadPairs float64
	Bases     float64
	MeanGC    float64
	Dates     []time.Time
}

type accumulator struct {
	samples   map[string]struct{}
	readPairs []float64
	bases     []float64
	gc        []float64
	dates     []time.Time
}

// KeyFunc assigns a raw_concat row to a group. A non-zero date is collected
// into the group's date range.
type KeyFunc func(row BasicStats) (key string, date time.Time, err error)

// SummarizeBy groups the raw_concat rows by keyOf and returns one summary per
// key, sorted by key.
func SummarizeBy(rows []BasicStats, keyOf KeyFunc) ([]GroupSummary, error) {
	groups := make(map[string]*accumulator)
	for _, row := range Raw(rows) {
		key, date, err := keyOf(row)
		if err != nil {
			return nil, err
		}

		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{samples: make(map[string]struct{})}
			groups[key] = acc
		}
		acc.samples[row.Sample] = struct{}{}
		acc.readPairs = append(acc.readPairs, row.NReadPairs)
		acc.bases = append(acc.bases, row.NBasesApprox)
		acc.gc = append(acc.gc, row.PercentGC)
		if !date.IsZero() {
			acc.dates = append(acc.dates, date)
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]GroupSummary, 0, len(keys))
	for _, k := range keys {
		acc := groups[k]
		out = append(out, GroupSummary{
			Key:       k,
			Samples:   len(acc.samples),
			ReadPairs: floats.Sum(acc.readPairs),
			Bases:     floats.Sum(acc.bases),
			MeanGC:    stat.Mean(acc.gc, nil),
			Dates:     acc.dates,
		})
	}

	return out, nil
}

// SummarizeByMachine groups the raw_concat rows by the sequencing machine
// implied by each sample's date.
func SummarizeByMachine(rows []BasicStats) ([]GroupSummary, error) {
	return SummarizeBy(rows, func(row BasicStats) (string, time.Time, error) {
		date, err := SampleDate(row.Sample)
		if err != nil {
			return "", date, &mgsreport.MalformedInputError{Source: "qc_basic_stats", Column: "sample", Err: err}
		}

		return SequencingMachine(date), date, nil
	})
}

// WriteMachineTable writes the per-machine summary:
// sequencing_machine, # Samples, Date Range, # Reads, # Bases, GC Content.
func WriteMachineTable(w io.Writer, summaries []GroupSummary) error {
	if err := mgsreport.WriteTSVRow(w, "sequencing_machine", "# Samples", "Date Range", "# Reads", "# Bases", "GC Content"); err != nil {
		return err
	}

	for _, s := range summaries {
		if err := mgsreport.WriteTSVRow(w,
			s.Key,
			fmt.Sprint(s.Samples),
			DateRange(s.Dates),
			fmt.Sprintf("%.2fB", s.ReadPairs/1e9),
			fmt.Sprintf("%.2fT", s.Bases/1e12),
			fmt.Sprintf("%.2f%%", s.MeanGC),
		); err != nil {
			return err
		}
	}

	return nil
}

// WriteDeliveryTable writes the per-delivery summary. dateRanges maps each
// delivery to its collection date range; deliveries without one get an empty
// cell.
func WriteDeliveryTable(w io.Writer, summaries []GroupSummary, dateRanges map[string]string) error {
	if err := mgsreport.WriteTSVRow(w, "uci_name", "total_read_pairs", "mean_gc_content", "total_bases", "total_libraries", "Date Range"); err != nil {
		return err
	}

	for _, s := range summaries {
		if err := mgsreport.WriteTSVRow(w,
			s.Key,
			mgsreport.FormatGrouped(s.ReadPairs/1e9, 2, "B"),
			mgsreport.FormatGrouped(s.MeanGC, 2, "%"),
			mgsreport.FormatGrouped(s.Bases/1e9, 0, "B"),
			fmt.Sprint(s.Samples),
			dateRanges[s.Key],
		); err != nil {
			return err
		}
	}

	return nil
}

// ReadPairSummary describes the spread of raw read-pair counts per sample.
type ReadPairSummary struct {
	Mean, Min, Max float64
}

func (r ReadPairSummary) String() string {
	return fmt.Sprintf("Mean: %.2e\nMin: %.2e\nMax: %.2e", r.Mean, r.Min, r.Max)
}

// ReadPairStats summarizes n_read_pairs over the raw_concat rows.
func ReadPairStats(rows []BasicStats) (ReadPairSummary, error) {
	var out ReadPairSummary

	data := make(stats.Float64Data, 0, len(rows))
	for _, row := range Raw(rows) {
		data = append(data, row.NReadPairs)
	}

	var err error
	if out.Mean, err = data.Mean(); err != nil {
		return out, pfx.Err(err)
	}
	if out.Min, err = data.Min(); err != nil {
		return out, pfx.Err(err)
	}
	if out.Max, err = data.Max(); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}
