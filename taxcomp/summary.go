package taxcomp

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"github.com/naobservatory/mgsreport"
)

// GroupSummary describes the spread of one group's abundance across samples.
type GroupSummary struct {
	Label            string
	N                int
	Median, Min, Max float64
}

// String renders the summary as "<label>: <median>% (<min>%, <max>%)".
func (s GroupSummary) String() string {
	return fmt.Sprintf("%s: %s (%s, %s)", s.Label, mgsreport.FormatPercent(s.Median), mgsreport.FormatPercent(s.Min), mgsreport.FormatPercent(s.Max))
}

// column gathers the abundance of output group i across records.
func column(records []GroupAbundance, i int) stats.Float64Data {
	data := make(stats.Float64Data, 0, len(records))
	for _, rec := range records {
		data = append(data, rec.Abundances[i])
	}

	return data
}

// Summarize returns the median, minimum and maximum abundance of each output
// group across records.
func (a *Aggregator) Summarize(records []GroupAbundance) ([]GroupSummary, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no samples to summarize")
	}

	out := make([]GroupSummary, 0, len(a.Config.Groups))
	for i, label := range a.Config.GroupLabels {
		data := column(records, i)

		s := GroupSummary{Label: label, N: data.Len()}

		var err error
		if s.Median, err = data.Median(); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Min, err = data.Min(); err != nil {
			return nil, pfx.Err(err)
		}
		if s.Max, err = data.Max(); err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, s)
	}

	return out, nil
}

// PrintHistograms writes a text histogram of each output group's abundance
// across records.
func (a *Aggregator) PrintHistograms(w io.Writer, records []GroupAbundance, bins, width int) error {
	for i, label := range a.Config.GroupLabels {
		if _, err := fmt.Fprintf(w, "%s (n=%d)\n", label, len(records)); err != nil {
			return err
		}

		hist := histogram.Hist(bins, column(records, i))
		if err := histogram.Fprint(w, hist, histogram.Linear(width)); err != nil {
			return err
		}
	}

	return nil
}
