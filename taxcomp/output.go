package taxcomp

import (
	"io"

	"github.com/naobservatory/mgsreport"
)

// Header returns the column labels of the table.
func (a *Aggregator) Header() []string {
	cfg := a.Config
	out := []string{cfg.SampleLabel}
	if cfg.PartitionBy == ByRibosomal {
		out = append(out, cfg.RibosomalLabel)
	}
	out = append(out, cfg.GroupLabels...)
	if cfg.IncludeTotal {
		out = append(out, cfg.TotalLabel)
	}

	return out
}

// Fields renders one record as table cells, matching Header.
func (a *Aggregator) Fields(rec GroupAbundance) []string {
	cfg := a.Config
	out := []string{rec.Sample}
	if cfg.PartitionBy == ByRibosomal {
		out = append(out, mgsreport.FormatBool(rec.Ribosomal.Bool))
	}
	for _, v := range rec.Abundances {
		out = append(out, FormatAbundance(cfg.Format, v))
	}
	if cfg.IncludeTotal {
		out = append(out, mgsreport.FormatFloat(rec.TotalReads))
	}

	return out
}

// FormatAbundance renders a fraction according to f.
func FormatAbundance(f Format, fraction float64) string {
	switch f {
	case Percent:
		return mgsreport.FormatPercent(fraction)
	case Scientific:
		return mgsreport.FormatScientific(fraction)
	}

	return mgsreport.FormatFloat(fraction)
}

// WriteTSV writes the header and one line per record.
func (a *Aggregator) WriteTSV(w io.Writer, records []GroupAbundance) error {
	if err := mgsreport.WriteTSVRow(w, a.Header()...); err != nil {
		return err
	}

	for _, rec := range records {
		if err := mgsreport.WriteTSVRow(w, a.Fields(rec)...); err != nil {
			return err
		}
	}

	return nil
}
