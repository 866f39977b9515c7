package taxcomp

import (
	"fmt"
	"io"
	"math"

	"cloud.google.com/go/storage"
	"github.com/naobservatory/mgsreport"
	"gopkg.in/guregu/null.v3"
)

// Column names of a merged Kraken report.
const (
	ColSample            = "sample"
	ColTaxID             = "taxid"
	ColReadsClade        = "n_reads_clade"
	ColRibosomal         = "ribosomal"
	ColPercentReadsTotal = "pc_reads_total"
)

// ClassificationRow is one sample × taxid row of a merged classification
// report.
type ClassificationRow struct {
	Sample      string
	TaxID       int
	NReadsClade float64

	// Ribosomal is null when the report has no ribosomal column.
	Ribosomal null.Bool

	// PercentReadsTotal is null when the report has no pc_reads_total column.
	PercentReadsTotal null.Float
}

// LoadRows reads a merged Kraken report from a local or gs:// path, gzipped or
// not.
func LoadRows(path string, client *storage.Client) ([]ClassificationRow, error) {
	t, err := mgsreport.OpenTable(path, client)
	if err != nil {
		return nil, err
	}

	return ReadRows(t)
}

// ReadRows parses every remaining row of t. The sample, taxid and
// n_reads_clade columns are required; ribosomal and pc_reads_total are read
// when present.
func ReadRows(t *mgsreport.Table) ([]ClassificationRow, error) {
	if err := t.Require(ColSample, ColTaxID, ColReadsClade); err != nil {
		return nil, err
	}
	hasRibosomal := t.Has(ColRibosomal)
	hasPercent := t.Has(ColPercentReadsTotal)

	out := make([]ClassificationRow, 0)
	for {
		row, err := t.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		r := ClassificationRow{Sample: t.Get(row, ColSample)}
		if r.Sample == "" {
			return nil, &mgsreport.MalformedInputError{Source: t.Source, Line: t.Line(), Column: ColSample, Err: fmt.Errorf("empty sample identifier")}
		}

		if r.TaxID, err = t.Int(row, ColTaxID); err != nil {
			return nil, err
		}

		if r.NReadsClade, err = t.Float(row, ColReadsClade); err != nil {
			return nil, err
		}
		if r.NReadsClade < 0 || math.IsNaN(r.NReadsClade) || math.IsInf(r.NReadsClade, 0) {
			return nil, &mgsreport.MalformedInputError{Source: t.Source, Line: t.Line(), Column: ColReadsClade, Err: fmt.Errorf("read count %v is not a finite non-negative number", r.NReadsClade)}
		}

		if hasRibosomal {
			ribo, err := t.Bool(row, ColRibosomal)
			if err != nil {
				return nil, err
			}
			r.Ribosomal = null.BoolFrom(ribo)
		}

		if hasPercent {
			pc, err := t.Float(row, ColPercentReadsTotal)
			if err != nil {
				return nil, err
			}
			r.PercentReadsTotal = null.FloatFrom(pc)
		}

		out = append(out, r)
	}

	return out, nil
}
