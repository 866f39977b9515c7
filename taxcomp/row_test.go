package taxcomp

import (
	"errors"
	"testing"

	"github.com/naobservatory/mgsreport"
)

func readRows(t *testing.T, body string) ([]ClassificationRow, error) {
	t.Helper()

	table, err := mgsreport.NewTable("kraken.tsv", []byte(body))
	if err != nil {
		t.Fatal(err)
	}

	return ReadRows(table)
}

func TestReadRows(t *testing.T) {
	body := "sample\ttaxid\tname\tn_reads_clade\tribosomal\tpc_reads_total\n" +
		"HTP-2023-01-01\t2\tBacteria\t400\tTrue\t40.0\n" +
		"HTP-2023-01-01\t0\tunclassified\t600\tFalse\t60.5\n"

	rows, err := readRows(t, body)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Sample != "HTP-2023-01-01" || first.TaxID != TaxIDBacteria || first.NReadsClade != 400 {
		t.Errorf("Unexpected first row %+v", first)
	}
	if !first.Ribosomal.Valid || !first.Ribosomal.Bool {
		t.Errorf("Expected ribosomal=True, got %+v", first.Ribosomal)
	}

	second := rows[1]
	if !second.Ribosomal.Valid || second.Ribosomal.Bool {
		t.Errorf("Expected ribosomal=False, got %+v", second.Ribosomal)
	}
	if !second.PercentReadsTotal.Valid || second.PercentReadsTotal.Float64 != 60.5 {
		t.Errorf("Expected pc_reads_total=60.5, got %+v", second.PercentReadsTotal)
	}
}

func TestReadRowsWithoutOptionalColumns(t *testing.T) {
	rows, err := readRows(t, "sample\ttaxid\tn_reads_clade\nS1\t10239\t12\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Ribosomal.Valid || rows[0].PercentReadsTotal.Valid {
		t.Errorf("Expected null optional columns, got %+v", rows[0])
	}
}

func TestReadRowsMalformed(t *testing.T) {
	for name, v := range map[string]struct {
		body   string
		column string
	}{
		"missing column": {"sample\tn_reads_clade\nS1\t12\n", ColTaxID},
		"bad taxid":      {"sample\ttaxid\tn_reads_clade\nS1\tbacteria\t12\n", ColTaxID},
		"bad count":      {"sample\ttaxid\tn_reads_clade\nS1\t2\ttwelve\n", ColReadsClade},
		"negative count": {"sample\ttaxid\tn_reads_clade\nS1\t2\t-1\n", ColReadsClade},
		"bad ribosomal":  {"sample\ttaxid\tn_reads_clade\tribosomal\nS1\t2\t1\tmaybe\n", ColRibosomal},
		"empty sample":   {"sample\ttaxid\tn_reads_clade\n\t2\t1\n", ColSample},
	} {
		_, err := readRows(t, v.body)
		if err == nil {
			t.Errorf("%s: expected an error", name)
			continue
		}

		var malformed *mgsreport.MalformedInputError
		if !errors.As(err, &malformed) {
			t.Errorf("%s: expected MalformedInputError, got %T %v", name, err, err)
			continue
		}
		if malformed.Column != v.column {
			t.Errorf("%s: expected column %s, got %s", name, v.column, malformed.Column)
		}
	}
}
