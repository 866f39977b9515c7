package qcstats

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/naobservatory/mgsreport"
)

const basicStats = "sample\tstage\tn_read_pairs\tpercent_gc\tn_bases_approx\n" +
	"JR-2024-01-10-a\traw_concat\t1000000000\t40\t300000000000\n" +
	"JR-2024-01-10-a\tcleaned\t900000000\t41\t270000000000\n" +
	"JR-2024-02-01-b\traw_concat\t500000000\t50\t150000000000\n" +
	"JR-2024-03-05-c\traw_concat\t2000000000\t45\t600000000000\n"

func mustRead(t *testing.T) []BasicStats {
	t.Helper()

	rows, err := Read("qc_basic_stats.tsv", []byte(basicStats))
	if err != nil {
		t.Fatal(err)
	}

	return rows
}

func TestRead(t *testing.T) {
	rows := mustRead(t)
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[1].Stage != "cleaned" || rows[1].PercentGC != 41 {
		t.Errorf("Unexpected row %+v", rows[1])
	}
	if len(Raw(rows)) != 3 {
		t.Errorf("Expected 3 raw_concat rows, got %d", len(Raw(rows)))
	}
}

func TestReadMissingColumn(t *testing.T) {
	_, err := Read("qc_basic_stats.tsv", []byte("sample\tstage\tn_read_pairs\nS\traw_concat\t1\n"))

	var malformed *mgsreport.MalformedInputError
	if !errors.As(err, &malformed) || malformed.Column != "percent_gc" {
		t.Errorf("Expected a MalformedInputError for percent_gc, got %v", err)
	}
}

func TestSampleDate(t *testing.T) {
	date, err := SampleDate("JR-2024-02-25-a-S3")
	if err != nil {
		t.Fatal(err)
	}
	if !date.Equal(time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date %v", date)
	}
	if SequencingMachine(date) != "NovaSeq X" {
		t.Errorf("Expected the NovaSeq X on its first day, got %s", SequencingMachine(date))
	}
	if m := SequencingMachine(date.AddDate(0, 0, -1)); m != "NovaSeq 6000" {
		t.Errorf("Expected the NovaSeq 6000 the day before, got %s", m)
	}

	if _, err := SampleDate("S1"); err == nil {
		t.Error("Expected an error for a sample name without a date")
	}
}

func TestMachineTable(t *testing.T) {
	summaries, err := SummarizeByMachine(mustRead(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 machines, got %d", len(summaries))
	}

	var buf bytes.Buffer
	if err := WriteMachineTable(&buf, summaries); err != nil {
		t.Fatal(err)
	}

	expected := "sequencing_machine\t# Samples\tDate Range\t# Reads\t# Bases\tGC Content\n" +
		"NovaSeq 6000\t2\t2024-01-10 to 2024-02-01\t1.50B\t0.45T\t45.00%\n" +
		"NovaSeq X\t1\t2024-03-05 to 2024-03-05\t2.00B\t0.60T\t45.00%\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, buf.String())
	}
}

func TestDeliveryTable(t *testing.T) {
	summaries, err := SummarizeBy(mustRead(t), func(row BasicStats) (string, time.Time, error) {
		if row.Sample == "JR-2024-03-05-c" {
			return "UCI-2024-08-full", time.Time{}, nil
		}
		return "UCI-2024-03-pilot-a", time.Time{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	ranges := map[string]string{"UCI-2024-03-pilot-a": "2023-12-01 to 2024-01-07"}
	if err := WriteDeliveryTable(&buf, summaries, ranges); err != nil {
		t.Fatal(err)
	}

	expected := "uci_name\ttotal_read_pairs\tmean_gc_content\ttotal_bases\ttotal_libraries\tDate Range\n" +
		"UCI-2024-03-pilot-a\t1.50B\t45.00%\t450B\t2\t2023-12-01 to 2024-01-07\n" +
		"UCI-2024-08-full\t2.00B\t45.00%\t600B\t1\t\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, buf.String())
	}
}

func TestReadPairStats(t *testing.T) {
	summary, err := ReadPairStats(mustRead(t))
	if err != nil {
		t.Fatal(err)
	}

	expected := "Mean: 1.17e+09\nMin: 5.00e+08\nMax: 2.00e+09"
	if summary.String() != expected {
		t.Errorf("Expected %q, got %q", expected, summary.String())
	}

	if _, err := ReadPairStats(nil); err == nil {
		t.Error("Expected an error without raw_concat rows")
	}
}

func TestSamplesTable(t *testing.T) {
	samples, err := PerSample(mustRead(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(samples))
	}

	var buf bytes.Buffer
	if err := WriteSamplesTable(&buf, samples[:2]); err != nil {
		t.Fatal(err)
	}

	expected := "Sample\tCountry\tState\tCounty\tCity\tTreatment Plant\tDate\tReads\n" +
		"JR-2024-01-10-a\tUnited States\tCalifornia\tLos Angeles County\tLos Angeles\tHyperion Treatment Plant\t2024-01-10\t900.00M\n" +
		"JR-2024-02-01-b\tUnited States\tCalifornia\tLos Angeles County\tLos Angeles\tHyperion Treatment Plant\t2024-02-01\t500.00M\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, buf.String())
	}
}
