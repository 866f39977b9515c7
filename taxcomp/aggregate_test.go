package taxcomp

import (
	"errors"
	"math"
	"testing"

	"github.com/naobservatory/mgsreport"
	"gopkg.in/guregu/null.v3"
)

func row(sample string, taxid int, n float64) ClassificationRow {
	return ClassificationRow{Sample: sample, TaxID: taxid, NReadsClade: n}
}

func riboRow(sample string, ribosomal bool, taxid int, n float64) ClassificationRow {
	r := row(sample, taxid, n)
	r.Ribosomal = null.BoolFrom(ribosomal)
	return r
}

func mustNew(t *testing.T, layout string) *Aggregator {
	t.Helper()
	a, err := New(layout)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func withConfig(t *testing.T, layout string, edit func(*Config)) *Aggregator {
	t.Helper()
	cfg := Layouts[layout]
	edit(&cfg)
	a, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestEndToEndSumOfGroups(t *testing.T) {
	rows := []ClassificationRow{
		row("S1", TaxIDBacteria, 400),
		row("S1", TaxIDViruses, 100),
		row("S1", TaxIDArchaea, 50),
		row("S1", TaxIDEukaryota, 50),
		row("S1", TaxIDUnclassified, 400),
	}

	a := withConfig(t, "table_3", func(c *Config) { c.Format = Percent })
	records, err := a.Compute(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].TotalReads != 1000 {
		t.Errorf("Expected denominator 1000, got %v", records[0].TotalReads)
	}

	expected := []string{"S1", "40.00%", "10.00%", "5.00%", "5.00%", "40.00%"}
	fields := a.Fields(records[0])
	if len(fields) != len(expected) {
		t.Fatalf("Expected %d fields, got %d: %v", len(expected), len(fields), fields)
	}
	for i := range expected {
		if fields[i] != expected[i] {
			t.Errorf("Field %d: expected %s, got %s", i, expected[i], fields[i])
		}
	}
}

func TestSumOfGroupsSumsToOne(t *testing.T) {
	rows := []ClassificationRow{
		row("A", TaxIDBacteria, 123456),
		row("A", TaxIDViruses, 7891),
		row("A", TaxIDArchaea, 3),
		row("A", TaxIDEukaryota, 999),
		row("A", TaxIDUnclassified, 54321),
		row("A", TaxIDClassified, 1), // not part of this denominator
		row("A", 9606, 500),          // ordinary taxon, ignored
		row("B", TaxIDBacteria, 0.5),
		row("B", TaxIDUnclassified, 1.25),
		row("C", TaxIDViruses, 17),
	}

	records, err := mustNew(t, "table_3").Compute(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	for _, rec := range records {
		sum := 0.0
		for _, v := range rec.Abundances {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("Sample %s: abundances sum to %.12f", rec.Sample, sum)
		}
	}
}

func TestAbsentGroupIsZero(t *testing.T) {
	for _, layout := range []string{"table_3", "table_s2"} {
		rows := []ClassificationRow{
			row("S1", TaxIDClassified, 60),
			row("S1", TaxIDUnclassified, 40),
			row("S1", TaxIDBacteria, 60),
		}

		records, err := mustNew(t, layout).Compute(rows)
		if err != nil {
			t.Fatalf("%s: %v", layout, err)
		}

		// Viruses, Archaea and Eukaryota have no rows
		for _, i := range []int{1, 2, 3} {
			if v := records[0].Abundances[i]; v != 0.0 {
				t.Errorf("%s: group %s expected exactly 0, got %v", layout, CompositionGroups[i].Name, v)
			}
		}
	}
}

func TestMissingMandatoryGroup(t *testing.T) {
	for _, missing := range []Group{Classified, Unclassified} {
		rows := []ClassificationRow{
			row("S1", TaxIDBacteria, 10),
		}
		if missing != Classified {
			rows = append(rows, row("S1", TaxIDClassified, 10))
		}
		if missing != Unclassified {
			rows = append(rows, row("S1", TaxIDUnclassified, 10))
		}

		records, err := mustNew(t, "table_s2").Compute(rows)
		var mge *MissingGroupError
		if !errors.As(err, &mge) {
			t.Fatalf("Expected MissingGroupError for %s, got %v", missing.Name, err)
		}
		if mge.Group != missing || mge.Sample != "S1" {
			t.Errorf("Unexpected error contents: %+v", mge)
		}
		if records != nil {
			t.Errorf("Expected no records, got %v", records)
		}
	}
}

func TestPresentZeroGroupIsNotMissing(t *testing.T) {
	rows := []ClassificationRow{
		row("S1", TaxIDClassified, 0),
		row("S1", TaxIDUnclassified, 25),
	}

	records, err := mustNew(t, "table_s2").Compute(rows)
	if err != nil {
		t.Fatal(err)
	}
	if got := records[0].Abundances[4]; got != 1 {
		t.Errorf("Expected unclassified fraction 1, got %v", got)
	}
}

func TestZeroTotalReads(t *testing.T) {
	rows := []ClassificationRow{
		row("S1", TaxIDClassified, 0),
		row("S1", TaxIDUnclassified, 0),
	}

	for _, layout := range []string{"table_s2", "table_3"} {
		_, err := mustNew(t, layout).Compute(rows)
		var zte *ZeroTotalReadsError
		if !errors.As(err, &zte) {
			t.Fatalf("%s: expected ZeroTotalReadsError, got %v", layout, err)
		}
		if zte.Sample != "S1" {
			t.Errorf("%s: wrong sample %s", layout, zte.Sample)
		}
	}
}

func TestDuplicateRowsAreSummed(t *testing.T) {
	rows := []ClassificationRow{
		row("S1", TaxIDBacteria, 100),
		row("S1", TaxIDBacteria, 50),
		row("S1", TaxIDUnclassified, 150),
	}

	records, err := mustNew(t, "table_3").Compute(rows)
	if err != nil {
		t.Fatal(err)
	}
	if records[0].TotalReads != 300 {
		t.Errorf("Expected total 300, got %v", records[0].TotalReads)
	}
	if records[0].Abundances[0] != 0.5 {
		t.Errorf("Expected bacteria 150/300, got %v", records[0].Abundances[0])
	}
}

func TestRibosomalPartitioning(t *testing.T) {
	rows := []ClassificationRow{
		riboRow("S1", true, TaxIDBacteria, 90),
		riboRow("S1", true, TaxIDUnclassified, 10),
		riboRow("S1", false, TaxIDBacteria, 10),
		riboRow("S1", false, TaxIDUnclassified, 90),
		riboRow("S2", false, TaxIDViruses, 5),
		riboRow("S2", false, TaxIDUnclassified, 5),
		riboRow("S2", true, TaxIDEukaryota, 1),
	}

	a := mustNew(t, "table_ribo_status")
	records, err := a.Compute(rows)
	if err != nil {
		t.Fatal(err)
	}

	type key struct {
		sample    string
		ribosomal bool
	}
	expected := []struct {
		key      key
		bacteria float64
		total    float64
	}{
		{key{"S1", true}, 0.9, 100},
		{key{"S2", true}, 0, 1},
		{key{"S1", false}, 0.1, 100},
		{key{"S2", false}, 0, 10},
	}

	if len(records) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(records))
	}
	for i, e := range expected {
		rec := records[i]
		if !rec.Ribosomal.Valid || (key{rec.Sample, rec.Ribosomal.Bool}) != e.key {
			t.Errorf("Record %d: expected %+v, got %s/%v", i, e.key, rec.Sample, rec.Ribosomal)
			continue
		}
		if rec.Abundances[0] != e.bacteria || rec.TotalReads != e.total {
			t.Errorf("Record %d (%+v): bacteria %v total %v", i, e.key, rec.Abundances[0], rec.TotalReads)
		}
	}

	fields := a.Fields(records[0])
	if fields[1] != "True" || fields[len(fields)-1] != "100" {
		t.Errorf("Unexpected rendering %v", fields)
	}
}

func TestPartitionsShareSampleOrder(t *testing.T) {
	rows := []ClassificationRow{
		riboRow("S1", false, TaxIDBacteria, 1),
		riboRow("S2", true, TaxIDBacteria, 1),
		riboRow("S2", false, TaxIDBacteria, 1),
		riboRow("S1", true, TaxIDBacteria, 1),
	}

	a := withConfig(t, "table_ribo_status", func(c *Config) { c.SortSamples = false })
	records, err := a.Compute(rows)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"S1", "S2", "S1", "S2"}
	if len(records) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(records))
	}
	for i, sample := range expected {
		if records[i].Sample != sample {
			t.Errorf("Record %d: expected %s, got %s/%v", i, sample, records[i].Sample, records[i].Ribosomal)
		}
	}
	if records[0].Ribosomal.Bool || !records[2].Ribosomal.Bool {
		t.Errorf("Expected the False partition first, got %v then %v", records[0].Ribosomal, records[2].Ribosomal)
	}
}

func TestPartitionRequiresRibosomalValue(t *testing.T) {
	rows := []ClassificationRow{row("S1", TaxIDBacteria, 1)}

	_, err := mustNew(t, "table_ribo_status").Compute(rows)
	var mie *mgsreport.MalformedInputError
	if !errors.As(err, &mie) {
		t.Fatalf("Expected MalformedInputError, got %v", err)
	}
}

func TestSampleOrdering(t *testing.T) {
	rows := []ClassificationRow{
		row("zeta", TaxIDUnclassified, 1),
		row("alpha", TaxIDUnclassified, 1),
		row("mu", TaxIDUnclassified, 1),
		row("alpha", TaxIDBacteria, 1),
	}

	for _, v := range []struct {
		sorted   bool
		expected []string
	}{
		{false, []string{"zeta", "alpha", "mu"}},
		{true, []string{"alpha", "mu", "zeta"}},
	} {
		a := withConfig(t, "table_3", func(c *Config) { c.SortSamples = v.sorted })
		records, err := a.Compute(rows)
		if err != nil {
			t.Fatal(err)
		}
		for i, rec := range records {
			if rec.Sample != v.expected[i] {
				t.Errorf("sorted=%v: position %d expected %s, got %s", v.sorted, i, v.expected[i], rec.Sample)
			}
		}
	}
}

func TestSkipAndWarn(t *testing.T) {
	rows := []ClassificationRow{
		row("bad", TaxIDBacteria, 10),
		row("good", TaxIDClassified, 10),
		row("good", TaxIDUnclassified, 30),
		row("zero", TaxIDClassified, 0),
		row("zero", TaxIDUnclassified, 0),
	}

	a := withConfig(t, "table_s2", func(c *Config) { c.OnError = SkipAndWarn })
	records, err := a.Compute(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Sample != "good" {
		t.Fatalf("Expected only the good sample, got %+v", records)
	}
	if records[0].Abundances[4] != 0.75 {
		t.Errorf("Expected unclassified 0.75, got %v", records[0].Abundances[4])
	}

	// The same input fails fast by default
	if _, err := mustNew(t, "table_s2").Compute(rows); err == nil {
		t.Error("Expected the default policy to fail")
	}
}

func TestEmptyInput(t *testing.T) {
	records, err := mustNew(t, "table_3").Compute(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
