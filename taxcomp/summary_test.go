package taxcomp

import (
	"bytes"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	a := mustNew(t, "ra_stats")

	var rows []ClassificationRow
	for _, s := range []struct {
		sample     string
		bacteria   float64
		classified float64
	}{
		{"S1", 10, 50},
		{"S2", 20, 50},
		{"S3", 40, 50},
	} {
		rows = append(rows,
			row(s.sample, TaxIDBacteria, s.bacteria),
			row(s.sample, TaxIDClassified, s.classified),
			row(s.sample, TaxIDUnclassified, 100-s.classified),
		)
	}

	records, err := a.Compute(rows)
	if err != nil {
		t.Fatal(err)
	}

	summaries, err := a.Summarize(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != len(CompositionGroups) {
		t.Fatalf("Expected %d summaries, got %d", len(CompositionGroups), len(summaries))
	}

	bacteria := summaries[0]
	if bacteria.Label != "bacteria_ra" || bacteria.N != 3 {
		t.Errorf("Unexpected summary %+v", bacteria)
	}
	if expected := "bacteria_ra: 20.00% (10.00%, 40.00%)"; bacteria.String() != expected {
		t.Errorf("Expected %q, got %q", expected, bacteria.String())
	}

	if expected := "unclassified_ra: 50.00% (50.00%, 50.00%)"; summaries[4].String() != expected {
		t.Errorf("Expected %q, got %q", expected, summaries[4].String())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	a := mustNew(t, "ra_stats")
	if _, err := a.Summarize(nil); err == nil {
		t.Error("Expected an error when summarizing no samples")
	}
}

func TestPrintHistograms(t *testing.T) {
	a := mustNew(t, "ra_stats")
	records, err := a.Compute([]ClassificationRow{
		row("S1", TaxIDBacteria, 30),
		row("S1", TaxIDClassified, 60),
		row("S1", TaxIDUnclassified, 40),
		row("S2", TaxIDBacteria, 50),
		row("S2", TaxIDClassified, 60),
		row("S2", TaxIDUnclassified, 40),
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := a.PrintHistograms(&buf, records, 4, 20); err != nil {
		t.Fatal(err)
	}

	for _, label := range a.Config.GroupLabels {
		if !strings.Contains(buf.String(), label+" (n=2)") {
			t.Errorf("Expected a histogram for %s in:\n%s", label, buf.String())
		}
	}
}
