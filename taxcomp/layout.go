package taxcomp

import (
	"fmt"
	"sort"
	"strings"
)

// Denominator selects how the total-read denominator is derived.
type Denominator int

const (
	// SumOfGroups divides by Bacteria + Viruses + Archaea + Eukaryota +
	// Unclassified. Absent groups count as zero.
	SumOfGroups Denominator = iota
	// ClassifiedUnclassified divides by Classified + Unclassified. Both rows
	// must be present.
	ClassifiedUnclassified
)

func (d Denominator) String() string {
	switch d {
	case SumOfGroups:
		return "sum_of_groups"
	case ClassifiedUnclassified:
		return "classified_unclassified"
	}

	return fmt.Sprintf("Denominator(%d)", int(d))
}

func ParseDenominator(s string) (Denominator, error) {
	for _, d := range []Denominator{SumOfGroups, ClassifiedUnclassified} {
		if d.String() == s {
			return d, nil
		}
	}

	return 0, fmt.Errorf("unknown denominator %q: expected sum_of_groups or classified_unclassified", s)
}

// Partition selects an optional split of the rows before aggregation.
type Partition int

const (
	NoPartition Partition = iota
	ByRibosomal
)

func (p Partition) String() string {
	switch p {
	case NoPartition:
		return "none"
	case ByRibosomal:
		return "ribosomal"
	}

	return fmt.Sprintf("Partition(%d)", int(p))
}

func ParsePartition(s string) (Partition, error) {
	for _, p := range []Partition{NoPartition, ByRibosomal} {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown partition %q: expected none or ribosomal", s)
}

// Format selects how abundances are rendered in output tables.
type Format int

const (
	// Percent renders 0.1234 as 12.34%.
	Percent Format = iota
	// Scientific renders 0.01234 as 1.23e-02.
	Scientific
	// Fraction renders the unrounded fraction.
	Fraction
)

func (f Format) String() string {
	switch f {
	case Percent:
		return "percent"
	case Scientific:
		return "scientific"
	case Fraction:
		return "fraction"
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{Percent, Scientific, Fraction} {
		if f.String() == s {
			return f, nil
		}
	}

	return 0, fmt.Errorf("unknown format %q: expected percent, scientific or fraction", s)
}

// ErrorPolicy decides what happens when one sample cannot be aggregated.
type ErrorPolicy int

const (
	// FailFast aborts the run on the first failing sample.
	FailFast ErrorPolicy = iota
	// SkipAndWarn logs the failure, drops the sample and continues.
	SkipAndWarn
)

func (p ErrorPolicy) String() string {
	switch p {
	case FailFast:
		return "fail"
	case SkipAndWarn:
		return "skip"
	}

	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	for _, p := range []ErrorPolicy{FailFast, SkipAndWarn} {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown error policy %q: expected fail or skip", s)
}

// Config parameterizes a composition table.
type Config struct {
	// Groups are the output groups, in column order. GroupLabels holds the
	// matching column headers.
	Groups      []Group
	GroupLabels []string

	Denominator Denominator
	PartitionBy Partition
	Format      Format
	OnError     ErrorPolicy

	// IncludeTotal appends the raw denominator as a final column.
	IncludeTotal bool

	// SortSamples orders samples by name within each partition. Otherwise
	// samples keep the order in which they first appear in the input.
	SortSamples bool

	SampleLabel    string
	RibosomalLabel string
	TotalLabel     string
}

var Layouts = map[string]Config{
	// Per-delivery composition, normalized over the five composition groups.
	"table_3": {
		Groups:      CompositionGroups,
		GroupLabels: []string{"bacteria", "virus", "archaea", "eukaryota", "unclassified"},
		Denominator: SumOfGroups,
		Format:      Scientific,
		SortSamples: true,
		SampleLabel: "sample",
	},
	"table_s2": {
		Groups:      CompositionGroups,
		GroupLabels: []string{"Bacteria", "Virus", "Archaea", "Eukaryota", "Unclassified"},
		Denominator: ClassifiedUnclassified,
		Format:      Percent,
		SampleLabel: "Sample",
	},
	"table_ribo_status": {
		Groups:         CompositionGroups,
		GroupLabels:    []string{"Bacteria", "Virus", "Archaea", "Eukaryota", "Unclassified"},
		Denominator:    SumOfGroups,
		PartitionBy:    ByRibosomal,
		Format:         Percent,
		IncludeTotal:   true,
		SampleLabel:    "Sample",
		RibosomalLabel: "Ribosomal",
		TotalLabel:     "Total Reads",
	},
	"ra_stats": {
		Groups:      CompositionGroups,
		GroupLabels: []string{"bacteria_ra", "virus_ra", "archea_ra", "eukaryota_ra", "unclassified_ra"},
		Denominator: ClassifiedUnclassified,
		Format:      Fraction,
		SampleLabel: "sample",
	},
}

// LayoutNames lists the registered layouts in sorted order.
func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// Validate checks that a Config can produce a table.
func (c Config) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("no output groups configured")
	}
	if len(c.GroupLabels) != len(c.Groups) {
		return fmt.Errorf("%d group labels for %d groups", len(c.GroupLabels), len(c.Groups))
	}
	for _, g := range c.Groups {
		if !IsTracked(g.TaxID) {
			return fmt.Errorf("group %s has untracked taxid %d", g.Name, g.TaxID)
		}
	}
	if c.SampleLabel == "" {
		return fmt.Errorf("no sample column label")
	}
	if c.PartitionBy == ByRibosomal && c.RibosomalLabel == "" {
		return fmt.Errorf("partitioning by ribosomal status needs a ribosomal column label")
	}
	if c.IncludeTotal && c.TotalLabel == "" {
		return fmt.Errorf("including the total needs a total column label")
	}

	return nil
}
