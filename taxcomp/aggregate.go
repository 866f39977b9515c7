package taxcomp

import (
	"fmt"
	"log"
	"sort"

	"github.com/naobservatory/mgsreport"
	"gopkg.in/guregu/null.v3"
)

// GroupAbundance is the composition of one sample, or of one sample within a
// ribosomal partition.
type GroupAbundance struct {
	Sample    string
	Ribosomal null.Bool

	// Abundances are fractions of TotalReads, parallel to the configured
	// output groups.
	Abundances []float64
	TotalReads float64
}

// Aggregator turns classification rows into per-sample group abundances.
type Aggregator struct {
	Config Config
}

// New returns an Aggregator for one of the registered Layouts.
func New(layout string) (*Aggregator, error) {
	cfg, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Aggregator{Config: cfg}, nil
}

// sampleCounts holds the per-taxid read counts of one sample, duplicates
// already summed.
type sampleCounts struct {
	sample string
	counts map[int]float64
}

type partition struct {
	ribosomal null.Bool
	samples   []*sampleCounts
	index     map[string]*sampleCounts
}

// Compute aggregates rows into one GroupAbundance per sample and partition.
// Partitions appear in the order their ribosomal value is first seen; within a
// partition samples follow the order each sample is first seen anywhere in
// rows, unless SortSamples is set.
func (a *Aggregator) Compute(rows []ClassificationRow) ([]GroupAbundance, error) {
	parts, err := a.partition(rows)
	if err != nil {
		return nil, err
	}

	out := make([]GroupAbundance, 0)
	for _, p := range parts {
		samples := p.samples
		if a.Config.SortSamples {
			samples = append([]*sampleCounts(nil), samples...)
			sort.SliceStable(samples, func(i, j int) bool { return samples[i].sample < samples[j].sample })
		}

		for _, sc := range samples {
			rec, err := a.abundance(p.ribosomal, sc)
			if err != nil {
				if a.Config.OnError == SkipAndWarn {
					log.Printf("Skipping %v\n", err)
					continue
				}
				return nil, err
			}
			out = append(out, rec)
		}
	}

	return out, nil
}

func (a *Aggregator) partition(rows []ClassificationRow) ([]*partition, error) {
	parts := make([]*partition, 0)
	byKey := make(map[null.Bool]*partition)
	order := make([]string, 0)
	seen := make(map[string]struct{})

	for _, row := range rows {
		if _, ok := seen[row.Sample]; !ok {
			seen[row.Sample] = struct{}{}
			order = append(order, row.Sample)
		}

		key := null.Bool{}
		if a.Config.PartitionBy == ByRibosomal {
			if !row.Ribosomal.Valid {
				return nil, &mgsreport.MalformedInputError{Source: "classification rows", Column: ColRibosomal, Err: fmt.Errorf("sample %s has no ribosomal value to partition by", row.Sample)}
			}
			key = null.BoolFrom(row.Ribosomal.Bool)
		}

		p, ok := byKey[key]
		if !ok {
			p = &partition{ribosomal: key, index: make(map[string]*sampleCounts)}
			byKey[key] = p
			parts = append(parts, p)
		}

		sc, ok := p.index[row.Sample]
		if !ok {
			sc = &sampleCounts{sample: row.Sample, counts: make(map[int]float64)}
			p.index[row.Sample] = sc
		}

		if IsTracked(row.TaxID) {
			sc.counts[row.TaxID] += row.NReadsClade
		}
	}

	for _, p := range parts {
		p.samples = make([]*sampleCounts, 0, len(p.index))
		for _, sample := range order {
			if sc, ok := p.index[sample]; ok {
				p.samples = append(p.samples, sc)
			}
		}
	}

	return parts, nil
}

func (a *Aggregator) abundance(ribosomal null.Bool, sc *sampleCounts) (GroupAbundance, error) {
	total, err := a.denominator(ribosomal, sc)
	if err != nil {
		return GroupAbundance{}, err
	}
	if total == 0 {
		return GroupAbundance{}, &ZeroTotalReadsError{Sample: sc.sample, Ribosomal: ribosomal}
	}

	rec := GroupAbundance{
		Sample:     sc.sample,
		Ribosomal:  ribosomal,
		Abundances: make([]float64, len(a.Config.Groups)),
		TotalReads: total,
	}
	for i, g := range a.Config.Groups {
		// Absent groups are read as zero
		rec.Abundances[i] = sc.counts[g.TaxID] / total
	}

	return rec, nil
}

func (a *Aggregator) denominator(ribosomal null.Bool, sc *sampleCounts) (float64, error) {
	var total float64

	switch a.Config.Denominator {
	case SumOfGroups:
		for _, g := range CompositionGroups {
			total += sc.counts[g.TaxID]
		}
	case ClassifiedUnclassified:
		for _, g := range []Group{Classified, Unclassified} {
			n, present := sc.counts[g.TaxID]
			if !present {
				return 0, &MissingGroupError{Sample: sc.sample, Ribosomal: ribosomal, Group: g}
			}
			total += n
		}
	default:
		return 0, fmt.Errorf("unknown denominator %v", a.Config.Denominator)
	}

	return total, nil
}
