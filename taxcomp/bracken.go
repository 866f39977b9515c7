package taxcomp

import (
	"fmt"
	"log"
	"math"

	"cloud.google.com/go/storage"
	"github.com/carbocation/runningvariance"
	"github.com/naobservatory/mgsreport"
)

// BrackenRow is one row of a merged Bracken report.
type BrackenRow struct {
	Sample             string                 `csv:"sample"`
	Name               string                 `csv:"name"`
	Ribosomal          mgsreport.PipelineBool `csv:"ribosomal"`
	FractionTotalReads float64                `csv:"fraction_total_reads"`
}

// LoadBracken reads a merged Bracken report.
func LoadBracken(path string, client *storage.Client) ([]BrackenRow, error) {
	rows := []BrackenRow{}
	if err := mgsreport.LoadTable(path, client, &rows, "name", ColRibosomal, "fraction_total_reads"); err != nil {
		return nil, err
	}

	return rows, nil
}

// GroupMean is the mean fraction of one group over every observation.
type GroupMean struct {
	Group  Group
	Label  string
	N      int
	Mean   float64
	StdDev float64
}

// String renders the mean as "<label>: <mean>".
func (m GroupMean) String() string {
	return fmt.Sprintf("%s: %v", m.Label, m.Mean)
}

// compositionLabels overrides the group name where the report prints a
// different one.
var compositionLabels = map[int]string{
	TaxIDViruses: "Virus",
}

func compositionLabel(g Group) string {
	if label, ok := compositionLabels[g.TaxID]; ok {
		return label
	}
	return g.Name
}

// RibosomalComposition accumulates, across deliveries, the share of
// ribosomal reads that each composition group accounts for. Domain shares come
// from Bracken and the unclassified share from Kraken.
type RibosomalComposition struct {
	running map[int]*runningvariance.RunningStat
	n       map[int]int
}

func NewRibosomalComposition() *RibosomalComposition {
	return &RibosomalComposition{
		running: make(map[int]*runningvariance.RunningStat),
		n:       make(map[int]int),
	}
}

func (c *RibosomalComposition) push(taxid int, fraction float64) {
	rs, ok := c.running[taxid]
	if !ok {
		rs = runningvariance.NewRunningStat()
		c.running[taxid] = rs
	}
	rs.Push(fraction)
	c.n[taxid]++
}

// AddBracken records fraction_total_reads of every ribosomal Bracken row that
// names one of the four domains.
func (c *RibosomalComposition) AddBracken(rows []BrackenRow) {
	for _, row := range rows {
		if !row.Ribosomal.True() {
			continue
		}
		g, ok := Groups[row.Name]
		if !ok || g == Unclassified || g == Classified {
			continue
		}
		c.push(g.TaxID, row.FractionTotalReads)
	}
}

// AddKraken records pc_reads_total/100 of every ribosomal unclassified Kraken
// row.
func (c *RibosomalComposition) AddKraken(rows []ClassificationRow) error {
	for _, row := range rows {
		if !row.Ribosomal.Valid || !row.Ribosomal.Bool || row.TaxID != TaxIDUnclassified {
			continue
		}
		if !row.PercentReadsTotal.Valid {
			return &mgsreport.MalformedInputError{Source: "kraken rows", Column: ColPercentReadsTotal, Err: fmt.Errorf("sample %s has no %s value", row.Sample, ColPercentReadsTotal)}
		}
		c.push(TaxIDUnclassified, row.PercentReadsTotal.Float64/100)
	}

	return nil
}

// Means returns the mean share of each composition group. A group with no
// observations has a NaN mean.
func (c *RibosomalComposition) Means() []GroupMean {
	out := make([]GroupMean, 0, len(CompositionGroups))
	for _, g := range CompositionGroups {
		m := GroupMean{Group: g, Label: compositionLabel(g), N: c.n[g.TaxID], Mean: math.NaN(), StdDev: math.NaN()}
		if rs, ok := c.running[g.TaxID]; ok {
			m.Mean = rs.Mean()
			m.StdDev = rs.StandardDeviation()
		} else {
			log.Printf("No ribosomal observations for %s\n", g.Name)
		}
		out = append(out, m)
	}

	return out
}
