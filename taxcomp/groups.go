package taxcomp

// Taxids of the synthetic aggregate rows in a merged classification report.
const (
	TaxIDUnclassified = 0
	TaxIDClassified   = 1
	TaxIDBacteria     = 2
	TaxIDArchaea      = 2157
	TaxIDEukaryota    = 2759
	TaxIDViruses      = 10239
)

// Group is a high-level taxonomic category identified by a single taxid.
type Group struct {
	Name  string
	TaxID int
}

var (
	Bacteria     = Group{Name: "Bacteria", TaxID: TaxIDBacteria}
	Viruses      = Group{Name: "Viruses", TaxID: TaxIDViruses}
	Archaea      = Group{Name: "Archaea", TaxID: TaxIDArchaea}
	Eukaryota    = Group{Name: "Eukaryota", TaxID: TaxIDEukaryota}
	Unclassified = Group{Name: "Unclassified", TaxID: TaxIDUnclassified}
	Classified   = Group{Name: "Classified", TaxID: TaxIDClassified}
)

// Groups maps every tracked group name to its group. Changing group
// definitions means changing this table.
var Groups = map[string]Group{
	Bacteria.Name:     Bacteria,
	Viruses.Name:      Viruses,
	Archaea.Name:      Archaea,
	Eukaryota.Name:    Eukaryota,
	Unclassified.Name: Unclassified,
	Classified.Name:   Classified,
}

// CompositionGroups partition all reads of a sample: the four domains plus
// unclassified. Their counts form the sum-of-groups denominator.
var CompositionGroups = []Group{Bacteria, Viruses, Archaea, Eukaryota, Unclassified}

// IsTracked reports whether taxid belongs to one of the tracked groups. Rows
// with any other taxid play no part in aggregation.
func IsTracked(taxid int) bool {
	for _, g := range Groups {
		if g.TaxID == taxid {
			return true
		}
	}

	return false
}
