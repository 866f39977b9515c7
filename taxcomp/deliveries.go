package taxcomp

import (
	"log"
	"os"
	"path/filepath"

	"github.com/naobservatory/mgsreport"
)

// TaxonomyDir is where the workflow leaves the merged taxonomy reports of a
// delivery.
func TaxonomyDir(resultsDir, delivery string) string {
	return filepath.Join(resultsDir, delivery, "output", "results", "taxonomy")
}

// DeliveryRows holds the merged Kraken report rows of one delivery.
type DeliveryRows struct {
	Delivery string
	Rows     []ClassificationRow
}

// LoadDeliveries reads the merged Kraken report of every delivery folder in
// resultsDir, in folder name order. Folders without a report are skipped.
func LoadDeliveries(resultsDir string) ([]DeliveryRows, error) {
	entries, err := os.ReadDir(mgsreport.ExpandHome(resultsDir))
	if err != nil {
		return nil, &mgsreport.ExternalResourceError{Resource: resultsDir, Err: err}
	}

	out := make([]DeliveryRows, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path, ok := mgsreport.FindLocal(filepath.Join(TaxonomyDir(resultsDir, entry.Name()), "kraken_reports_merged.tsv"))
		if !ok {
			log.Printf("No Kraken report for %s, skipping\n", entry.Name())
			continue
		}

		rows, err := LoadRows(path, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, DeliveryRows{Delivery: entry.Name(), Rows: rows})
	}

	return out, nil
}

// ComputeDeliveries aggregates each delivery on its own and concatenates the
// records in delivery order. Sample sorting applies within a delivery.
func (a *Aggregator) ComputeDeliveries(deliveries []DeliveryRows) ([]GroupAbundance, error) {
	out := make([]GroupAbundance, 0)
	for _, d := range deliveries {
		records, err := a.Compute(d.Rows)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}

	return out, nil
}
