// taxstats reports, across every delivery in a results directory, the mean
// share of ribosomal reads assigned to each high-level taxonomic group.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/naobservatory/mgsreport"
	_ "github.com/naobservatory/mgsreport/compileinfoprint"
	"github.com/naobservatory/mgsreport/taxcomp"
)

func main() {
	var resultsDir string

	flag.StringVar(&resultsDir, "results", "../workflow_results", "Directory holding one workflow output folder per delivery")
	flag.Parse()

	entries, err := os.ReadDir(mgsreport.ExpandHome(resultsDir))
	if err != nil {
		log.Fatalln(err)
	}

	comp := taxcomp.NewRibosomalComposition()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		taxonomy := taxcomp.TaxonomyDir(resultsDir, entry.Name())

		if path, ok := mgsreport.FindLocal(filepath.Join(taxonomy, "bracken_reports_merged.tsv")); ok {
			rows, err := taxcomp.LoadBracken(path, nil)
			if err != nil {
				log.Fatalln(err)
			}
			comp.AddBracken(rows)
		}

		if path, ok := mgsreport.FindLocal(filepath.Join(taxonomy, "kraken_reports_merged.tsv")); ok {
			rows, err := taxcomp.LoadRows(path, nil)
			if err != nil {
				log.Fatalln(err)
			}
			if err := comp.AddKraken(rows); err != nil {
				log.Fatalln(err)
			}
		}
	}

	for _, m := range comp.Means() {
		fmt.Println(m)
	}
}
