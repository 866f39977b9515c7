// rastats prints the median, minimum and maximum relative abundance of each
// high-level taxonomic group across the samples of a merged Kraken report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/naobservatory/mgsreport"
	_ "github.com/naobservatory/mgsreport/compileinfoprint"
	"github.com/naobservatory/mgsreport/taxcomp"
)

func main() {
	var input string
	var bins, width int

	flag.StringVar(&input, "input", "../data/results/kraken_reports_merged.tsv", "Merged Kraken report. Optionally, may be a google storage URL (gs://)")
	flag.IntVar(&bins, "hist", 0, "If positive, also print a histogram with this many bins for each group to stderr")
	flag.IntVar(&width, "width", 40, "Width of the histogram bars")
	flag.Parse()

	agg, err := taxcomp.New("ra_stats")
	if err != nil {
		log.Fatalln(err)
	}

	client, err := mgsreport.StorageClientFor(input)
	if err != nil {
		log.Fatalln(err)
	}

	rows, err := taxcomp.LoadRows(input, client)
	if err != nil {
		log.Fatalln(err)
	}

	records, err := agg.Compute(rows)
	if err != nil {
		log.Fatalln(err)
	}

	summaries, err := agg.Summarize(records)
	if err != nil {
		log.Fatalln(err)
	}

	for _, s := range summaries {
		fmt.Println(s)
	}

	if bins > 0 {
		if err := agg.PrintHistograms(os.Stderr, records, bins, width); err != nil {
			log.Fatalln(err)
		}
	}
}
