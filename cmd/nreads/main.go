// nreads prints the mean, minimum and maximum number of raw read pairs per
// sample.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/naobservatory/mgsreport"
	_ "github.com/naobservatory/mgsreport/compileinfoprint"
	"github.com/naobservatory/mgsreport/qcstats"
)

func main() {
	var input string

	flag.StringVar(&input, "input", "../data/results/qc_basic_stats.tsv", "QC basic stats table. Optionally, may be a google storage URL (gs://)")
	flag.Parse()

	client, err := mgsreport.StorageClientFor(input)
	if err != nil {
		log.Fatalln(err)
	}

	rows, err := qcstats.Load(input, client)
	if err != nil {
		log.Fatalln(err)
	}

	if err := qcstats.Describe(os.Stdout, rows); err != nil {
		log.Fatalln(err)
	}
}
