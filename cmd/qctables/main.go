// qctables builds the read-QC summary tables from qc_basic_stats.tsv.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/naobservatory/mgsreport"
	_ "github.com/naobservatory/mgsreport/compileinfoprint"
	"github.com/naobservatory/mgsreport/delivery"
	"github.com/naobservatory/mgsreport/qcstats"
)

type options struct {
	input       string
	resultsDir  string
	metadataDir string
}

// tables maps each table name to the function that fills it.
var tables = map[string]func(w io.Writer, opts options) error{
	"machine":  machineTable,
	"delivery": deliveryTable,
	"samples":  samplesTable,
}

func tableNames() string {
	names := make([]string, 0, len(tables))
	for k := range tables {
		names = append(names, k)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

func main() {
	var opts options
	var table, output string

	flag.StringVar(&table, "table", "", fmt.Sprintf("Table to build. One of: %s", tableNames()))
	flag.StringVar(&opts.input, "input", "../data/results/qc_basic_stats.tsv", "QC basic stats of all samples, for the machine and samples tables. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&opts.resultsDir, "results", "../workflow_results", "Directory with one workflow output folder per dataset, for the delivery table")
	flag.StringVar(&opts.metadataDir, "metadata", "../delivery_metadata", "Directory of delivery metadata files, for the delivery table")
	flag.StringVar(&output, "output", "", "Path to the output TSV. If empty, the table is written to stdout.")
	flag.Parse()

	fill, ok := tables[table]
	if !ok {
		flag.PrintDefaults()
		log.Fatalf("Table %q not recognized. Valid tables: %s\n", table, tableNames())
	}

	data, err := mgsreport.BuildOutput(func(w io.Writer) error {
		return fill(w, opts)
	})
	if err != nil {
		log.Fatalln(err)
	}

	if err := mgsreport.WriteOutput(output, data); err != nil {
		log.Fatalln(err)
	}
}

func loadInput(opts options) ([]qcstats.BasicStats, error) {
	client, err := mgsreport.StorageClientFor(opts.input)
	if err != nil {
		return nil, err
	}

	return qcstats.Load(opts.input, client)
}

func machineTable(w io.Writer, opts options) error {
	rows, err := loadInput(opts)
	if err != nil {
		return err
	}

	summaries, err := qcstats.SummarizeByMachine(rows)
	if err != nil {
		return err
	}

	return qcstats.WriteMachineTable(w, summaries)
}

func samplesTable(w io.Writer, opts options) error {
	rows, err := loadInput(opts)
	if err != nil {
		return err
	}

	samples, err := qcstats.PerSample(rows)
	if err != nil {
		return err
	}

	return qcstats.WriteSamplesTable(w, samples)
}

func deliveryTable(w io.Writer, opts options) error {
	metadata, err := delivery.LoadDir(opts.metadataDir)
	if err != nil {
		return err
	}

	ranges, err := delivery.DateRanges(metadata)
	if err != nil {
		return err
	}

	var runs []delivery.QCRun
	for _, d := range delivery.Datasets {
		path := mgsreport.ResolveCompressed(filepath.Join(opts.resultsDir, d.Name, "output", "results", "qc", "qc_basic_stats.tsv"))
		if _, err := os.Stat(mgsreport.ExpandHome(path)); err != nil {
			log.Printf("File not found for %s: %s\n", d.Name, path)
			continue
		}

		rows, err := qcstats.Load(path, nil)
		if err != nil {
			return err
		}
		runs = append(runs, delivery.QCRun{Dataset: d.Name, Rows: rows})
	}

	summaries, err := delivery.SummarizeQC(runs, delivery.SampleDates(metadata))
	if err != nil {
		return err
	}

	return qcstats.WriteDeliveryTable(w, summaries, ranges)
}
