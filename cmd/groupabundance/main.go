// groupabundance converts a merged Kraken report into a wide table of
// per-sample relative abundances of the high-level taxonomic groups.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/naobservatory/mgsreport"
	_ "github.com/naobservatory/mgsreport/compileinfoprint"
	"github.com/naobservatory/mgsreport/taxcomp"
)

func main() {
	var input, results, output, layout string
	var denominator, partition, format, onError string

	flag.StringVar(&input, "input", "../data/results/kraken_reports_merged.tsv", "Merged Kraken report. A .gz sibling is used if the file itself is absent. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&results, "results", "", "Directory holding one workflow output folder per delivery. If set, each delivery's merged Kraken report is aggregated on its own and -input is ignored.")
	flag.StringVar(&output, "output", "", "Path to the output TSV. If empty, the table is written to stdout.")
	flag.StringVar(&layout, "layout", "", fmt.Sprintf("Table layout. One of: %s", taxcomp.LayoutNames()))
	flag.StringVar(&denominator, "denominator", "", "Override the layout's denominator: sum_of_groups or classified_unclassified")
	flag.StringVar(&partition, "partition", "", "Override the layout's partitioning: none or ribosomal")
	flag.StringVar(&format, "format", "", "Override the layout's number format: percent, scientific or fraction")
	flag.StringVar(&onError, "on_error", "", "Override the layout's handling of samples that cannot be aggregated: fail or skip")
	flag.Parse()

	if layout == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, ok := taxcomp.Layouts[layout]
	if !ok {
		log.Fatalf("Layout %q not recognized. Valid layouts: %s\n", layout, taxcomp.LayoutNames())
	}

	if err := applyOverrides(&cfg, denominator, partition, format, onError); err != nil {
		log.Fatalln(err)
	}

	agg, err := taxcomp.NewWithConfig(cfg)
	if err != nil {
		log.Fatalln(err)
	}

	var records []taxcomp.GroupAbundance
	if results != "" {
		deliveries, err := taxcomp.LoadDeliveries(results)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Read %d deliveries from %s\n", len(deliveries), results)

		if records, err = agg.ComputeDeliveries(deliveries); err != nil {
			log.Fatalln(err)
		}
	} else {
		client, err := mgsreport.StorageClientFor(input)
		if err != nil {
			log.Fatalln(err)
		}

		rows, err := taxcomp.LoadRows(input, client)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Read %d rows from %s\n", len(rows), input)

		if records, err = agg.Compute(rows); err != nil {
			log.Fatalln(err)
		}
	}

	data, err := mgsreport.BuildOutput(func(w io.Writer) error {
		return agg.WriteTSV(w, records)
	})
	if err != nil {
		log.Fatalln(err)
	}

	if err := mgsreport.WriteOutput(output, data); err != nil {
		log.Fatalln(err)
	}
	log.Printf("Wrote %d records\n", len(records))
}

func applyOverrides(cfg *taxcomp.Config, denominator, partition, format, onError string) error {
	var err error
	if denominator != "" {
		if cfg.Denominator, err = taxcomp.ParseDenominator(denominator); err != nil {
			return err
		}
	}
	if partition != "" {
		if cfg.PartitionBy, err = taxcomp.ParsePartition(partition); err != nil {
			return err
		}
		if cfg.PartitionBy == taxcomp.ByRibosomal && cfg.RibosomalLabel == "" {
			cfg.RibosomalLabel = "Ribosomal"
		}
	}
	if format != "" {
		if cfg.Format, err = taxcomp.ParseFormat(format); err != nil {
			return err
		}
	}
	if onError != "" {
		if cfg.OnError, err = taxcomp.ParseErrorPolicy(onError); err != nil {
			return err
		}
	}

	return nil
}
