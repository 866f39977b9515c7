// deliverytables builds the sample, BioSample and SRA submission tables from
// the delivery metadata files.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/naobservatory/mgsreport"
	_ "github.com/naobservatory/mgsreport/compileinfoprint"
	"github.com/naobservatory/mgsreport/delivery"
)

var tables = map[string]func(w io.Writer, metadata []delivery.Metadata) error{
	"samples": delivery.WriteSampleTable,
	"biosample": func(w io.Writer, metadata []delivery.Metadata) error {
		return delivery.WriteBioSampleTable(w, delivery.BioSamples(metadata))
	},
	"sra": func(w io.Writer, metadata []delivery.Metadata) error {
		runs, err := delivery.SRARuns(metadata)
		if err != nil {
			return err
		}
		return delivery.WriteSRATable(w, runs)
	},
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
	var table, metadataDir, output string

	flag.StringVar(&table, "table", "", fmt.Sprintf("Table to build. One of: %s", tableNames()))
	flag.StringVar(&metadataDir, "metadata", "../delivery_metadata", "Directory of delivery metadata files, one per dataset")
	flag.StringVar(&output, "output", "", "Path to the output TSV. If empty, the table is written to stdout.")
	flag.Parse()

	fill, ok := tables[table]
	if !ok {
		flag.PrintDefaults()
		log.Fatalf("Table %q not recognized. Valid tables: %s\n", table, tableNames())
	}

	metadata, err := delivery.LoadDir(metadataDir)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read metadata for %d datasets\n", len(metadata))

	data, err := mgsreport.BuildOutput(func(w io.Writer) error {
		return fill(w, metadata)
	})
	if err != nil {
		log.Fatalln(err)
	}

	if err := mgsreport.WriteOutput(output, data); err != nil {
		log.Fatalln(err)
	}
}
