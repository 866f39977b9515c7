// Package delivery reads the per-delivery sample metadata and produces the
// sample, BioSample and SRA submission tables.
package delivery

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v3"
)

// Dataset describes one sequencing delivery.
type Dataset struct {
	Name       string
	UCIName    string
	RunType    string
	Instrument string
}

// Datasets lists every known delivery in submission order.
var Datasets = []Dataset{
	{Name: "JR-2024-03-22-a", UCIName: "UCI-2024-03-pilot-a", RunType: "pilot", Instrument: "Illumina NovaSeq 6000"},
	{Name: "JR-2024-03-22-b", UCIName: "UCI-2024-03-pilot-b", RunType: "pilot", Instrument: "Illumina NovaSeq 6000"},
	{Name: "JR-2024-04-12", UCIName: "UCI-2024-04-full-a", RunType: "full", Instrument: "Illumina NovaSeq 6000"},
	{Name: "JR-2024-04-15", UCIName: "UCI-2024-04-full-b", RunType: "full", Instrument: "Illumina NovaSeq 6000"},
	{Name: SplitDataset, UCIName: "UCI-2024-04-full-NA", RunType: "full", Instrument: "Illumina NovaSeq 6000"},
	{Name: "JR-2024-08-06", UCIName: "UCI-2024-08-pilot", RunType: "pilot", Instrument: "Illumina NovaSeq X"},
	{Name: "JR-2024-08-27", UCIName: "UCI-2024-08-full", RunType: "full", Instrument: "Illumina NovaSeq X"},
}

// SplitDataset was delivered as one batch but belongs to two UCI deliveries:
// samples collected up to splitDate go with JR-2024-04-12, later ones with
// JR-2024-04-15.
const SplitDataset = "JR-2024-04-16"

var splitDate = time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

// Lookup returns the registered dataset with the given name.
func Lookup(name string) (Dataset, error) {
	for _, d := range Datasets {
		if d.Name == name {
			return d, nil
		}
	}

	return Dataset{}, fmt.Errorf("unknown dataset %q", name)
}

// UCIName returns the UCI delivery that a sample of dataset collected on
// collected belongs to. Samples of SplitDataset without a precise date keep
// the dataset's placeholder name.
func UCIName(dataset string, collected null.Time) (string, error) {
	if dataset == SplitDataset && collected.Valid {
		part := "JR-2024-04-15"
		if !collected.Time.After(splitDate) {
			part = "JR-2024-04-12"
		}
		dataset = part
	}

	d, err := Lookup(dataset)
	if err != nil {
		return "", err
	}

	return d.UCIName, nil
}
