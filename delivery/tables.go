package delivery

import (
	"fmt"
	"io"
	"sort"

	"github.com/naobservatory/mgsreport"
)

const hyperion = "Hyperion Treatment Plant"

// WriteSampleTable writes one row per metadata sample with its location,
// collection details and read count. The Dataset column names the registry
// entry of the whole dataset, so split datasets keep their placeholder name.
func WriteSampleTable(w io.Writer, all []Metadata) error {
	if err := mgsreport.WriteTSVRow(w, "Sample", "Country", "State", "County", "City", "Treatment Plant", "Date", "Demultiplexed", "Enrichment", "Reads", "NA Type", "Dataset"); err != nil {
		return err
	}

	for _, md := range all {
		d, err := Lookup(md.Dataset)
		if err != nil {
			return err
		}

		for _, s := range md.Samples {
			plant := "NA"
			if s.FineLocation == "HTP" {
				plant = hyperion
			}

			if err := mgsreport.WriteTSVRow(w,
				s.Sample,
				s.Country,
				s.State,
				s.County,
				s.Location,
				plant,
				s.Date,
				s.Demultiplexed,
				s.Enrichment,
				mgsreport.FormatReadCount(s.Reads, 0),
				s.NAType,
				d.UCIName,
			); err != nil {
				return err
			}
		}
	}

	return nil
}

// BioSample is one row of the BioSample submission table.
type BioSample struct {
	Name string
	Date string
}

// BioSamples returns one BioSample per distinct resolved collection date,
// sorted by date.
func BioSamples(all []Metadata) []BioSample {
	names := make(map[string]string)
	for _, md := range all {
		for _, s := range md.Samples {
			names[md.ResolvedDate(s)] = md.SampleName(s)
		}
	}

	out := make([]BioSample, 0, len(names))
	for date, name := range names {
		out = append(out, BioSample{Name: name, Date: date})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out
}

// WriteBioSampleTable writes the BioSample submission table.
func WriteBioSampleTable(w io.Writer, samples []BioSample) error {
	if err := mgsreport.WriteTSVRow(w,
		"Sample Name",
		"Sample Title",
		"BioProject accession",
		"Organism",
		"collection date",
		"broad-scale environmental context",
		"local-scale environmental context",
		"environmental medium",
		"geographic location",
		"latitude and longitude",
	); err != nil {
		return err
	}

	for _, s := range samples {
		if err := mgsreport.WriteTSVRow(w,
			s.Name,
			"Influent wastewater from "+hyperion+" (LA, USA)",
			"",
			"wastewater metagenome",
			s.Date,
			"wastewater",
			"influent wastewater",
			"Composite wastewater",
			"USA: California",
			"33.924223 N 118.431516 W",
		); err != nil {
			return err
		}
	}

	return nil
}

// SRARun is one row of the SRA submission table.
type SRARun struct {
	SampleName    string
	LibraryID     string
	Instrument    string
	Sample        string
	Demultiplexed string
}

// This library was not demultiplexed, whatever its metadata says.
const notDemultiplexed = "JR-2024-08-27-xR007-PrNotRecog"

// SRARuns lists the runs of every registered dataset in registry order.
// Libraries are named <sample name>_<run type>; when several runs share a
// library name they are numbered _1.._n in order.
func SRARuns(all []Metadata) ([]SRARun, error) {
	out := make([]SRARun, 0)
	libraries := make([]string, 0)
	for _, md := range InRegistryOrder(all) {
		d, err := Lookup(md.Dataset)
		if err != nil {
			return nil, err
		}

		for _, s := range md.Samples {
			demultiplexed := s.Demultiplexed
			if s.Sample == notDemultiplexed {
				demultiplexed = mgsreport.FormatBool(false)
			}

			name := md.SampleName(s)
			out = append(out, SRARun{
				SampleName:    name,
				Instrument:    d.Instrument,
				Sample:        s.Sample,
				Demultiplexed: demultiplexed,
			})
			libraries = append(libraries, name+"_"+d.RunType)
		}
	}

	counts := make(map[string]int)
	for _, lib := range libraries {
		counts[lib]++
	}

	seen := make(map[string]int)
	for i, lib := range libraries {
		out[i].LibraryID = lib
		if counts[lib] > 1 {
			seen[lib]++
			out[i].LibraryID = fmt.Sprintf("%s_%d", lib, seen[lib])
		}
	}

	return out, nil
}

const designDescription = "Samples (60-ml) were filtered through 0.22-μm vacuum filters, then ultracentrifugated with 10-kDa Amicon filters until volumes were reduced to <500 μl. These concentrates were stored at −80°C before RNA extraction. Subsequently an Invitrogen PureLink RNA minikit with DNase (Invitrogen, Waltham, MA cite) was used to extract RNA following the manufacturer's protocol. Library preparation was performed by UC GRT Hub using the Illumina RNA prep with enrichment kit."

// WriteSRATable writes the SRA submission table.
func WriteSRATable(w io.Writer, runs []SRARun) error {
	if err := mgsreport.WriteTSVRow(w,
		"sample_name",
		"library_ID",
		"title",
		"library_strategy",
		"library_source",
		"library_selection",
		"library_layout",
		"platform",
		"instrument_model",
		"design_description",
		"filetype",
		"filename",
		"filename2",
		"demultiplexed",
	); err != nil {
		return err
	}

	for _, r := range runs {
		if err := mgsreport.WriteTSVRow(w,
			r.SampleName,
			r.LibraryID,
			"Metatranscriptomic Sequencing of Los Angeles Influent Sewage",
			"RNA-Seq",
			"Metagenomic",
			"cDNA",
			"paired",
			"ILLUMINA",
			r.Instrument,
			designDescription,
			"fastq",
			r.Sample+"_1.fastq.gz",
			r.Sample+"_2.fastq.gz",
			r.Demultiplexed,
		); err != nil {
			return err
		}
	}

	return nil
}
