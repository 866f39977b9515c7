package delivery

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/araddon/dateparse"
	"github.com/carbocation/pfx"
	"github.com/naobservatory/mgsreport"
	"gopkg.in/guregu/null.v3"
)

const DateLayout = "2006-01-02"

var requiredColumns = []string{"sample", "country", "county", "date", "demultiplexed", "enrichment", "fine_location", "location", "na_type", "reads", "state"}

// Sample is one row of a delivery metadata file.
type Sample struct {
	Sample        string  `csv:"sample"`
	Country       string  `csv:"country"`
	County        string  `csv:"county"`
	Date          string  `csv:"date"`
	Demultiplexed string  `csv:"demultiplexed"`
	Enrichment    string  `csv:"enrichment"`
	FineLocation  string  `csv:"fine_location"`
	Location      string  `csv:"location"`
	NAType        string  `csv:"na_type"`
	Reads         float64 `csv:"reads"`
	State         string  `csv:"state"`

	// Collected is the parsed date. It is null when only the year is known.
	Collected null.Time `csv:"-"`
}

// Metadata holds the samples of one delivery.
type Metadata struct {
	Dataset string
	Samples []Sample

	// Earliest and Latest span the precise collection dates.
	Earliest, Latest time.Time
}

// DatasetName derives the dataset from a metadata file name:
// JR-2024-04-12.metadata.tsv belongs to JR-2024-04-12.
func DatasetName(fileName string) string {
	return strings.SplitN(fileName, ".", 2)[0]
}

// LoadDir reads every metadata file in dir, in file name order. Hidden files
// and subdirectories are skipped.
func LoadDir(dir string) ([]Metadata, error) {
	entries, err := os.ReadDir(mgsreport.ExpandHome(dir))
	if err != nil {
		return nil, &mgsreport.ExternalResourceError{Resource: dir, Err: err}
	}

	out := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || DatasetName(entry.Name()) == "" {
			continue
		}

		md, err := Load(filepath.Join(dir, entry.Name()), nil)
		if err != nil {
			return nil, err
		}
		out = append(out, md)
	}

	return out, nil
}

// Load reads a single metadata file, local or gs://.
func Load(path string, client *storage.Client) (Metadata, error) {
	data, err := mgsreport.ReadInput(path, client)
	if err != nil {
		return Metadata{}, err
	}

	dataset := DatasetName(filepath.Base(path))
	if mgsreport.IsGoogleStoragePath(path) {
		dataset = DatasetName(path[strings.LastIndex(path, "/")+1:])
	}

	return Read(dataset, path, data)
}

// Read decodes the metadata of dataset and resolves its collection dates.
func Read(dataset, source string, data []byte) (Metadata, error) {
	md := Metadata{Dataset: dataset}
	if err := mgsreport.UnmarshalTable(source, data, &md.Samples, requiredColumns...); err != nil {
		return md, err
	}

	if err := md.resolveDates(source); err != nil {
		return md, err
	}

	return md, nil
}

// ParseCollectionDate parses a metadata date. Dates that only give the year
// come back null.
func ParseCollectionDate(s string) (null.Time, error) {
	s = strings.TrimSpace(s)

	layout, err := dateparse.ParseFormat(s)
	if err != nil {
		return null.Time{}, err
	}
	if layout == "2006" {
		return null.Time{}, nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return null.Time{}, err
	}

	return null.TimeFrom(t), nil
}

func (md *Metadata) resolveDates(source string) error {
	imprecise := 0
	for i := range md.Samples {
		s := &md.Samples[i]

		collected, err := ParseCollectionDate(s.Date)
		if err != nil {
			return &mgsreport.MalformedInputError{Source: source, Line: i + 2, Column: "date", Err: err}
		}
		s.Collected = collected

		if !collected.Valid {
			imprecise++
			continue
		}
		if md.Earliest.IsZero() || collected.Time.Before(md.Earliest) {
			md.Earliest = collected.Time
		}
		if collected.Time.After(md.Latest) {
			md.Latest = collected.Time
		}
	}

	if imprecise > 0 && md.Earliest.IsZero() {
		return &mgsreport.MalformedInputError{Source: source, Column: "date", Err: fmt.Errorf("%d samples only give a year and no sample has a full date", imprecise)}
	}

	return nil
}

// ResolvedDate is the sample's date, or the dataset's "<earliest>/<latest>"
// span when only the year is known.
func (md Metadata) ResolvedDate(s Sample) string {
	return md.resolved(s, "/")
}

// SampleName is the BioSample name for a sample: HTP-<date>, or
// HTP-<earliest>--<latest> when only the year is known.
func (md Metadata) SampleName(s Sample) string {
	return "HTP-" + md.resolved(s, "--")
}

func (md Metadata) resolved(s Sample, sep string) string {
	if s.Collected.Valid {
		return s.Collected.Time.Format(DateLayout)
	}

	return md.Earliest.Format(DateLayout) + sep + md.Latest.Format(DateLayout)
}

// SampleDates maps each sample to its collection date. Samples that only give
// a year are dated January 1 of that year.
func SampleDates(all []Metadata) map[string]null.Time {
	out := make(map[string]null.Time)
	for _, md := range all {
		for _, s := range md.Samples {
			if s.Collected.Valid {
				out[s.Sample] = s.Collected
				continue
			}
			year, err := strconv.Atoi(strings.TrimSpace(s.Date))
			if err != nil {
				continue
			}
			out[s.Sample] = null.TimeFrom(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		}
	}

	return out
}

// DateRanges maps each UCI delivery to the span of its precise collection
// dates in 2023 and 2024, rendered "YYYY-MM-DD to YYYY-MM-DD".
func DateRanges(all []Metadata) (map[string]string, error) {
	type span struct{ first, last time.Time }
	spans := make(map[string]*span)

	for _, md := range all {
		for _, s := range md.Samples {
			if !s.Collected.Valid {
				continue
			}
			if y := s.Collected.Time.Year(); y != 2023 && y != 2024 {
				continue
			}

			uci, err := UCIName(md.Dataset, s.Collected)
			if err != nil {
				return nil, pfx.Err(err)
			}

			sp, ok := spans[uci]
			if !ok {
				spans[uci] = &span{s.Collected.Time, s.Collected.Time}
				continue
			}
			if s.Collected.Time.Before(sp.first) {
				sp.first = s.Collected.Time
			}
			if s.Collected.Time.After(sp.last) {
				sp.last = s.Collected.Time
			}
		}
	}

	out := make(map[string]string, len(spans))
	for uci, sp := range spans {
		out[uci] = fmt.Sprintf("%s to %s", sp.first.Format(DateLayout), sp.last.Format(DateLayout))
	}

	return out, nil
}

// InRegistryOrder sorts metadata by the position of its dataset in Datasets.
// Unknown datasets are dropped with a warning.
func InRegistryOrder(all []Metadata) []Metadata {
	rank := make(map[string]int, len(Datasets))
	for i, d := range Datasets {
		rank[d.Name] = i
	}

	out := make([]Metadata, 0, len(all))
	for _, md := range all {
		if _, ok := rank[md.Dataset]; !ok {
			log.Printf("Skipping metadata for unknown dataset %s\n", md.Dataset)
			continue
		}
		out = append(out, md)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Dataset] < rank[out[j].Dataset]
	})

	return out
}
