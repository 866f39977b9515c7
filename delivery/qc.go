package delivery

import (
	"fmt"
	"time"

	"github.com/naobservatory/mgsreport/qcstats"
	"gopkg.in/guregu/null.v3"
)

// QCRun holds the qc_basic_stats rows of one dataset's workflow run.
type QCRun struct {
	Dataset string
	Rows    []qcstats.BasicStats
}

// SummarizeQC groups the raw_concat rows of every run by UCI delivery.
// Samples of SplitDataset are placed by their collection date from
// sampleDates.
func SummarizeQC(runs []QCRun, sampleDates map[string]null.Time) ([]qcstats.GroupSummary, error) {
	datasetOf := make(map[string]string)
	var rows []qcstats.BasicStats
	for _, run := range runs {
		for _, row := range run.Rows {
			if prev, ok := datasetOf[row.Sample]; ok && prev != run.Dataset {
				return nil, fmt.Errorf("sample %s appears in both %s and %s", row.Sample, prev, run.Dataset)
			}
			datasetOf[row.Sample] = run.Dataset
		}
		rows = append(rows, run.Rows...)
	}

	return qcstats.SummarizeBy(rows, func(row qcstats.BasicStats) (string, time.Time, error) {
		uci, err := UCIName(datasetOf[row.Sample], sampleDates[row.Sample])
		return uci, time.Time{}, err
	})
}
