package taxcomp

import (
	"fmt"

	"github.com/naobservatory/mgsreport"
	"gopkg.in/guregu/null.v3"
)

// MissingGroupError reports that a group required by the chosen denominator
// has no row at all for a sample. A present row with a zero count is not
// missing.
type MissingGroupError struct {
	Sample    string
	Ribosomal null.Bool
	Group     Group
}

func (e *MissingGroupError) Error() string {
	return fmt.Sprintf("sample %s%s: no %s row (taxid %d) for the denominator", e.Sample, partitionSuffix(e.Ribosomal), e.Group.Name, e.Group.TaxID)
}

// ZeroTotalReadsError reports a denominator of zero, for which relative
// abundance is undefined.
type ZeroTotalReadsError struct {
	Sample    string
	Ribosomal null.Bool
}

func (e *ZeroTotalReadsError) Error() string {
	return fmt.Sprintf("sample %s%s: total reads is zero", e.Sample, partitionSuffix(e.Ribosomal))
}

func partitionSuffix(ribosomal null.Bool) string {
	if !ribosomal.Valid {
		return ""
	}

	return " (ribosomal=" + mgsreport.FormatBool(ribosomal.Bool) + ")"
}
