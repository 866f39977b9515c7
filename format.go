package mgsreport

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// FormatPercent renders a fraction as a percentage with two decimals: 0.1234
// becomes "12.34%".
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// FormatScientific renders a value in scientific notation with two decimals:
// 0.01234 becomes "1.23e-02".
func FormatScientific(v float64) string {
	return fmt.Sprintf("%.2e", v)
}

// FormatFloat renders the shortest representation that round-trips, so whole
// counts print without a decimal point.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatBool renders booleans the way the pipeline writes them.
func FormatBool(b bool) string {
	if b {
		return "True"
	}

	return "False"
}

// FormatReadCount abbreviates a read count: above one billion it is shown in
// billions with two decimals ("1.23B"), otherwise in millions with
// millionDigits decimals ("456M" or "456.12M").
func FormatReadCount(n float64, millionDigits int) string {
	if n > 1e9 {
		return fmt.Sprintf("%.2fB", n/1e9)
	}

	return fmt.Sprintf("%.*fM", millionDigits, n/1e6)
}

// FormatGrouped renders v with thousands separators and the given number of
// decimals, followed by suffix: FormatGrouped(1234.5, 2, "B") is "1,234.50B".
func FormatGrouped(v float64, decimals int, suffix string) string {
	return englishPrinter.Sprintf(fmt.Sprintf("%%.%df", decimals), v) + suffix
}
