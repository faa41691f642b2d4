package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/karimaz/switchcalc/internal/domain"
)

// CSVFormatter renders the per-month comparison rows as CSV, one row per
// scenario-month.
type CSVFormatter struct{}

// Format generates CSV output.
func (cf *CSVFormatter) Format(result *domain.ComparisonResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Month",
		"Stay Cash Out",
		"Switch Cash Out",
		"Cumulative Stay",
		"Cumulative Switch",
		"Break-even Month",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i := range result.Scenarios {
		sc := &result.Scenarios[i]
		be := ""
		if sc.BreakEvenMonth != nil {
			be = strconv.Itoa(*sc.BreakEvenMonth)
		}
		for _, entry := range sc.Entries {
			row := []string{
				sc.Name,
				strconv.Itoa(entry.Month),
				entry.StayCashOut.StringFixed(2),
				entry.SwitchCashOut.StringFixed(2),
				entry.CumulativeStay.StringFixed(2),
				entry.CumulativeSwitch.StringFixed(2),
				be,
			}
			if err := writer.Write(row); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
