package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/karimaz/switchcalc/internal/domain"
)

var tenThousand = decimal.NewFromInt(10000)

// TableFormatter renders a comparison as a console table.
type TableFormatter struct{}

// Format generates the table output.
func (tf *TableFormatter) Format(result *domain.ComparisonResult) string {
	var sb strings.Builder

	sb.WriteString("MORTGAGE BUYOUT COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("Horizon: %d months\n", result.HorizonMonths))
	sb.WriteString(fmt.Sprintf("Recommendation: %s (base scenario: %s)\n",
		strings.ToUpper(result.Summary.Recommendation), result.Summary.BaseScenario))
	sb.WriteString("\n")

	// Fee waterfall
	sb.WriteString("SWITCHING FEES\n")
	sb.WriteString(strings.Repeat("-", 78) + "\n")
	if len(result.Waterfall.Items) == 0 {
		sb.WriteString("  (none: auto-estimation disabled and no fees supplied)\n")
	}
	for _, item := range result.Waterfall.Items {
		sb.WriteString(fmt.Sprintf("  %-28s %14s AED  %-8s %s\n",
			item.Kind, item.AmountAED.StringFixed(2), item.Timing, item.Source))
	}
	sb.WriteString(fmt.Sprintf("  %-28s %14s AED\n",
		"total upfront", result.Waterfall.TotalUpfront().StringFixed(2)))
	sb.WriteString("\n")

	// Scenario table
	nameWidth := 14
	numWidth := 18
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %12s\n",
		nameWidth, "Scenario",
		numWidth, "Rate Delta",
		numWidth, "Stay Total",
		numWidth, "Switch Total",
		"Break-even"))
	sb.WriteString(strings.Repeat("-", 78) + "\n")

	for i := range result.Scenarios {
		sc := &result.Scenarios[i]
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %12s\n",
			nameWidth, sc.Name,
			numWidth, formatDelta(sc),
			numWidth, sc.StayTotal().StringFixed(2),
			numWidth, sc.SwitchTotal().StringFixed(2),
			formatBreakEven(sc.BreakEvenMonth)))
	}
	sb.WriteString(strings.Repeat("=", 78) + "\n")

	return sb.String()
}

func formatDelta(sc *domain.ScenarioResult) string {
	bps := sc.RateDelta.Mul(tenThousand)
	sign := ""
	if bps.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s bps", sign, bps.StringFixed(0))
}

func formatBreakEven(month *int) string {
	if month == nil {
		return "none"
	}
	return fmt.Sprintf("month %d", *month)
}
