package report

import (
	"fmt"
	"strings"

	"MondayRange/internal/analysis"
	"MondayRange/internal/model"
)

// FormatConsole renders the analysis as the plain-text console report.
func FormatConsole(res *analysis.Result) string {
	agg := res.Aggregate
	p := res.Probabilities
	var b strings.Builder

	b.WriteString("\n=== Monday Range Analysis ===\n")
	b.WriteString(fmt.Sprintf("Total number of Mondays analyzed: %d\n", agg.TotalMondays))

	b.WriteString("\nHigh Break Analysis:\n")
	b.WriteString(fmt.Sprintf("Number of times Monday's high was broken: %d\n", agg.HighBrokenCount))
	b.WriteString(fmt.Sprintf("Probability of Monday's high being broken: %s\n", Percent(p.HighBreak)))
	b.WriteString("\nDay-specific probabilities for high breaks:\n")
	writeDayShares(&b, p.DayHigh)

	b.WriteString("\nLow Break Analysis:\n")
	b.WriteString(fmt.Sprintf("Number of times Monday's low was broken: %d\n", agg.LowBrokenCount))
	b.WriteString(fmt.Sprintf("Probability of Monday's low being broken: %s\n", Percent(p.LowBreak)))
	b.WriteString("\nDay-specific probabilities for low breaks:\n")
	writeDayShares(&b, p.DayLow)

	b.WriteString(fmt.Sprintf("\nProbability of either Monday's high or low being broken: %s\n", Percent(p.EitherBreak)))

	b.WriteString("\nSummary Statistics:\n")
	b.WriteString(fmt.Sprintf("Average days to break Monday's high: %.2f (1=Tuesday, 2=Wednesday, etc.)\n", p.AvgHighBreakDay))
	b.WriteString(fmt.Sprintf("Average days to break Monday's low: %.2f (1=Tuesday, 2=Wednesday, etc.)\n", p.AvgLowBreakDay))
	b.WriteString(fmt.Sprintf("Weeks with only high broken: %d\n", len(agg.OnlyHigh)))
	b.WriteString(fmt.Sprintf("Weeks with only low broken: %d\n", len(agg.OnlyLow)))
	b.WriteString(fmt.Sprintf("Weeks with both broken: %d\n", agg.BothBrokenCount))
	b.WriteString(fmt.Sprintf("Weeks with neither broken: %d\n", agg.NeitherBrokenCount))

	if n := len(res.DuplicateMondayWeeks); n > 0 {
		b.WriteString(fmt.Sprintf("\nWarning: %d week(s) had more than one Monday session; the earliest was used.\n", n))
	}
	return b.String()
}

// Percent formats a rate the way the reports show it, e.g. 0.4567 -> "45.67%".
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// dayShareLines lists the non-zero day shares in weekday order.
func dayShareLines(shares map[model.Weekday]float64) []string {
	var lines []string
	for _, d := range model.BreakDays {
		if s, ok := shares[d]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s", d.Name(), Percent(s)))
		}
	}
	return lines
}

func writeDayShares(b *strings.Builder, shares map[model.Weekday]float64) {
	lines := dayShareLines(shares)
	if len(lines) == 0 {
		b.WriteString("No breaks recorded\n")
		return
	}
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
}
