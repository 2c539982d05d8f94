// AngelaMos | 2026
// prompts.go

package insights

import (
	"fmt"
	"strings"
)

func insightsPrompt(recent []RecentActivity, farmerCount int) string {
	var b strings.Builder
	b.WriteString("You are an agronomy assistant for a farming cooperative.\n")
	fmt.Fprintf(&b, "The cooperative has %d registered farmers.\n", farmerCount)
	b.WriteString("Recent farm activities (newest first):\n")
	for _, a := range recent {
		fmt.Fprintf(&b, "- %s: %s for %s (%s, %s region)",
			a.Date.Format("2006-01-02"), a.Type, a.FarmerName,
			a.ContractedCrop, a.Region)
		if a.Details != "" {
			fmt.Fprintf(&b, ": %s", a.Details)
		}
		b.WriteString("\n")
	}
	b.WriteString(`Give 3 to 5 short, actionable insights for the cooperative manager.
Respond with JSON only: {"insights": ["..."]}`)
	return b.String()
}

func summaryPrompt(s *FarmerSnapshot) string {
	return fmt.Sprintf(`You are an agronomy assistant for a farming cooperative.
Farmer: %s
Region: %s
Contracted crop: %s
Activities logged: %d (total cost %.2f, most recent: %s)
Collections recorded: %d (total weight %.2f kg)
Payments: %.2f paid, %.2f pending
Write a 2 to 3 sentence performance summary with one recommendation.
Respond with JSON only: {"summary": "..."}`,
		s.Name, s.Region, s.ContractedCrop,
		s.ActivityCount, s.ActivityCost, orNone(s.LastActivity),
		s.CollectionCount, s.TotalWeight,
		s.TotalPaid, s.TotalPending,
	)
}

func forecastPrompt(yields []RegionCropYield) string {
	var b strings.Builder
	b.WriteString("You are an agronomy assistant for a farming cooperative.\n")
	b.WriteString("Collections and plantings over the last 180 days by region and crop:\n")
	for _, y := range yields {
		fmt.Fprintf(&b, "- %s / %s: %d collections, %.2f kg total, %.2f kg average, %d plantings\n",
			y.Region, y.Crop, y.Collections, y.TotalWeight, y.AvgWeight, y.Plantings)
	}
	b.WriteString(`Forecast next-season yield per region and crop.
Respond with JSON only:
{"forecasts": [{"region": "...", "crop": "...", "expectedYield": 0, "confidence": "low|medium|high"}],
 "keyRisks": ["..."], "opportunities": ["..."]}`)
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
