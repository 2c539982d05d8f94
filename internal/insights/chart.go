// AngelaMos | 2026
// chart.go

package insights

// Row is one aggregated label/value pair as returned by the store.
type Row struct {
	Label string  `db:"label"`
	Value float64 `db:"value"`
}

// Chart is the {labels, series} shape consumed by the dashboard charts.
type Chart struct {
	Labels []string  `json:"labels"`
	Series []float64 `json:"series"`
}

// ToChart keeps row order. Empty labels become "Unspecified".
func ToChart(rows []Row) Chart {
	chart := Chart{
		Labels: make([]string, 0, len(rows)),
		Series: make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		label := row.Label
		if label == "" {
			label = "Unspecified"
		}
		chart.Labels = append(chart.Labels, label)
		chart.Series = append(chart.Series, row.Value)
	}
	return chart
}
