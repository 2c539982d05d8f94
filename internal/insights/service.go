// AngelaMos | 2026
// service.go

package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/agritrace/agritrace-api/internal/core"
)

const (
	recentActivityLimit = 20
	timeseriesDays      = 30
	forecastWindow      = 180 * 24 * time.Hour
	cachePrefix         = "insights:"
)

type InsightsResponse struct {
	Insights []string `json:"insights"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type Forecast struct {
	Region        string  `json:"region"`
	Crop          string  `json:"crop"`
	ExpectedYield float64 `json:"expectedYield"`
	Confidence    string  `json:"confidence"`
}

type ForecastResponse struct {
	Forecasts     []Forecast `json:"forecasts"`
	KeyRisks      []string   `json:"keyRisks"`
	Opportunities []string   `json:"opportunities"`
}

type Service struct {
	repo   Repository
	gen    Generator
	cache  Cache
	logger *slog.Logger
	now    func() time.Time
}

func NewService(
	repo Repository,
	gen Generator,
	cache Cache,
	logger *slog.Logger,
) *Service {
	if gen == nil {
		gen = Offline{}
	}
	if cache == nil {
		cache = NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		gen:    gen,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Insights(ctx context.Context) (*InsightsResponse, error) {
	var (
		recent      []RecentActivity
		farmerCount int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recent, err = s.repo.RecentActivities(gctx, recentActivityLimit)
		return err
	})
	g.Go(func() error {
		var err error
		farmerCount, err = s.repo.FarmerCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load insight data: %w", err)
	}

	if len(recent) > 0 {
		var out InsightsResponse
		if s.generateJSON(ctx, "dashboard", insightsPrompt(recent, farmerCount), &out) &&
			len(out.Insights) > 0 {
			return &out, nil
		}
	}

	return &InsightsResponse{Insights: ruleInsights(recent, farmerCount)}, nil
}

func (s *Service) FarmerSummary(
	ctx context.Context,
	farmerID string,
) (*SummaryResponse, error) {
	snap, err := s.repo.FarmerSnapshot(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	var out SummaryResponse
	if s.generateJSON(ctx, "summary", summaryPrompt(snap), &out) && out.Summary != "" {
		return &out, nil
	}

	return &SummaryResponse{Summary: ruleSummary(snap)}, nil
}

func (s *Service) ActivityDistribution(ctx context.Context) (Chart, error) {
	rows, err := s.repo.ActivityDistribution(ctx)
	if err != nil {
		return Chart{}, err
	}
	return ToChart(rows), nil
}

// CollectionsTimeseries returns collected weight per day for the last 30
// days, including days without collections.
func (s *Service) CollectionsTimeseries(ctx context.Context) (Chart, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(timeseriesDays - 1))

	rows, err := s.repo.CollectionsSince(ctx, since)
	if err != nil {
		return Chart{}, err
	}

	byDay := make(map[string]float64, len(rows))
	for _, row := range rows {
		byDay[row.Label] += row.Value
	}

	filled := make([]Row, 0, timeseriesDays)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		label := d.Format("2006-01-02")
		filled = append(filled, Row{Label: label, Value: byDay[label]})
	}

	return ToChart(filled), nil
}

func (s *Service) YieldByRegion(ctx context.Context) (Chart, error) {
	rows, err := s.repo.YieldByRegion(ctx)
	if err != nil {
		return Chart{}, err
	}
	return ToChart(rows), nil
}

func (s *Service) QualityDistribution(ctx context.Context) (Chart, error) {
	rows, err := s.repo.QualityDistribution(ctx)
	if err != nil {
		return Chart{}, err
	}
	return ToChart(rows), nil
}

func (s *Service) YieldForecast(ctx context.Context) (*ForecastResponse, error) {
	yields, err := s.repo.RegionCropYields(ctx, s.now().UTC().Add(-forecastWindow))
	if err != nil {
		return nil, err
	}

	if len(yields) > 0 {
		var out ForecastResponse
		if s.generateJSON(ctx, "forecast", forecastPrompt(yields), &out) &&
			len(out.Forecasts) > 0 {
			return normalizeForecast(&out), nil
		}
	}

	return ruleForecast(yields), nil
}

// generateJSON asks the generator for JSON and decodes it into dst. A
// cached answer for the same prompt is reused. It reports false when the
// caller should fall back to rule-based output.
func (s *Service) generateJSON(ctx context.Context, kind, prompt string, dst any) bool {
	ctx, span := core.StartSpan(ctx, "insights.generate",
		attribute.String("insights.kind", kind),
	)
	defer span.End()

	key := cachePrefix + kind + ":" + core.Fingerprint(prompt)

	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("insight cache read failed", "error", err)
	}
	if hit && decodeJSON(cached, dst) == nil {
		span.SetAttributes(attribute.Bool("insights.cache_hit", true))
		return true
	}

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ErrGeneratorUnavailable) {
			core.SetSpanError(ctx, err)
			s.logger.Warn("insight generation failed", "kind", kind, "error", err)
		}
		return false
	}

	if err := decodeJSON(text, dst); err != nil {
		s.logger.Warn("insight response not valid JSON", "kind", kind, "error", err)
		return false
	}

	if err := s.cache.Set(ctx, key, text); err != nil {
		s.logger.Warn("insight cache write failed", "error", err)
	}

	return true
}

func decodeJSON(text string, dst any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(text)), dst)
}

func ruleInsights(recent []RecentActivity, farmerCount int) []string {
	if len(recent) == 0 {
		return []string{
			fmt.Sprintf("%d farmers registered; no farm activities logged yet.", farmerCount),
			"Log planting and input activities to unlock activity insights.",
		}
	}

	byType := make(map[string]int)
	regions := make(map[string]struct{})
	for _, a := range recent {
		byType[a.Type]++
		regions[a.Region] = struct{}{}
	}

	top, topCount := "", 0
	for t, n := range byType {
		if n > topCount || (n == topCount && t < top) {
			top, topCount = t, n
		}
	}

	out := []string{
		fmt.Sprintf("%d farmers registered across %d active regions.", farmerCount, len(regions)),
		fmt.Sprintf("%s is the most common recent activity (%d of the last %d).",
			top, topCount, len(recent)),
		fmt.Sprintf("Latest activity: %s for %s on %s.",
			recent[0].Type, recent[0].FarmerName, recent[0].Date.Format("2006-01-02")),
	}

	if byType["Pest Control"] == 0 {
		out = append(out, "No recent pest control logged; schedule field scouting.")
	}

	return out
}

func ruleSummary(s *FarmerSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s grows %s in %s with %d logged activities and %d collections totalling %.2f kg.",
		s.Name, s.ContractedCrop, s.Region, s.ActivityCount, s.CollectionCount, s.TotalWeight)

	switch {
	case s.CollectionCount == 0:
		b.WriteString(" No produce has been collected yet; follow up on harvest timing.")
	case s.TotalPending > 0:
		fmt.Fprintf(&b, " %.2f in payments is still pending.", s.TotalPending)
	default:
		b.WriteString(" All recorded collections are paid.")
	}

	return b.String()
}

func ruleForecast(yields []RegionCropYield) *ForecastResponse {
	out := &ForecastResponse{
		Forecasts:     make([]Forecast, 0, len(yields)),
		KeyRisks:      []string{},
		Opportunities: []string{},
	}

	for _, y := range yields {
		confidence := "low"
		switch {
		case y.Collections >= 10:
			confidence = "high"
		case y.Collections >= 3:
			confidence = "medium"
		}

		out.Forecasts = append(out.Forecasts, Forecast{
			Region:        y.Region,
			Crop:          y.Crop,
			ExpectedYield: math.Round(y.TotalWeight*100) / 100,
			Confidence:    confidence,
		})

		if y.Collections == 0 {
			out.KeyRisks = append(out.KeyRisks,
				fmt.Sprintf("No %s collections from %s in the last 180 days.", y.Crop, y.Region))
		}
		if y.Plantings > y.Collections {
			out.Opportunities = append(out.Opportunities,
				fmt.Sprintf("%d recent %s plantings in %s point to upcoming harvests.",
					y.Plantings, y.Crop, y.Region))
		}
	}

	return out
}

func normalizeForecast(f *ForecastResponse) *ForecastResponse {
	if f.KeyRisks == nil {
		f.KeyRisks = []string{}
	}
	if f.Opportunities == nil {
		f.Opportunities = []string{}
	}
	return f
}
