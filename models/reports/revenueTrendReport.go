package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/rengganislabs/ledger_backend/models"
)

type TrendInterval string

const (
	TrendIntervalDaily   TrendInterval = "Daily"
	TrendIntervalMonthly TrendInterval = "Monthly"
)

type TrendPoint struct {
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
}

type RevenueTrendResponse struct {
	Interval TrendInterval `json:"interval"`
	Points   []TrendPoint  `json:"points"`
}

// The dashboard renders with the Indonesian locale; month abbreviations
// are looked up here instead of carrying locale support.
var idMonthShort = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// ComputeRevenueTrend buckets filtered revenue by day, or by month when
// the window is longer than the configured threshold. Buckets with no
// records are not synthesized; gaps in the series are expected. Points are
// ordered ascending by bucket start.
func ComputeRevenueTrend(revenue []models.RevenueRecord, w Window, rules models.RuleSet) *RevenueTrendResponse {
	monthly := w.Days() > rules.MonthlyTrendThresholdDays

	type bucket struct {
		label string
		total int64
	}
	buckets := map[int64]*bucket{}

	for _, rec := range revenue {
		var key time.Time
		var label string
		if monthly {
			key = models.StartOfMonth(rec.Date)
			label = fmt.Sprintf("%s %d", idMonthShort[rec.Date.Month()-1], rec.Date.Year())
		} else {
			key = models.StartOfDay(rec.Date)
			label = fmt.Sprintf("%02d %s", rec.Date.Day(), idMonthShort[rec.Date.Month()-1])
		}
		k := key.Unix()
		if buckets[k] == nil {
			buckets[k] = &bucket{label: label}
		}
		buckets[k].total += rec.Amount
	}

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	resp := &RevenueTrendResponse{
		Interval: TrendIntervalDaily,
		Points:   make([]TrendPoint, 0, len(keys)),
	}
	if monthly {
		resp.Interval = TrendIntervalMonthly
	}
	for _, k := range keys {
		resp.Points = append(resp.Points, TrendPoint{
			Label:   buckets[k].label,
			Revenue: buckets[k].total,
		})
	}
	return resp
}
