package reports

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rengganislabs/ledger_backend/config"
	"github.com/rengganislabs/ledger_backend/models"
	"github.com/rengganislabs/ledger_backend/utils"
)

func reportCacheEnabled() bool {
	v := strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE"))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func reportSlowMs() int64 {
	// Env: REPORT_SLOW_MS (default 200ms)
	ms := int64(200)
	if v := strings.TrimSpace(os.Getenv("REPORT_SLOW_MS")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ms = n
		}
	}
	return ms
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d.Milliseconds() < reportSlowMs() {
		return
	}
	logger := config.GetLogger()
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	logger.WithField("correlation_id", cid).
		WithField("ms", d.Milliseconds()).
		WithField("extra", extra).
		Warnf("slow report %s", name)
}

func cacheGet[T any](key string, dest *T) (bool, error) {
	return config.GetRedisObject(key, dest)
}

func cacheSet(key string, obj any, ttl time.Duration) error {
	return config.SetRedisObject(key, obj, ttl)
}

func periodReportCacheKey(version string, w Window) string {
	return fmt.Sprintf("report:period:%s:%d:%d", version, w.Start.Unix(), w.End.Unix())
}

func breakEvenCacheKey(version string) string {
	return fmt.Sprintf("report:breakeven:%s", version)
}

// GetPeriodReport is the cached entry point used by the API. The cache key
// includes the ledger snapshot version, so entries from a superseded
// snapshot can never be served; a cache failure degrades to recompute.
func GetPeriodReport(ctx context.Context, set models.LedgerSet, w Window, rules models.RuleSet) *PeriodReportResponse {
	started := time.Now()
	defer logSlowReport(ctx, "period", started, map[string]any{"version": set.Version})

	key := periodReportCacheKey(set.Version, w)
	if reportCacheEnabled() {
		var cached PeriodReportResponse
		if ok, err := cacheGet(key, &cached); err == nil && ok {
			return &cached
		}
	}

	resp := ComputePeriodReport(set, w, rules)

	if reportCacheEnabled() {
		if err := cacheSet(key, resp, reportCacheTTL()); err != nil {
			config.LogError(config.GetLogger(), "reportCache.go", "GetPeriodReport", "cacheSet", key, err)
		}
	}
	return resp
}

func GetBreakEvenReport(ctx context.Context, set models.LedgerSet, rules models.RuleSet) *BreakEvenResponse {
	started := time.Now()
	defer logSlowReport(ctx, "breakeven", started, map[string]any{"version": set.Version})

	key := breakEvenCacheKey(set.Version)
	if reportCacheEnabled() {
		var cached BreakEvenResponse
		if ok, err := cacheGet(key, &cached); err == nil && ok {
			return &cached
		}
	}

	resp := ComputeBreakEvenReport(set, rules)

	if reportCacheEnabled() {
		if err := cacheSet(key, resp, reportCacheTTL()); err != nil {
			config.LogError(config.GetLogger(), "reportCache.go", "GetBreakEvenReport", "cacheSet", key, err)
		}
	}
	return resp
}
