package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rengganislabs/ledger_backend/models"
	"github.com/rengganislabs/ledger_backend/utils"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("rengganis-ledger-backend")

var validate = validator.New()

// LedgerProvider hands out the current normalized ledger snapshot. The
// sync store implements it; tests can supply a fixed set.
type LedgerProvider interface {
	Current() (models.LedgerSet, bool)
}

type periodReportQuery struct {
	FromDate string `form:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" validate:"omitempty,datetime=2006-01-02"`
}

// resolveWindow defaults to the last six months, the dashboard's initial
// view.
func (q periodReportQuery) resolveWindow(loc *time.Location) (Window, error) {
	now := time.Now().In(loc)
	start := now.AddDate(0, -6, 0)
	end := now

	var err error
	if q.FromDate != "" {
		if start, err = time.ParseInLocation("2006-01-02", q.FromDate, loc); err != nil {
			return Window{}, err
		}
	}
	if q.ToDate != "" {
		if end, err = time.ParseInLocation("2006-01-02", q.ToDate, loc); err != nil {
			return Window{}, err
		}
	}
	return NewWindow(start, end), nil
}

func bindPeriodQuery(c *gin.Context) (periodReportQuery, bool) {
	var q periodReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	if err := validate.Struct(q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return q, false
	}
	return q, true
}

func currentLedger(c *gin.Context, provider LedgerProvider) (models.LedgerSet, bool) {
	set, ok := provider.Current()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ledger data not loaded yet"})
		return models.LedgerSet{}, false
	}
	return set, true
}

// PeriodReportHandler serves GET /api/reports/period.
func PeriodReportHandler(provider LedgerProvider, rules models.RuleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "reports.period")
		defer span.End()

		q, ok := bindPeriodQuery(c)
		if !ok {
			return
		}
		w, err := q.resolveWindow(rules.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if w.End.Before(w.Start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to_date is before from_date"})
			return
		}

		set, ok := currentLedger(c, provider)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, GetPeriodReport(ctx, set, w, rules))
	}
}

// BreakEvenReportHandler serves GET /api/reports/break-even.
func BreakEvenReportHandler(provider LedgerProvider, rules models.RuleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "reports.breakeven")
		defer span.End()

		set, ok := currentLedger(c, provider)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, GetBreakEvenReport(ctx, set, rules))
	}
}

// ExportPeriodReportHandler serves GET /api/reports/period/export as an
// xlsx download.
func ExportPeriodReportHandler(provider LedgerProvider, rules models.RuleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "reports.period.export")
		defer span.End()

		q, ok := bindPeriodQuery(c)
		if !ok {
			return
		}
		w, err := q.resolveWindow(rules.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set, ok := currentLedger(c, provider)
		if !ok {
			return
		}
		report := GetPeriodReport(ctx, set, w, rules)

		f, err := BuildPeriodReportExcel(report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		filename := "laporan_" + report.FromDate + "_" + report.ToDate + ".xlsx"
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := f.Write(c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}
