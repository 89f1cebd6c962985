package dashboard

import (
	"errors"

	"github.com/shopspring/decimal"

	"cashflow/internal/cache"
	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/report"
)

const defaultCacheSize = 32

type (
	// DailySeries is the per-day bar chart with its y-axis ticks.
	DailySeries struct {
		Points []core.DailyTotal `json:"points"`
		Ticks  []report.Tick     `json:"ticks"`
	}

	// View holds the three chart series for one selection.
	View struct {
		// Selection is the month-year label applied, or the "all" label.
		Selection string `json:"selection"`
		// Fallback is set when the requested value was not recognized.
		Fallback bool                 `json:"fallback"`
		Bar      []core.CategoryTotal `json:"bar"`
		Pie      []core.CategoryTotal `json:"pie"`
		Daily    DailySeries          `json:"daily"`
	}

	Options struct {
		TickStep  decimal.Decimal
		TickRound decimal.Decimal
		// CacheSize bounds the number of memoized views.
		CacheSize int
		Logger    *log.Logger
	}

	Presenter struct {
		data      *Dataset
		tickStep  decimal.Decimal
		tickRound decimal.Decimal
		views     *cache.LRUCache[View]
		logger    *log.Logger
	}
)

// NewPresenter validates the tick settings; zero values take the defaults.
func NewPresenter(data *Dataset, opts Options) (*Presenter, error) {
	if data == nil {
		return nil, errors.New("dashboard: dataset is required")
	}
	if opts.TickStep.IsZero() {
		opts.TickStep = report.DefaultTickStep
	}
	if opts.TickRound.IsZero() {
		opts.TickRound = report.DefaultTickRound
	}
	if _, err := report.AxisTicks(core.Money{}, opts.TickStep, opts.TickRound); err != nil {
		return nil, err
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Presenter{
		data:      data,
		tickStep:  opts.TickStep,
		tickRound: opts.TickRound,
		views:     cache.NewLRUCache[View](opts.CacheSize),
		logger:    logger.WithComponent(log.ComponentDashboard),
	}, nil
}

// Dataset returns the data the presenter renders.
func (p *Presenter) Dataset() *Dataset { return p.data }

// CacheStats reports lookups in the view cache.
func (p *Presenter) CacheStats() cache.Stats { return p.views.Stats() }

// Render computes bar, pie and daily series for a dropdown value. Unknown
// values render the full range and are reported through View.Fallback.
func (p *Presenter) Render(selection string) View {
	sel := report.ResolveSelection(selection, p.data.months, p.data.locale)
	if sel.Fallback() {
		p.logger.Warn("Unrecognized month selection, showing all months",
			log.FieldSelection, selection)
	}

	key := sel.MonthYear
	if sel.Kind != report.SelectMonth {
		key = p.data.locale.AllLabel
	}
	if v, ok := p.views.Get(key); ok {
		v.Fallback = sel.Fallback()
		return v
	}

	view := p.compute(sel)
	view.Selection = key
	p.views.Set(key, view)
	stats := p.views.Stats()
	p.logger.Debug("View computed",
		log.FieldOperation, log.OpRender,
		log.FieldSelection, key,
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
		"cache_size", p.views.Size())

	view.Fallback = sel.Fallback()
	return view
}

func (p *Presenter) compute(sel report.Selection) View {
	categories := report.ByCategory(p.data.rows, sel)
	days := report.ByDay(p.data.rows, sel)

	ticks, err := report.AxisTicks(report.MaxAmount(days), p.tickStep, p.tickRound)
	if err != nil {
		// Settings were checked in NewPresenter.
		p.logger.Error("Axis ticks failed", log.FieldError, err)
	}

	return View{
		Bar:   categories,
		Pie:   append([]core.CategoryTotal(nil), categories...),
		Daily: DailySeries{Points: days, Ticks: ticks},
	}
}
