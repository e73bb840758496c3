package report

import (
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/bitmark-inc/health-metrics-api/alert"
	"github.com/bitmark-inc/health-metrics-api/schema"
	"github.com/bitmark-inc/health-metrics-api/stats"
)

// Report is the result of every analysis over one dataset
type Report struct {
	Records          int                        `json:"records"`
	Overview         []schema.KeyMetric         `json:"overview"`
	Statistics       []schema.ColumnSummary     `json:"statistics"`
	Correlations     schema.CorrelationMatrix   `json:"correlations"`
	Alerts           alert.Result               `json:"alerts"`
	AllNormalMessage string                     `json:"all_normal_message,omitempty"`
	NormalRanges     []schema.NormalRangeResult `json:"normal_ranges"`
	Activity         []schema.ActivityGroup     `json:"activity"`
	ActivityCounts   []schema.ValueCount        `json:"activity_counts"`
	HormoneCounts    []schema.ValueCount        `json:"hormone_counts"`
}

// Build runs the analyses concurrently. Each goroutine writes its own field
// of the report and the dataset is never modified, so no lock is taken.
func Build(d *schema.Dataset, loc *i18n.Localizer) Report {
	r := Report{Records: d.Len()}

	tasks := []func(){
		func() { r.Overview = stats.Overview(d) },
		func() { r.Statistics = stats.Describe(d) },
		func() { r.Correlations = stats.Correlate(d) },
		func() {
			r.Alerts = alert.Localize(loc, alert.Evaluate(d))
			if r.Alerts.AllNormal {
				r.AllNormalMessage = alert.AllNormalMessage(loc)
			}
		},
		func() { r.NormalRanges = alert.NormalRanges(d) },
		func() { r.Activity = stats.GroupByActivity(d) },
		func() { r.ActivityCounts = stats.ValueCounts(d, schema.ActivityLevel) },
		func() { r.HormoneCounts = stats.ValueCounts(d, schema.HormoneImbalance) },
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		go func(task func()) {
			defer wg.Done()
			task()
		}(task)
	}
	wg.Wait()

	return r
}
