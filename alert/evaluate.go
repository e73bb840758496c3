package alert

import (
	"github.com/bitmark-inc/health-metrics-api/schema"
)

// Result is the outcome of evaluating alert rules over a dataset
type Result struct {
	Findings  []schema.AlertFinding `json:"findings"`
	AllNormal bool                  `json:"all_normal"`
}

// Evaluate checks the dataset against DefaultRules
func Evaluate(d *schema.Dataset) Result {
	return EvaluateRules(d, DefaultRules)
}

// EvaluateRules counts the readings violating each rule over the whole
// dataset. Rules are independent: a reading may be counted by several of
// them. Only rules with at least one match give a finding, in rule order.
func EvaluateRules(d *schema.Dataset, rules []Rule) Result {
	findings := make([]schema.AlertFinding, 0, len(rules))
	for _, r := range rules {
		if n := Count(d, r); n > 0 {
			findings = append(findings, schema.AlertFinding{
				ID:        r.ID,
				Metric:    r.Metric,
				Condition: r.Condition(),
				Count:     n,
			})
		}
	}

	return Result{
		Findings:  findings,
		AllNormal: len(findings) == 0,
	}
}

// Count returns the number of readings violating a rule
func Count(d *schema.Dataset, r Rule) int {
	count := 0
	for i := 0; i < d.Len(); i++ {
		if r.Matches(d.Record(i)) {
			count++
		}
	}
	return count
}
