package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bitmark-inc/health-metrics-api/report"
	"github.com/bitmark-inc/health-metrics-api/schema"
)

const precision = 2

// render writes the report as plain text tables
func render(w io.Writer, r report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Health metrics report (%d readings)\n\n", r.Records)

	fmt.Fprintln(tw, "Key metrics")
	for _, m := range r.Overview {
		fmt.Fprintf(tw, "  %s\t%s\t± %s\n", m.Metric, m.Mean.Format(precision), m.Std.Format(precision))
	}

	fmt.Fprintln(tw, "\nAlerts")
	if r.Alerts.AllNormal {
		fmt.Fprintf(tw, "  %s\n", r.AllNormalMessage)
	}
	for _, f := range r.Alerts.Findings {
		fmt.Fprintf(tw, "  %s\n", f.Message)
	}

	fmt.Fprintln(tw, "\nNormal ranges")
	for _, n := range r.NormalRanges {
		fmt.Fprintf(tw, "  %s\t%s\t%s%%\t(%d/%d)\n", n.Metric, n.Range, n.Percent.Format(1), n.Matching, n.Total)
	}

	fmt.Fprintln(tw, "\nStatistics")
	fmt.Fprintln(tw, "  column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	for _, s := range r.Statistics {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", s.Column, s.Count, joinFloats(s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max))
	}

	fmt.Fprintln(tw, "\nActivity levels")
	fmt.Fprintln(tw, "  level\tcount\ttemperature\theart rate\toxygen\tsleep")
	for _, g := range r.Activity {
		fmt.Fprintf(tw, "  %d\t%d\t%s\n",
			g.ActivityLevel, g.Count, joinFloats(g.Thermoregulation, g.HeartRateVariation, g.BloodOxygen, g.SleepPatterns))
	}

	fmt.Fprintln(tw, "\nCorrelations")
	header := make([]string, len(r.Correlations.Columns))
	for i, c := range r.Correlations.Columns {
		header[i] = string(c)
	}
	fmt.Fprintf(tw, "  \t%s\n", strings.Join(header, "\t"))
	for i, c := range r.Correlations.Columns {
		fmt.Fprintf(tw, "  %s\t%s\n", c, joinFloats(r.Correlations.Values[i]...))
	}

	return tw.Flush()
}

func joinFloats(values ...schema.NullableFloat) string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = v.Format(precision)
	}
	return strings.Join(cells, "\t")
}
