package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/bitmark-inc/health-metrics-api/alert"
	"github.com/bitmark-inc/health-metrics-api/consts"
	"github.com/bitmark-inc/health-metrics-api/report"
	"github.com/bitmark-inc/health-metrics-api/schema"
	"github.com/bitmark-inc/health-metrics-api/stats"
	"github.com/bitmark-inc/health-metrics-api/utils"
)

// localizer picks the message language from `lang` and then from the
// Accept-Language header
func localizer(c *gin.Context) *i18n.Localizer {
	return utils.NewLocalizer(c.Query("lang"), c.GetHeader("Accept-Language"))
}

func (s *Server) getStatistics(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records":    d.Len(),
		"statistics": stats.Describe(d),
	})
}

func (s *Server) getCorrelations(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, stats.Correlate(d))
}

func (s *Server) getAlerts(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	loc := localizer(c)
	result := alert.Localize(loc, alert.Evaluate(d))

	resp := gin.H{
		"findings":   result.Findings,
		"all_normal": result.AllNormal,
	}
	if result.AllNormal {
		resp["message"] = alert.AllNormalMessage(loc)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getNormalRanges(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"normal_ranges": alert.NormalRanges(d),
	})
}

func (s *Server) getActivity(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": stats.GroupByActivity(d),
		"counts": stats.ValueCounts(d, schema.ActivityLevel),
	})
}

func (s *Server) getDistribution(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	column, ok := columnParam(c)
	if !ok {
		return
	}

	bins := consts.DefaultHistogramBins
	if v := c.Query("bins"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > consts.MaxHistogramBins {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		bins = n
	}

	resp := gin.H{
		"column":    column,
		"histogram": stats.Histogram(d, column, bins),
	}
	if column.IsInteger() {
		resp["value_counts"] = stats.ValueCounts(d, column)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getTrend(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	column, ok := columnParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"column": column,
		"points": stats.Trend(d, column),
	})
}

func (s *Server) getReport(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, report.Build(d, localizer(c)))
}

func columnParam(c *gin.Context) (schema.Column, bool) {
	column, ok := schema.ColumnFromName(c.Param("column"))
	if !ok {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownColumn)
	}
	return column, ok
}
