package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitmark-inc/health-metrics-api/external/objectstore"
	"github.com/bitmark-inc/health-metrics-api/filter"
	"github.com/bitmark-inc/health-metrics-api/schema"
	"github.com/bitmark-inc/health-metrics-api/tabular"
)

const exportFileName = "filtered_health_data.csv"

// bindFilterSpec reads the filter spec of the request with sorted,
// de-duplicated sets. An empty body selects every reading.
func bindFilterSpec(c *gin.Context, d *schema.Dataset) (filter.Spec, bool) {
	if c.Request.ContentLength == 0 {
		return filter.DefaultSpec(d), true
	}

	var spec filter.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return filter.Spec{}, false
	}

	if spec.Thermoregulation.Min > spec.Thermoregulation.Max {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return filter.Spec{}, false
	}

	return spec.Normalize(), true
}

func (s *Server) filterDataset(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	spec, ok := bindFilterSpec(c, d)
	if !ok {
		return
	}

	result := filter.Apply(d, spec)

	c.JSON(http.StatusOK, gin.H{
		"filter":  spec,
		"showing": result.Len(),
		"total":   d.Len(),
		"records": result.Records(),
	})
}

// exportDataset writes the filtered readings as csv, either as an attachment
// or into the object storage when `store=s3`
func (s *Server) exportDataset(c *gin.Context) {
	d, ok := datasetFromContext(c)
	if !ok {
		return
	}

	spec, ok := bindFilterSpec(c, d)
	if !ok {
		return
	}

	data, err := tabular.Marshal(filter.Apply(d, spec))
	if shouldInterupt(err, c) {
		return
	}

	if c.Query("store") != "s3" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFileName))
		c.Data(http.StatusOK, objectstore.CSVContentType, data)
		return
	}

	if s.objectStore == nil {
		abortWithEncoding(c, http.StatusBadRequest, errorObjectStoreDisabled)
		return
	}

	key := fmt.Sprintf("exports/%s/%s/%s", c.Param("datasetID"), uuid.New().String(), exportFileName)
	err = s.objectStore.Put(c.Request.Context(), key, data, objectstore.CSVContentType)
	if shouldInterupt(err, c) {
		return
	}

	s.metrics.Counter("exports_stored").Inc(1)

	c.JSON(http.StatusOK, gin.H{
		"object_key": key,
	})
}
