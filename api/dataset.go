package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/health-metrics-api/external/objectstore"
	"github.com/bitmark-inc/health-metrics-api/schema"
	"github.com/bitmark-inc/health-metrics-api/store"
	"github.com/bitmark-inc/health-metrics-api/tabular"
)

var errUploadTooLarge = errors.New("upload is too large")

type schemaErrorDetail struct {
	Missing    []schema.Column `json:"missing,omitempty"`
	Duplicated []schema.Column `json:"duplicated,omitempty"`
}

type parseErrorDetail struct {
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// uploadDataset parses a csv file and starts a session for it. The file is
// read from a multipart `file` field, from an `object_key` of the object
// storage, or from the raw request body.
func (s *Server) uploadDataset(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes+1<<20)

	data, ok := s.readUpload(c)
	if !ok {
		return
	}

	d, err := tabular.Parse(bytes.NewReader(data))
	if err != nil {
		s.abortWithIngestionError(c, err)
		return
	}

	id, err := s.store.Save(c.Request.Context(), d)
	if shouldInterupt(err, c) {
		return
	}

	token, err := s.issueDatasetToken(id)
	if shouldInterupt(err, c) {
		return
	}

	s.metrics.Counter("datasets_uploaded").Inc(1)
	s.metrics.Counter("records_ingested").Inc(int64(d.Len()))

	log.WithField("dataset", id).Infof("dataset uploaded with %d records", d.Len())

	c.JSON(http.StatusOK, gin.H{
		"dataset_id":    id,
		"records":       d.Len(),
		"extra_columns": d.ExtraColumns(),
		"token":         token,
		"expire_in":     s.tokenExpireIn(),
	})
}

func (s *Server) readUpload(c *gin.Context) ([]byte, bool) {
	contentType := c.ContentType()

	switch {
	case strings.HasPrefix(contentType, "multipart/"):
		file, err := c.FormFile("file")
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return nil, false
		}
		if file.Size > s.maxUploadBytes {
			abortWithEncoding(c, http.StatusRequestEntityTooLarge, errorUploadTooLarge)
			return nil, false
		}

		f, err := file.Open()
		if shouldInterupt(err, c) {
			return nil, false
		}
		defer f.Close()

		return s.readLimited(c, f)

	case contentType == gin.MIMEJSON:
		var params struct {
			ObjectKey string `json:"object_key" binding:"required"`
		}
		if err := c.ShouldBindJSON(&params); err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return nil, false
		}

		if s.objectStore == nil {
			abortWithEncoding(c, http.StatusBadRequest, errorObjectStoreDisabled)
			return nil, false
		}

		r, err := s.objectStore.Get(c.Request.Context(), params.ObjectKey)
		if err == objectstore.ErrObjectNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorObjectNotFound)
			return nil, false
		} else if shouldInterupt(err, c) {
			return nil, false
		}
		defer r.Close()

		return s.readLimited(c, r)

	default:
		return s.readLimited(c, c.Request.Body)
	}
}

func (s *Server) readLimited(c *gin.Context, r io.Reader) ([]byte, bool) {
	data, err := readLimited(r, s.maxUploadBytes)
	if err == errUploadTooLarge {
		abortWithEncoding(c, http.StatusRequestEntityTooLarge, errorUploadTooLarge)
		return nil, false
	} else if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return nil, false
	}
	return data, true
}

// readLimited reads r entirely unless it holds more than limit bytes
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}

func (s *Server) abortWithIngestionError(c *gin.Context, err error) {
	var schemaErr *tabular.SchemaError
	var parseErr *tabular.ParseError

	switch {
	case errors.As(err, &schemaErr):
		s.metrics.Tagged(map[string]string{"reason": "schema"}).Counter("ingestion_failures").Inc(1)
		abortWithEncoding(c, http.StatusBadRequest, errorSchema.withDetail(schemaErrorDetail{
			Missing:    schemaErr.Missing,
			Duplicated: schemaErr.Duplicated,
		}), err)

	case errors.As(err, &parseErr):
		s.metrics.Tagged(map[string]string{"reason": "parse"}).Counter("ingestion_failures").Inc(1)
		detail := parseErrorDetail{
			Row:    parseErr.Row,
			Column: parseErr.Column,
			Value:  parseErr.Value,
		}
		if parseErr.Err != nil {
			detail.Reason = parseErr.Err.Error()
		}
		abortWithEncoding(c, http.StatusBadRequest, errorMalformedValue.withDetail(detail), err)

	default:
		shouldInterupt(err, c)
	}
}

func (s *Server) deleteDataset(c *gin.Context) {
	err := s.store.Delete(c.Request.Context(), c.Param("datasetID"))
	if err == store.ErrDatasetNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorDatasetNotFound)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": "OK",
	})
}

// recognizeDatasetMiddleware loads the dataset of the session and attaches
// it as "dataset" in gin's context
func (s *Server) recognizeDatasetMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := s.loadDataset(c.Request.Context(), c.Param("datasetID"))
		if err == store.ErrDatasetNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorDatasetNotFound)
			return
		} else if shouldInterupt(err, c) {
			return
		}

		c.Set("dataset", d)
		c.Next()
	}
}

func (s *Server) loadDataset(ctx context.Context, id string) (*schema.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.store.Get(ctx, id)
}

func datasetFromContext(c *gin.Context) (*schema.Dataset, bool) {
	d, ok := c.MustGet("dataset").(*schema.Dataset)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	}
	return d, ok
}
