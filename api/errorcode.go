package api

import (
	"github.com/bitmark-inc/health-metrics-api/external/objectstore"
	"github.com/bitmark-inc/health-metrics-api/store"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",
		1004: "token is not issued for this dataset",

		1010: "invalid parameters",
		1011: "cannot parse request",
		1012: "upload is too large",
		1013: "too many requests",

		1100: "missing or duplicated required columns",
		1101: "malformed value",
		1102: store.ErrDatasetNotFound.Error(),
		1103: "unknown column",

		1200: "object storage is not configured",
		1201: objectstore.ErrObjectNotFound.Error(),
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)
	errorTokenDatasetMismatch       = errorJSON(1004)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)
	errorUploadTooLarge     = errorJSON(1012)
	errorTooManyRequests    = errorJSON(1013)

	errorSchema          = errorJSON(1100)
	errorMalformedValue  = errorJSON(1101)
	errorDatasetNotFound = errorJSON(1102)
	errorUnknownColumn   = errorJSON(1103)

	errorObjectStoreDisabled = errorJSON(1200)
	errorObjectNotFound      = errorJSON(1201)
)

type ErrorResponse struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// withDetail returns a copy of the error object carrying detail
func (e ErrorResponse) withDetail(detail interface{}) ErrorResponse {
	e.Detail = detail
	return e
}
