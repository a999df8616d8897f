package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

// fallbackErrorCopy is shown when a downstream error body carries no usable
// message at all.
const fallbackErrorCopy = "something went wrong, please try again"

// downstreamBody covers the error shapes collaborating services return:
// either a structured envelope with a message, or a bare "error" string.
type downstreamBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type downstreamErrorObject struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ExtractMessage pulls the richest available error message from a downstream
// payload: an explicit message field first, then a generic error string, then
// fixed fallback copy.
func ExtractMessage(body []byte) string {
	var parsed downstreamBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		if len(body) > 0 {
			return string(body)
		}
		return fallbackErrorCopy
	}

	if parsed.Message != "" {
		return parsed.Message
	}

	if len(parsed.Error) > 0 {
		var obj downstreamErrorObject
		if json.Unmarshal(parsed.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
		var s string
		if json.Unmarshal(parsed.Error, &s) == nil && s != "" {
			return s
		}
	}

	return fallbackErrorCopy
}

// ParseResponseError consumes a non-2xx response body and translates it into
// an AppError that preserves the downstream status where it is meaningful.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperrors.Upstream(serviceName, fmt.Sprintf("status %d (unreadable body)", resp.StatusCode))
	}

	message := ExtractMessage(bodyBytes)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s: %s", serviceName, message))
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized(fmt.Sprintf("%s: %s", serviceName, message))
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(fmt.Sprintf("%s: %s", serviceName, message))
	default:
		return apperrors.Upstream(serviceName, message)
	}
}
