package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"explicit message field", `{"message":"quantity exceeds available stock"}`, "quantity exceeds available stock"},
		{"structured error object", `{"error":{"code":"NOT_FOUND","message":"listing gone"}}`, "listing gone"},
		{"bare error string", `{"error":"internal failure"}`, "internal failure"},
		{"unparseable body", `<html>bad gateway</html>`, "<html>bad gateway</html>"},
		{"empty body", ``, fallbackErrorCopy},
		{"empty json", `{}`, fallbackErrorCopy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body)))
		})
	}
}

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError(t *testing.T) {
	err := ParseResponseError(newResponse(404, `{"message":"no such product"}`), "catalog")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	err = ParseResponseError(newResponse(400, `{"error":{"code":"INVALID_INPUT","message":"bad quantity"}}`), "catalog")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "bad quantity")

	err = ParseResponseError(newResponse(503, `{}`), "catalog")
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	assert.Contains(t, err.Error(), fallbackErrorCopy)
}
