package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	body := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
		kind    string
	}{
		{
			name:    "conflict",
			err:     failure.Conflict("date range conflict with an existing booking from 2025-03-30 to 2025-03-30"),
			code:    http.StatusConflict,
			message: "date range conflict with an existing booking from 2025-03-30 to 2025-03-30",
			kind:    "conflict",
		},
		{
			name:    "forbidden",
			err:     failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
			kind:    "authorization",
		},
		{
			name:    "internal cause hidden",
			err:     errors.New("pq: connection refused"),
			code:    http.StatusInternalServerError,
			message: "Internal Server Error",
			kind:    "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))

			body := decodeError(t, rec)
			assert.Equal(t, tt.message, body["error"])
			assert.Equal(t, tt.kind, body["kind"])
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, map[string]string{"source": "holiday"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"source":"holiday"}}`, rec.Body.String())
}

func TestWithFile(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithFile(rec, constant.ContentTypeXLSX, "payments-2025-03-30.xlsx", []byte("PK"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeXLSX, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, "attachment; filename=payments-2025-03-30.xlsx", rec.Header().Get(constant.RequestHeaderContentDisposition))
	assert.Equal(t, "PK", rec.Body.String())
}

func TestWithFileQuotesNames(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithFile(rec, constant.ContentTypeXLSX, "Sea View payments.xlsx", nil)

	assert.Equal(t, `attachment; filename="Sea View payments.xlsx"`, rec.Header().Get(constant.RequestHeaderContentDisposition))
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
}
