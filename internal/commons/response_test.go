package commons

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "couriertrack/internal/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", apperrors.NewValidationError("bad input", apperrors.ValidationDetail{Field: "x", Message: "y"}), http.StatusBadRequest, CodeValidation, "bad input"},
		{"not found", apperrors.NewNotFoundError("courier with id 9 not found"), http.StatusNotFound, CodeNotFound, "courier with id 9 not found"},
		{"conflict", apperrors.NewConflictError("duplicate"), http.StatusConflict, CodeConflict, "duplicate"},
		{"unauthorized", apperrors.NewUnauthorizedError("invalid credentials"), http.StatusUnauthorized, CodeUnauthorized, "invalid credentials"},
		{"storage", apperrors.NewStorageError("failed to get logs", errors.New("dial tcp: refused")), http.StatusInternalServerError, CodeInternal, "failed to get logs"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal, "an unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, "trace-1", tt.err, zap.NewNop())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "trace-1", resp.Error.TraceID)
		})
	}
}

func TestWriteError_StorageCauseNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, "t", apperrors.NewStorageError("failed to list couriers", errors.New("secret dsn")), zap.NewNop())

	assert.NotContains(t, rec.Body.String(), "secret dsn")
}

func TestWriteError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperrors.NewValidationError("invalid status update", apperrors.ValidationDetail{Field: "new_status", Message: "new_status is required"})

	WriteError(rec, "t", err, zap.NewNop())

	resp := decode(t, rec)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "new_status", resp.Error.Details[0].Field)
}

func TestWriteList_IncludesCount(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteList(rec, "", 2, []string{"a", "b"}, zap.NewNop())

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
	assert.Nil(t, resp.Error)
}

func TestWriteSuccess_AlwaysIncludesMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, http.StatusOK, "", map[string]string{"status": "Pending"}, zap.NewNop())

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "success")
	assert.Contains(t, raw, "message")
	assert.Contains(t, raw, "data")
	assert.NotContains(t, raw, "error")
}

func TestTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotEmpty(t, TraceID(req))

	var seen, reqID string
	chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r)
		reqID = chimw.GetReqID(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEmpty(t, reqID)
	assert.Equal(t, reqID, seen)
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "x", body.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	_, ok := apperrors.IsValidationError(DecodeJSON(req, &body))
	assert.True(t, ok)
}
