package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

func Test_writeError_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid", fmt.Errorf("%w: course is required", domain.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT", "invalid argument: course is required"},
		{"upstream_timeout", domain.ErrUpstreamTimeout, http.StatusServiceUnavailable, "UPSTREAM_TIMEOUT", "assessment service timed out"},
		{"upstream_failure", domain.ErrUpstreamFailure, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "assessment service unavailable"},
		{"malformed", domain.ErrMalformedOutput, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "assessment service unavailable"},
		{"internal", domain.ErrInternal, http.StatusInternalServerError, "INTERNAL", "internal error"},
		{"unknown", errors.New("catalog index corrupted"), http.StatusInternalServerError, "INTERNAL", "catalog index corrupted"},
		{"empty message", errors.New(""), http.StatusInternalServerError, "INTERNAL", "internal server error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			rw := httptest.NewRecorder()
			writeError(rw, r, c.err, nil)
			res := rw.Result()
			require.Equal(t, c.wantStatus, res.StatusCode)
			var body errorBody
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.Equal(t, c.wantCode, body.Code)
			assert.Equal(t, c.wantMsg, body.Error)
			assert.Nil(t, body.Details)
		})
	}
}

func Test_writeError_Details(t *testing.T) {
	rw := httptest.NewRecorder()
	writeError(rw, httptest.NewRequest(http.MethodPost, "/", nil), domain.ErrInvalidArgument, map[string]string{"course": "notblank"})
	assert.JSONEq(t, `{"error":"invalid argument","code":"INVALID_ARGUMENT","details":{"course":"notblank"}}`, rw.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rw.Result().Header.Get("Content-Type"))
}
