package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

type probeRequest struct {
	Course string   `json:"course" validate:"notblank"`
	Tags   []string `json:"tags" validate:"required"`
	Skip   string   `json:"-"`
}

func decodeBody(t *testing.T, body string) (probeRequest, map[string]string, error) {
	t.Helper()
	var dst probeRequest
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	details, err := decodeJSON(httptest.NewRecorder(), r, &dst)
	return dst, details, err
}

func TestDecodeJSON_Valid(t *testing.T) {
	got, details, err := decodeBody(t, `{"course":"Accounting","tags":["a"]}`)
	require.NoError(t, err)
	assert.Nil(t, details)
	assert.Equal(t, "Accounting", got.Course)
}

func TestDecodeJSON_BlankFieldsReportJSONNames(t *testing.T) {
	_, details, err := decodeBody(t, `{"course":"   "}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, map[string]string{"course": "notblank", "tags": "required"}, details)
	assert.Contains(t, err.Error(), "course")
}

func TestDecodeJSON_SingleFieldMessage(t *testing.T) {
	_, _, err := decodeBody(t, `{"tags":[]}`)
	require.Error(t, err)
	assert.Equal(t, "invalid argument: course is required or invalid", err.Error())
}

func TestDecodeJSON_InvalidJSON(t *testing.T) {
	_, details, err := decodeBody(t, `{"course":`)
	require.Error(t, err)
	assert.Nil(t, details)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "invalid json")
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	big := `{"course":"` + strings.Repeat("x", maxBodyBytes) + `","tags":[]}`
	_, _, err := decodeBody(t, big)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "exceeds")
}

func TestAcceptsJSON(t *testing.T) {
	cases := map[string]bool{
		"":                                 true,
		"*/*":                              true,
		"application/json":                 true,
		"text/html, application/json;q=.9": true,
		"application/*":                    true,
		"text/html":                        false,
		"application/xml":                  false,
	}
	for accept, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if accept != "" {
			r.Header.Set("Accept", accept)
		}
		assert.Equal(t, want, acceptsJSON(r), accept)
	}
}
