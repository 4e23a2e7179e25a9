package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"moviebuffs/movie"
	"moviebuffs/pkg/config"

	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func testConfig() *config.Config {
	return &config.Config{}
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "Failed to decode response: %s", rec.Body.String())
	return resp
}

type moviesPage struct {
	Content       []movie.Movie `json:"content"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	IsFirst       bool          `json:"isFirst"`
	IsLast        bool          `json:"isLast"`
	HasNext       bool          `json:"hasNext"`
	HasPrevious   bool          `json:"hasPrevious"`
}

func decodeMoviesPage(t *testing.T, rec *httptest.ResponseRecorder) moviesPage {
	t.Helper()
	var page moviesPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page), "Failed to decode page: %s", rec.Body.String())
	return page
}

func (p moviesPage) titles() []string {
	out := make([]string, len(p.Content))
	for i, m := range p.Content {
		out[i] = m.Title
	}
	return out
}
