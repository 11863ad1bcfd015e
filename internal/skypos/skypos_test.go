package skypos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest([]int64{88001234, 5})
	require.NoError(t, err)
	assert.Equal(t, ticService, gjson.GetBytes(req, "service").String())
	assert.Equal(t, "ID,ra,dec", gjson.GetBytes(req, "params.columns").String())
	assert.Equal(t, "ID", gjson.GetBytes(req, "params.filters.0.paramName").String())
	assert.Equal(t, `["88001234","5"]`, gjson.GetBytes(req, "params.filters.0.values").Raw)
}

func TestParseResponseKeepsOnlyPosition(t *testing.T) {
	body := `{"status":"COMPLETE","data":[{"ID":"88001234","ra":10.5,"dec":-20.25,"Tmag":9.1},{"ID":7,"ra":0,"dec":1}]}`
	coords, err := parseResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{
		{TICID: 88001234, RA: 10.5, Dec: -20.25},
		{TICID: 7, RA: 0, Dec: 1},
	}, coords)

	_, err = parseResponse([]byte(`{"status":"ERROR","msg":"bad filter"}`))
	assert.ErrorContains(t, err, "bad filter")

	_, err = parseResponse([]byte(`{"data":[{"ID":"1"}]}`))
	assert.Error(t, err)
}

func TestResolveCoordinatesBatches(t *testing.T) {
	var batches []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		req := r.PostForm.Get("request")
		values := gjson.Get(req, "params.filters.0.values").Array()
		batches = append(batches, gjson.Get(req, "params.filters.0.values").Raw)
		w.Write([]byte(`{"status":"COMPLETE","data":[`))
		for i, v := range values {
			if i > 0 {
				w.Write([]byte(","))
			}
			w.Write([]byte(`{"ID":"` + v.String() + `","ra":1.5,"dec":2.5}`))
		}
		w.Write([]byte(`]}`))
	}))
	defer srv.Close()

	c := NewMASTClient(MASTOptions{URL: srv.URL, BatchSize: 2})
	coords, err := c.ResolveCoordinates(context.Background(), []int64{3, 1, 2, 1})
	require.NoError(t, err)

	assert.Equal(t, []string{`["1","2"]`, `["3"]`}, batches)
	require.Len(t, coords, 3)
	assert.Equal(t, int64(1), coords[0].TICID)
	assert.Equal(t, 1.5, coords[2].RA)
}

func TestResolveCoordinatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewMASTClient(MASTOptions{URL: srv.URL, RetryAttempts: 3})
	_, err := c.ResolveCoordinates(context.Background(), []int64{1})
	assert.ErrorIs(t, err, ErrLookupFailed)
}
