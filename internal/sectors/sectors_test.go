package sectors

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/pht-ctoi/ctoistatus/internal/skypos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	placements := []Placement{
		{TICID: 88001234, Sector: 15, Camera: 1},
		{TICID: 7, Sector: 3},
		{TICID: 88001234, Sector: 14, Camera: 1},
	}
	assert.Equal(t, []Summary{
		{TICID: 7, Sectors: "3,"},
		{TICID: 88001234, Sectors: "14,15,"},
	}, Summarize(placements))
}

func TestSummarizeIgnoresOrder(t *testing.T) {
	var placements []Placement
	for id := int64(1); id <= 5; id++ {
		for s := 1; s <= 30; s += int(id) {
			placements = append(placements, Placement{TICID: id, Sector: s})
		}
	}
	want := Summarize(placements)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]Placement(nil), placements...)
		rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Summarize(shuffled))
	}
}

func TestSummariesEndWithComma(t *testing.T) {
	summaries := Summarize([]Placement{{TICID: 1, Sector: 1}, {TICID: 2, Sector: 40}, {TICID: 2, Sector: 41}})
	for _, s := range summaries {
		assert.True(t, strings.HasSuffix(s.Sectors, ","), s.Sectors)
	}
	assert.Empty(t, Summarize(nil))
	assert.Equal(t, "", FormatSectors(nil))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("14,15,", 14))
	assert.True(t, Contains("14,15,", 15))
	assert.False(t, Contains("14,15,", 1))
	assert.False(t, Contains("14,15,", 4))
	assert.False(t, Contains("", 14))
}

func TestSummaryStoreRoundTrip(t *testing.T) {
	store := NewSummaryStore(t.TempDir())
	in := []Summary{{TICID: 88001234, Sectors: "14,15,"}, {TICID: 5, Sectors: ""}}
	path, err := store.Save(in)
	require.NoError(t, err)
	assert.Equal(t, store.Path(), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tic_id,sectors\n88001234,\"14,15,\"\n5,\n", string(raw))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSummaryStoreLoadMissing(t *testing.T) {
	_, err := NewSummaryStore(t.TempDir()).Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFootprintClient(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, "tic_id,sector,camera,ccd,column,row\n88001234,14,1,2,100.5,200.25\n88001234,15,1,3,10,20\n")
	}))
	defer srv.Close()

	c := NewFootprintClient(FootprintOptions{URL: srv.URL})
	placements, err := c.ResolvePlacements(context.Background(), []skypos.Coordinate{{TICID: 88001234, RA: 10.5, Dec: -20.25}})
	require.NoError(t, err)
	assert.Equal(t, "tic_id,ra,dec\n88001234,10.5,-20.25\n", got)
	assert.Equal(t, []Placement{
		{TICID: 88001234, Sector: 14, Camera: 1, CCD: 2, Column: 100.5, Row: 200.25},
		{TICID: 88001234, Sector: 15, Camera: 1, CCD: 3, Column: 10, Row: 20},
	}, placements)
}

func TestFootprintClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "tic_id,sector\n1,2\n")
	}))
	defer srv.Close()

	c := NewFootprintClient(FootprintOptions{URL: srv.URL})
	_, err := c.ResolvePlacements(context.Background(), []skypos.Coordinate{{TICID: 1}})
	assert.ErrorIs(t, err, ErrFootprintFailed)

	placements, err := c.ResolvePlacements(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, placements)
}
