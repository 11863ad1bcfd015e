package statusstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pht-ctoi/ctoistatus/internal/statustable"
	"github.com/pht-ctoi/ctoistatus/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *statustable.Table {
	return &statustable.Table{
		Columns: statustable.DefaultColumns,
		Rows: []statustable.StatusRow{
			{
				TICID:                     88001234,
				CTOI:                      "1234.01",
				TOI:                       types.NewNullableString("0100.10"),
				Disposition:               types.NewNullableString("FP_CTOI"),
				HasTimeSeries:             true,
				WTVSectors:                types.NewNullableString("14,15,"),
				TOIMasterPriority:         types.NewNullableInt(3),
				TOITimeSeriesObservations: types.NewNullableInt(0),
				TESSMag:                   types.NewNullableFloat(10.25),
				TransitEpochBTJD:          types.NewNullableFloat(2000.5),
			},
			{
				TICID: 5,
				CTOI:  "1001.10",
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	in := sampleTable()

	path, err := store.Save(in)
	require.NoError(t, err)
	assert.Equal(t, store.Path(), path)

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in.Columns, out.Columns)
	require.Len(t, out.Rows, 2)

	r := out.Rows[0]
	assert.Equal(t, "1234.01", r.CTOI)
	assert.True(t, r.TOI.Equals("0100.10"))
	assert.Equal(t, int64(88001234), r.TICID)
	assert.True(t, r.HasTimeSeries)
	assert.False(t, r.HasImaging)
	assert.Equal(t, "3", r.TOIMasterPriority.String())
	assert.Equal(t, "0", r.TOITimeSeriesObservations.String())
	assert.True(t, r.TOISpectroscopyObservations.IsNil())
	assert.Equal(t, "14,15,", r.WTVSectors.String())

	assert.Equal(t, "1001.10", out.Rows[1].CTOI)
	assert.True(t, out.Rows[1].TOI.IsNil())
	assert.Equal(t, in.Records(), out.Records())
}

func TestSaveHasNoIndexColumn(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Save(sampleTable())
	require.NoError(t, err)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Regexp(t, `^TIC ID,CTOI,TOI,Disposition,`, string(raw))
	assert.Contains(t, string(raw), "88001234,1234.01,0100.10,FP_CTOI,True,False,False,")
}

func TestLoadKeepsUnknownColumns(t *testing.T) {
	dir := t.TempDir()
	csv := "CTOI,TIC ID,User,Has Imaging\n1001.01,7,eisner,False\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, StatusFilename), []byte(csv), 0644))

	out, err := New(dir).Load()
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "eisner", out.Rows[0].Extra["User"])
	assert.Equal(t, [][]string{{"1001.01", "7", "eisner", "False"}}, out.Records())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := New(dir).Load()
	assert.ErrorIs(t, err, ErrNotAvailable)
	assert.ErrorIs(t, err, ErrStatusTable)
	assert.Equal(t, 404, ErrNotAvailable.StatusCode())

	csv := "CTOI,TOI Master Priority\n1001.01,high\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, StatusFilename), []byte(csv), 0644))
	_, err = New(dir).Load()
	assert.ErrorIs(t, err, ErrStatusTable)
	assert.ErrorContains(t, err, "line 2")
}
