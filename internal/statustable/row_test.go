package statustable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRowSetAndValue(t *testing.T) {
	var r StatusRow
	require.NoError(t, r.Set(ColCTOI, "1234.01"))
	require.NoError(t, r.Set(ColTICID, "88001234"))
	require.NoError(t, r.Set(ColTOIMasterPriority, ""))
	require.NoError(t, r.Set(ColTOITimeSeriesObservations, "3"))
	require.NoError(t, r.Set(ColHasImaging, "True"))
	require.NoError(t, r.Set("User", "eisner"))

	assert.Equal(t, "1234.01", r.CTOI)
	assert.True(t, r.TOIMasterPriority.IsNil())
	assert.Equal(t, "3", r.Value(ColTOITimeSeriesObservations))
	assert.Equal(t, "True", r.Value(ColHasImaging))
	assert.Equal(t, "False", r.Value(ColHasSpectroscopy))
	assert.Equal(t, "eisner", r.Value("User"))
	assert.Equal(t, "", r.Value("unknown"))

	assert.Error(t, r.Set(ColTOIMasterPriority, "high"))
	assert.Error(t, r.Set(ColHasImaging, "maybe"))
	assert.Error(t, r.Set(ColTICID, ""))
}

func TestStatusRowObject(t *testing.T) {
	r := StatusRow{TICID: 5, CTOI: "1001.01", HasTimeSeries: true, Extra: map[string]string{"User": "eisner"}}
	obj := r.Object([]string{ColTICID, ColCTOI, ColTOI, ColHasTimeSeries, "User"})
	assert.Equal(t, int64(5), obj[ColTICID])
	assert.Equal(t, "1001.01", obj[ColCTOI])
	assert.Equal(t, r.TOI, obj[ColTOI])
	assert.Equal(t, true, obj[ColHasTimeSeries])
	assert.Equal(t, "eisner", obj["User"])
}

func TestTableSelect(t *testing.T) {
	tbl := &Table{Columns: DefaultColumns, Rows: []StatusRow{
		{CTOI: "1"},
		{CTOI: "2"},
		{CTOI: "3"},
	}}
	require.NoError(t, tbl.Rows[0].Set(ColWTVSectors, "14,15,"))
	require.NoError(t, tbl.Rows[0].Set(ColDisposition, "PC"))
	require.NoError(t, tbl.Rows[1].Set(ColWTVSectors, "4,"))
	require.NoError(t, tbl.Rows[1].Set(ColDisposition, "FP_CTOI"))

	assert.Len(t, tbl.Select(Query{}).Rows, 3)
	got := tbl.Select(Query{Sector: 14})
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1", got.Rows[0].CTOI)
	assert.Len(t, tbl.Select(Query{Sector: 4, Disposition: "PC"}).Rows, 0)
	assert.Len(t, tbl.Select(Query{Disposition: "FP_CTOI"}).Rows, 1)

	row, ok := tbl.Find("3")
	require.True(t, ok)
	assert.Equal(t, "3", row.CTOI)
	_, ok = tbl.Find("4")
	assert.False(t, ok)
}
