package catalog

import (
	"fmt"
	"net/http"

	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/pht-ctoi/ctoistatus/internal/csvtable"
	"github.com/pht-ctoi/ctoistatus/pkg/types"
)

var ErrParse apperrors.Error = apperrors.New("unable to parse catalog").SetStatusCode(http.StatusBadGateway)

// rowReader reads typed cells of one table row and keeps the first failure.
type rowReader struct {
	source string
	t      *csvtable.Table
	row    int
	err    error
}

func (r *rowReader) fail(col, kind, value string) {
	if r.err != nil {
		return
	}
	// +2: one for the header, one for 1-based line numbers
	r.err = ErrParse.Msg(fmt.Sprintf("%s: line %d, column %q: invalid %s %q", r.source, r.row+2, col, kind, value))
}

func (r *rowReader) str(col string) string {
	return r.t.Value(r.row, col)
}

func (r *rowReader) nullableString(col string) types.NullableString {
	return types.ParseNullableString(r.str(col))
}

func (r *rowReader) nullableInt(col string) types.NullableInt {
	v := r.str(col)
	n, err := types.ParseNullableInt(v)
	if err != nil {
		r.fail(col, "integer", v)
	}
	return n
}

func (r *rowReader) nullableFloat(col string) types.NullableFloat {
	v := r.str(col)
	n, err := types.ParseNullableFloat(v)
	if err != nil {
		r.fail(col, "number", v)
	}
	return n
}

func (r *rowReader) requiredInt(col string) int64 {
	n := r.nullableInt(col)
	v, ok := n.Get()
	if !ok {
		r.fail(col, "integer", r.str(col))
	}
	return v
}

func requireColumns(source string, t *csvtable.Table, cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return ErrParse.Msg(fmt.Sprintf("%s: missing column %q", source, c))
		}
	}
	return nil
}

// ParseTOITable types a raw TOI catalog.
func ParseTOITable(source string, t *csvtable.Table) (*TOITable, error) {
	if err := requireColumns(source, t, ColTOI); err != nil {
		return nil, err
	}
	out := &TOITable{Header: t.Header, Records: make([]TOIRecord, 0, t.Len())}
	for i := range t.Rows {
		r := &rowReader{source: source, t: t, row: i}
		rec := TOIRecord{
			TOI:                      r.str(ColTOI),
			TICID:                    r.nullableInt(ColTICID),
			Master:                   r.nullableInt(ColMaster),
			SG1A:                     r.nullableInt(ColSG1A),
			SG1B:                     r.nullableInt(ColSG1B),
			SG2:                      r.nullableInt(ColSG2),
			SG3:                      r.nullableInt(ColSG3),
			SG4:                      r.nullableInt(ColSG4),
			SG5:                      r.nullableInt(ColSG5),
			TimeSeriesObservations:   r.nullableInt(ColTimeSeriesObservations),
			SpectroscopyObservations: r.nullableInt(ColSpectroscopyObservations),
			ImagingObservations:      r.nullableInt(ColImagingObservations),
			TESSMag:                  r.nullableFloat(ColTESSMag),
			PeriodDays:               r.nullableFloat(ColPeriodDays),
			TFOPWGDisposition:        r.nullableString(ColTFOPWGDisposition),
			Comments:                 r.nullableString(ColComments),
			Sectors:                  r.nullableString(ColSectors),
			DateModified:             r.nullableString(ColDateModified),
			Fields:                   t.Rows[i],
		}
		if r.err != nil {
			return nil, r.err
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// ParseCTOITable types a raw CTOI catalog.
func ParseCTOITable(source string, t *csvtable.Table) (*CTOITable, error) {
	if err := requireColumns(source, t, ColCTOI, ColTICID, ColUser); err != nil {
		return nil, err
	}
	out := &CTOITable{Header: t.Header, Records: make([]CTOIRecord, 0, t.Len())}
	for i := range t.Rows {
		r := &rowReader{source: source, t: t, row: i}
		rec := CTOIRecord{
			Index:             i,
			CTOI:              r.str(ColCTOI),
			TICID:             r.requiredInt(ColTICID),
			User:              r.str(ColUser),
			PromotedToTOI:     r.nullableString(ColPromotedToTOI),
			TFOPWGDisposition: r.nullableString(ColTFOPWGDisposition),
			TESSMag:           r.nullableFloat(ColTESSMag),
			TransitEpochBJD:   r.nullableFloat(ColTransitEpochBJD),
			PeriodDays:        r.nullableFloat(ColPeriodDays),
			DepthPPM:          r.nullableFloat(ColDepthPPM),
			DurationHrs:       r.nullableFloat(ColDurationHrs),
			Notes:             r.nullableString(ColNotes),
			Lastmod:           r.nullableString(ColCTOILastmod),
			Fields:            t.Rows[i],
		}
		if r.err != nil {
			return nil, r.err
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// ParsePaperTable types the published paper table.
func ParsePaperTable(source string, t *csvtable.Table) (*PaperTable, error) {
	if err := requireColumns(source, t, ColCTOI); err != nil {
		return nil, err
	}
	out := &PaperTable{Header: t.Header, Records: make([]PaperRecord, 0, t.Len())}
	for i := range t.Rows {
		r := &rowReader{source: source, t: t, row: i}
		out.Records = append(out.Records, PaperRecord{
			CTOI:         r.str(ColCTOI),
			Flag:         r.nullableString(ColFlag),
			Comment:      r.nullableString(ColComment),
			Photometry:   r.nullableString(ColPhotometry),
			Spectroscopy: r.nullableString(ColSpectroscopy),
			Speckle:      r.nullableString(ColSpeckle),
			Fields:       t.Rows[i],
		})
	}
	return out, nil
}
