package statustable

import (
	"fmt"
	"strconv"

	"github.com/pht-ctoi/ctoistatus/internal/catalog"
	"github.com/pht-ctoi/ctoistatus/internal/sectors"
	"github.com/pht-ctoi/ctoistatus/pkg/types"
)

// StatusRow is one CTOI of the tracked user with everything known about it.
type StatusRow struct {
	TICID int64
	CTOI  string
	TOI   types.NullableString

	Disposition     types.NullableString
	HasTimeSeries   bool
	HasSpectroscopy bool
	HasImaging      bool

	CTOINotes         types.NullableString
	TOIComments       types.NullableString
	PaperFlag         types.NullableString
	PaperComment      types.NullableString
	WTVSectors        types.NullableString
	TFOPWGDisposition types.NullableString

	TOIMasterPriority types.NullableInt
	TOISG1APriority   types.NullableInt
	TOISG1BPriority   types.NullableInt
	TOISG2Priority    types.NullableInt
	TOISG3Priority    types.NullableInt
	TOISG4Priority    types.NullableInt
	TOISG5Priority    types.NullableInt

	TOITimeSeriesObservations   types.NullableInt
	TOISpectroscopyObservations types.NullableInt
	TOIImagingObservations      types.NullableInt

	PaperPhotometry   types.NullableString
	PaperSpectroscopy types.NullableString
	PaperSpeckle      types.NullableString

	TESSMag          types.NullableFloat
	TransitEpochBTJD types.NullableFloat
	PeriodDays       types.NullableFloat
	DepthPPM         types.NullableFloat
	DurationHrs      types.NullableFloat

	CTOILastmod     types.NullableString
	TOIDateModified types.NullableString

	// Extra holds the columns without a typed field, verbatim.
	Extra map[string]string
}

// HasSector reports whether the target was observed in sector n.
func (r *StatusRow) HasSector(n int) bool {
	return sectors.Contains(r.WTVSectors.String(), n)
}

// Value returns the CSV form of column col.
func (r *StatusRow) Value(col string) string {
	if c, ok := typedColumns[col]; ok {
		return c.format(r)
	}
	return r.Extra[col]
}

func (r *StatusRow) Values(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r.Value(c)
	}
	return out
}

// Set parses v into column col. Columns without a typed field are stored in Extra.
func (r *StatusRow) Set(col, v string) error {
	if c, ok := typedColumns[col]; ok {
		if err := c.parse(r, v); err != nil {
			return fmt.Errorf("column %q: invalid value %q: %w", col, v, err)
		}
		return nil
	}
	if r.Extra == nil {
		r.Extra = make(map[string]string)
	}
	r.Extra[col] = v
	return nil
}

// Object returns the row keyed by column name, with nulls, numbers and
// booleans kept typed for JSON and YAML output.
func (r *StatusRow) Object(cols []string) map[string]any {
	out := make(map[string]any, len(cols))
	for _, col := range cols {
		if c, ok := typedColumns[col]; ok {
			out[col] = c.value(r)
			continue
		}
		out[col] = r.Extra[col]
	}
	return out
}

type column struct {
	format func(r *StatusRow) string
	parse  func(r *StatusRow, v string) error
	value  func(r *StatusRow) any
}

var typedColumns = map[string]column{
	ColTICID: {
		format: func(r *StatusRow) string { return strconv.FormatInt(r.TICID, 10) },
		parse: func(r *StatusRow, v string) (err error) {
			r.TICID, err = strconv.ParseInt(v, 10, 64)
			return err
		},
		value: func(r *StatusRow) any { return r.TICID },
	},
	ColCTOI: {
		format: func(r *StatusRow) string { return r.CTOI },
		parse: func(r *StatusRow, v string) error {
			r.CTOI = v
			return nil
		},
		value: func(r *StatusRow) any { return r.CTOI },
	},
	ColTOI:               stringColumn(func(r *StatusRow) *types.NullableString { return &r.TOI }),
	ColDisposition:       stringColumn(func(r *StatusRow) *types.NullableString { return &r.Disposition }),
	ColHasTimeSeries:     boolColumn(func(r *StatusRow) *bool { return &r.HasTimeSeries }),
	ColHasSpectroscopy:   boolColumn(func(r *StatusRow) *bool { return &r.HasSpectroscopy }),
	ColHasImaging:        boolColumn(func(r *StatusRow) *bool { return &r.HasImaging }),
	ColCTOINotes:         stringColumn(func(r *StatusRow) *types.NullableString { return &r.CTOINotes }),
	ColTOIComments:       stringColumn(func(r *StatusRow) *types.NullableString { return &r.TOIComments }),
	ColPaperFlag:         stringColumn(func(r *StatusRow) *types.NullableString { return &r.PaperFlag }),
	ColPaperComment:      stringColumn(func(r *StatusRow) *types.NullableString { return &r.PaperComment }),
	ColWTVSectors:        stringColumn(func(r *StatusRow) *types.NullableString { return &r.WTVSectors }),
	ColTFOPWGDisposition: stringColumn(func(r *StatusRow) *types.NullableString { return &r.TFOPWGDisposition }),

	ColTOIMasterPriority:            intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOIMasterPriority }),
	priorityColumn(catalog.ColSG1A): intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOISG1APriority }),
	priorityColumn(catalog.ColSG1B): intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOISG1BPriority }),
	priorityColumn(catalog.ColSG2):  intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOISG2Priority }),
	priorityColumn(catalog.ColSG3):  intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOISG3Priority }),
	priorityColumn(catalog.ColSG4):  intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOISG4Priority }),
	priorityColumn(catalog.ColSG5):  intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOISG5Priority }),
	ColTOITimeSeriesObservations:    intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOITimeSeriesObservations }),
	ColTOISpectroscopyObservations:  intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOISpectroscopyObservations }),
	ColTOIImagingObservations:       intColumn(func(r *StatusRow) *types.NullableInt { return &r.TOIImagingObservations }),

	ColPaperPhotometry:   stringColumn(func(r *StatusRow) *types.NullableString { return &r.PaperPhotometry }),
	ColPaperSpectroscopy: stringColumn(func(r *StatusRow) *types.NullableString { return &r.PaperSpectroscopy }),
	ColPaperSpeckle:      stringColumn(func(r *StatusRow) *types.NullableString { return &r.PaperSpeckle }),

	ColTESSMag:          floatColumn(func(r *StatusRow) *types.NullableFloat { return &r.TESSMag }),
	ColTransitEpochBTJD: floatColumn(func(r *StatusRow) *types.NullableFloat { return &r.TransitEpochBTJD }),
	ColPeriodDays:       floatColumn(func(r *StatusRow) *types.NullableFloat { return &r.PeriodDays }),
	ColDepthPPM:         floatColumn(func(r *StatusRow) *types.NullableFloat { return &r.DepthPPM }),
	ColDurationHrs:      floatColumn(func(r *StatusRow) *types.NullableFloat { return &r.DurationHrs }),

	ColCTOILastmod:     stringColumn(func(r *StatusRow) *types.NullableString { return &r.CTOILastmod }),
	ColTOIDateModified: stringColumn(func(r *StatusRow) *types.NullableString { return &r.TOIDateModified }),
}

func stringColumn(field func(*StatusRow) *types.NullableString) column {
	return column{
		format: func(r *StatusRow) string { return field(r).String() },
		parse: func(r *StatusRow, v string) error {
			*field(r) = types.ParseNullableString(v)
			return nil
		},
		value: func(r *StatusRow) any { return *field(r) },
	}
}

func intColumn(field func(*StatusRow) *types.NullableInt) column {
	return column{
		format: func(r *StatusRow) string { return field(r).String() },
		parse: func(r *StatusRow, v string) (err error) {
			*field(r), err = types.ParseNullableInt(v)
			return err
		},
		value: func(r *StatusRow) any { return *field(r) },
	}
}

func floatColumn(field func(*StatusRow) *types.NullableFloat) column {
	return column{
		format: func(r *StatusRow) string { return field(r).String() },
		parse: func(r *StatusRow, v string) (err error) {
			*field(r), err = types.ParseNullableFloat(v)
			return err
		},
		value: func(r *StatusRow) any { return *field(r) },
	}
}

// boolColumn is written as True/False. An empty cell reads as false.
func boolColumn(field func(*StatusRow) *bool) column {
	return column{
		format: func(r *StatusRow) string { return formatBool(*field(r)) },
		parse: func(r *StatusRow, v string) (err error) {
			if v == "" {
				*field(r) = false
				return nil
			}
			*field(r), err = strconv.ParseBool(v)
			return err
		},
		value: func(r *StatusRow) any { return *field(r) },
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
