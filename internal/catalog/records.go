package catalog

import "github.com/pht-ctoi/ctoistatus/pkg/types"

// TOIRecord is one TESS Object of Interest.
type TOIRecord struct {
	TOI   string
	TICID types.NullableInt

	Master types.NullableInt
	SG1A   types.NullableInt
	SG1B   types.NullableInt
	SG2    types.NullableInt
	SG3    types.NullableInt
	SG4    types.NullableInt
	SG5    types.NullableInt

	TimeSeriesObservations   types.NullableInt
	SpectroscopyObservations types.NullableInt
	ImagingObservations      types.NullableInt

	TESSMag           types.NullableFloat
	PeriodDays        types.NullableFloat
	TFOPWGDisposition types.NullableString
	Comments          types.NullableString
	Sectors           types.NullableString
	DateModified      types.NullableString

	// Fields holds the raw cells aligned with TOITable.Header.
	Fields []string
}

type TOITable struct {
	Header  []string
	Records []TOIRecord
}

// CTOIRecord is one Community TOI.
type CTOIRecord struct {
	// Index is the position of the record in its table.
	Index int

	CTOI              string
	TICID             int64
	User              string
	PromotedToTOI     types.NullableString
	TFOPWGDisposition types.NullableString
	TESSMag           types.NullableFloat
	TransitEpochBJD   types.NullableFloat
	PeriodDays        types.NullableFloat
	DepthPPM          types.NullableFloat
	DurationHrs       types.NullableFloat
	Notes             types.NullableString
	Lastmod           types.NullableString

	Fields []string
}

type CTOITable struct {
	Header  []string
	Records []CTOIRecord
}

// FilterByUser keeps the records submitted by user, preserving order and
// renumbering Index from zero.
func (t *CTOITable) FilterByUser(user string) *CTOITable {
	out := &CTOITable{Header: t.Header}
	for _, r := range t.Records {
		if r.User != user {
			continue
		}
		r.Index = len(out.Records)
		out.Records = append(out.Records, r)
	}
	return out
}

// PaperRecord is one row of the published PHT CTOI table.
type PaperRecord struct {
	CTOI         string
	Flag         types.NullableString
	Comment      types.NullableString
	Photometry   types.NullableString
	Spectroscopy types.NullableString
	Speckle      types.NullableString

	Fields []string
}

type PaperTable struct {
	Header  []string
	Records []PaperRecord
}
