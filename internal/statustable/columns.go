package statustable

import "github.com/pht-ctoi/ctoistatus/internal/catalog"

// Output column names.
const (
	ColTICID                       = "TIC ID"
	ColCTOI                        = "CTOI"
	ColTOI                         = "TOI"
	ColDisposition                 = "Disposition"
	ColHasTimeSeries               = "Has Time Series"
	ColHasSpectroscopy             = "Has Spectroscopy"
	ColHasImaging                  = "Has Imaging"
	ColCTOINotes                   = "CTOI Notes"
	ColTOIComments                 = "TOI Comments"
	ColTOISectors                  = "TOI Sectors"
	ColPaperFlag                   = "Paper Flag"
	ColPaperComment                = "Paper Comment"
	ColWTVSectors                  = "WTV Sectors"
	ColTFOPWGDisposition           = "TFOPWG Disposition"
	ColTOIMasterPriority           = "TOI Master Priority"
	ColTOITimeSeriesObservations   = "TOI Time Series Observations"
	ColTOISpectroscopyObservations = "TOI Spectroscopy Observations"
	ColTOIImagingObservations      = "TOI Imaging Observations"
	ColPaperPhotometry             = "Paper Photometry"
	ColPaperSpectroscopy           = "Paper Spectroscopy"
	ColPaperSpeckle                = "Paper Speckle"
	ColTESSMag                     = "TESS Mag"
	ColTransitEpochBTJD            = "Transit Epoch (BTJD)"
	ColPeriodDays                  = "Period (days)"
	ColDepthPPM                    = "Depth ppm"
	ColDurationHrs                 = "Duration (hrs)"
	ColCTOILastmod                 = "CTOI lastmod"
	ColTOIDateModified             = "TOI Date Modified"

	// columns of the sector summary before renaming
	colSummaryTICID   = "tic_id"
	colSummarySectors = "sectors"
)

// BTJDRef is the offset between BJD and TESS BJD.
const BTJDRef = 2457000

// DispositionFalsePositive replaces the disposition of CTOIs flagged with a
// dagger in the paper table.
const DispositionFalsePositive = "FP_CTOI"

const paperFalsePositiveFlag = "†"

// DefaultColumns is the column order of the projected status table.
var DefaultColumns = []string{
	ColTICID, ColCTOI, ColTOI,
	ColDisposition, ColHasTimeSeries, ColHasSpectroscopy, ColHasImaging,
	ColCTOINotes, ColTOIComments, ColPaperComment,
	ColWTVSectors,
	ColTFOPWGDisposition,
	ColTOIMasterPriority,
	ColTOITimeSeriesObservations, ColTOISpectroscopyObservations, ColTOIImagingObservations,
	ColPaperPhotometry, ColPaperSpectroscopy, ColPaperSpeckle,
	ColTESSMag, ColTransitEpochBTJD, ColPeriodDays, ColDepthPPM, ColDurationHrs,
	ColCTOILastmod, ColTOIDateModified,
}

// derivedColumns are appended to the full-width table after the source columns.
var derivedColumns = []string{
	ColTransitEpochBTJD, ColDisposition, ColHasTimeSeries, ColHasSpectroscopy, ColHasImaging,
}

// RenameMap disambiguates source columns in the joined table.
var RenameMap = buildRenameMap()

func buildRenameMap() map[string]string {
	m := map[string]string{
		catalog.ColNotes:        ColCTOINotes,
		catalog.ColComments:     ColTOIComments,
		catalog.ColSectors:      ColTOISectors,
		colSummarySectors:       ColWTVSectors,
		catalog.ColDateModified: ColTOIDateModified,
		catalog.ColFlag:         ColPaperFlag,
		catalog.ColComment:      ColPaperComment,
		catalog.ColPhotometry:   ColPaperPhotometry,
		catalog.ColSpectroscopy: ColPaperSpectroscopy,
		catalog.ColSpeckle:      ColPaperSpeckle,
	}
	for _, c := range catalog.PriorityColumns {
		m[c] = priorityColumn(c)
	}
	for _, c := range catalog.ObservationColumns {
		m[c] = "TOI " + c
	}
	return m
}

func priorityColumn(name string) string {
	return "TOI " + name + " Priority"
}

func rename(name string) string {
	if to, ok := RenameMap[name]; ok {
		return to
	}
	return name
}
