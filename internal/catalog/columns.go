package catalog

// Column names as published by ExoFOP and in the paper table.
const (
	ColTOI                      = "TOI"
	ColCTOI                     = "CTOI"
	ColTICID                    = "TIC ID"
	ColUser                     = "User"
	ColPromotedToTOI            = "Promoted to TOI"
	ColTFOPWGDisposition        = "TFOPWG Disposition"
	ColTESSMag                  = "TESS Mag"
	ColTransitEpochBJD          = "Transit Epoch (BJD)"
	ColPeriodDays               = "Period (days)"
	ColDepthPPM                 = "Depth ppm"
	ColDurationHrs              = "Duration (hrs)"
	ColNotes                    = "Notes"
	ColCTOILastmod              = "CTOI lastmod"
	ColComments                 = "Comments"
	ColSectors                  = "Sectors"
	ColDateModified             = "Date Modified"
	ColMaster                   = "Master"
	ColSG1A                     = "SG1A"
	ColSG1B                     = "SG1B"
	ColSG2                      = "SG2"
	ColSG3                      = "SG3"
	ColSG4                      = "SG4"
	ColSG5                      = "SG5"
	ColTimeSeriesObservations   = "Time Series Observations"
	ColSpectroscopyObservations = "Spectroscopy Observations"
	ColImagingObservations      = "Imaging Observations"

	ColFlag         = "Flag"
	ColComment      = "Comment"
	ColPhotometry   = "Photometry"
	ColSpectroscopy = "Spectroscopy"
	ColSpeckle      = "Speckle"
)

// PriorityColumns are the follow-up group priorities of a TOI.
var PriorityColumns = []string{ColMaster, ColSG1A, ColSG1B, ColSG2, ColSG3, ColSG4, ColSG5}

// ObservationColumns are the per-TOI follow-up observation counts.
var ObservationColumns = []string{ColTimeSeriesObservations, ColSpectroscopyObservations, ColImagingObservations}
