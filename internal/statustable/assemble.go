// Package statustable joins the catalogs, sector summaries and paper table
// into the PHT CTOI status table.
package statustable

import (
	"slices"
	"strconv"

	"github.com/pht-ctoi/ctoistatus/internal/catalog"
	"github.com/pht-ctoi/ctoistatus/internal/sectors"
	"github.com/pht-ctoi/ctoistatus/pkg/types"
)

// Inputs are the four sources of the status table. Nil tables are empty.
type Inputs struct {
	CTOIs   *catalog.CTOITable
	TOIs    *catalog.TOITable
	Sectors []sectors.Summary
	Paper   *catalog.PaperTable
}

type Options struct {
	// DefaultColumnsOnly projects the result to DefaultColumns.
	DefaultColumnsOnly bool
}

type source int

const (
	fromCTOI source = iota
	fromTOI
	fromSummary
	fromPaper
	fromDerived
)

type plannedColumn struct {
	name  string
	src   source
	index int
}

// joinedRow is one row of the joined table. Unmatched sides are nil.
type joinedRow struct {
	ctoi    *catalog.CTOIRecord
	toi     *catalog.TOIRecord
	summary *sectors.Summary
	paper   *catalog.PaperRecord
}

// Assemble builds the status table. It performs no I/O and fails only on a
// join cardinality violation.
func Assemble(in Inputs, opts Options) (*Table, error) {
	ctois := in.CTOIs
	if ctois == nil {
		ctois = &catalog.CTOITable{}
	}
	tois := in.TOIs
	if tois == nil {
		tois = &catalog.TOITable{}
	}
	paper := in.Paper
	if paper == nil {
		paper = &catalog.PaperTable{}
	}

	rows, err := joinSources(ctois, tois, in.Sectors, paper)
	if err != nil {
		return nil, err
	}

	plan := planColumns(ctois.Header, tois.Header, paper.Header)
	ctoiHas := func(col string) bool { return slices.Contains(ctois.Header, col) }

	out := &Table{Rows: make([]StatusRow, 0, len(rows))}
	if opts.DefaultColumnsOnly {
		out.Columns = slices.Clone(DefaultColumns)
	} else {
		out.Columns = make([]string, len(plan))
		for i, c := range plan {
			out.Columns[i] = c.name
		}
	}
	for _, j := range rows {
		r := j.status(ctoiHas)
		if !opts.DefaultColumnsOnly {
			j.fillExtra(&r, plan)
		}
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

func joinSources(ctois *catalog.CTOITable, tois *catalog.TOITable, summaries []sectors.Summary, paper *catalog.PaperTable) ([]joinedRow, error) {
	rows := make([]joinedRow, len(ctois.Records))
	for i := range ctois.Records {
		rows[i].ctoi = &ctois.Records[i]
	}

	// Promoted to TOI is mostly empty, so this join cannot be validated.
	pairs, err := leftJoin("TOI", rows,
		func(j joinedRow) (string, bool) { return j.ctoi.PromotedToTOI.Get() },
		tois.Records,
		func(t catalog.TOIRecord) (string, bool) { return t.TOI, t.TOI != "" },
		Unvalidated)
	if err != nil {
		return nil, err
	}
	rows = merge(rows, pairs, tois.Records, func(j *joinedRow, t *catalog.TOIRecord) { j.toi = t })

	pairs, err = leftJoin("sector summary", rows,
		func(j joinedRow) (int64, bool) { return j.ctoi.TICID, true },
		summaries,
		func(s sectors.Summary) (int64, bool) { return s.TICID, true },
		ManyToOne)
	if err != nil {
		return nil, err
	}
	rows = merge(rows, pairs, summaries, func(j *joinedRow, s *sectors.Summary) { j.summary = s })

	pairs, err = leftJoin("paper", rows,
		func(j joinedRow) (string, bool) { return j.ctoi.CTOI, j.ctoi.CTOI != "" },
		paper.Records,
		func(p catalog.PaperRecord) (string, bool) { return p.CTOI, p.CTOI != "" },
		OneToOne)
	if err != nil {
		return nil, err
	}
	rows = merge(rows, pairs, paper.Records, func(j *joinedRow, p *catalog.PaperRecord) { j.paper = p })
	return rows, nil
}

func merge[R any](left []joinedRow, pairs []joinPair, right []R, set func(*joinedRow, *R)) []joinedRow {
	out := make([]joinedRow, len(pairs))
	for i, p := range pairs {
		out[i] = left[p.Left]
		if p.Right >= 0 {
			set(&out[i], &right[p.Right])
		}
	}
	return out
}

// planColumns lists the full-width output columns. Source columns keep their
// order; a name already taken by an earlier source gets the source suffix
// before the rename map is applied. The CTOI disposition is left out since
// the TOI carries the column of the same name.
func planColumns(ctoiHeader, toiHeader, paperHeader []string) []plannedColumn {
	var plan []plannedColumn
	taken := make(map[string]bool)
	add := func(name, suffix string, src source, index int) {
		if taken[name] {
			name += suffix
		}
		taken[name] = true
		plan = append(plan, plannedColumn{name: name, src: src, index: index})
	}

	for i, h := range ctoiHeader {
		if h == catalog.ColTFOPWGDisposition {
			continue
		}
		add(h, "", fromCTOI, i)
	}
	for i, h := range toiHeader {
		add(h, "_toi", fromTOI, i)
	}
	add(colSummaryTICID, "_wtv", fromSummary, 0)
	add(colSummarySectors, "_wtv", fromSummary, 1)
	for i, h := range paperHeader {
		if h == catalog.ColCTOI {
			continue
		}
		add(h, "_paper", fromPaper, i)
	}

	renamed := make(map[string]bool, len(plan))
	for i := range plan {
		plan[i].name = rename(plan[i].name)
		renamed[plan[i].name] = true
	}
	for _, d := range derivedColumns {
		if !renamed[d] {
			plan = append(plan, plannedColumn{name: d, src: fromDerived})
		}
	}
	return plan
}

// status computes the typed fields of a joined row. Magnitude and period come
// from the CTOI when the CTOI catalog has them, otherwise from the TOI.
func (j joinedRow) status(ctoiHas func(string) bool) StatusRow {
	c := j.ctoi
	r := StatusRow{
		TICID:            c.TICID,
		CTOI:             c.CTOI,
		CTOINotes:        c.Notes,
		DepthPPM:         c.DepthPPM,
		DurationHrs:      c.DurationHrs,
		CTOILastmod:      c.Lastmod,
		TransitEpochBTJD: c.TransitEpochBJD.Sub(BTJDRef),
		TESSMag:          c.TESSMag,
		PeriodDays:       c.PeriodDays,

		// a CTOI that was not promoted keeps its own disposition
		TFOPWGDisposition: c.TFOPWGDisposition,
	}

	if t := j.toi; t != nil {
		r.TOI = types.NewNullableString(t.TOI)
		r.TFOPWGDisposition = t.TFOPWGDisposition
		r.TOIComments = t.Comments
		r.TOIDateModified = t.DateModified
		r.TOIMasterPriority = t.Master
		r.TOISG1APriority = t.SG1A
		r.TOISG1BPriority = t.SG1B
		r.TOISG2Priority = t.SG2
		r.TOISG3Priority = t.SG3
		r.TOISG4Priority = t.SG4
		r.TOISG5Priority = t.SG5
		r.TOITimeSeriesObservations = t.TimeSeriesObservations
		r.TOISpectroscopyObservations = t.SpectroscopyObservations
		r.TOIImagingObservations = t.ImagingObservations
		if !ctoiHas(catalog.ColTESSMag) {
			r.TESSMag = t.TESSMag
		}
		if !ctoiHas(catalog.ColPeriodDays) {
			r.PeriodDays = t.PeriodDays
		}
	}

	if s := j.summary; s != nil {
		r.WTVSectors = types.NewNullableString(s.Sectors)
	}

	if p := j.paper; p != nil {
		r.PaperFlag = p.Flag
		r.PaperComment = p.Comment
		r.PaperPhotometry = p.Photometry
		r.PaperSpectroscopy = p.Spectroscopy
		r.PaperSpeckle = p.Speckle
	}

	r.Disposition = r.TFOPWGDisposition
	if r.PaperFlag.Equals(paperFalsePositiveFlag) {
		r.Disposition = types.NewNullableString(DispositionFalsePositive)
	}
	r.HasTimeSeries = r.TOITimeSeriesObservations.GreaterThan(0) || !r.PaperPhotometry.IsNil()
	r.HasSpectroscopy = r.TOISpectroscopyObservations.GreaterThan(0) || !r.PaperSpectroscopy.IsNil()
	r.HasImaging = r.TOIImagingObservations.GreaterThan(0) || !r.PaperSpeckle.IsNil()
	return r
}

// fillExtra copies the raw cells of the planned columns that have no typed field.
func (j joinedRow) fillExtra(r *StatusRow, plan []plannedColumn) {
	for _, c := range plan {
		if _, typed := typedColumns[c.name]; typed {
			continue
		}
		var v string
		switch c.src {
		case fromCTOI:
			v = field(j.ctoi.Fields, c.index)
		case fromTOI:
			if j.toi != nil {
				v = field(j.toi.Fields, c.index)
			}
		case fromSummary:
			if j.summary != nil {
				if c.index == 0 {
					v = strconv.FormatInt(j.summary.TICID, 10)
				} else {
					v = j.summary.Sectors
				}
			}
		case fromPaper:
			if j.paper != nil {
				v = field(j.paper.Fields, c.index)
			}
		}
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[c.name] = v
	}
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
