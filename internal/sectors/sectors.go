// Package sectors computes which TESS sectors observed each target and keeps
// the compacted result on disk so assembly can run offline.
package sectors

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/pht-ctoi/ctoistatus/internal/skypos"
)

var ErrFootprintFailed apperrors.Error = apperrors.New("footprint computation failed").SetStatusCode(http.StatusBadGateway)

// Placement is one detector position of a target in one sector.
type Placement struct {
	TICID  int64
	Sector int
	Camera int
	CCD    int
	Column float64
	Row    float64
}

// Resolver computes the placements of a set of targets. A target appears once
// per sector it falls on, and not at all when it is never observed.
type Resolver interface {
	ResolvePlacements(ctx context.Context, coords []skypos.Coordinate) ([]Placement, error)
}

// Summary lists the sectors of one target as "14,15," with a trailing comma,
// so that membership can be tested with a substring search on ",N,".
type Summary struct {
	TICID   int64
	Sectors string
}

// Summarize groups placements by target. Each target appears once, sectors
// are listed in ascending order without repeats, and the output is sorted by
// TIC ID, so any permutation of the same placements yields the same result.
func Summarize(placements []Placement) []Summary {
	byTarget := make(map[int64][]int)
	for _, p := range placements {
		byTarget[p.TICID] = append(byTarget[p.TICID], p.Sector)
	}

	ids := make([]int64, 0, len(byTarget))
	for id := range byTarget {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		sectors := byTarget[id]
		slices.Sort(sectors)
		sectors = slices.Compact(sectors)
		out = append(out, Summary{TICID: id, Sectors: FormatSectors(sectors)})
	}
	return out
}

// FormatSectors joins sector numbers with a trailing comma. An empty list
// gives "".
func FormatSectors(sectors []int) string {
	var b strings.Builder
	for _, s := range sectors {
		b.WriteString(strconv.Itoa(s))
		b.WriteByte(',')
	}
	return b.String()
}

// Contains reports whether the summary string lists sector.
func Contains(summary string, sector int) bool {
	if summary == "" {
		return false
	}
	return strings.Contains(","+summary, ","+strconv.Itoa(sector)+",")
}
