package sectors

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pht-ctoi/ctoistatus/internal/csvtable"
	"github.com/pkg/errors"
)

const (
	SummaryFilename = "pht_ctoi_sectors.csv"

	ColTICID   = "tic_id"
	ColSectors = "sectors"
)

// SummaryStore keeps sector summaries in the download directory.
type SummaryStore struct {
	dir string
}

func NewSummaryStore(downloadDir string) *SummaryStore {
	return &SummaryStore{dir: downloadDir}
}

func (s *SummaryStore) Path() string {
	return filepath.Join(s.dir, SummaryFilename)
}

// Save replaces the stored summaries.
func (s *SummaryStore) Save(summaries []Summary) (string, error) {
	rows := make([][]string, len(summaries))
	for i, sm := range summaries {
		rows[i] = []string{strconv.FormatInt(sm.TICID, 10), sm.Sectors}
	}
	path := s.Path()
	if err := csvtable.WriteFile(path, []string{ColTICID, ColSectors}, rows); err != nil {
		return "", errors.Wrap(err, "saving sector summaries")
	}
	return path, nil
}

// Load reads the stored summaries without contacting any remote service.
func (s *SummaryStore) Load() ([]Summary, error) {
	t, err := csvtable.ReadFile(s.Path())
	if err != nil {
		return nil, errors.Wrap(err, "loading sector summaries")
	}
	if !t.Has(ColTICID) || !t.Has(ColSectors) {
		return nil, fmt.Errorf("%s: expected columns %s,%s", s.Path(), ColTICID, ColSectors)
	}
	out := make([]Summary, 0, t.Len())
	for i := range t.Rows {
		id, err := strconv.ParseInt(t.Value(i, ColTICID), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: line %d", s.Path(), i+2)
		}
		out = append(out, Summary{TICID: id, Sectors: t.Value(i, ColSectors)})
	}
	return out, nil
}
