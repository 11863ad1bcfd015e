// Package statusstore persists the assembled status table.
package statusstore

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/pht-ctoi/ctoistatus/internal/csvtable"
	"github.com/pht-ctoi/ctoistatus/internal/statustable"
)

const StatusFilename = "pht_ctoi_statuses.csv"

var (
	ErrStatusTable  apperrors.Error = apperrors.New("status table error").SetStatusCode(http.StatusInternalServerError)
	ErrNotAvailable apperrors.Error = ErrStatusTable.New("status table has not been built").SetStatusCode(http.StatusNotFound)
)

// Store reads and writes the status table in the data directory.
type Store struct {
	dataDir string
}

func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

func (s *Store) Path() string {
	return filepath.Join(s.dataDir, StatusFilename)
}

// Save writes the table without an index column. The previous file is
// replaced only once the new one is complete.
func (s *Store) Save(t *statustable.Table) (string, error) {
	path := s.Path()
	if err := csvtable.WriteFile(path, t.Columns, t.Records()); err != nil {
		return "", ErrStatusTable.MsgErr("unable to save status table", err)
	}
	return path, nil
}

// Load reads the table back. Identifiers stay strings, counts and priorities
// become nullable integers and booleans are parsed from True/False.
func (s *Store) Load() (*statustable.Table, error) {
	path := s.Path()
	raw, err := csvtable.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotAvailable.Err(err)
		}
		return nil, ErrStatusTable.MsgErr("unable to read status table", err)
	}

	t := &statustable.Table{Columns: raw.Header, Rows: make([]statustable.StatusRow, len(raw.Rows))}
	for i, fields := range raw.Rows {
		for j, col := range raw.Header {
			if err := t.Rows[i].Set(col, fields[j]); err != nil {
				return nil, ErrStatusTable.Msg(fmt.Sprintf("%s: line %d: %s", path, i+2, err.Error()))
			}
		}
	}
	return t, nil
}
