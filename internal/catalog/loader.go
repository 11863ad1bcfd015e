package catalog

import (
	"context"

	"github.com/pht-ctoi/ctoistatus/internal/csvtable"
	"github.com/pht-ctoi/ctoistatus/internal/download"
	"github.com/rs/zerolog/log"
)

const (
	TOICSVLocalFilename  = "tess_tois.csv"
	CTOICSVLocalFilename = "tess_ctois.csv"
)

// Fetcher is the download/cache collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, url, localFilename, downloadDir string, policy download.CachePolicy) (string, error)
}

// LoaderOptions locates the sources read by a Loader
type LoaderOptions struct {
	TOIURL      string
	CTOIURL     string
	DownloadDir string
	PaperTable  string
	TrackedUser string
}

// Loader loads the TOI, CTOI and paper tables. Fetch errors are returned as is.
type Loader struct {
	fetcher Fetcher
	opts    LoaderOptions
}

func NewLoader(fetcher Fetcher, opts LoaderOptions) *Loader {
	return &Loader{fetcher: fetcher, opts: opts}
}

func (l *Loader) fetchTable(ctx context.Context, url, filename string, policy download.CachePolicy) (*csvtable.Table, string, error) {
	path, err := l.fetcher.Fetch(ctx, url, filename, l.opts.DownloadDir, policy)
	if err != nil {
		return nil, "", err
	}
	t, err := csvtable.ReadFile(path)
	if err != nil {
		return nil, "", ErrParse.Err(err)
	}
	return t, path, nil
}

// LoadTOICatalog returns all TESS Objects of Interest.
func (l *Loader) LoadTOICatalog(ctx context.Context, policy download.CachePolicy) (*TOITable, error) {
	t, path, err := l.fetchTable(ctx, l.opts.TOIURL, TOICSVLocalFilename, policy)
	if err != nil {
		return nil, err
	}
	tois, err := ParseTOITable(path, t)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("rows", len(tois.Records)).Msg("loaded TOI catalog")
	return tois, nil
}

// LoadCTOICatalog returns all Community TOIs.
func (l *Loader) LoadCTOICatalog(ctx context.Context, policy download.CachePolicy) (*CTOITable, error) {
	t, path, err := l.fetchTable(ctx, l.opts.CTOIURL, CTOICSVLocalFilename, policy)
	if err != nil {
		return nil, err
	}
	ctois, err := ParseCTOITable(path, t)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("rows", len(ctois.Records)).Msg("loaded CTOI catalog")
	return ctois, nil
}

// LoadTrackedCTOIs returns the CTOIs submitted by the tracked user.
func (l *Loader) LoadTrackedCTOIs(ctx context.Context, policy download.CachePolicy) (*CTOITable, error) {
	all, err := l.LoadCTOICatalog(ctx, policy)
	if err != nil {
		return nil, err
	}
	tracked := all.FilterByUser(l.opts.TrackedUser)
	log.Ctx(ctx).Info().Str("user", l.opts.TrackedUser).Int("rows", len(tracked.Records)).Msg("selected tracked CTOIs")
	return tracked, nil
}

// LoadPaperTable reads the local paper table; it is never downloaded.
func (l *Loader) LoadPaperTable() (*PaperTable, error) {
	t, err := csvtable.ReadFile(l.opts.PaperTable)
	if err != nil {
		return nil, ErrParse.MsgErr("unable to read paper table", err)
	}
	return ParsePaperTable(l.opts.PaperTable, t)
}
