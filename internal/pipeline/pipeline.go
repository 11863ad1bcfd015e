// Package pipeline wires the loaders, resolvers, assembler and stores into
// the status table build.
package pipeline

import (
	"context"

	"github.com/pht-ctoi/ctoistatus/internal/catalog"
	"github.com/pht-ctoi/ctoistatus/internal/common/logtrace"
	"github.com/pht-ctoi/ctoistatus/internal/config"
	"github.com/pht-ctoi/ctoistatus/internal/download"
	"github.com/pht-ctoi/ctoistatus/internal/sectors"
	"github.com/pht-ctoi/ctoistatus/internal/skypos"
	"github.com/pht-ctoi/ctoistatus/internal/statusstore"
	"github.com/pht-ctoi/ctoistatus/internal/statustable"
	"github.com/rs/zerolog/log"
)

// Catalogs provides the three source tables.
type Catalogs interface {
	LoadTOICatalog(ctx context.Context, policy download.CachePolicy) (*catalog.TOITable, error)
	LoadTrackedCTOIs(ctx context.Context, policy download.CachePolicy) (*catalog.CTOITable, error)
	LoadPaperTable() (*catalog.PaperTable, error)
}

type SummaryStore interface {
	Save(summaries []sectors.Summary) (string, error)
	Load() ([]sectors.Summary, error)
}

type StatusStore interface {
	Save(t *statustable.Table) (string, error)
}

// Pipeline builds the status table. Placements may be nil when sector
// summaries are only ever loaded from disk.
type Pipeline struct {
	Catalogs    Catalogs
	Positions   skypos.Resolver
	Placements  sectors.Resolver
	Summaries   SummaryStore
	Statuses    StatusStore
	CachePolicy download.CachePolicy
}

// Options are the switches of a build.
type Options struct {
	// QuerySectors recomputes the sector summaries before assembling.
	QuerySectors bool
	// Save writes the result to the status store.
	Save bool
	// DefaultColumnsOnly projects the table to the default columns.
	DefaultColumnsOnly bool
}

func DefaultOptions() Options {
	return Options{QuerySectors: true, Save: true, DefaultColumnsOnly: true}
}

// Result is the outcome of a build. Path is empty when the table was not saved.
type Result struct {
	RunID string
	Table *statustable.Table
	Path  string
}

// New wires a pipeline from configuration.
func New(cfg *config.ConfigParam) *Pipeline {
	downloader := download.NewDownloader(download.Options{
		Timeout:       cfg.HTTP.GetTimeout(),
		RetryAttempts: cfg.HTTP.RetryAttempts,
		RetryDelay:    cfg.HTTP.GetRetryDelay(),
	})
	p := &Pipeline{
		Catalogs: catalog.NewLoader(downloader, catalog.LoaderOptions{
			TOIURL:      cfg.Sources.TOIURL,
			CTOIURL:     cfg.Sources.CTOIURL,
			DownloadDir: cfg.DownloadDir,
			PaperTable:  cfg.PaperTable,
			TrackedUser: cfg.TrackedUser,
		}),
		Positions: skypos.NewMASTClient(skypos.MASTOptions{
			URL:           cfg.MAST.URL,
			BatchSize:     cfg.MAST.BatchSize,
			Timeout:       cfg.HTTP.GetTimeout(),
			RetryAttempts: cfg.HTTP.RetryAttempts,
			RetryDelay:    cfg.HTTP.GetRetryDelay(),
		}),
		Summaries:   sectors.NewSummaryStore(cfg.DownloadDir),
		Statuses:    statusstore.New(cfg.DataDir),
		CachePolicy: cfg.Cache.CachePolicy(),
	}
	if cfg.Footprint.URL != "" {
		p.Placements = sectors.NewFootprintClient(sectors.FootprintOptions{
			URL:           cfg.Footprint.URL,
			RetryAttempts: cfg.HTTP.RetryAttempts,
			RetryDelay:    cfg.HTTP.GetRetryDelay(),
		})
	}
	return p
}

// DownloadSectors recomputes and stores the sector summaries of the tracked CTOIs.
func (p *Pipeline) DownloadSectors(ctx context.Context) (string, error) {
	ctx, _ = withRun(ctx)
	ctois, err := p.Catalogs.LoadTrackedCTOIs(ctx, p.CachePolicy)
	if err != nil {
		return "", err
	}
	return p.downloadSectors(ctx, ctois)
}

func (p *Pipeline) downloadSectors(ctx context.Context, ctois *catalog.CTOITable) (string, error) {
	if p.Placements == nil {
		return "", sectors.ErrFootprintFailed.Msg("no footprint service configured")
	}
	ids := make([]int64, len(ctois.Records))
	for i, r := range ctois.Records {
		ids[i] = r.TICID
	}
	coords, err := p.Positions.ResolveCoordinates(ctx, ids)
	if err != nil {
		return "", err
	}
	placements, err := p.Placements.ResolvePlacements(ctx, coords)
	if err != nil {
		return "", err
	}
	summaries := sectors.Summarize(placements)
	path, err := p.Summaries.Save(summaries)
	if err != nil {
		return "", err
	}
	log.Ctx(ctx).Info().Int("targets", len(summaries)).Str("path", path).Msg("saved sector summaries")
	return path, nil
}

// CreateStatusTable loads every source, assembles the table and optionally
// saves it. Nothing is written when any step fails.
func (p *Pipeline) CreateStatusTable(ctx context.Context, opts Options) (*Result, error) {
	ctx, runID := withRun(ctx)
	logger := log.Ctx(ctx)
	logger.Info().
		Bool("query_sectors", opts.QuerySectors).
		Bool("save", opts.Save).
		Bool("default_columns_only", opts.DefaultColumnsOnly).
		Str("cache_policy", p.CachePolicy.String()).
		Msg("building status table")

	ctois, err := p.Catalogs.LoadTrackedCTOIs(ctx, p.CachePolicy)
	if err != nil {
		return nil, err
	}
	tois, err := p.Catalogs.LoadTOICatalog(ctx, p.CachePolicy)
	if err != nil {
		return nil, err
	}
	if opts.QuerySectors {
		if _, err := p.downloadSectors(ctx, ctois); err != nil {
			return nil, err
		}
	}
	summaries, err := p.Summaries.Load()
	if err != nil {
		return nil, err
	}
	paper, err := p.Catalogs.LoadPaperTable()
	if err != nil {
		return nil, err
	}

	table, err := statustable.Assemble(statustable.Inputs{
		CTOIs:   ctois,
		TOIs:    tois,
		Sectors: summaries,
		Paper:   paper,
	}, statustable.Options{DefaultColumnsOnly: opts.DefaultColumnsOnly})
	if err != nil {
		logger.Error().Err(err).Msg("unable to assemble status table")
		return nil, err
	}
	logger.Info().Int("rows", len(table.Rows)).Int("columns", len(table.Columns)).Msg("assembled status table")

	res := &Result{RunID: runID, Table: table}
	if opts.Save {
		if res.Path, err = p.Statuses.Save(table); err != nil {
			return nil, err
		}
		logger.Info().Str("path", res.Path).Msg("saved status table")
	}
	return res, nil
}

// withRun reuses the run of ctx or starts a new one.
func withRun(ctx context.Context) (context.Context, string) {
	if id := logtrace.RunIdFromContext(ctx); id != "" {
		return ctx, id
	}
	return logtrace.WithRunID(ctx)
}
